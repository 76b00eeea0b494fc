package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/tool/search"
)

func TestSearchCmd_TextOutput(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "hit", "/x.txt", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "/x.txt:4:2:a hit here\n", out)
}

func TestSearchCmd_ColorAlways(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "hit", "/x.txt", "--color", "always")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "hit", "/x.txt", "--format", "json")
	require.NoError(t, err)

	var results []search.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, []search.SearchResult{
		{File: "/x.txt", Line: 4, Column: 2, Content: "a hit here", MatchText: "hit"},
	}, results)
}

func TestSearchCmd_YAMLOutput(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "hit", "/x.txt", "--format", "yaml")
	require.NoError(t, err)

	var results []search.SearchResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "/x.txt", results[0].File)
	assert.Equal(t, uint32(4), results[0].Line)
}

func TestSearchCmd_NoMatches(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "nothing", "/x.txt", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSearchCmd_Filter(t *testing.T) {
	setupHome(t)

	out, err := runCLI(t, "", "search", "hit", "/x.txt", "--filter", "elsewhere", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSearchCmd_ToolErrorVerbatim(t *testing.T) {
	setupHome(t)

	_, err := runCLI(t, "", "search", "fail", "/x.txt")
	require.Error(t, err)
	assert.Equal(t, "rg: regex parse error\n", err.Error())
}

func TestSearchCmd_InvalidFlags(t *testing.T) {
	setupHome(t)

	_, err := runCLI(t, "", "search", "hit", "--format", "xml")
	assert.ErrorContains(t, err, "invalid --format")

	_, err = runCLI(t, "", "search", "hit", "--color", "sometimes")
	assert.ErrorContains(t, err, "invalid --color")

	_, err = runCLI(t, "", "search")
	assert.Error(t, err)
}

func TestSearchCmd_RecordsHistory(t *testing.T) {
	home := setupHome(t)

	_, err := runCLI(t, "", "search", "hit", "/x.txt", "-i", "--type", "go")
	require.NoError(t, err)
	_, err = runCLI(t, "", "search", "other", "/x.txt", "--no-history")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".config", "ripgrep-gui", history.FileName))
	require.NoError(t, err)

	var entries []history.Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "hit", entries[0].Pattern)
	assert.Equal(t, "/x.txt", entries[0].Path)
	assert.Equal(t, history.Options{CaseInsensitive: true, IncludeTypes: []string{"go"}}, entries[0].Options)
}

func TestSearchCmd_DefaultSearchPath(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, map[string]any{
		"default_search_path": "/configured",
		"search":              map[string]any{"ripgrep_path": filepath.Join(home, "rg"), "path_style": "plain"},
	})

	out, err := runCLI(t, "", "search", "hit", "--color", "never", "--no-history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "/configured:4:2:"), "got %q", out)
}

func TestSearchCmd_DefaultSearchPathTilde(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, map[string]any{
		"default_search_path": "~/src",
		"search":              map[string]any{"ripgrep_path": filepath.Join(home, "rg"), "path_style": "plain"},
	})

	out, err := runCLI(t, "", "search", "hit", "--color", "never", "--no-history")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, filepath.Join(home, "src")+":4:2:"), "got %q", out)
}

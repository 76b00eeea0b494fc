package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRipgrep stands in for rg: "hit" matches once under the root, "fail"
// writes to stderr and exits 2, anything else matches nothing.
const fakeRipgrep = `#!/bin/sh
case "$1" in
  hit) printf '%s:4:2:a hit here\n' "$2" ;;
  fail) echo "rg: regex parse error" >&2; exit 2 ;;
  *) exit 1 ;;
esac
`

// setupHome points HOME at a temp dir holding a config that runs the fake rg.
func setupHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping sh-based CLI tests on Windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	script := filepath.Join(home, "rg")
	require.NoError(t, os.WriteFile(script, []byte(fakeRipgrep), 0o755))

	writeConfig(t, home, map[string]any{
		"search": map[string]any{"ripgrep_path": script, "path_style": "plain"},
	})
	return home
}

func writeConfig(t *testing.T, home string, cfg map[string]any) {
	t.Helper()
	dir := filepath.Join(home, ".config", "ripgrep-gui")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644))
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sc := range cmd.Commands() {
		names[sc.Name()] = true
	}
	for _, want := range []string{"search", "serve", "history", "config"} {
		assert.True(t, names[want], "should have %s command", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := NewRootCmd()

	debug := cmd.PersistentFlags().Lookup("debug")
	require.NotNil(t, debug)
	assert.Equal(t, "false", debug.DefValue)

	format := cmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	setupHome(t)
	_, err := runCLI(t, "", "--log-format", "xml", "config", "show")
	assert.ErrorContains(t, err, "invalid --log-format")
}

func TestHistoryCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, sc := range historyCmd.Commands() {
		names[sc.Name()] = true
	}
	for _, want := range []string{"list", "clear", "cleanup", "set-path"} {
		assert.True(t, names[want], "should have history %s command", want)
	}
}

func TestSearchCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()
	searchCmd, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)

	for _, name := range []string{"ignore-case", "word", "regex", "hidden", "max-depth", "type", "type-not", "filter", "format", "color", "timeout", "no-history"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), "should have --%s flag", name)
	}
	assert.Equal(t, "i", searchCmd.Flags().Lookup("ignore-case").Shorthand)
	assert.Equal(t, "w", searchCmd.Flags().Lookup("word").Shorthand)
}

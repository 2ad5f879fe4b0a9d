package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"plan", "value", "batch", "serve", "history", "tuning"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "estimator-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestPlanCommand_Flags(t *testing.T) {
	flag := planCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "plan command should have --format flag")
	assert.Equal(t, "table", flag.DefValue)

	save := planCmd.Flags().Lookup("save")
	require.NotNil(t, save, "plan command should have --save flag")
}

func TestValueCommand_Flags(t *testing.T) {
	flag := valueCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "value command should have --format flag")
	assert.Equal(t, "table", flag.DefValue)
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("concurrency")
	require.NotNil(t, flag, "batch command should have --concurrency flag")
	assert.Equal(t, "4", flag.DefValue)

	kind := batchCmd.Flags().Lookup("kind")
	require.NotNil(t, kind, "batch command should have --kind flag")
	assert.Equal(t, "both", kind.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestHistoryCommand_Flags(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "history command should have --limit flag")
	assert.Equal(t, "20", flag.DefValue)
}

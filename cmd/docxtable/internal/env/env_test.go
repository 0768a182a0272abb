package env

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommands() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "docxtable"}
	root.PersistentFlags().String("log-level", "info", "")
	child := &cobra.Command{Use: "add-column", Run: func(*cobra.Command, []string) {}}
	child.Flags().Int("table", 0, "")
	child.Flags().String("width", "", "")
	root.AddCommand(child)
	return root, child
}

func TestPrefix(t *testing.T) {
	root, child := newCommands()
	assert.Equal(t, "docxtable", Prefix(root))
	assert.Equal(t, "docxtable_add_column", Prefix(child))
}

func TestCheckEnvironmentVariables(t *testing.T) {
	t.Setenv("DOCXTABLE_ADD_COLUMN_TABLE", "2")
	t.Setenv("DOCXTABLE_ADD_COLUMN_WIDTH", "1in")
	t.Setenv("DOCXTABLE_LOG_LEVEL", "debug")

	root, child := newCommands()
	require.NoError(t, child.Flags().Set("width", "2in"))

	require.NoError(t, CheckEnvironmentVariables(child))
	require.NoError(t, CheckEnvironmentVariables(root))

	table, err := child.Flags().GetInt("table")
	require.NoError(t, err)
	assert.Equal(t, 2, table)

	width, err := child.Flags().GetString("width")
	require.NoError(t, err)
	assert.Equal(t, "2in", width, "flags given on the command line win")

	level, err := root.PersistentFlags().GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "debug", level)
}

func TestCheckEnvironmentVariablesInvalidValue(t *testing.T) {
	t.Setenv("DOCXTABLE_ADD_COLUMN_TABLE", "first")

	_, child := newCommands()
	err := CheckEnvironmentVariables(child)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error mapping environment variables")
	assert.Contains(t, err.Error(), "table")
}

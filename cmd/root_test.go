package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("parallel", 1, "")
	cmd.Flags().StringSlice("locales", nil, "")
	cmd.Flags().String("intl", "single", "")
	return cmd
}

func TestBindConfigFromEnv(t *testing.T) {
	t.Setenv("CTS_PARALLEL", "4")
	t.Setenv("CTS_LOCALES", "en-US,de")
	cmd := configTestCommand()
	require.NoError(t, cmd.Flags().Set("intl", "multiple"))
	t.Setenv("CTS_INTL", "single")

	require.NoError(t, bindConfig(cmd))
	assert.Equal(t, 4, mustFlagInt(cmd, "parallel", 0))
	assert.Equal(t, []string{"en-US", "de"}, mustFlagStringSlice(cmd, "locales"))
	assert.Equal(t, "multiple", mustFlagString(cmd, "intl", false))
}

func TestBindConfigInvalidValue(t *testing.T) {
	t.Setenv("CTS_PARALLEL", "lots")
	err := bindConfig(configTestCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value for parallel")
}

package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/parcelscope/parcelscope/internal/config"
)

func yearsCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntSlice("years", nil, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestResolveYearsDefaultsToFullMenu(t *testing.T) {
	cfg := &config.Config{Years: config.YearsConfig{Min: 2023, Max: 2026}}

	years, err := resolveYears(yearsCommand(t), cfg)
	require.NoError(t, err)
	require.Equal(t, []int{2023, 2024, 2025, 2026}, years)
}

func TestResolveYearsExplicit(t *testing.T) {
	cfg := &config.Config{Years: config.YearsConfig{Min: 2023, Max: 2026}}

	years, err := resolveYears(yearsCommand(t, "--years", "2024,2026"), cfg)
	require.NoError(t, err)
	require.Equal(t, []int{2024, 2026}, years)
}

func TestResolveYearsOutOfRange(t *testing.T) {
	cfg := &config.Config{Years: config.YearsConfig{Min: 2023, Max: 2026}}

	_, err := resolveYears(yearsCommand(t, "--years", "1999"), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1999")
}

package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mnemo",
	Short: "Spaced-repetition retention engine for your learning journal",
	Long:  "Mnemo schedules reviews of journal entries and thinking patterns with SM-2 spacing, tracks memory decay, and plans your daily practice. Single Go binary, local sqlite storage.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(suspendCmd)
}

package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "opsdeck",
	Short:         "Opsdeck reconciles platform health telemetry for the ops dashboard.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, refreshCmd, migrateCmd)
}

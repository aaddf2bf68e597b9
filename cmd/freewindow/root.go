package main

import (
	"github.com/spf13/cobra"

	"github.com/arnavshah/freewindow-api-go/pkg/config"
	"github.com/arnavshah/freewindow-api-go/pkg/logger"
)

var logLevel string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "freewindow",
		Short:         "Find the time windows in which everybody is free",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
			logger.SetLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.AddCommand(newFindCmd())
	return root
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

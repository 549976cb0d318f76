package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "slin [paths...]",
	Short:            "slin - a linter for Swift sources with auto-fix support",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'slin' is entered
			_ = cmd.Help()
			return
		}
		// Format: slin [path1 path2 ...] => behaves like the lint subcommand
		lintCmd.Run(lintCmd, args)
	},
}

func Execute() error {
	logger = zap.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".slin.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
}

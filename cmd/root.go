package cmd

import (
	"fmt"

	logger "github.com/PolarWolf314/tagkeys/internal/logging"
	"github.com/PolarWolf314/tagkeys/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	RootCmd = &cobra.Command{
		Use:   "tagkeys",
		Short: "Unlock tag-encrypted fragments of published pages",
		Long: `tagkeys keeps the passwords you were given for tags and uses them to
reveal the protected parts of a page.

A page protects fragments with one encryption layer per tag. A fragment can be
read once you hold a password for every one of its tags.

Usage:
  tagkeys keys add <tag> [password]
  tagkeys unlock <page.html>

Run 'tagkeys help <command>' for more details on a specific command.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Run 'tagkeys --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")

	RootCmd.AddCommand(KeysCmd)
	RootCmd.AddCommand(unlockCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(logCmd)
}

// env returns the workflow environment selected by the global flags.
func env() workflows.Env {
	return workflows.Env{
		ConfigPath: configPath,
		Logger:     Logger,
	}
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	resetKeysAddCommandState()
	resetUnlockCommandState()
	resetLogCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed state of every flag below c to
// prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	unset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(unset)
	c.PersistentFlags().VisitAll(unset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

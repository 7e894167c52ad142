// Package main implements the task-cli command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "task-cli: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "task-cli",
	Short: "Track tasks in a local JSON document",
	Long: `Track tasks in a local JSON document.

The document defaults to storage.json in the working directory. Set
[storage] path in task-cli.toml, set $TASK_CLI_FILE, or pass --file to
use another one.`,
	Args:          usageArgs(cobra.NoArgs),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var (
	rootFile     string
	rootLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFile, "file", "f", "", "Task document path")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Console log level (debug, info, warn, error)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})
}

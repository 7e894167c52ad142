package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as TOML",
	Long: `Print the resolved configuration as TOML.

Values come from ~/.config/task-cli/config.toml, then task-cli.toml in
the working directory, then $TASK_CLI_FILE, then --file and --log-level.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}

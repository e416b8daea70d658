package cmd

import (
	"fmt"

	"github.com/bastiangx/hsnserve/pkg/config"
	"github.com/spf13/cobra"
)

var (
	setDataPath string
	setWatch    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long:  "Shows the active config file and its settings. Use the subcommands to change them.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Persist data settings to the active config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigSet,
}

var configRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Overwrite the default config file with defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.RebuildConfigFile()
		if err != nil {
			return fmt.Errorf("failed to rebuild config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote default config to %s\n", path)
		return nil
	},
}

func init() {
	f := configSetCmd.Flags()
	f.StringVar(&setDataPath, "table", "", "Code table file to load")
	f.BoolVar(&setWatch, "watch", false, "Reload the table when the file changes")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configRebuildCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config:        %s\n", config.GetActiveConfigPath(activePath))
	fmt.Fprintf(out, "data.path:     %s\n", appConfig.Data.Path)
	fmt.Fprintf(out, "data.watch:    %t\n", appConfig.Data.Watch)
	fmt.Fprintf(out, "data.debounce: %s\n", appConfig.Data.Debounce())
	fmt.Fprintf(out, "server.max_query_len: %d\n", appConfig.Server.MaxQueryLen)
	fmt.Fprintf(out, "server.log_requests:  %t\n", appConfig.Server.LogRequests)
	fmt.Fprintf(out, "cli.default_mode: %s\n", appConfig.CLI.DefaultMode)
	fmt.Fprintf(out, "cli.color:        %t\n", appConfig.CLI.Color)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	var table *string
	var watch *bool
	if cmd.Flags().Changed("table") {
		table = &setDataPath
	}
	if cmd.Flags().Changed("watch") {
		watch = &setWatch
	}
	if table == nil && watch == nil {
		return fmt.Errorf("nothing to set: pass --table or --watch")
	}

	// Reload so a --data override on this invocation is not persisted.
	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no writable config file")
	}
	if err := cfg.Update(path, table, watch); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", path)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/hsnserve/internal/logger"
	"github.com/bastiangx/hsnserve/internal/utils"
	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/config"
	"github.com/bastiangx/hsnserve/pkg/dictionary"
	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataPath   string
	debugMode  bool

	appConfig  *config.Config
	activePath string
)

var rootCmd = &cobra.Command{
	Use:   "hsnserve",
	Short: "hsnserve validates HSN/SAC codes and searches their descriptions",
	Long: "Validates HSN/SAC classification codes against a reference table and ranks\n" +
		"code descriptions against free-text queries. Without a subcommand it serves\n" +
		"msgpack requests on stdin/stdout.",
	PersistentPreRunE: setup,
	RunE:              runServe,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "Path to config.toml (default: user config dir)")
	f.StringVar(&dataPath, "data", "", "Code table file, CSV or snapshot (overrides data.path)")
	f.BoolVarP(&debugMode, "debug", "d", false, "Toggle debug mode")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup configures logging and loads the config before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, path, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		return err
	}
	appConfig, activePath = cfg, path
	if dataPath != "" {
		appConfig.Data.Path = dataPath
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))
	return nil
}

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cleanup func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		if cleanup != nil {
			cleanup()
		}
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// resolveTable finds the configured table file.
func resolveTable() (string, error) {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		return "", fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	path, err := pathResolver.GetDataFile(appConfig.Data.Path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve code table: %w", err)
	}
	log.Debugf("Using code table at: %s", path)
	return path, nil
}

// loadTable resolves and loads the configured table.
func loadTable() (*codes.Table, string, error) {
	path, err := resolveTable()
	if err != nil {
		return nil, "", err
	}
	table, stats, err := dictionary.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	if stats.Records == 0 {
		log.Warnf("Code table %s has no records; every lookup will miss", path)
	}
	return table, path, nil
}

// loadService builds a lookup service over the configured table.
func loadService() (*lookup.Service, string, error) {
	table, path, err := loadTable()
	if err != nil {
		return nil, "", err
	}
	svc, err := lookup.NewService(table,
		lookup.WithLogger(logger.NewWithConfig("lookup", log.GetLevel(), false, debugMode, log.TextFormatter)))
	if err != nil {
		return nil, "", err
	}
	return svc, path, nil
}

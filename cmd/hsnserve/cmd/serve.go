package cmd

import (
	"fmt"
	"os"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/bastiangx/hsnserve/pkg/dictionary"
	"github.com/bastiangx/hsnserve/pkg/lookup"
	"github.com/bastiangx/hsnserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve msgpack lookup requests on stdin/stdout",
	Long:  "Starts the IPC server. Requests are read from stdin, responses written to stdout, logs to stderr.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, path, err := loadService()
	if err != nil {
		return err
	}

	var watcher *dictionary.Watcher
	if appConfig.Data.Watch {
		watcher, err = dictionary.WatchTable(path, appConfig.Data.Debounce(), func(t *codes.Table) {
			if _, err := svc.Swap(t); err != nil {
				log.Errorf("Failed to swap code table: %v", err)
			}
		})
		if err != nil {
			log.Warnf("Hot reload disabled: %v", err)
		}
	}
	stop := func() {
		if watcher != nil {
			watcher.Stop()
		}
	}
	sigHandler(stop)
	defer stop()

	reload := func() (*codes.Table, error) {
		table, _, err := dictionary.LoadFile(path)
		return table, err
	}
	srv := server.NewServer(svc, appConfig, server.WithReloader(path, reload))

	showStartupInfo(path, svc, watcher != nil)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(path string, svc *lookup.Service, watching bool) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " hsnserve ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("code table: ( %s )", path)
	log.Infof("records: %d", svc.Table().Len())
	if watching {
		log.Info("hot reload: on")
	}
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")

	log.SetLevel(currentLevel)
}

package cmd

import (
	"github.com/bastiangx/hsnserve/internal/cli"
	"github.com/bastiangx/hsnserve/pkg/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	replText    bool
	replNoColor bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive prompt for validating codes and searching descriptions",
	Long:  "Reads one code or query per line. Use :code and :text to switch modes, :stats for a table summary.",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().BoolVar(&replText, "text", false, "Start in text search mode")
	replCmd.Flags().BoolVar(&replNoColor, "no-color", false, "Disable colored output")
}

func runRepl(cmd *cobra.Command, args []string) error {
	sigHandler(nil)
	log.SetReportTimestamp(false)

	svc, path, err := loadService()
	if err != nil {
		return err
	}

	codeMode := appConfig.CLI.DefaultMode != config.ModeText
	if cmd.Flags().Changed("text") {
		codeMode = !replText
	}
	color := appConfig.CLI.Color && !replNoColor
	log.Debug("Input info:", "codeMode", codeMode, "color", color, "table", path)

	h := cli.NewInputHandler(svc, codeMode, color, cli.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()), cli.WithSource(path))
	return h.Start()
}

package cmd

import (
	"errors"

	"github.com/bastiangx/hsnserve/internal/cli"
	"github.com/spf13/cobra"
)

var errInvalidCode = errors.New("one or more codes are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <code> [code ...]",
	Short: "Validate codes against the table",
	Long:  "Checks format, existence and hierarchy for each code. Exits non-zero if any code is not valid.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}
	render := cli.NewRenderer(cmd.OutOrStdout(), appConfig.CLI.Color)

	failed := false
	for _, code := range args {
		out := svc.Validate(code)
		render.Outcome(out)
		if !out.IsValid() {
			failed = true
		}
	}
	if failed {
		cmd.SilenceErrors = true
		return errInvalidCode
	}
	return nil
}

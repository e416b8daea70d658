package cmd

import (
	"strings"

	"github.com/bastiangx/hsnserve/internal/cli"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search code descriptions",
	Long:  "Ranks table entries by how well their descriptions match the query and prints the top ten.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	cli.NewRenderer(cmd.OutOrStdout(), appConfig.CLI.Color).Results(query, svc.Search(query))
	return nil
}

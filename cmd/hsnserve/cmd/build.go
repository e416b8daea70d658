package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bastiangx/hsnserve/internal/utils"
	"github.com/bastiangx/hsnserve/pkg/dictionary"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <input.csv> <output.bin>",
	Short: "Compile a code table into a msgpack snapshot",
	Long:  "Parses a CSV code table and writes the records as a msgpack snapshot, which loads without CSV parsing.",
	Args:  cobra.ExactArgs(2),
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	if err := checkSnapshotName(out); err != nil {
		return err
	}

	table, stats, err := dictionary.LoadFile(in)
	if err != nil {
		return err
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", out, err)
	}
	if err := dictionary.WriteSnapshot(file, table.Records()); err != nil {
		file.Close()
		os.Remove(out)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s records to %s (skipped %s, duplicates %s)\n",
		utils.FormatWithCommas(stats.Records), out,
		utils.FormatWithCommas(stats.Skipped), utils.FormatWithCommas(stats.Duplicates))
	return nil
}

// checkSnapshotName rejects output names that would not load back as a snapshot.
func checkSnapshotName(name string) error {
	info, _ := dictionary.GetFormatInfo(dictionary.FormatSnapshot)
	if slices.Contains(info.Extensions, strings.ToLower(filepath.Ext(name))) {
		return nil
	}
	return fmt.Errorf("%w: snapshot output must end in one of %v", dictionary.ErrUnsupportedFormat, info.Extensions)
}

/*
Package dictionary loads the HSN/SAC code table from disk.

Two on-disk forms are supported. The source form is CSV-like text: a header
line, then one record per line as code, a comma, and the description. Only
the first comma separates the fields, so descriptions keep their own commas.

	SAC_CD,SAC_Description
	9954,Construction services
	995411,"General construction of buildings, including repairs"

The compiled form is a msgpack snapshot written by WriteSnapshot. It holds the
already-parsed records in table order and loads without re-parsing.

LoadFile picks the reader from the file extension. WatchTable keeps a table
in sync with its file and hands every successful reload to a callback.
*/
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/hsnserve/pkg/codes"
	"github.com/charmbracelet/log"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// LoadStats describes one load.
type LoadStats struct {
	Lines      int
	Records    int
	Skipped    int
	Duplicates int
}

// ParseCSV reads records from source text. The first line is a header and is
// discarded. Blank lines, lines without a comma and lines with an empty code
// are skipped. Fields are trimmed; quotes are not interpreted.
func ParseCSV(r io.Reader) ([]codes.Record, LoadStats, error) {
	var (
		records []codes.Record
		stats   LoadStats
		seen    = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	header := true
	for scanner.Scan() {
		stats.Lines++
		if header {
			header = false
			continue
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			stats.Skipped++
			continue
		}

		code, description, ok := strings.Cut(line, ",")
		if !ok {
			stats.Skipped++
			log.Debugf("Skipping line %d: no delimiter", stats.Lines)
			continue
		}
		code = strings.TrimSpace(code)
		if code == "" {
			stats.Skipped++
			log.Debugf("Skipping line %d: empty code", stats.Lines)
			continue
		}

		if _, dup := seen[code]; dup {
			stats.Duplicates++
		}
		seen[code] = struct{}{}
		records = append(records, codes.Record{Code: code, Description: strings.TrimSpace(description)})
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read code table: %w", err)
	}

	stats.Records = len(records)
	return records, stats, nil
}

// LoadFile loads a code table from path, choosing the reader by format.
func LoadFile(path string) (*codes.Table, LoadStats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, LoadStats{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open code table %s: %w", path, err)
	}
	defer file.Close()

	var records []codes.Record
	var stats LoadStats
	switch format {
	case FormatCSV:
		records, stats, err = ParseCSV(file)
	case FormatSnapshot:
		records, err = ReadSnapshot(file)
		stats = LoadStats{Records: len(records)}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, stats, err
	}

	table := codes.NewTable(records)
	stats.Duplicates = table.Stats().Duplicates
	log.Debugf("Loaded %d codes from %s (skipped %d, duplicates %d)", stats.Records, path, stats.Skipped, stats.Duplicates)
	return table, stats, nil
}

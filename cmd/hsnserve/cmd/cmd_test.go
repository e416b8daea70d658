package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/hsnserve/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `code,description
99,Services
9954,Construction services
995411,General construction of buildings
99541100,Construction of residential buildings
`

func fixture(t *testing.T) (dir, csvPath, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", dir)

	csvPath = filepath.Join(dir, "codes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))

	cfgPath = filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[cli]\ncolor = false\n"), 0o644))
	return dir, csvPath, cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	_, csvPath, cfgPath := fixture(t)

	out, err := execute(t, "validate", "--config", cfgPath, "--data", csvPath, "99541100")
	require.NoError(t, err)
	assert.Contains(t, out, "99541100  Valid code found in database")
	assert.Contains(t, out, "parents:")

	out, err = execute(t, "validate", "--config", cfgPath, "--data", csvPath, "99", "9955")
	assert.ErrorIs(t, err, errInvalidCode)
	assert.Contains(t, out, "9955  Code does not exist in the database")
}

func TestSearchCommand(t *testing.T) {
	_, csvPath, cfgPath := fixture(t)

	out, err := execute(t, "search", "--config", cfgPath, "--data", csvPath, "residential", "buildings")
	require.NoError(t, err)
	assert.Contains(t, out, `Found 2 results for "residential buildings":`)
	assert.Contains(t, out, " 1. 99541100")
}

func TestBuildCommand(t *testing.T) {
	dir, csvPath, cfgPath := fixture(t)
	snapshot := filepath.Join(dir, "codes.bin")

	out, err := execute(t, "build", "--config", cfgPath, csvPath, snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 records")

	table, _, err := dictionary.LoadFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	out, err = execute(t, "validate", "--config", cfgPath, "--data", snapshot, "9954")
	require.NoError(t, err)
	assert.Contains(t, out, "9954  Valid code found in database")
}

func TestMissingTable(t *testing.T) {
	dir, _, cfgPath := fixture(t)

	_, err := execute(t, "validate", "--config", cfgPath, "--data", filepath.Join(dir, "nope.csv"), "99")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildCommand_RejectsNonSnapshotName(t *testing.T) {
	dir, csvPath, cfgPath := fixture(t)

	_, err := execute(t, "build", "--config", cfgPath, csvPath, filepath.Join(dir, "codes.json"))
	assert.ErrorIs(t, err, dictionary.ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "codes.json"))
}

func TestConfigCommand(t *testing.T) {
	_, csvPath, cfgPath := fixture(t)

	out, err := execute(t, "config", "--config", cfgPath, "--data", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "data.path:     "+csvPath)
	assert.Contains(t, out, "cli.color:        false")
}

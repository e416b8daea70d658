package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppDirName names the per-user config directory.
const AppDirName = "hsnserve"

// PathResolver finds the code table and config file relative to the binary,
// the working directory and the user config directory.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     ConfigDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// ConfigDirFor returns the platform config directory under homeDir.
func ConfigDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppDirName)
		}
		return filepath.Join(homeDir, ".config", AppDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppDirName)
	default:
		return filepath.Join(homeDir, ".config", AppDirName)
	}
}

// DataFileCandidates lists where a code table named by userPath is looked
// for, in order: as given (absolute or relative to the working directory),
// next to the executable, in a data/ dir next to the executable, and in the
// config directory.
func (pr *PathResolver) DataFileCandidates(userPath string) []string {
	if filepath.IsAbs(userPath) {
		return []string{userPath}
	}
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userPath))
	}
	base := filepath.Base(userPath)
	candidates = append(candidates,
		filepath.Join(pr.executableDir, userPath),
		filepath.Join(pr.executableDir, "data", base),
		filepath.Join(pr.configDir, base),
	)
	return candidates
}

// GetDataFile resolves the code table file. It returns the first candidate
// that exists as a regular file.
func (pr *PathResolver) GetDataFile(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("no code table path given")
	}
	for _, path := range pr.DataFileCandidates(userPath) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			log.Debugf("Found code table: %s", path)
			return path, nil
		}
		log.Debugf("Code table candidate not found: %s", path)
	}
	return "", fmt.Errorf("code table %q not found: %w", userPath, os.ErrNotExist)
}

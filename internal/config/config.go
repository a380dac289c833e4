package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rahulvramesh/exefinder/internal/logging"
)

const (
	// TargetSuffix is the file name ending the scanner looks for.
	TargetSuffix = ".exe"

	logFileName = "exefinder.log"
)

// Config is resolved once at startup and never changes afterwards.
type Config struct {
	AppDir   string // reports and the log are written here
	Suffix   string
	StartDir string // where the folder picker opens
	Log      logging.Config
}

// Load resolves the directory of the running executable and fills in
// the defaults around it.
func Load() (Config, error) {
	exe, err := os.Executable()
	if err != nil {
		return Config{}, fmt.Errorf("locating executable: %w", err)
	}
	return FromExecutable(exe)
}

// FromExecutable builds the config for an executable living at exe.
func FromExecutable(exe string) (Config, error) {
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	abs, err := filepath.Abs(exe)
	if err != nil {
		return Config{}, fmt.Errorf("resolving %s: %w", exe, err)
	}
	appDir := filepath.Dir(abs)

	start, err := os.UserHomeDir()
	if err != nil {
		start = appDir
	}

	logCfg := logging.DefaultConfig()
	logCfg.FilePath = filepath.Join(appDir, logFileName)

	return Config{
		AppDir:   appDir,
		Suffix:   TargetSuffix,
		StartDir: start,
		Log:      logCfg,
	}, nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rahulvramesh/exefinder/internal/config"
	"github.com/rahulvramesh/exefinder/internal/logging"
	"github.com/rahulvramesh/exefinder/internal/report"
	"github.com/rahulvramesh/exefinder/internal/scanner"
	"github.com/rahulvramesh/exefinder/internal/ui"
)

var version = "dev"

var errNoTerminal = errors.New("exefinder needs an interactive terminal")

var rootCmd = &cobra.Command{
	Use:          "exefinder",
	Short:        "Find .exe files under a folder and save the list next to this program",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	Long: `exefinder opens a folder picker, scans the chosen folder recursively for
.exe files and writes file_list_<timestamp>.txt (and error_log_<timestamp>.txt
when some folders could not be read) into the directory holding the binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout.Fd()) || !isTerminal(os.Stdin.Fd()) {
			return errNoTerminal
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, closer := logging.New(cfg.Log)
		if closer != nil {
			defer closer.Close()
		}
		logger.Info("exefinder starting", "version", version, "app_dir", cfg.AppDir, "log", cfg.Log.String())

		s := scanner.NewScanner(cfg.Suffix, scanner.WithLogger(logger))
		w := report.NewWriter(cfg.AppDir, cfg.Suffix, report.WithLogger(logger))

		p := tea.NewProgram(ui.NewModel(s, w, cfg.StartDir, logger), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running ui: %w", err)
		}
		return nil
	},
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

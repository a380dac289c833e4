package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rahulvramesh/exefinder/internal/report"
	"github.com/rahulvramesh/exefinder/internal/scanner"
	"github.com/rahulvramesh/exefinder/internal/types"
)

// appState moves Ready -> Picking -> Scanning -> Done -> Ready.
// Picking goes straight back to Ready when the user cancels.
type appState int

const (
	stateReady appState = iota
	statePicking
	stateScanning
	stateDone
)

const (
	statusReady     = "Ready to start."
	statusNext      = "Ready for next scan."
	statusCancelled = "Scan cancelled. No folder selected."
)

// Model represents the application state
type Model struct {
	scanner  *scanner.Scanner
	writer   *report.Writer
	logger   *slog.Logger
	startDir string
	now      func() time.Time

	state   appState
	status  string
	spinner spinner.Model
	picker  filepicker.Model
	width   int
	height  int
	err     error

	// Scanning view fields
	request types.ScanRequest
	reports <-chan types.ScanReport

	// Done view fields
	outcome  report.Outcome
	scanDirs int
	scanTook time.Duration
}

// NewModel builds the UI around a scanner and a report writer.
// The folder picker opens at startDir.
func NewModel(s *scanner.Scanner, w *report.Writer, startDir string, logger *slog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		scanner:  s,
		writer:   w,
		logger:   logger,
		startDir: startDir,
		now:      time.Now,
		state:    stateReady,
		status:   statusReady,
		spinner:  sp,
	}
}

// Init has nothing to start until the user triggers a scan
func (m Model) Init() tea.Cmd {
	return nil
}

// newPicker returns a directory-only picker. Enter picks the highlighted
// folder, l/right opens it and h/left/backspace goes back; esc is left
// free for cancelling.
func newPicker(dir string, width, height int) filepicker.Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowHidden = false

	fp.KeyMap.Open = key.NewBinding(key.WithKeys("l", "right", "enter"), key.WithHelp("l", "open"))
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "left", "backspace"), key.WithHelp("h", "back"))
	fp.KeyMap.Select = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))

	if height > 0 {
		fp, _ = fp.Update(tea.WindowSizeMsg{Width: width, Height: height - pickerChrome})
	}
	return fp
}

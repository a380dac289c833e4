package ui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rahulvramesh/exefinder/internal/types"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == statePicking {
			m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - pickerChrome})
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateReady:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter", "s":
				return m.openPicker()
			}
			return m, nil

		case statePicking:
			switch msg.String() {
			case "esc", "q":
				return m.cancelPicker(), nil
			case ".":
				return m.startScan(m.picker.CurrentDirectory)
			}

		case stateScanning:
			// The trigger stays disabled until the report is written.
			return m, nil

		case stateDone:
			switch msg.String() {
			case "enter", "esc", " ":
				m.state = stateReady
				m.status = statusNext
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}

	case spinner.TickMsg:
		if m.state != stateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case types.ScanCompleteMsg:
		if m.state != stateScanning || msg.Report.Request.ID != m.request.ID {
			return m, nil
		}
		return m.finishScan(msg.Report), nil

	case types.ErrMsg:
		m.err = msg
		if m.state == stateScanning {
			m.logger.Error("scan failed", "scan_id", m.request.ID.String(), "error", msg.Err)
			m.state = stateReady
			m.status = statusNext
			m.reports = nil
		}
		return m, nil
	}

	if m.state == statePicking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			return m.startScan(path)
		}
		return m, cmd
	}
	return m, nil
}

// openPicker shows a fresh folder picker
func (m Model) openPicker() (Model, tea.Cmd) {
	m.err = nil
	m.state = statePicking
	m.status = "Select a Folder to Search"
	m.picker = newPicker(m.startDir, m.width, m.height)
	return m, m.picker.Init()
}

func (m Model) cancelPicker() Model {
	m.state = stateReady
	m.status = statusCancelled
	m.logger.Info("folder selection cancelled")
	return m
}

// startScan moves to Scanning and hands root to a background worker
func (m Model) startScan(root string) (Model, tea.Cmd) {
	if m.state == stateScanning {
		return m, nil
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	m.request = types.NewScanRequest(root)
	m.request.Started = m.now()
	m.state = stateScanning
	m.status = fmt.Sprintf("Scanning: %s...", filepath.Base(root))
	m.err = nil
	m.reports = startWorker(m.scanner, m.request, m.logger)

	return m, tea.Batch(
		m.spinner.Tick,
		waitForReport(m.reports),
	)
}

// finishScan writes the report on the UI loop and opens the summary dialog
func (m Model) finishScan(r types.ScanReport) Model {
	m.outcome = m.writer.Write(r)
	m.scanDirs = r.Dirs
	m.scanTook = r.Completed.Sub(r.Request.Started)
	m.reports = nil
	m.state = stateDone
	m.status = "Scan complete."
	return m
}

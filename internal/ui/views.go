package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rahulvramesh/exefinder/internal/utils"
)

// pickerChrome is the number of lines around the file picker
const pickerChrome = 14

// View renders the UI
func (m Model) View() string {
	var s strings.Builder

	// Header with padding
	header := TitleStyle.Render("🔎 EXE File Finder")
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, header))
	s.WriteString("\n\n\n")

	var content string
	switch m.state {
	case stateReady:
		content = m.renderReady()
	case statePicking:
		content = m.renderPicking()
	case stateScanning:
		content = m.renderScanning()
	case stateDone:
		content = m.renderDone()
	}

	paddedContent := lipgloss.NewStyle().Padding(0, 3).Render(content)
	s.WriteString(paddedContent)

	if m.err != nil {
		s.WriteString("\n\n")
		errMsg := lipgloss.NewStyle().Padding(0, 3).Render(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString(errMsg)
	}

	s.WriteString("\n\n")
	return s.String()
}

func (m Model) renderButton() string {
	label := "Select Folder & Start Scan"
	if m.state == stateReady {
		return ButtonStyle.Render(label)
	}
	return DisabledButtonStyle.Render(label)
}

func (m Model) renderReady() string {
	var s strings.Builder

	s.WriteString("  " + m.renderButton())
	s.WriteString("\n\n")
	s.WriteString("  " + m.status)
	s.WriteString("\n\n\n")
	s.WriteString(DimStyle.Render("Press Enter or s to pick a folder, q to quit"))

	return s.String()
}

func (m Model) renderPicking() string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render(m.status))
	s.WriteString("\n\n")
	s.WriteString("  " + DimStyle.Render("📁 "+utils.TruncatePath(m.picker.CurrentDirectory, 60)))
	s.WriteString("\n\n")
	s.WriteString(m.picker.View())
	s.WriteString("\n\n")
	s.WriteString(DimStyle.Render("↑/↓ move • l/→ open • h/← back • Enter scan highlighted folder • . scan this folder • Esc cancel"))

	return s.String()
}

func (m Model) renderScanning() string {
	var s strings.Builder

	s.WriteString("  " + m.renderButton())
	s.WriteString("\n\n")
	s.WriteString("  " + m.spinner.View() + " " + m.status)
	s.WriteString("\n\n")
	s.WriteString("  " + DimStyle.Render("📁 "+utils.TruncatePath(m.request.Root, 60)))
	s.WriteString("\n")
	s.WriteString("  " + DimStyle.Render("⏱  running for "+utils.Elapsed(m.request.Started, m.now())))
	s.WriteString("\n\n")
	s.WriteString(DimStyle.Render("Please wait, scanning your directories..."))

	return s.String()
}

func (m Model) renderDone() string {
	var s strings.Builder
	o := m.outcome

	for _, f := range o.Failures {
		s.WriteString(ErrorDialogStyle.Render(ErrorStyle.Render("Error") + "\n\n" + f.Error()))
		s.WriteString("\n\n")
	}

	stats := fmt.Sprintf("🔍 %s matches | %s folders | %s",
		utils.FormatCount(o.Matches),
		utils.FormatCount(m.scanDirs),
		m.scanTook.Round(10*time.Millisecond).String())
	body := HeaderStyle.Render("Scan Complete") + "\n\n" +
		SuccessStyle.Render(stats) + "\n\n" +
		o.Summary()
	if o.Errors > 0 {
		body += "\n\n" + WarningStyle.Render(fmt.Sprintf("⚠ %s folders or files were skipped", utils.FormatCount(o.Errors)))
	}
	dialog := DialogStyle
	if !o.OK() {
		dialog = ErrorDialogStyle
	}
	s.WriteString(dialog.Render(body))
	s.WriteString("\n\n")
	s.WriteString(DimStyle.Render("Press Enter to continue"))

	return s.String()
}

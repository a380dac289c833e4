package ui

import (
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rahulvramesh/exefinder/internal/scanner"
	"github.com/rahulvramesh/exefinder/internal/types"
)

var errNoReport = errors.New("scan ended without a report")

// startWorker runs one scan on its own goroutine. The report is the only
// value ever sent on the returned channel; the channel is closed after it.
func startWorker(s *scanner.Scanner, req types.ScanRequest, logger *slog.Logger) <-chan types.ScanReport {
	ch := make(chan types.ScanReport, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("scan worker panicked",
					"scan_id", req.ID.String(),
					"panic", fmt.Sprint(p))
			}
			close(ch)
		}()
		ch <- s.Scan(req)
	}()
	return ch
}

// waitForReport hands the finished report to the UI loop
func waitForReport(ch <-chan types.ScanReport) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return types.ErrMsg{Err: errNoReport}
		}
		return types.ScanCompleteMsg{Report: r}
	}
}

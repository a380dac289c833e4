package report

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rahulvramesh/exefinder/internal/types"
)

const (
	// StampLayout names both files of one report: YYYY-MM-DD_HH-MM-SS.
	StampLayout = "2006-01-02_15-04-05"

	resultsPrefix = "file_list_"
	errorsPrefix  = "error_log_"
	separator     = "=================================================="
	errorsHeader  = "The following folders or files could not be accessed due to permission errors:"

	// maxStems bounds the search for a free timestamp suffix.
	maxStems = 1000
)

// Writer persists scan reports as plain text files in one directory
type Writer struct {
	Dir    string
	Suffix string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Writer
type Option func(*Writer)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// WithLogger sets the logger used for write events
func WithLogger(l *slog.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// NewWriter writes reports into dir. suffix only appears in the
// "no files found" sentence and the summary.
func NewWriter(dir, suffix string, opts ...Option) *Writer {
	w := &Writer{
		Dir:    dir,
		Suffix: suffix,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Outcome describes what Write produced
type Outcome struct {
	Stamp        string
	ResultsPath  string
	ErrorLogPath string // empty when no error log was written
	Matches      int
	Errors       int
	Suffix       string
	Failures     []error
}

// Write stores r as a results file and, if r has errors, an error log.
// A failure writing one file does not stop the other.
func (w *Writer) Write(r types.ScanReport) Outcome {
	now := w.now()
	log := w.logger.With("scan_id", r.Request.ID.String())

	out := Outcome{
		Matches: len(r.Matches),
		Errors:  len(r.Errors),
		Suffix:  w.Suffix,
	}

	stamp := now.Format(StampLayout)
	results, stamp, err := w.createResults(stamp)
	out.Stamp = stamp
	out.ResultsPath = filepath.Join(w.Dir, resultsPrefix+stamp+".txt")
	if err != nil {
		out.Failures = append(out.Failures, fmt.Errorf("failed to write results file: %w", err))
	} else if err := writeAndClose(results, w.resultsBody(r, now)); err != nil {
		out.Failures = append(out.Failures, fmt.Errorf("failed to write results file: %w", err))
	} else {
		log.Info("results written", "path", out.ResultsPath, "matches", out.Matches)
	}

	if len(r.Errors) > 0 {
		path := filepath.Join(w.Dir, errorsPrefix+stamp+".txt")
		out.ErrorLogPath = path
		if err := writeNew(path, errorsBody(r)); err != nil {
			out.Failures = append(out.Failures, fmt.Errorf("failed to write error log: %w", err))
		} else {
			log.Info("error log written", "path", path, "errors", out.Errors)
		}
	}

	for _, f := range out.Failures {
		log.Error("report write failed", "error", f)
	}
	return out
}

// createResults opens a fresh results file. If the name for stamp is
// taken, or its error log sibling is, the stamp gets _2, _3, ...
func (w *Writer) createResults(stamp string) (*os.File, string, error) {
	candidate := stamp
	for i := 2; i <= maxStems+1; i++ {
		if !exists(filepath.Join(w.Dir, errorsPrefix+candidate+".txt")) {
			f, err := os.OpenFile(filepath.Join(w.Dir, resultsPrefix+candidate+".txt"),
				os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err == nil {
				return f, candidate, nil
			}
			if !errors.Is(err, fs.ErrExist) {
				return nil, candidate, err
			}
		}
		candidate = fmt.Sprintf("%s_%d", stamp, i)
	}
	return nil, stamp, fmt.Errorf("no free file name for %s after %d attempts", stamp, maxStems)
}

func (w *Writer) resultsBody(r types.ScanReport, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search Results for folder: %s\n", r.Request.Root)
	fmt.Fprintf(&b, "Scan performed on: %s\n", now.Format("2006-01-02 at 15:04:05"))
	b.WriteString(separator + "\n\n")
	if len(r.Matches) == 0 {
		fmt.Fprintf(&b, "No %s files were found in the specified directory.\n", w.Suffix)
		return b.String()
	}
	for _, path := range r.Matches {
		b.WriteString(path + "\n")
	}
	return b.String()
}

func errorsBody(r types.ScanReport) string {
	var b strings.Builder
	b.WriteString(errorsHeader + "\n")
	b.WriteString(separator + "\n\n")
	for _, e := range r.Errors {
		b.WriteString(e + "\n")
	}
	return b.String()
}

func writeNew(path, body string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	return writeAndClose(f, body)
}

func writeAndClose(f *os.File, body string) error {
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// ErrorLogName is the base name of the error log, if one was written
func (o Outcome) ErrorLogName() string {
	if o.ErrorLogPath == "" {
		return ""
	}
	return filepath.Base(o.ErrorLogPath)
}

// OK reports whether every file was written
func (o Outcome) OK() bool { return len(o.Failures) == 0 }

// Summary is the text shown to the user once the report is written
func (o Outcome) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s files.\n\n", o.Matches, o.Suffix)
	fmt.Fprintf(&b, "Results saved to:\n%s", o.ResultsPath)
	if o.Errors > 0 {
		fmt.Fprintf(&b, "\n\nEncountered %d permission errors.\nSee %s for details.", o.Errors, o.ErrorLogName())
	}
	return b.String()
}

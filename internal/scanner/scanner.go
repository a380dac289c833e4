package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/rahulvramesh/exefinder/internal/types"
)

// DirReader lists directories and resolves symlink targets
type DirReader interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
}

// osReader reads the real file system. Entries come back in the order
// the OS returns them, unlike os.ReadDir which sorts by name.
type osReader struct{}

func (osReader) ReadDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func (osReader) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

var errInvalidName = errors.New("path is not valid UTF-8")

// Scanner performs the file system scanning
type Scanner struct {
	Suffix string
	reader DirReader
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Scanner
type Option func(*Scanner)

// WithReader replaces the OS directory reader
func WithReader(r DirReader) Option {
	return func(s *Scanner) { s.reader = r }
}

// WithLogger sets the logger used for scan events
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// NewScanner creates a new scanner instance matching names ending in suffix
func NewScanner(suffix string, opts ...Option) *Scanner {
	s := &Scanner{
		Suffix: suffix,
		reader: osReader{},
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks req.Root pre-order and returns the complete report.
// Directories that cannot be listed are recorded and their subtree skipped;
// nothing found during the walk aborts it.
func (s *Scanner) Scan(req types.ScanRequest) types.ScanReport {
	log := s.logger.With("scan_id", req.ID.String(), "root", req.Root)
	log.Info("scan started")

	w := walk{
		reader: s.reader,
		fold:   cases.Fold(),
		report: types.ScanReport{
			Request: req,
			Matches: []string{},
			Errors:  []string{},
		},
		log: log,
	}
	w.suffix = w.fold.String(s.Suffix)
	w.visit(req.Root)

	w.report.Completed = s.now()
	log.Info("scan finished",
		"matches", len(w.report.Matches),
		"errors", len(w.report.Errors),
		"dirs", w.report.Dirs,
		"took", w.report.Completed.Sub(req.Started).String())
	return w.report
}

// walk holds the state of one traversal. It is used by a single goroutine.
type walk struct {
	reader DirReader
	fold   cases.Caser
	suffix string
	report types.ScanReport
	log    *slog.Logger
}

func (w *walk) visit(dir string) {
	entries, err := w.reader.ReadDir(dir)
	if err != nil {
		w.report.Errors = append(w.report.Errors, DirError(dir, err))
		w.log.Debug("directory skipped", "dir", dir, "error", err)
		return
	}
	w.report.Dirs++

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}

		res := w.checkFile(dir, entry)
		if res.Err != nil {
			w.report.Errors = append(w.report.Errors, FileError(entry.Name(), dir, res.Err))
			continue
		}
		if res.Matched {
			w.report.Matches = append(w.report.Matches, res.Path)
		}
	}

	for _, sub := range subdirs {
		w.visit(sub)
	}
}

// checkFile decides whether a non-directory entry matches. A symlink
// is only resolved when its name matches: a link to a directory is
// neither followed nor matched, and a link that cannot be resolved
// counts as a file.
func (w *walk) checkFile(dir string, entry fs.DirEntry) types.FileResult {
	path := filepath.Join(dir, entry.Name())
	if !strings.HasSuffix(w.fold.String(entry.Name()), w.suffix) {
		return types.FileResult{Path: path}
	}

	if entry.Type()&fs.ModeSymlink != 0 {
		if info, err := w.reader.Stat(path); err == nil && info.IsDir() {
			return types.FileResult{Path: path}
		}
	}

	// Reports are UTF-8 text.
	if !utf8.ValidString(path) {
		return types.FileResult{Path: path, Err: errInvalidName}
	}
	return types.FileResult{Path: path, Matched: true}
}

// DirError formats a directory that could not be listed
func DirError(dir string, err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return validText(fmt.Sprintf("Directory: %s (Could not access)", dir))
	}
	return validText(fmt.Sprintf("Directory: %s (Error: %v)", dir, err))
}

// FileError formats a single entry that could not be checked
func FileError(name, dir string, err error) string {
	return validText(fmt.Sprintf("File: %s in %s (Error: %v)", name, dir, err))
}

func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

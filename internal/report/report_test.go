package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulvramesh/exefinder/internal/types"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewWriter(dir, ".exe", WithClock(func() time.Time { return fixedNow })), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteResultsOnly(t *testing.T) {
	w, dir := newTestWriter(t)
	r := types.ScanReport{
		Request: types.NewScanRequest("/data/root"),
		Matches: []string{"/data/root/b.EXE", "/data/root/sub/c.exe"},
	}

	out := w.Write(r)

	require.True(t, out.OK(), "failures: %v", out.Failures)
	assert.Equal(t, "2026-03-14_09-26-53", out.Stamp)
	assert.Equal(t, filepath.Join(dir, "file_list_2026-03-14_09-26-53.txt"), out.ResultsPath)
	assert.Empty(t, out.ErrorLogPath)

	want := "Search Results for folder: /data/root\n" +
		"Scan performed on: 2026-03-14 at 09:26:53\n" +
		"==================================================\n\n" +
		"/data/root/b.EXE\n" +
		"/data/root/sub/c.exe\n"
	assert.Equal(t, want, readFile(t, out.ResultsPath))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no error log expected")
}

func TestWriteEmptyReport(t *testing.T) {
	w, dir := newTestWriter(t)

	out := w.Write(types.ScanReport{Request: types.NewScanRequest("/empty")})

	require.True(t, out.OK())
	assert.Contains(t, readFile(t, out.ResultsPath),
		"==================================================\n\nNo .exe files were found in the specified directory.\n")
	assert.NoFileExists(t, filepath.Join(dir, "error_log_2026-03-14_09-26-53.txt"))
}

func TestWriteWithErrors(t *testing.T) {
	w, dir := newTestWriter(t)
	r := types.ScanReport{
		Request: types.NewScanRequest("/root"),
		Matches: []string{"/root/ok/d.exe"},
		Errors:  []string{"Directory: /root/locked (Could not access)"},
	}

	out := w.Write(r)

	require.True(t, out.OK())
	assert.Equal(t, filepath.Join(dir, "error_log_2026-03-14_09-26-53.txt"), out.ErrorLogPath)
	assert.Equal(t,
		"The following folders or files could not be accessed due to permission errors:\n"+
			"==================================================\n\n"+
			"Directory: /root/locked (Could not access)\n",
		readFile(t, out.ErrorLogPath))
	assert.FileExists(t, out.ResultsPath)
}

func TestWriteSameSecondGetsSuffix(t *testing.T) {
	w, dir := newTestWriter(t)
	r := types.ScanReport{
		Request: types.NewScanRequest("/root"),
		Errors:  []string{"Directory: /root/x (Could not access)"},
	}

	first := w.Write(r)
	second := w.Write(r)
	third := w.Write(types.ScanReport{Request: types.NewScanRequest("/root")})

	require.True(t, first.OK())
	require.True(t, second.OK())
	require.True(t, third.OK())
	assert.Equal(t, "2026-03-14_09-26-53", first.Stamp)
	assert.Equal(t, "2026-03-14_09-26-53_2", second.Stamp)
	assert.Equal(t, "2026-03-14_09-26-53_3", third.Stamp)
	assert.FileExists(t, filepath.Join(dir, "error_log_2026-03-14_09-26-53_2.txt"))
	assert.NotEqual(t, first.ResultsPath, second.ResultsPath)
}

func TestWriteSkipsStemWithStrayErrorLog(t *testing.T) {
	w, dir := newTestWriter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error_log_2026-03-14_09-26-53.txt"), []byte("old"), 0o644))

	out := w.Write(types.ScanReport{Request: types.NewScanRequest("/root")})

	require.True(t, out.OK())
	assert.Equal(t, "2026-03-14_09-26-53_2", out.Stamp)
	assert.Equal(t, "old", readFile(t, filepath.Join(dir, "error_log_2026-03-14_09-26-53.txt")))
}

func TestWriteFailuresAreIndependent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	w := NewWriter(dir, ".exe", WithClock(func() time.Time { return fixedNow }))
	r := types.ScanReport{
		Request: types.NewScanRequest("/root"),
		Matches: []string{"/root/a.exe"},
		Errors:  []string{"Directory: /root/x (Could not access)"},
	}

	out := w.Write(r)

	require.Len(t, out.Failures, 2)
	assert.Contains(t, out.Failures[0].Error(), "failed to write results file")
	assert.Contains(t, out.Failures[1].Error(), "failed to write error log")
	assert.Equal(t, 1, out.Matches)
	assert.Equal(t, 1, out.Errors)
}

func TestSummary(t *testing.T) {
	out := Outcome{
		Matches:      3,
		Suffix:       ".exe",
		ResultsPath:  "/app/file_list_x.txt",
		Errors:       2,
		ErrorLogPath: "/app/error_log_x.txt",
	}
	assert.Equal(t,
		"Found 3 .exe files.\n\nResults saved to:\n/app/file_list_x.txt\n\n"+
			"Encountered 2 permission errors.\nSee error_log_x.txt for details.",
		out.Summary())

	out.Errors = 0
	out.ErrorLogPath = ""
	assert.Equal(t, "Found 3 .exe files.\n\nResults saved to:\n/app/file_list_x.txt", out.Summary())
}

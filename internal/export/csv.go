package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVSink appends rows to a CSV file and flushes after every batch so an
// aborted run loses at most the match being written.
type CSVSink struct {
	f *os.File
	w *csv.Writer
}

// NormalizePath appends a .csv suffix when the given path lacks one.
func NormalizePath(path string) string {
	if !strings.HasSuffix(path, ".csv") {
		return path + ".csv"
	}
	return path
}

// OpenCSV opens path for appending, creating it if needed. existed reports
// whether the file was already there, which callers use to suppress a
// second header row.
func OpenCSV(path string) (sink *CSVSink, existed bool, err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		existed = true
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, fmt.Errorf("open csv %s: %w", path, err)
	}
	return &CSVSink{f: f, w: csv.NewWriter(f)}, existed, nil
}

// AppendRows writes the rows in order and flushes.
func (s *CSVSink) AppendRows(rows [][]string) error {
	for _, row := range rows {
		if err := s.w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

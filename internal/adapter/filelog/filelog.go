// Package filelog implements the abuse report sink as an append-only text
// file.
package filelog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"market/internal/domain"
)

const recordSeparator = 50

// Sink appends report records to a file. A mutex serializes writers and
// each record goes out in one Write call, so concurrent reports never
// interleave within a record.
type Sink struct {
	mu   sync.Mutex
	file *os.File
}

var _ domain.ReportSink = (*Sink)(nil)

// Open opens (or creates) the report file for appending.
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	return &Sink{file: f}, nil
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// File appends one four-line report record.
func (s *Sink) File(ctx context.Context, r domain.Report) error {
	record := fmt.Sprintf("Username: %s\nProduct ID: %s\nReason: %s\n%s\n",
		r.Username, r.ListingID, r.Reason, strings.Repeat("-", recordSeparator))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.WriteString(record); err != nil {
		return fmt.Errorf("append report: %w", err)
	}
	return nil
}

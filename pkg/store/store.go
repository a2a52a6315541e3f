// Package store persists finished session summaries to an append-only
// JSONL file.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mentora-ai/mentora/pkg/models"
)

// Store writes and reads session records at a fixed path. One record per
// line; the file is created on first append.
type Store struct {
	path string
}

// New creates a Store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// NewRecord assembles a SessionRecord for a finished session, generating
// its ID.
func NewRecord(mode string, start, end time.Time, usage models.UsageRecord, messageCount int) models.SessionRecord {
	return models.SessionRecord{
		ID:           uuid.NewString(),
		Mode:         mode,
		StartTime:    start,
		EndTime:      end,
		Usage:        usage,
		MessageCount: messageCount,
	}
}

// Append writes one record to the end of the session log.
func (s *Store) Append(rec models.SessionRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session log dir: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

// List returns all recorded sessions in file order. A missing file means
// no sessions yet, not an error.
func (s *Store) List() ([]models.SessionRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	var records []models.SessionRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec models.SessionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode session record: %w", err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}
	return records, nil
}

// ListSince returns recorded sessions that ended at or after the cutoff.
func (s *Store) ListSince(cutoff time.Time) ([]models.SessionRecord, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []models.SessionRecord
	for _, rec := range all {
		if !rec.EndTime.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Totals aggregates usage and session count across records ending at or
// after the cutoff. A zero cutoff covers everything.
func (s *Store) Totals(cutoff time.Time) (models.UsageRecord, int, error) {
	records, err := s.ListSince(cutoff)
	if err != nil {
		return models.UsageRecord{}, 0, err
	}
	var total models.UsageRecord
	for _, rec := range records {
		total.Add(rec.Usage)
	}
	return total, len(records), nil
}

package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mentora-ai/mentora/pkg/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "sessions.jsonl"))
}

func sampleRecord(mode string, end time.Time, cost float64) models.SessionRecord {
	return NewRecord(mode, end.Add(-5*time.Minute), end, models.UsageRecord{
		InputTokens:  1000,
		OutputTokens: 500,
		TotalTokens:  1500,
		InputCost:    cost / 2,
		OutputCost:   cost / 2,
		TotalCost:    cost,
	}, 6)
}

func TestAppendAndList(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	first := sampleRecord("tutor", now, 0.01)
	second := sampleRecord("explainer", now.Add(time.Minute), 0.02)
	if err := s.Append(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(second); err != nil {
		t.Fatal(err)
	}

	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != first.ID || records[1].ID != second.ID {
		t.Error("records not returned in file order")
	}
	if records[0].Mode != "tutor" {
		t.Errorf("expected mode tutor, got %s", records[0].Mode)
	}
	if records[0].MessageCount != 6 {
		t.Errorf("expected 6 messages, got %d", records[0].MessageCount)
	}
}

func TestListMissingFile(t *testing.T) {
	s := newTestStore(t)

	records, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestListSince(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	_ = s.Append(sampleRecord("tutor", now.Add(-48*time.Hour), 0.01))
	_ = s.Append(sampleRecord("tutor", now, 0.02))

	records, err := s.ListSince(now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 recent record, got %d", len(records))
	}
}

func TestTotals(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	_ = s.Append(sampleRecord("tutor", now, 0.25))
	_ = s.Append(sampleRecord("generator", now, 0.25))

	total, count, err := s.Totals(time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 sessions, got %d", count)
	}
	if total.TotalCost != 0.5 {
		t.Errorf("expected total cost 0.5, got %v", total.TotalCost)
	}
	if total.TotalTokens != 3000 {
		t.Errorf("expected 3000 tokens, got %d", total.TotalTokens)
	}
}

func TestNewRecordGeneratesID(t *testing.T) {
	a := NewRecord("tutor", time.Now(), time.Now(), models.UsageRecord{}, 0)
	b := NewRecord("tutor", time.Now(), time.Now(), models.UsageRecord{}, 0)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
}

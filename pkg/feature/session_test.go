package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/mentora-ai/mentora/pkg/budget"
	"github.com/mentora-ai/mentora/pkg/client"
	"github.com/mentora-ai/mentora/pkg/history"
	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/pricing"
)

type fakeSender struct {
	reply *client.Reply
	err   error
	sent  [][]models.ChatMessage
}

func (f *fakeSender) Send(_ context.Context, messages []models.ChatMessage, _ client.Options) (*client.Reply, error) {
	copied := make([]models.ChatMessage, len(messages))
	copy(copied, messages)
	f.sent = append(f.sent, copied)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func newTestSession(t *testing.T, sender Sender) *Session {
	t.Helper()
	table, err := pricing.NewTable(map[string]models.ModelPrice{
		"unit": {InputPerMillion: 1.0, OutputPerMillion: 1.0},
	}, "unit")
	if err != nil {
		t.Fatal(err)
	}
	tracker, err := budget.New(pricing.NewCalculator(table), 5.0)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Lookup(KindTutor)
	if err != nil {
		t.Fatal(err)
	}
	return NewSession(f, history.New(0), tracker, sender, "unit")
}

func TestAsk(t *testing.T) {
	sender := &fakeSender{reply: &client.Reply{
		Content: "an answer",
		Usage:   models.Usage{InputTokens: 150_000, OutputTokens: 0, TotalTokens: 150_000},
	}}
	sess := newTestSession(t, sender)

	res, err := sess.Ask(context.Background(), "a question")
	if err != nil {
		t.Fatal(err)
	}

	if res.Response != "an answer" {
		t.Errorf("unexpected response %q", res.Response)
	}
	if res.Usage.TotalCost != 0.15 {
		t.Errorf("expected incremental cost 0.15, got %v", res.Usage.TotalCost)
	}
	if res.Budget.IsExceeded {
		t.Error("budget should not be exceeded")
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(sender.sent))
	}
	payload := sender.sent[0]
	if len(payload) != 2 {
		t.Fatalf("expected system+user payload, got %d entries", len(payload))
	}
	if payload[0].Role != "system" {
		t.Errorf("expected system prompt first, got %s", payload[0].Role)
	}
	if payload[1].Content != "a question" {
		t.Errorf("expected user question, got %q", payload[1].Content)
	}

	if sess.History().TurnCount() != 1 {
		t.Errorf("expected 1 complete turn, got %d", sess.History().TurnCount())
	}
}

func TestAskFailureLeavesTrackerUntouched(t *testing.T) {
	sender := &fakeSender{err: errors.New("upstream down")}
	sess := newTestSession(t, sender)

	if _, err := sess.Ask(context.Background(), "q"); err == nil {
		t.Fatal("expected error")
	}
	if got := sess.Tracker().CurrentCost(); got != 0 {
		t.Errorf("failed call must not be billed, cost is %v", got)
	}
}

func TestAskAccumulatesAcrossTurns(t *testing.T) {
	sender := &fakeSender{reply: &client.Reply{
		Content: "ok",
		Usage:   models.Usage{InputTokens: 1_000_000, OutputTokens: 0},
	}}
	sess := newTestSession(t, sender)

	for i := 0; i < 3; i++ {
		if _, err := sess.Ask(context.Background(), "q"); err != nil {
			t.Fatal(err)
		}
	}
	if got := sess.Tracker().CurrentCost(); got != 3.0 {
		t.Errorf("expected accumulated cost 3.0, got %v", got)
	}
}

func TestRecord(t *testing.T) {
	sender := &fakeSender{reply: &client.Reply{
		Content: "ok",
		Usage:   models.Usage{InputTokens: 10, OutputTokens: 5},
	}}
	sess := newTestSession(t, sender)
	if _, err := sess.Ask(context.Background(), "q"); err != nil {
		t.Fatal(err)
	}

	rec := sess.Record()
	if rec.Mode != string(KindTutor) {
		t.Errorf("expected mode %q, got %q", KindTutor, rec.Mode)
	}
	if rec.MessageCount != 2 {
		t.Errorf("expected 2 messages, got %d", rec.MessageCount)
	}
	if rec.Usage.TotalTokens != 15 {
		t.Errorf("expected 15 tokens, got %d", rec.Usage.TotalTokens)
	}
	if rec.ID == "" {
		t.Error("expected generated record ID")
	}
	if rec.EndTime.Before(rec.StartTime) {
		t.Error("end time precedes start time")
	}
}

func TestLookup(t *testing.T) {
	for _, kind := range Kinds() {
		f, err := Lookup(kind)
		if err != nil {
			t.Fatal(err)
		}
		if f.SystemPrompt() == "" {
			t.Errorf("%s: empty system prompt", kind)
		}
	}

	if _, err := Lookup(Kind("poet")); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestSystemPromptsAreDistinct(t *testing.T) {
	seen := make(map[string]Kind)
	for _, kind := range Kinds() {
		f, _ := Lookup(kind)
		if prev, ok := seen[f.SystemPrompt()]; ok {
			t.Errorf("%s and %s share a system prompt", prev, kind)
		}
		seen[f.SystemPrompt()] = kind
	}
}

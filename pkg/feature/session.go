package feature

import (
	"context"
	"time"

	"github.com/mentora-ai/mentora/pkg/budget"
	"github.com/mentora-ai/mentora/pkg/client"
	"github.com/mentora-ai/mentora/pkg/history"
	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/store"
)

// Sender is the upstream chat call. *client.Client implements it.
type Sender interface {
	Send(ctx context.Context, messages []models.ChatMessage, opts client.Options) (*client.Reply, error)
}

// Result is one completed exchange: the assistant response, the exact
// usage billed for it, and the budget standing after billing.
type Result struct {
	Response string
	Usage    models.UsageRecord
	Budget   models.BudgetStatus
}

// Session drives one conversation for a single mode: it owns the history
// and tracker pair and sequences each round trip. Sessions are
// single-writer; concurrent callers each get their own.
type Session struct {
	feature Feature
	history *history.History
	tracker *budget.Tracker
	sender  Sender
	model   string
	started time.Time
}

// NewSession wires a session and installs the mode's system prompt.
func NewSession(f Feature, h *history.History, t *budget.Tracker, sender Sender, model string) *Session {
	h.SetSystemPrompt(f.SystemPrompt())
	return &Session{
		feature: f,
		history: h,
		tracker: t,
		sender:  sender,
		model:   model,
		started: time.Now().UTC(),
	}
}

// Ask runs one round trip: append the user message, send the transcript,
// bill the reported usage, append the reply. Usage is only billed after a
// definitive success; an abandoned or failed call leaves the tracker
// untouched.
func (s *Session) Ask(ctx context.Context, input string) (*Result, error) {
	s.history.AddUserMessage(input)

	reply, err := s.sender.Send(ctx, s.history.Messages(), client.Options{Model: s.model})
	if err != nil {
		return nil, err
	}

	rec, err := s.tracker.AddUsage(reply.Usage.InputTokens, reply.Usage.OutputTokens, s.model)
	if err != nil {
		return nil, err
	}
	s.history.AddAssistantMessage(reply.Content)

	return &Result{
		Response: reply.Content,
		Usage:    rec,
		Budget:   s.tracker.Check(),
	}, nil
}

// History exposes the transcript for export and clearing.
func (s *Session) History() *history.History {
	return s.history
}

// Tracker exposes the budget accumulator for reporting.
func (s *Session) Tracker() *budget.Tracker {
	return s.tracker
}

// Record summarizes the session for persistence at session end.
func (s *Session) Record() models.SessionRecord {
	return store.NewRecord(string(s.feature.Kind()), s.started, time.Now().UTC(), s.tracker.Usage(), s.history.Len())
}

// Package history maintains a bounded, turn-consistent conversation
// transcript usable both as API input and as a human-readable export.
package history

import (
	"time"

	"github.com/mentora-ai/mentora/pkg/models"
)

// DefaultMaxTokens bounds the estimated token size of kept history.
const DefaultMaxTokens = 4000

// charsPerToken is the conservative ratio used to estimate token counts
// from text length. The estimate only decides when to trim; billing uses
// the exact counts returned by the API.
const charsPerToken = 4

// History owns an ordered message sequence plus an optional system
// prompt. It assumes a single writer; callers handling multiple sessions
// give each its own History.
type History struct {
	maxTokens    int
	systemPrompt string
	messages     []models.Message
}

// New creates an empty History. A non-positive maxTokens selects
// DefaultMaxTokens.
func New(maxTokens int) *History {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &History{maxTokens: maxTokens}
}

// SetSystemPrompt replaces the system prompt. The message sequence is
// untouched and no trimming runs.
func (h *History) SetSystemPrompt(text string) {
	h.systemPrompt = text
}

// SystemPrompt returns the current system prompt, empty if unset.
func (h *History) SystemPrompt() string {
	return h.systemPrompt
}

// AddUserMessage appends a user message and trims if needed. Content is
// stored verbatim; whether it is a real question is the caller's call.
func (h *History) AddUserMessage(content string) {
	h.append(models.RoleUser, content)
}

// AddAssistantMessage appends an assistant message and trims if needed.
func (h *History) AddAssistantMessage(content string) {
	h.append(models.RoleAssistant, content)
}

func (h *History) append(role models.Role, content string) {
	h.messages = append(h.messages, models.Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	h.trim()
}

// trim drops whole user+assistant pairs from the front until the token
// estimate fits the budget. The system prompt is never evicted, and a
// lone trailing message is never left dangling at the front.
func (h *History) trim() {
	for h.estimateTokens() > h.maxTokens && len(h.messages) >= 2 {
		h.messages = h.messages[2:]
	}
}

// estimateTokens approximates the token cost of the system prompt plus
// all stored messages, rounding up.
func (h *History) estimateTokens() int {
	chars := len(h.systemPrompt)
	for _, m := range h.messages {
		chars += len(m.Content)
	}
	return (chars + charsPerToken - 1) / charsPerToken
}

// Messages returns the exact payload for the chat API: the system prompt
// first (if set), then every stored message in order, without timestamps.
func (h *History) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(h.messages)+1)
	if h.systemPrompt != "" {
		out = append(out, models.ChatMessage{Role: string(models.RoleSystem), Content: h.systemPrompt})
	}
	for _, m := range h.messages {
		out = append(out, models.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// FullHistory returns a copy of the stored messages with timestamps.
// Mutating the returned slice never affects internal state.
func (h *History) FullHistory() []models.Message {
	out := make([]models.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of stored messages, system prompt excluded.
func (h *History) Len() int {
	return len(h.messages)
}

// TurnCount returns the number of complete user+assistant pairs.
func (h *History) TurnCount() int {
	return len(h.messages) / 2
}

// Clear empties the message sequence. The system prompt is retained;
// callers wanting a full reset call SetSystemPrompt again explicitly.
func (h *History) Clear() {
	h.messages = nil
}

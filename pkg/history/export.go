package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mentora-ai/mentora/pkg/models"
)

// Format identifies a transcript export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ErrUnsupportedFormat is returned for export formats Export does not
// recognize.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// emptyExport is the sentinel returned when there is nothing to render.
const emptyExport = "(empty conversation)"

const exportTimeLayout = "2006-01-02 15:04:05"

// Export renders the transcript in the requested format.
func (h *History) Export(format Format) (string, error) {
	switch format {
	case FormatText:
		return h.ExportText(), nil
	case FormatMarkdown:
		return h.exportMarkdown(), nil
	case FormatJSON:
		return h.exportJSON()
	default:
		return "", fmt.Errorf("export %q: %w", format, ErrUnsupportedFormat)
	}
}

// ExportText renders the system prompt section and every message with a
// role label and timestamp, in chronological order.
func (h *History) ExportText() string {
	if h.systemPrompt == "" && len(h.messages) == 0 {
		return emptyExport
	}

	var b strings.Builder
	if h.systemPrompt != "" {
		b.WriteString("System prompt:\n")
		b.WriteString(h.systemPrompt)
		b.WriteString("\n\n")
	}
	for _, m := range h.messages {
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.CreatedAt.Format(exportTimeLayout), roleLabel(m.Role), m.Content)
	}
	return b.String()
}

func (h *History) exportMarkdown() string {
	if h.systemPrompt == "" && len(h.messages) == 0 {
		return emptyExport
	}

	var b strings.Builder
	b.WriteString("# Conversation\n\n")
	if h.systemPrompt != "" {
		b.WriteString("**System prompt**\n\n")
		b.WriteString(h.systemPrompt)
		b.WriteString("\n\n")
	}
	for _, m := range h.messages {
		fmt.Fprintf(&b, "**%s** (%s)\n\n%s\n\n", roleLabel(m.Role), m.CreatedAt.Format(exportTimeLayout), m.Content)
	}
	return b.String()
}

func (h *History) exportJSON() (string, error) {
	doc := struct {
		SystemPrompt string           `json:"system_prompt,omitempty"`
		Messages     []models.Message `json:"messages"`
	}{
		SystemPrompt: h.systemPrompt,
		Messages:     h.FullHistory(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export json: %w", err)
	}
	return string(data), nil
}

func roleLabel(role models.Role) string {
	switch role {
	case models.RoleUser:
		return "User"
	case models.RoleAssistant:
		return "Assistant"
	case models.RoleSystem:
		return "System"
	default:
		return string(role)
	}
}

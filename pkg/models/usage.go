package models

import "time"

// Usage holds exact token counts reported by an LLM response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// UsageRecord is the cost breakdown for one or more API calls. TotalTokens
// and TotalCost are always derived from their input/output parts.
type UsageRecord struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// Add accumulates another record into this one.
func (r *UsageRecord) Add(other UsageRecord) {
	r.InputTokens += other.InputTokens
	r.OutputTokens += other.OutputTokens
	r.TotalTokens += other.TotalTokens
	r.InputCost += other.InputCost
	r.OutputCost += other.OutputCost
	r.TotalCost += other.TotalCost
}

// SessionRecord summarizes a finished assistant session for persistence.
type SessionRecord struct {
	ID           string      `json:"id"`
	Mode         string      `json:"mode"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	Usage        UsageRecord `json:"usage"`
	MessageCount int         `json:"message_count"`
}

// Package pricing computes API call costs from token counts and a static
// price table.
package pricing

import (
	"errors"
	"fmt"

	"github.com/mentora-ai/mentora/pkg/models"
)

// ErrNegativeTokens is returned when a token count is negative.
var ErrNegativeTokens = errors.New("token count must not be negative")

const tokensPerMillion = 1_000_000

// DefaultModel is the model used when none is configured, and the entry
// unknown model identifiers fall back to in the built-in table.
const DefaultModel = "gpt-4o-mini"

// DefaultPrices returns the built-in per-million-token USD price list.
func DefaultPrices() map[string]models.ModelPrice {
	return map[string]models.ModelPrice{
		"gpt-4o":       {InputPerMillion: 2.50, OutputPerMillion: 10.00},
		"gpt-4o-mini":  {InputPerMillion: 0.15, OutputPerMillion: 0.60},
		"gpt-4.1":      {InputPerMillion: 2.00, OutputPerMillion: 8.00},
		"gpt-4.1-mini": {InputPerMillion: 0.40, OutputPerMillion: 1.60},
		"o3-mini":      {InputPerMillion: 1.10, OutputPerMillion: 4.40},
	}
}

// Table maps model identifiers to prices. Lookups for unknown models fall
// back to the default model's entry, a deliberate policy so that newly
// released models degrade to a known price instead of failing.
type Table struct {
	prices       map[string]models.ModelPrice
	defaultModel string
}

// NewTable builds a price table. The default model must have an entry,
// since its price is what every unknown identifier resolves to.
func NewTable(prices map[string]models.ModelPrice, defaultModel string) (*Table, error) {
	if _, ok := prices[defaultModel]; !ok {
		return nil, fmt.Errorf("price table: no entry for default model %q", defaultModel)
	}
	own := make(map[string]models.ModelPrice, len(prices))
	for model, price := range prices {
		own[model] = price
	}
	return &Table{prices: own, defaultModel: defaultModel}, nil
}

// DefaultTable returns a table over the built-in price list.
func DefaultTable() *Table {
	t, _ := NewTable(DefaultPrices(), DefaultModel)
	return t
}

// PriceFor returns the price for a model, falling back to the default
// model's entry when the identifier is unknown.
func (t *Table) PriceFor(model string) models.ModelPrice {
	if p, ok := t.prices[model]; ok {
		return p
	}
	return t.prices[t.defaultModel]
}

// DefaultModel returns the table's fallback model identifier.
func (t *Table) DefaultModel() string {
	return t.defaultModel
}

// Models returns the pricing list in a form suitable for display.
func (t *Table) Models() []models.ModelPricing {
	out := make([]models.ModelPricing, 0, len(t.prices))
	for model, p := range t.prices {
		out = append(out, models.ModelPricing{
			Model:            model,
			InputPerMillion:  p.InputPerMillion,
			OutputPerMillion: p.OutputPerMillion,
		})
	}
	return out
}

// Calculator computes cost breakdowns against a fixed price table. It is
// the single source of truth for prices; display and budget code consult
// it rather than keeping tables of their own.
type Calculator struct {
	table *Table
}

// NewCalculator creates a Calculator over the given table.
func NewCalculator(table *Table) *Calculator {
	return &Calculator{table: table}
}

// Calculate returns the cost breakdown for a single API call. Zero tokens
// cost zero; negative counts are an error.
func (c *Calculator) Calculate(inputTokens, outputTokens int, model string) (models.UsageRecord, error) {
	if inputTokens < 0 || outputTokens < 0 {
		return models.UsageRecord{}, fmt.Errorf("calculate cost for %q: %w", model, ErrNegativeTokens)
	}

	price := c.table.PriceFor(model)
	inputCost := float64(inputTokens) / tokensPerMillion * price.InputPerMillion
	outputCost := float64(outputTokens) / tokensPerMillion * price.OutputPerMillion

	return models.UsageRecord{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		InputCost:    inputCost,
		OutputCost:   outputCost,
		TotalCost:    inputCost + outputCost,
	}, nil
}

// PriceFor exposes the table's lookup, fallback rule included.
func (c *Calculator) PriceFor(model string) models.ModelPrice {
	return c.table.PriceFor(model)
}

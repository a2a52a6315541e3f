package models

// ModelPrice holds per-million-token prices in USD for a single model.
type ModelPrice struct {
	InputPerMillion  float64 `json:"input_per_million" yaml:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million" yaml:"output_per_million"`
}

// ModelPricing binds a model identifier to its price, for config lists.
type ModelPricing struct {
	Model            string  `json:"model" yaml:"model"`
	InputPerMillion  float64 `json:"input_per_million" yaml:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million" yaml:"output_per_million"`
}

package pricing

import (
	"errors"
	"testing"

	"github.com/mentora-ai/mentora/pkg/models"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	table, err := NewTable(map[string]models.ModelPrice{
		"gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
		"gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	}, "gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	return NewCalculator(table)
}

func TestCalculate(t *testing.T) {
	calc := newTestCalculator(t)

	rec, err := calc.Calculate(1_000_000, 500_000, "gpt-4o")
	if err != nil {
		t.Fatal(err)
	}
	if rec.InputCost != 2.50 {
		t.Errorf("expected input cost 2.50, got %v", rec.InputCost)
	}
	if rec.OutputCost != 5.00 {
		t.Errorf("expected output cost 5.00, got %v", rec.OutputCost)
	}
	if rec.TotalCost != 7.50 {
		t.Errorf("expected total cost 7.50, got %v", rec.TotalCost)
	}
	if rec.TotalTokens != 1_500_000 {
		t.Errorf("expected 1500000 total tokens, got %d", rec.TotalTokens)
	}
}

func TestCalculateDerivedTotals(t *testing.T) {
	calc := newTestCalculator(t)

	cases := []struct{ in, out int }{
		{0, 0},
		{1, 0},
		{0, 1},
		{123, 456},
		{1_000_000, 2_000_000},
	}
	for _, tc := range cases {
		rec, err := calc.Calculate(tc.in, tc.out, "gpt-4o")
		if err != nil {
			t.Fatal(err)
		}
		if rec.TotalTokens != tc.in+tc.out {
			t.Errorf("(%d,%d): total tokens %d, want %d", tc.in, tc.out, rec.TotalTokens, tc.in+tc.out)
		}
		if rec.TotalCost != rec.InputCost+rec.OutputCost {
			t.Errorf("(%d,%d): total cost %v != %v + %v", tc.in, tc.out, rec.TotalCost, rec.InputCost, rec.OutputCost)
		}
	}
}

func TestCalculateZeroTokens(t *testing.T) {
	calc := newTestCalculator(t)

	rec, err := calc.Calculate(0, 0, "gpt-4o")
	if err != nil {
		t.Fatal(err)
	}
	if rec.TotalCost != 0 {
		t.Errorf("expected zero cost, got %v", rec.TotalCost)
	}
}

func TestCalculateNegativeTokens(t *testing.T) {
	calc := newTestCalculator(t)

	if _, err := calc.Calculate(-1, 0, "gpt-4o"); !errors.Is(err, ErrNegativeTokens) {
		t.Errorf("expected ErrNegativeTokens, got %v", err)
	}
	if _, err := calc.Calculate(0, -1, "gpt-4o"); !errors.Is(err, ErrNegativeTokens) {
		t.Errorf("expected ErrNegativeTokens, got %v", err)
	}
}

func TestUnknownModelFallsBackToDefault(t *testing.T) {
	calc := newTestCalculator(t)

	unknown, err := calc.Calculate(10_000, 20_000, "some-future-model")
	if err != nil {
		t.Fatal(err)
	}
	def, err := calc.Calculate(10_000, 20_000, "gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}
	if unknown.TotalCost != def.TotalCost {
		t.Errorf("unknown model cost %v, want default model cost %v", unknown.TotalCost, def.TotalCost)
	}
}

func TestPriceForFallback(t *testing.T) {
	calc := newTestCalculator(t)

	p := calc.PriceFor("nonexistent")
	if p.InputPerMillion != 0.15 || p.OutputPerMillion != 0.60 {
		t.Errorf("expected default model price, got %+v", p)
	}
}

func TestNewTableMissingDefault(t *testing.T) {
	_, err := NewTable(map[string]models.ModelPrice{
		"gpt-4o": {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	}, "absent-model")
	if err == nil {
		t.Error("expected error for missing default model entry")
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	if table.DefaultModel() != DefaultModel {
		t.Errorf("expected default model %q, got %q", DefaultModel, table.DefaultModel())
	}
	if len(table.Models()) == 0 {
		t.Error("expected built-in pricing entries")
	}
}

// Package budget accumulates API usage across calls and classifies spend
// against a fixed budget.
package budget

import (
	"errors"
	"fmt"

	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/pricing"
)

// ErrInvalidBudget is returned when a tracker is constructed with a
// non-positive budget.
var ErrInvalidBudget = errors.New("budget must be greater than zero")

// Warning thresholds as percentages of the configured budget.
const (
	warnPercent      = 70
	nearLimitPercent = 80
	exceededPercent  = 100
)

// Status labels reported by Report, highest severity first.
const (
	StatusExceeded  = "exceeded"
	StatusNearLimit = "near-limit"
	StatusAttention = "attention"
	StatusNormal    = "normal"
)

// Tracker holds a running usage accumulator against a fixed budget. The
// accumulator only grows until Reset. Trackers assume a single writer;
// each session owns its own instance.
type Tracker struct {
	calc   *pricing.Calculator
	budget float64
	total  models.UsageRecord
}

// New creates a Tracker. The budget must be positive.
func New(calc *pricing.Calculator, budgetAmount float64) (*Tracker, error) {
	if budgetAmount <= 0 {
		return nil, fmt.Errorf("new tracker: %w", ErrInvalidBudget)
	}
	return &Tracker{calc: calc, budget: budgetAmount}, nil
}

// AddUsage bills one API call and returns the incremental cost breakdown
// for that call, not the running total. Callers only add usage after a
// definitive success response from the upstream API.
func (t *Tracker) AddUsage(inputTokens, outputTokens int, model string) (models.UsageRecord, error) {
	rec, err := t.calc.Calculate(inputTokens, outputTokens, model)
	if err != nil {
		return models.UsageRecord{}, err
	}
	t.total.Add(rec)
	return rec, nil
}

// CurrentCost returns the accumulated cost.
func (t *Tracker) CurrentCost() float64 {
	return t.total.TotalCost
}

// Usage returns a snapshot of the accumulator.
func (t *Tracker) Usage() models.UsageRecord {
	return t.total
}

// Budget returns the configured budget.
func (t *Tracker) Budget() float64 {
	return t.budget
}

// Check classifies current spend against the budget. The booleans are
// independent flags evaluated from the same percentage, so a tracker over
// budget is simultaneously warning, near limit, and exceeded.
func (t *Tracker) Check() models.BudgetStatus {
	pct := t.percentage()
	return models.BudgetStatus{
		CurrentCost: t.total.TotalCost,
		Usage:       t.total,
		Remaining:   t.budget - t.total.TotalCost,
		ShouldWarn:  pct >= warnPercent,
		IsNearLimit: pct >= nearLimitPercent,
		IsExceeded:  pct >= exceededPercent,
	}
}

// Report returns the human-facing summary with a single status label.
func (t *Tracker) Report() models.BudgetReport {
	pct := t.percentage()
	return models.BudgetReport{
		Budget:      t.budget,
		CurrentCost: t.total.TotalCost,
		Remaining:   t.budget - t.total.TotalCost,
		Usage:       t.total,
		Percentage:  pct,
		Status:      statusLabel(pct),
	}
}

// Reset zeroes the accumulator. The budget is unchanged.
func (t *Tracker) Reset() {
	t.total = models.UsageRecord{}
}

func (t *Tracker) percentage() float64 {
	return t.total.TotalCost / t.budget * 100
}

func statusLabel(pct float64) string {
	switch {
	case pct >= exceededPercent:
		return StatusExceeded
	case pct >= nearLimitPercent:
		return StatusNearLimit
	case pct >= warnPercent:
		return StatusAttention
	default:
		return StatusNormal
	}
}

// ReportFor classifies an externally accumulated usage total, such as the
// sum of persisted session records, against a budget.
func ReportFor(budgetAmount float64, usage models.UsageRecord) (models.BudgetReport, error) {
	if budgetAmount <= 0 {
		return models.BudgetReport{}, fmt.Errorf("budget report: %w", ErrInvalidBudget)
	}
	pct := usage.TotalCost / budgetAmount * 100
	return models.BudgetReport{
		Budget:      budgetAmount,
		CurrentCost: usage.TotalCost,
		Remaining:   budgetAmount - usage.TotalCost,
		Usage:       usage,
		Percentage:  pct,
		Status:      statusLabel(pct),
	}, nil
}

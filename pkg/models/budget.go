package models

// BudgetStatus classifies current spend against the configured budget.
// The three booleans are evaluated independently from the same
// percentage: a tracker over budget is also near the limit and past the
// warning mark.
type BudgetStatus struct {
	CurrentCost float64     `json:"current_cost"`
	Usage       UsageRecord `json:"usage"`
	Remaining   float64     `json:"remaining"`
	ShouldWarn  bool        `json:"should_warn"`
	IsNearLimit bool        `json:"is_near_limit"`
	IsExceeded  bool        `json:"is_exceeded"`
}

// BudgetReport is the human-facing budget summary.
type BudgetReport struct {
	Budget      float64     `json:"budget"`
	CurrentCost float64     `json:"current_cost"`
	Remaining   float64     `json:"remaining"`
	Usage       UsageRecord `json:"usage"`
	Percentage  float64     `json:"percentage"`
	Status      string      `json:"status"`
}

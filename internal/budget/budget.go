// Package budget derives budget spend from the product collection.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/digitalhaute/internal/model"
)

// Health thresholds, as percentages of the budget amount.
const (
	WarningPercent = 75
	OverPercent    = 100
)

// Health classifies how much of a budget is used.
type Health string

// Health values.
const (
	HealthOK      Health = "ok"
	HealthWarning Health = "warning"
	HealthOver    Health = "over"
)

// Recompute returns budgets with Spent set to the committed wholesale cost
// of every product in each budget's scope. The inputs are not modified.
func Recompute(products []model.Product, budgets []model.Budget) []model.Budget {
	out := make([]model.Budget, len(budgets))
	for i, b := range budgets {
		spent := decimal.Zero
		for j := range products {
			p := &products[j]
			if !p.Status.CountsTowardSpend() || !b.Matches(p) {
				continue
			}
			spent = spent.Add(cost(p))
		}
		b.Spent = spent.InexactFloat64()
		out[i] = b
	}
	return out
}

// VendorSpend returns the committed wholesale cost of products.
func VendorSpend(products []model.Product) float64 {
	total := decimal.Zero
	for i := range products {
		if products[i].Status.CountsTowardSpend() {
			total = total.Add(cost(&products[i]))
		}
	}
	return total.InexactFloat64()
}

func cost(p *model.Product) decimal.Decimal {
	return decimal.NewFromFloat(p.WholesalePrice).Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Remaining is the unspent amount. It goes negative when over budget.
func Remaining(b model.Budget) float64 {
	return decimal.NewFromFloat(b.Amount).Sub(decimal.NewFromFloat(b.Spent)).InexactFloat64()
}

// Utilization is the percent of the budget spent, capped at 100. A budget
// with no amount reports 0.
func Utilization(b model.Budget) float64 {
	if b.Amount <= 0 {
		return 0
	}
	pct := b.Spent / b.Amount * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// HealthOf classifies the budget's utilization.
func HealthOf(b model.Budget) Health {
	switch pct := Utilization(b); {
	case pct >= OverPercent:
		return HealthOver
	case pct >= WarningPercent:
		return HealthWarning
	default:
		return HealthOK
	}
}

// Summary is a budget with its derived display values.
type Summary struct {
	model.Budget
	Health      Health  `json:"health"`
	Remaining   float64 `json:"remaining"`
	Utilization float64 `json:"utilization"`
}

// Summarize pairs each budget with its derived values.
func Summarize(budgets []model.Budget) []Summary {
	out := make([]Summary, len(budgets))
	for i, b := range budgets {
		out[i] = Summary{
			Budget:      b,
			Remaining:   Remaining(b),
			Utilization: Utilization(b),
			Health:      HealthOf(b),
		}
	}
	return out
}

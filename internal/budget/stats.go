package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/digitalhaute/internal/model"
)

// Stats is the dashboard summary across the whole catalog.
type Stats struct {
	NextDeliveryDate string  `json:"nextDeliveryDate,omitempty"`
	TotalProducts    int     `json:"totalProducts"`
	TotalVendors     int     `json:"totalVendors"`
	TotalBudget      float64 `json:"totalBudget"`
	TotalSpent       float64 `json:"totalSpent"`
	TotalRemaining   float64 `json:"totalRemaining"`
	Utilization      float64 `json:"budgetUtilization"`
}

// ComputeStats summarizes the catalog as of now. Cancelled products are not
// counted, and the next delivery is the earliest delivery date falling on
// or after today.
func ComputeStats(products []model.Product, vendors []model.Vendor, budgets []model.Budget, now time.Time) Stats {
	stats := Stats{TotalVendors: len(vendors)}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var next time.Time
	for _, p := range products {
		if p.Status == model.StatusCancelled {
			continue
		}
		stats.TotalProducts++

		delivery, ok := ParseDate(p.DeliveryDate, now.Location())
		if !ok || delivery.Before(today) {
			continue
		}
		if next.IsZero() || delivery.Before(next) {
			next = delivery
			stats.NextDeliveryDate = p.DeliveryDate
		}
	}

	total, spent := decimal.Zero, decimal.Zero
	for _, b := range budgets {
		total = total.Add(decimal.NewFromFloat(b.Amount))
		spent = spent.Add(decimal.NewFromFloat(b.Spent))
	}
	stats.TotalBudget = total.InexactFloat64()
	stats.TotalSpent = spent.InexactFloat64()
	stats.TotalRemaining = total.Sub(spent).InexactFloat64()
	if total.IsPositive() {
		stats.Utilization = spent.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	return stats
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate reads a delivery date as either a calendar date or a full
// timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

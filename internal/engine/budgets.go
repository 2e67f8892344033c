package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/digitalhaute/internal/budget"
	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/model"
)

// BudgetInput is a new budget. Category and VendorID narrow its scope when
// set.
type BudgetInput struct {
	Amount   *float64
	Season   string
	Category string
	VendorID string
}

// AddBudget creates a budget and computes its spend immediately.
func (e *Engine) AddBudget(ctx context.Context, in BudgetInput) (model.Budget, error) {
	if strings.TrimSpace(in.Season) == "" {
		return model.Budget{}, common.NewValidationError("season", "Please select a season")
	}
	if in.Amount == nil || *in.Amount < 0 {
		return model.Budget{}, common.NewValidationError("amount", "Valid budget amount is required")
	}

	created, err := e.store.Budgets.Create(ctx, model.Budget{
		Season:   strings.TrimSpace(in.Season),
		Category: in.Category,
		VendorID: in.VendorID,
		Amount:   *in.Amount,
	})
	if err != nil {
		return model.Budget{}, fmt.Errorf("failed to save budget: %w", err)
	}

	if err := e.RecomputeSpend(ctx); err != nil {
		return created, err
	}
	if b, ok := e.store.Budgets.GetByID(ctx, created.ID); ok {
		created = b
	}
	e.logger.Info("Added budget", "id", created.ID, "season", created.Season, "spent", created.Spent)
	return created, nil
}

// DeleteBudget removes a budget.
func (e *Engine) DeleteBudget(ctx context.Context, id string) error {
	found, err := e.store.Budgets.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if !found {
		return fmt.Errorf("budget %s: %w", id, common.ErrNotFound)
	}
	return nil
}

// ListBudgets returns every budget with its remaining amount, utilization
// and health.
func (e *Engine) ListBudgets(ctx context.Context) []budget.Summary {
	return budget.Summarize(e.store.Budgets.GetAll(ctx))
}

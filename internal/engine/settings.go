package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/pricing"
)

// Settings returns the pricing settings.
func (e *Engine) Settings(ctx context.Context) model.AppSettings {
	return e.store.Settings.Get(ctx)
}

// SettingsPatch changes some pricing settings. Nil fields are kept.
type SettingsPatch struct {
	MarkupMultiplier *float64
	RoundingMode     *model.RoundingMode
}

// UpdateSettings validates and saves a settings change.
func (e *Engine) UpdateSettings(ctx context.Context, patch SettingsPatch) (model.AppSettings, error) {
	settings := e.store.Settings.Get(ctx)
	if patch.MarkupMultiplier != nil {
		if *patch.MarkupMultiplier <= 0 {
			return model.AppSettings{}, common.NewValidationError("markupMultiplier", "Markup multiplier must be greater than zero")
		}
		settings.MarkupMultiplier = *patch.MarkupMultiplier
	}
	if patch.RoundingMode != nil {
		mode, err := model.ParseRoundingMode(string(*patch.RoundingMode))
		if err != nil {
			return model.AppSettings{}, common.NewValidationError("roundingMode", err.Error())
		}
		settings.RoundingMode = mode
	}

	if err := e.store.Settings.Save(ctx, settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// PreviewRetail returns the retail price the current settings give for
// wholesale.
func (e *Engine) PreviewRetail(ctx context.Context, wholesale float64) float64 {
	return pricing.Retail(wholesale, e.store.Settings.Get(ctx))
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/storage"
)

// Settings persists the single AppSettings document.
type Settings struct {
	kv  storage.KV
	cfg *config
	mu  sync.Mutex
}

// Get returns the saved settings layered over the defaults. The first read
// persists the defaults. Unreadable settings yield the defaults, and a
// stored field that is out of range is replaced by its default.
func (s *Settings) Get(ctx context.Context) model.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := model.DefaultSettings()

	data, found, err := s.kv.Get(ctx, SettingsKey)
	if err != nil {
		s.cfg.onReadError(SettingsKey, err)
		return settings
	}

	if !found || len(data) == 0 {
		if err := s.save(ctx, settings); err != nil {
			s.cfg.onReadError(SettingsKey, err)
		}
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		s.cfg.onReadError(SettingsKey, fmt.Errorf("failed to decode %s: %w", SettingsKey, err))
		return model.DefaultSettings()
	}
	if err := normalize(&settings); err != nil {
		s.cfg.onReadError(SettingsKey, err)
	}
	return settings
}

// normalize resets invalid fields to their defaults and reports which ones
// it reset.
func normalize(settings *model.AppSettings) error {
	defaults := model.DefaultSettings()
	var errs []error

	if settings.MarkupMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("markup multiplier %v must be positive", settings.MarkupMultiplier))
		settings.MarkupMultiplier = defaults.MarkupMultiplier
	}
	mode, err := model.ParseRoundingMode(string(settings.RoundingMode))
	if err != nil {
		errs = append(errs, err)
		mode = defaults.RoundingMode
	}
	settings.RoundingMode = mode

	return errors.Join(errs...)
}

// Save replaces the stored settings.
func (s *Settings) Save(ctx context.Context, settings model.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, settings)
}

func (s *Settings) save(ctx context.Context, settings model.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, SettingsKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

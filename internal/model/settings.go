package model

import (
	"fmt"
	"strings"
)

// RoundingMode selects how derived retail prices are rounded.
type RoundingMode string

const (
	// RoundNone rounds to the nearest cent.
	RoundNone RoundingMode = "none"
	// RoundUp rounds up to the next whole unit.
	RoundUp RoundingMode = "up"
	// RoundEven rounds up to the next even whole unit.
	RoundEven RoundingMode = "even"
)

// DefaultMarkupMultiplier is the keystone-plus markup used until the buyer
// changes it.
const DefaultMarkupMultiplier = 2.5

// ParseRoundingMode validates a rounding mode typed by the user.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch mode := RoundingMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case RoundNone, RoundUp, RoundEven:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q (want none, up or even)", s)
	}
}

// AppSettings holds the pricing preferences. It is stored as a single
// document and replaced wholesale on save.
type AppSettings struct {
	RoundingMode     RoundingMode `json:"roundingMode"`
	MarkupMultiplier float64      `json:"markupMultiplier"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() AppSettings {
	return AppSettings{
		MarkupMultiplier: DefaultMarkupMultiplier,
		RoundingMode:     RoundNone,
	}
}

// Package labelscan reads wholesale hang tags with a vision model and maps
// the extracted fields onto a product draft.
package labelscan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Result is the best-effort extraction from one label photo. Every field is
// optional; the model sends null for anything it could not read.
type Result struct {
	StyleName      *string  `json:"styleName,omitempty"`
	StyleNumber    *string  `json:"styleNumber,omitempty"`
	WholesalePrice *Amount  `json:"wholesalePrice,omitempty"`
	RetailPrice    *Amount  `json:"retailPrice,omitempty"`
	Category       *string  `json:"category,omitempty"`
	BrandName      *string  `json:"brandName,omitempty"`
	Season         *string  `json:"season,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	Colors         []string `json:"colors,omitempty"`
	Sizes          []string `json:"sizes,omitempty"`
}

// IsEmpty reports whether nothing was extracted.
func (r Result) IsEmpty() bool {
	return r.StyleName == nil && r.StyleNumber == nil && r.WholesalePrice == nil &&
		r.RetailPrice == nil && r.Category == nil && r.BrandName == nil &&
		r.Season == nil && r.Notes == nil && len(r.Colors) == 0 && len(r.Sizes) == 0
}

// Amount is a price read off a label. Models sometimes quote prices as
// strings with a currency symbol, so both forms are accepted.
type Amount float64

// UnmarshalJSON accepts 45, 45.5, "45.50" and "$45.50". Unreadable strings
// decode as zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("price must be a number or string: %w", err)
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	f, _ = strconv.ParseFloat(cleaned, 64)
	*a = Amount(f)
	return nil
}

var codeFence = regexp.MustCompile("```json\\n?|\\n?```")

// ParseResult decodes model output, tolerating a markdown code fence around
// the JSON. On failure it returns an empty Result along with the error.
func ParseResult(content string) (Result, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(content, ""))
	if cleaned == "" {
		return Result{}, nil
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Result{}, fmt.Errorf("failed to parse label scan response: %w", err)
	}
	return result, nil
}

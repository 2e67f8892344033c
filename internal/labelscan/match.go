package labelscan

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/Veraticus/digitalhaute/internal/model"
)

func fold(s string) string {
	return cases.Fold().String(s)
}

// MatchCategory returns the category equal to candidate ignoring case.
func MatchCategory(candidate string, categories []string) (string, bool) {
	if candidate == "" {
		return "", false
	}
	want := fold(candidate)
	for _, c := range categories {
		if fold(c) == want {
			return c, true
		}
	}
	return "", false
}

// MatchSeason returns the first season containing candidate, ignoring case.
func MatchSeason(candidate string, seasons []string) (string, bool) {
	if candidate == "" {
		return "", false
	}
	want := fold(candidate)
	for _, s := range seasons {
		if strings.Contains(fold(s), want) {
			return s, true
		}
	}
	return "", false
}

// MatchVendor returns the first vendor whose name contains brand, ignoring
// case.
func MatchVendor(brand string, vendors []model.Vendor) (model.Vendor, bool) {
	if brand == "" {
		return model.Vendor{}, false
	}
	want := fold(brand)
	for _, v := range vendors {
		if strings.Contains(fold(v.Name), want) {
			return v, true
		}
	}
	return model.Vendor{}, false
}

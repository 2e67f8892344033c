package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSeasons(t *testing.T) {
	got := GenerateSeasons(time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{
		"Spring 2026", "Summer 2026", "Fall 2026", "Winter 2026", "Resort 2027",
		"Spring 2027", "Summer 2027", "Fall 2027", "Winter 2027", "Resort 2028",
	}, got)
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Dresses"))
	assert.False(t, IsCategory("dresses"))
	assert.False(t, IsCategory("Swim"))
}

func TestBudget_Matches(t *testing.T) {
	p := &Product{Season: "Fall 2026", Category: "Tops", VendorID: "v1"}

	tests := []struct {
		name   string
		budget Budget
		want   bool
	}{
		{"season only", Budget{Season: "Fall 2026"}, true},
		{"season and category", Budget{Season: "Fall 2026", Category: "Tops"}, true},
		{"other category", Budget{Season: "Fall 2026", Category: "Shoes"}, false},
		{"other vendor", Budget{Season: "Fall 2026", VendorID: "v2"}, false},
		{"other season", Budget{Season: "Spring 2027"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.budget.Matches(p))
		})
	}
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode(" EVEN ")
	assert.NoError(t, err)
	assert.Equal(t, RoundEven, mode)

	_, err = ParseRoundingMode("nearest")
	assert.Error(t, err)

	assert.Equal(t, AppSettings{MarkupMultiplier: 2.5, RoundingMode: RoundNone}, DefaultSettings())
}

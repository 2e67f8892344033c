package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackRatio(t *testing.T) {
	tests := []struct {
		want  *PackRatio
		name  string
		ratio string
		sizes string
	}{
		{
			name:  "matching lists",
			ratio: "2-2-2",
			sizes: "S, M, L",
			want:  &PackRatio{Sizes: []string{"S", "M", "L"}, Quantities: []int{2, 2, 2}},
		},
		{
			name:  "uneven ratio",
			ratio: "1-2-2-1",
			sizes: "XS,S,M,L",
			want:  &PackRatio{Sizes: []string{"XS", "S", "M", "L"}, Quantities: []int{1, 2, 2, 1}},
		},
		{
			name:  "non-numeric parts skipped",
			ratio: "2-x-3",
			sizes: "S, M",
			want:  &PackRatio{Sizes: []string{"S", "M"}, Quantities: []int{2, 3}},
		},
		{name: "length mismatch", ratio: "2-2", sizes: "S, M, L"},
		{name: "blank ratio", ratio: "  ", sizes: "S"},
		{name: "no sizes", ratio: "1-1", sizes: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePackRatio(tt.ratio, tt.sizes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackRatio_Accessors(t *testing.T) {
	ratio := &PackRatio{Sizes: []string{"S", "M", "L"}, Quantities: []int{1, 2, 1}}
	require.True(t, ratio.Valid())
	assert.Equal(t, 4, ratio.UnitsPerPack())
	assert.Equal(t, 2, ratio.QuantityAt(1))
	assert.Equal(t, 0, ratio.QuantityAt(3))
	assert.Equal(t, 0, ratio.QuantityAt(-1))
	assert.Equal(t, "1-2-1", ratio.String())

	var missing *PackRatio
	assert.False(t, missing.Valid())
	assert.Equal(t, 0, missing.UnitsPerPack())
	assert.Equal(t, 0, missing.QuantityAt(0))
	assert.Empty(t, missing.String())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Black", "Ivory"}, SplitList(" Black ,, Ivory ,"))
	assert.Empty(t, SplitList(""))
}

package model

import (
	"strconv"
	"strings"
)

// PackRatio describes how many units of each size ship in one pack,
// e.g. sizes S,M,L with quantities 2-2-2.
type PackRatio struct {
	Sizes      []string `json:"sizes"`
	Quantities []int    `json:"quantities"`
}

// Valid reports whether sizes and quantities are non-empty and parallel.
func (r *PackRatio) Valid() bool {
	return r != nil && len(r.Sizes) > 0 && len(r.Sizes) == len(r.Quantities)
}

// UnitsPerPack returns the total number of units in one pack.
func (r *PackRatio) UnitsPerPack() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, q := range r.Quantities {
		total += q
	}
	return total
}

// QuantityAt returns the per-pack quantity for the size at index i, or 0
// when the ratio has no entry there.
func (r *PackRatio) QuantityAt(i int) int {
	if r == nil || i < 0 || i >= len(r.Quantities) {
		return 0
	}
	return r.Quantities[i]
}

// String renders the ratio the way buyers type it: "2-2-2".
func (r *PackRatio) String() string {
	if r == nil {
		return ""
	}
	parts := make([]string, len(r.Quantities))
	for i, q := range r.Quantities {
		parts[i] = strconv.Itoa(q)
	}
	return strings.Join(parts, "-")
}

// ParsePackRatio parses a dash separated ratio ("2-2-2") against a comma
// separated size list ("S, M, L"). Non-numeric ratio parts and blank sizes
// are skipped. It returns nil when the ratio is blank or the two lists do
// not line up.
func ParsePackRatio(ratio, sizes string) *PackRatio {
	if strings.TrimSpace(ratio) == "" {
		return nil
	}

	parsed := &PackRatio{
		Sizes:      SplitList(sizes),
		Quantities: make([]int, 0),
	}
	for _, part := range strings.Split(ratio, "-") {
		q, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		parsed.Quantities = append(parsed.Quantities, q)
	}

	if !parsed.Valid() {
		return nil
	}
	return parsed
}

// SplitList splits a comma separated list, trimming entries and dropping
// blanks.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

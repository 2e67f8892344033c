package model

import (
	"fmt"
	"time"
)

// Categories is the fixed merchandise category list.
var Categories = []string{
	"Tops",
	"Bottoms",
	"Dresses",
	"Outerwear",
	"Accessories",
	"Shoes",
	"Bags",
	"Jewelry",
}

// IsCategory reports whether name is one of Categories, exactly.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// GenerateSeasons returns the buying seasons for the year of now and the
// year after. Resort collections are named for the following year.
func GenerateSeasons(now time.Time) []string {
	year := now.Year()
	seasons := make([]string, 0, 10)
	for _, y := range []int{year, year + 1} {
		seasons = append(seasons,
			fmt.Sprintf("Spring %d", y),
			fmt.Sprintf("Summer %d", y),
			fmt.Sprintf("Fall %d", y),
			fmt.Sprintf("Winter %d", y),
			fmt.Sprintf("Resort %d", y+1),
		)
	}
	return seasons
}

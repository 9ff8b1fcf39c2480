package model

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const otherCategoryRank = 5

var categoryRank = map[string]int{
	CategoryCoordinators:       1,
	CategoryCollaborators:      2,
	CategoryUndergradResearch:  3,
	CategoryHighSchoolResearch: 4,
}

// CategoryRank returns the display rank of a category; unknown ones sort last.
func CategoryRank(category string) int {
	if r, ok := categoryRank[category]; ok {
		return r
	}
	return otherCategoryRank
}

// SortForDisplay orders by category rank, then by name using Brazilian
// Portuguese collation. Accents and case only break ties between names that
// are otherwise equal, so the result never depends on input order.
func SortForDisplay(members []Member) {
	// Collators keep internal buffers and must not be shared across goroutines.
	col := collate.New(language.BrazilianPortuguese)

	sort.SliceStable(members, func(i, j int) bool {
		ri, rj := CategoryRank(members[i].Category), CategoryRank(members[j].Category)
		if ri != rj {
			return ri < rj
		}
		return col.CompareString(members[i].Name, members[j].Name) < 0
	})
}

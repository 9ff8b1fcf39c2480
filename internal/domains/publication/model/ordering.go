package model

import "sort"

// SortNewestFirst orders by created_at descending. The sort is stable, so
// records with equal timestamps keep their source order.
func SortNewestFirst(pubs []Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return pubs[i].CreatedAt.After(pubs[j].CreatedAt)
	})
}

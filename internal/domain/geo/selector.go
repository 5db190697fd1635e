package geo

import "sort"

// Ranked pairs an item with its distance from the selection origin.
type Ranked[T any] struct {
	Item     T
	Distance float64
}

// SelectNearest returns up to k items of pool closest to origin, nearest first.
//
// locate extracts an item's position; items for which it reports false are
// skipped. Ties keep their input order. An empty pool, a pool without any
// locatable item, or k <= 0 yields an empty (non-nil) slice.
func SelectNearest[T any](origin Point, pool []T, locate func(T) (Point, bool), k int) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(pool))
	if k <= 0 {
		return ranked
	}

	for _, item := range pool {
		p, ok := locate(item)
		if !ok {
			continue
		}
		ranked = append(ranked, Ranked[T]{Item: item, Distance: Distance(origin, p)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

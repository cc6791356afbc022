package offer

import "sort"

// Rank returns a fresh slice of offers ordered by ascending price. The
// sort is stable so offers with equal prices keep the relative order the
// aggregator established. The input slice is left untouched.
func Rank(offers []Offer) []Offer {
	ranked := make([]Offer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price < ranked[j].Price
	})
	return ranked
}

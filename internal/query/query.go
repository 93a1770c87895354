// Package query filters and orders a user's order history. Functions never
// modify their input.
package query

import (
	"slices"
	"strings"

	"github.com/RaikyD/parcel-orders/internal/domain"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Filter keeps orders whose id, delivery country or any item title contains
// term (case-insensitive) and whose status equals statusFilter. An empty term
// and an empty or "all" filter match everything. Input order is preserved.
func Filter(orders []domain.Order, term, statusFilter string) []domain.Order {
	needle := strings.ToLower(term)
	res := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !matchesStatus(o, statusFilter) || !matchesTerm(o, needle) {
			continue
		}
		res = append(res, o)
	}
	return res
}

func matchesStatus(o domain.Order, filter string) bool {
	if filter == "" || filter == StatusAll {
		return true
	}
	return string(o.Status) == filter
}

func matchesTerm(o domain.Order, needle string) bool {
	if needle == "" {
		return true
	}
	if contains(o.ID, needle) || contains(o.DeliveryCountry, needle) {
		return true
	}
	for _, it := range o.Items {
		if contains(it.Title, needle) {
			return true
		}
	}
	return false
}

func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}

// SortByRecency returns a copy sorted by createdAt, newest first. Equal
// timestamps keep their input order.
func SortByRecency(orders []domain.Order) []domain.Order {
	res := slices.Clone(orders)
	slices.SortStableFunc(res, func(a, b domain.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return res
}

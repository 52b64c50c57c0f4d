// Package browse implements the filter/sort pipeline over donation listings.
// It is a pure function of its inputs and the supplied time, so handlers and
// tests can run it against any snapshot of the store.
package browse

import (
	"sort"
	"strings"
	"time"

	"mealbridge-be/models"
)

// SortMode enum
type SortMode string

const (
	SortNearest  SortMode = "nearest"
	SortQuantity SortMode = "quantity"
	SortLatest   SortMode = "latest"
)

// UrgencyWindow is the time-to-expiry at or under which a record counts as
// urgent for list filtering.
const UrgencyWindow = 2 * time.Hour

// Filters mirrors the browse page filter configuration. FoodType accepts
// "all" (or empty) as a pass-through. Distance is carried but drives no
// computation; nearest sorting is a stable pass-through until real distance
// data exists.
type Filters struct {
	FoodType   string
	Distance   int
	Quantity   string
	UrgentOnly bool
	SortBy     SortMode
}

// Apply returns the ordered subset of records matching the filters and the
// free-text location query, evaluated at now. The input slice is not modified.
func Apply(records []models.Donation, f Filters, query string, now time.Time) []models.Donation {
	out := make([]models.Donation, 0, len(records))
	for _, d := range records {
		if !matches(d, f, query, now) {
			continue
		}
		out = append(out, d)
	}

	switch f.SortBy {
	case SortQuantity:
		sort.SliceStable(out, func(i, j int) bool {
			return LeadingInt(out[i].Quantity) > LeadingInt(out[j].Quantity)
		})
	case SortNearest:
		// No distance data; keep the stable incoming order.
	case SortLatest:
		fallthrough
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

func matches(d models.Donation, f Filters, query string, now time.Time) bool {
	if f.FoodType != "" && f.FoodType != "all" && string(d.FoodType) != f.FoodType {
		return false
	}

	if f.UrgentOnly && d.ExpiryTime.Sub(now) > UrgencyWindow {
		return false
	}

	if f.Quantity != "" && !containsFold(d.Quantity, f.Quantity) {
		return false
	}

	if query != "" && !containsFold(d.Location, query) {
		return false
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// LeadingInt parses the integer prefix of a quantity string, e.g. "25 meals"
// yields 25. Text with no leading digits yields 0.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t")
	n := 0
	seen := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		seen = true
		n = n*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return n
}

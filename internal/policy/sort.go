// Package policy holds the pure sorting and filtering rules applied to the
// note collection. Nothing here touches the network or the store.
package policy

import (
	"sort"
	"strings"

	"github.com/snipnote/snipnote/internal/models"
)

// SortKey selects one of the fixed note orderings.
type SortKey string

const (
	SortNameAToZ      SortKey = "name-a-to-z"
	SortNameZToA      SortKey = "name-z-to-a"
	SortCreatedNewOld SortKey = "created-at-new-old"
	SortCreatedOldNew SortKey = "created-at-old-new"
	SortUpdatedNewOld SortKey = "updated-at-new-old"
	SortUpdatedOldNew SortKey = "updated-at-old-new"
)

// DefaultSortKey is the ordering used before the user picks one.
const DefaultSortKey = SortCreatedNewOld

// SortKeys lists every recognized key, in menu order.
var SortKeys = []SortKey{
	SortNameAToZ,
	SortNameZToA,
	SortCreatedNewOld,
	SortCreatedOldNew,
	SortUpdatedNewOld,
	SortUpdatedOldNew,
}

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Comparator returns the less-than function for the given key. Unknown keys
// fall back to the default ordering. Comparisons are total: a zero timestamp
// compares as the least possible time, and equal fields compare equal so that
// a stable sort preserves the incoming order.
func Comparator(k SortKey) func(a, b models.Note) bool {
	switch k {
	case SortNameAToZ:
		return func(a, b models.Note) bool { return compareTitles(a, b) < 0 }
	case SortNameZToA:
		return func(a, b models.Note) bool { return compareTitles(a, b) > 0 }
	case SortCreatedOldNew:
		return func(a, b models.Note) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortUpdatedNewOld:
		return func(a, b models.Note) bool { return b.UpdatedAt.Before(a.UpdatedAt) }
	case SortUpdatedOldNew:
		return func(a, b models.Note) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortCreatedNewOld:
		fallthrough
	default:
		return func(a, b models.Note) bool { return b.CreatedAt.Before(a.CreatedAt) }
	}
}

func compareTitles(a, b models.Note) int {
	return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
}

// SortNotes orders notes in place using a stable sort under the given key.
func SortNotes(notes []models.Note, k SortKey) {
	less := Comparator(k)
	sort.SliceStable(notes, func(i, j int) bool {
		return less(notes[i], notes[j])
	})
}

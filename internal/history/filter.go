package history

import (
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects what the history list is ordered by.
type SortKey string

const (
	SortMemberName  SortKey = "member name"
	SortItemName    SortKey = "item name"
	SortLastUpdated SortKey = "last updated"
)

// ActionFilter selects which entry kinds pass the filter.
type ActionFilter struct {
	Created  bool
	Edited   bool
	Deleted  bool
	Reverted bool
}

// Matches reports whether the entry carries any of the selected flags.
// When nothing is selected every entry matches: the UI treats an empty
// selection as "no filter", and that behavior is kept on purpose.
func (f ActionFilter) Matches(e *Entry) bool {
	if f.Created && e.IsCreated {
		return true
	}

	if f.Edited && e.IsEdited {
		return true
	}

	if f.Deleted && e.IsDeleted {
		return true
	}

	if f.Reverted && e.IsReverted {
		return true
	}

	return !f.Created && !f.Edited && !f.Deleted && !f.Reverted
}

// Settings is the user-selected view configuration for a history list.
// Empty id lists allow every member/item.
type Settings struct {
	SortBy    SortKey
	Ascending bool
	MemberIDs []uuid.UUID
	ItemIDs   []uuid.UUID
	Actions   ActionFilter
	Search    string
}

// MemberNames resolves acting user ids to display names.
type MemberNames map[uuid.UUID]string

// ApplySettings sorts, filters and searches a history list. The input slice is
// never mutated; a new ordering is returned. Sorting is stable, so entries with
// equal keys keep their relative order.
func ApplySettings(entries []*Entry, names MemberNames, s Settings) []*Entry {
	result := slices.Clone(entries)

	sortEntries(result, names, s)

	result = slices.DeleteFunc(result, func(e *Entry) bool {
		if len(s.MemberIDs) > 0 && !slices.Contains(s.MemberIDs, e.UserID) {
			return true
		}

		if len(s.ItemIDs) > 0 && !slices.Contains(s.ItemIDs, e.ItemID) {
			return true
		}

		return !s.Actions.Matches(e)
	})

	if s.Search != "" {
		query := strings.ToLower(s.Search)

		result = slices.DeleteFunc(result, func(e *Entry) bool {
			return !matchesSearch(e, names, query)
		})
	}

	return result
}

func sortEntries(entries []*Entry, names MemberNames, s Settings) {
	var less func(a, b *Entry) bool

	switch s.SortBy {
	case SortMemberName:
		// Locale-aware ordering, matching how names sort in the client UI.
		c := collate.New(language.Und)
		less = func(a, b *Entry) bool {
			return c.CompareString(names[a.UserID], names[b.UserID]) < 0
		}
	case SortItemName:
		c := collate.New(language.Und)
		less = func(a, b *Entry) bool {
			return c.CompareString(sortableItemName(a), sortableItemName(b)) < 0
		}
	case SortLastUpdated:
		less = func(a, b *Entry) bool {
			return a.OccurredAt.Before(b.OccurredAt)
		}
	default:
		return
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if s.Ascending {
			return less(entries[i], entries[j])
		}

		return less(entries[j], entries[i])
	})
}

func sortableItemName(e *Entry) string {
	return strings.ToLower(e.ItemName())
}

// matchesSearch checks the previous-state item name and the resolved member
// name for a case-insensitive substring match.
func matchesSearch(e *Entry, names MemberNames, query string) bool {
	var itemName string
	if e.PrevItem != nil {
		itemName = strings.ToLower(e.PrevItem.Name)
	}

	if strings.Contains(itemName, query) {
		return true
	}

	return strings.Contains(strings.ToLower(names[e.UserID]), query)
}

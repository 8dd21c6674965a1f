package history

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the rollup of a history list: net quantity and price movement
// plus how many changes each member made.
type Summary struct {
	QuantityChange int64
	PriceChange    decimal.Decimal
	UserChanges    map[uuid.UUID]int
}

// Aggregate folds a history list into a Summary. Entries missing one side of
// the snapshot pair (creations, deletions) contribute zero to the quantity and
// price deltas; every entry with a known acting user counts as one change.
// The fold is commutative, so entry order never affects the result.
func Aggregate(entries []*Entry) Summary {
	sum := Summary{
		PriceChange: decimal.Zero,
		UserChanges: make(map[uuid.UUID]int),
	}

	for _, e := range entries {
		if e.PrevItem != nil && e.ChangedItem != nil {
			sum.QuantityChange += e.ChangedItem.Quantity - e.PrevItem.Quantity
			sum.PriceChange = sum.PriceChange.Add(e.ChangedItem.Price.Sub(e.PrevItem.Price))
		}

		if e.UserID != uuid.Nil {
			sum.UserChanges[e.UserID]++
		}
	}

	return sum
}

// UserCount pairs a member with their change count.
type UserCount struct {
	UserID uuid.UUID
	Count  int
}

// TopUsers lists members by change count, most active first. Ties break by
// user id so the order is deterministic.
func (s Summary) TopUsers() []UserCount {
	counts := make([]UserCount, 0, len(s.UserChanges))
	for id, n := range s.UserChanges {
		counts = append(counts, UserCount{UserID: id, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}

		return counts[i].UserID.String() < counts[j].UserID.String()
	})

	return counts
}

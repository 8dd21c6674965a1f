package history_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

func snapshot() *item.Snapshot {
	return &item.Snapshot{
		ID:         uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:       "Hammer",
		Note:       "16oz claw",
		Price:      decimal.NewFromFloat(12.50),
		Quantity:   10,
		Tag:        "tools",
		ImageURLs:  []string{"https://img.example/hammer.jpg"},
		AmountType: item.AmountQuantity,
	}
}

func TestDiff(t *testing.T) {
	t.Run("IdenticalSnapshotsProduceEmptyDiff", func(t *testing.T) {
		a := snapshot()
		b := snapshot()

		assert.Empty(t, history.Diff(a, b))
	})

	t.Run("NilPrevProducesEmptyDiff", func(t *testing.T) {
		assert.Empty(t, history.Diff(nil, snapshot()))
	})

	t.Run("SingleFieldChange", func(t *testing.T) {
		prev := snapshot()
		changed := snapshot()
		changed.Quantity = 7

		diff := history.Diff(prev, changed)

		require.Len(t, diff, 1)
		assert.Equal(t, int64(10), diff["amount"].Prev)
		assert.Equal(t, int64(7), diff["amount"].New)
	})

	t.Run("MultipleFieldChanges", func(t *testing.T) {
		prev := snapshot()
		changed := snapshot()
		changed.Name = "Sledgehammer"
		changed.Tag = "heavy tools"

		diff := history.Diff(prev, changed)

		require.Len(t, diff, 2)
		assert.Contains(t, diff, "name")
		assert.Contains(t, diff, "tag")
	})

	t.Run("NilChangedMarksEveryPrevField", func(t *testing.T) {
		prev := snapshot()

		diff := history.Diff(prev, nil)

		// All eight snapshot fields differ from the missing side.
		assert.Len(t, diff, 8)
	})

	t.Run("ImageChangesReportMarker", func(t *testing.T) {
		prev := snapshot()
		changed := snapshot()
		changed.ImageURLs = []string{"https://img.example/other.jpg"}

		diff := history.Diff(prev, changed)

		require.Contains(t, diff, "image_url")
		assert.Equal(t, "images", diff["image_url"].New)
		assert.Equal(t, prev.ImageURLs, diff["image_url"].Prev)
	})

	t.Run("EquivalentDecimalsAreEqual", func(t *testing.T) {
		prev := snapshot()
		changed := snapshot()
		prev.Price = decimal.RequireFromString("12.5")
		changed.Price = decimal.RequireFromString("12.50")

		assert.Empty(t, history.Diff(prev, changed))
	})

	t.Run("PriceChangeIsReported", func(t *testing.T) {
		prev := snapshot()
		changed := snapshot()
		changed.Price = decimal.RequireFromString("15.00")

		diff := history.Diff(prev, changed)

		require.Contains(t, diff, "price")
	})
}

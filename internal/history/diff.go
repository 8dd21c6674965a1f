package history

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/item"
)

// FieldChange holds the two sides of one changed field.
type FieldChange struct {
	Prev any `json:"prev"`
	New  any `json:"new"`
}

// fieldImages is the snapshot field carrying image references. Its diffs are
// reported as a unit rather than URL by URL.
const fieldImages = "image_url"

// imagesMarker stands in for the new image list in a diff.
const imagesMarker = "images"

// Diff compares two item snapshots field by field and returns the fields whose
// values are not deeply equal, keyed by snapshot field name.
//
// Only fields present in the previous snapshot are considered: a nil prev
// (creation) yields an empty diff, and a nil changed (deletion) marks every
// previous field as changed. Fields that exist only on the changed side are
// not surfaced; callers render creations from the changed snapshot directly.
func Diff(prev, changed *item.Snapshot) map[string]FieldChange {
	diffs := make(map[string]FieldChange)
	if prev == nil {
		return diffs
	}

	prevFields := snapshotFields(prev)
	changedFields := snapshotFields(changed)

	for name, prevVal := range prevFields {
		changedVal := changedFields[name]
		if valuesEqual(prevVal, changedVal) {
			continue
		}

		if name == fieldImages {
			changedVal = imagesMarker
		}

		diffs[name] = FieldChange{Prev: prevVal, New: changedVal}
	}

	return diffs
}

func snapshotFields(s *item.Snapshot) map[string]any {
	if s == nil {
		return nil
	}

	return map[string]any{
		"id":          s.ID,
		"name":        s.Name,
		"note":        s.Note,
		"price":       s.Price,
		"amount":      s.Quantity,
		"tag":         s.Tag,
		fieldImages:   s.ImageURLs,
		"type_amount": s.AmountType,
	}
}

// valuesEqual compares two field values by canonical JSON serialization.
// Decimals compare by numeric value so 12.5 and 12.50 are equal.
func valuesEqual(a, b any) bool {
	if ad, ok := a.(decimal.Decimal); ok {
		if bd, ok := b.(decimal.Decimal); ok {
			return ad.Equal(bd)
		}
	}

	aJSON, aErr := json.Marshal(a)
	bJSON, bErr := json.Marshal(b)

	if aErr != nil || bErr != nil {
		return false
	}

	return bytes.Equal(aJSON, bJSON)
}

package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("item not found")

// AmountType says what an item's quantity counts.
type AmountType string

const (
	AmountQuantity AmountType = "quantity"
	AmountWeight   AmountType = "weight"
	AmountVolume   AmountType = "volume"
)

// Item is a tracked inventory entity inside a folder.
type Item struct {
	ID          uuid.UUID
	FolderID    uuid.UUID
	UserID      uuid.UUID // user who last mutated the item
	Name        string
	Note        string
	Price       decimal.Decimal
	Quantity    int64
	MinQuantity int64
	Tag         string
	ImageURLs   []string
	AmountType  AmountType
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Snapshot is the immutable capture of an item's mutable fields stored inside
// a history entry. Never modified after being recorded.
type Snapshot struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Note       string          `json:"note"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"amount"`
	Tag        string          `json:"tag"`
	ImageURLs  []string        `json:"image_url"`
	AmountType AmountType      `json:"type_amount"`
}

// Snapshot captures the item's current state.
func (i *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:         i.ID,
		Name:       i.Name,
		Note:       i.Note,
		Price:      i.Price,
		Quantity:   i.Quantity,
		Tag:        i.Tag,
		ImageURLs:  i.ImageURLs,
		AmountType: i.AmountType,
	}
}

// Apply overwrites the item's mutable fields with the snapshot values.
func (i *Item) Apply(s Snapshot) {
	i.Name = s.Name
	i.Note = s.Note
	i.Price = s.Price
	i.Quantity = s.Quantity
	i.Tag = s.Tag
	i.ImageURLs = s.ImageURLs
	i.AmountType = s.AmountType
}

package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/item"
)

type itemResponse struct {
	ID          uuid.UUID       `json:"id"`
	FolderID    uuid.UUID       `json:"folder_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Name        string          `json:"name"`
	Note        string          `json:"note"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"amount"`
	MinQuantity int64           `json:"min_amount"`
	Tag         string          `json:"tag"`
	ImageURLs   []string        `json:"image_url"`
	AmountType  item.AmountType `json:"type_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(it *item.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		FolderID:    it.FolderID,
		UserID:      it.UserID,
		Name:        it.Name,
		Note:        it.Note,
		Price:       it.Price,
		Quantity:    it.Quantity,
		MinQuantity: it.MinQuantity,
		Tag:         it.Tag,
		ImageURLs:   it.ImageURLs,
		AmountType:  it.AmountType,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toResponseList(items []*item.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toResponse(it))
	}

	return out
}

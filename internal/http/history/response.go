package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

type entryResponse struct {
	ID         uuid.UUID      `json:"id"`
	FolderID   uuid.UUID      `json:"folder_id"`
	UserID     uuid.UUID      `json:"user_id"`
	MemberName string         `json:"member_name,omitempty"`
	ItemID     uuid.UUID      `json:"item_id"`
	ItemName   string         `json:"item_name"`
	Action     history.Action `json:"action"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type entryDetailResponse struct {
	entryResponse

	PrevItem    *item.Snapshot                 `json:"prev_item,omitempty"`
	ChangedItem *item.Snapshot                 `json:"changed_item,omitempty"`
	Changes     map[string]history.FieldChange `json:"changes"`
}

type analyticsResponse struct {
	QuantityChange int64           `json:"quantity_change"`
	PriceChange    string          `json:"price_change"`
	TopUsers       []userCountItem `json:"top_users"`
	LowStockCount  int             `json:"low_stock_count"`
}

type userCountItem struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name,omitempty"`
	Count  int       `json:"count"`
}

func toResponse(e *history.Entry, names history.MemberNames) entryResponse {
	return entryResponse{
		ID:         e.ID,
		FolderID:   e.FolderID,
		UserID:     e.UserID,
		MemberName: names[e.UserID],
		ItemID:     e.ItemID,
		ItemName:   e.ItemName(),
		Action:     e.Action(),
		OccurredAt: e.OccurredAt,
	}
}

func toResponseList(entries []*history.Entry, names history.MemberNames) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e, names))
	}

	return out
}

// toDetailResponse includes both snapshots and the derived field diff. The
// diff is always recomputed from the snapshots, never read from storage.
func toDetailResponse(e *history.Entry, names history.MemberNames) entryDetailResponse {
	return entryDetailResponse{
		entryResponse: toResponse(e, names),
		PrevItem:      e.PrevItem,
		ChangedItem:   e.ChangedItem,
		Changes:       history.Diff(e.PrevItem, e.ChangedItem),
	}
}

func toAnalyticsResponse(sum history.Summary, names history.MemberNames, lowStock int) analyticsResponse {
	top := sum.TopUsers()

	users := make([]userCountItem, 0, len(top))
	for _, u := range top {
		users = append(users, userCountItem{
			UserID: u.UserID,
			Name:   names[u.UserID],
			Count:  u.Count,
		})
	}

	return analyticsResponse{
		QuantityChange: sum.QuantityChange,
		PriceChange:    sum.PriceChange.StringFixed(2),
		TopUsers:       users,
		LowStockCount:  lowStock,
	}
}

// Package export renders a folder's history as CSV for spreadsheet use.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/history"
)

type Service struct {
	histories *history.Service
	folders   *folder.Service
}

func NewService(histories *history.Service, folders *folder.Service) *Service {
	return &Service{histories: histories, folders: folders}
}

// Export writes the folder's history entries inside the window as CSV,
// followed by a totals footer.
func (s *Service) Export(ctx context.Context, folderID uuid.UUID, w io.Writer, window history.Window) error {
	entries, err := s.histories.List(ctx, folderID)
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	names, err := s.folders.MemberNames(ctx, folderID)
	if err != nil {
		return fmt.Errorf("resolving member names: %w", err)
	}

	entries = history.FilterByWindow(entries, window)

	return WriteCSV(w, entries, names)
}

// WriteCSV renders entries as CSV rows plus a summary footer.
func WriteCSV(w io.Writer, entries []*history.Entry, names history.MemberNames) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "member", "action", "item", "quantity_change", "price_change"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write(entryRecord(e, names)); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}

	sum := history.Aggregate(entries)

	footer := []string{
		"", "", "", "total",
		fmt.Sprintf("%d", sum.QuantityChange),
		sum.PriceChange.StringFixed(2),
	}
	if err := cw.Write(footer); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

func entryRecord(e *history.Entry, names history.MemberNames) []string {
	member := names[e.UserID]
	if member == "" && e.UserID != uuid.Nil {
		member = e.UserID.String()
	}

	var quantityChange, priceChange string

	if e.PrevItem != nil && e.ChangedItem != nil {
		quantityChange = fmt.Sprintf("%+d", e.ChangedItem.Quantity-e.PrevItem.Quantity)
		priceChange = e.ChangedItem.Price.Sub(e.PrevItem.Price).StringFixed(2)
	}

	return []string{
		e.OccurredAt.Format(time.RFC3339),
		member,
		string(e.Action()),
		e.ItemName(),
		quantityChange,
		priceChange,
	}
}

package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockroomhq/stockroom/internal/export"
	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

var (
	folderID = uuid.MustParse("ffffffff-0000-0000-0000-000000000001")
	alice    = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
)

func editEntry(occurred time.Time) *history.Entry {
	return &history.Entry{
		ID:          uuid.New(),
		FolderID:    folderID,
		UserID:      alice,
		ItemID:      uuid.New(),
		PrevItem:    &item.Snapshot{Name: "Hammer", Quantity: 10, Price: decimal.RequireFromString("12.00")},
		ChangedItem: &item.Snapshot{Name: "Hammer", Quantity: 15, Price: decimal.RequireFromString("12.50")},
		OccurredAt:  occurred,
		IsEdited:    true,
	}
}

func TestWriteCSV(t *testing.T) {
	occurred := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	names := history.MemberNames{alice: "Alice Anders"}

	var buf bytes.Buffer
	err := export.WriteCSV(&buf, []*history.Entry{editEntry(occurred)}, names)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"date", "member", "action", "item", "quantity_change", "price_change"}, records[0])

	row := records[1]
	assert.Equal(t, "2024-06-15T10:30:00Z", row[0])
	assert.Equal(t, "Alice Anders", row[1])
	assert.Equal(t, "Edited", row[2])
	assert.Equal(t, "Hammer", row[3])
	assert.Equal(t, "+5", row[4])
	assert.Equal(t, "0.50", row[5])

	footer := records[2]
	assert.Equal(t, "total", footer[3])
	assert.Equal(t, "5", footer[4])
	assert.Equal(t, "0.50", footer[5])
}

func TestWriteCSV_MissingSnapshotsLeaveDeltasBlank(t *testing.T) {
	deletion := &history.Entry{
		ID:         uuid.New(),
		FolderID:   folderID,
		UserID:     alice,
		PrevItem:   &item.Snapshot{Name: "Bolts", Quantity: 50, Price: decimal.RequireFromString("0.05")},
		OccurredAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		IsDeleted:  true,
	}

	var buf bytes.Buffer
	err := export.WriteCSV(&buf, []*history.Entry{deletion}, history.MemberNames{})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	row := records[1]
	assert.Equal(t, "Deleted", row[2])
	assert.Empty(t, row[4])
	assert.Empty(t, row[5])
	// Unknown members fall back to the raw id.
	assert.Equal(t, alice.String(), row[1])
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inWindow := editEntry(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	outOfWindow := editEntry(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	historyRepo := history.NewMockRepository(ctrl)
	historyRepo.EXPECT().
		ListEntries(gomock.Any(), folderID).
		Return([]*history.Entry{inWindow, outOfWindow}, nil)

	folderRepo := folder.NewMockRepository(ctrl)
	folderRepo.EXPECT().
		ListMembers(gomock.Any(), folderID).
		Return([]folder.Member{{UserID: alice, FullName: "Alice Anders"}}, nil)

	svc := export.NewService(
		history.NewService(historyRepo, history.NewMockItemRestorer(ctrl)),
		folder.NewService(folderRepo),
	)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), folderID, &buf, history.Window{From: &from})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, the single in-window entry, and the totals footer.
	require.Len(t, records, 3)
	assert.Equal(t, "Alice Anders", records[1][1])
}

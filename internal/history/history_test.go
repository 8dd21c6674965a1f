package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

func TestEntry_Action(t *testing.T) {
	type testCase struct {
		name  string
		entry history.Entry
		want  history.Action
	}

	tests := []testCase{
		{
			name:  "Created",
			entry: history.Entry{IsCreated: true},
			want:  history.ActionCreated,
		},
		{
			name:  "Edited",
			entry: history.Entry{IsEdited: true},
			want:  history.ActionEdited,
		},
		{
			name:  "Deleted",
			entry: history.Entry{IsDeleted: true},
			want:  history.ActionDeleted,
		},
		{
			name:  "Reverted",
			entry: history.Entry{IsReverted: true},
			want:  history.ActionReverted,
		},
		{
			name:  "NoFlags",
			entry: history.Entry{},
			want:  history.ActionUnknown,
		},
		{
			name:  "CreatedWinsOverEdited",
			entry: history.Entry{IsCreated: true, IsEdited: true},
			want:  history.ActionCreated,
		},
		{
			name:  "EditedWinsOverDeleted",
			entry: history.Entry{IsEdited: true, IsDeleted: true},
			want:  history.ActionEdited,
		},
		{
			name:  "DeletedWinsOverReverted",
			entry: history.Entry{IsDeleted: true, IsReverted: true},
			want:  history.ActionDeleted,
		},
		{
			name:  "AllFlags",
			entry: history.Entry{IsCreated: true, IsEdited: true, IsDeleted: true, IsReverted: true},
			want:  history.ActionCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Action())
		})
	}
}

func TestEntry_ItemName(t *testing.T) {
	type testCase struct {
		name  string
		entry history.Entry
		want  string
	}

	tests := []testCase{
		{
			name: "PrefersPrevName",
			entry: history.Entry{
				PrevItem:    &item.Snapshot{Name: "Old Name"},
				ChangedItem: &item.Snapshot{Name: "New Name"},
			},
			want: "Old Name",
		},
		{
			name: "FallsBackToChanged",
			entry: history.Entry{
				ChangedItem: &item.Snapshot{Name: "Fresh Item"},
			},
			want: "Fresh Item",
		},
		{
			name: "EmptyPrevNameFallsBack",
			entry: history.Entry{
				PrevItem:    &item.Snapshot{},
				ChangedItem: &item.Snapshot{Name: "Changed"},
			},
			want: "Changed",
		},
		{
			name:  "NoSnapshots",
			entry: history.Entry{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.ItemName())
		})
	}
}

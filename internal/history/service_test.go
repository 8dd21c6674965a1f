package history_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

func TestService_Revert(t *testing.T) {
	entryID := uuid.MustParse("eeeeeeee-0000-0000-0000-000000000001")
	itemID := uuid.MustParse("11111111-0000-0000-0000-000000000001")
	actorID := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

	prev := &item.Snapshot{ID: itemID, Name: "Hammer", Quantity: 10}

	editRoles := folder.Roles{Edit: true}

	type testCase struct {
		name      string
		roles     folder.Roles
		setupMock func(repo *history.MockRepository, items *history.MockItemRestorer)
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "Success",
			roles: editRoles,
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&history.Entry{
						ID:       entryID,
						ItemID:   itemID,
						PrevItem: prev,
						IsEdited: true,
					}, nil)
				items.EXPECT().
					RestoreItem(gomock.Any(), itemID, *prev, actorID).
					Return(nil)
			},
		},
		{
			name:  "ManagerMayRevert",
			roles: folder.Roles{Manager: true},
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&history.Entry{ID: entryID, ItemID: itemID, PrevItem: prev, IsEdited: true}, nil)
				items.EXPECT().
					RestoreItem(gomock.Any(), itemID, *prev, actorID).
					Return(nil)
			},
		},
		{
			name:    "PermissionDenied",
			roles:   folder.Roles{View: true, AddItem: true},
			wantErr: folder.ErrPermissionDenied,
		},
		{
			name:  "DeletionEntriesAreNotRevertible",
			roles: editRoles,
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&history.Entry{
						ID:        entryID,
						ItemID:    itemID,
						PrevItem:  prev,
						IsDeleted: true,
					}, nil)
				// No RestoreItem call: nothing may be mutated.
			},
			wantErr: history.ErrRevertDeleted,
		},
		{
			name:  "CreationHasNoPreviousState",
			roles: editRoles,
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&history.Entry{
						ID:          entryID,
						ItemID:      itemID,
						ChangedItem: prev,
						IsCreated:   true,
					}, nil)
			},
			wantErr: history.ErrNoPreviousState,
		},
		{
			name:  "EntryNotFound",
			roles: editRoles,
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(nil, history.ErrNotFound)
			},
			wantErr: history.ErrNotFound,
		},
		{
			name:  "RestoreFailurePropagates",
			roles: editRoles,
			setupMock: func(repo *history.MockRepository, items *history.MockItemRestorer) {
				repo.EXPECT().
					GetEntry(gomock.Any(), entryID).
					Return(&history.Entry{ID: entryID, ItemID: itemID, PrevItem: prev, IsEdited: true}, nil)
				items.EXPECT().
					RestoreItem(gomock.Any(), itemID, *prev, actorID).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := history.NewMockRepository(ctrl)
			items := history.NewMockItemRestorer(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, items)
			}

			svc := history.NewService(repo, items)
			err := svc.Revert(context.Background(), entryID, actorID, tt.roles)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	folderID := uuid.New()
	want := []*history.Entry{{ID: uuid.New()}, {ID: uuid.New()}}

	repo := history.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), folderID).
		Return(want, nil)

	svc := history.NewService(repo, history.NewMockItemRestorer(ctrl))

	got, err := svc.List(context.Background(), folderID)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

package item_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/item"
)

var (
	folderID = uuid.MustParse("ffffffff-0000-0000-0000-000000000001")
	actorID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    item.CreateParams
		setupMock func(repo *item.MockRepository, tags *item.MockTagSource)
		check     func(t *testing.T, it *item.Item)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: item.CreateParams{
				Name:     "Hammer",
				Quantity: 10,
				Tag:      "tools",
			},
			setupMock: func(repo *item.MockRepository, tags *item.MockTagSource) {
				repo.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, it *item.Item) error {
						it.ID = uuid.New()
						return nil
					})
				tags.EXPECT().
					Learn(gomock.Any(), "Hammer", "tools").
					Return(nil)
			},
			check: func(t *testing.T, it *item.Item) {
				assert.Equal(t, folderID, it.FolderID)
				assert.Equal(t, actorID, it.UserID)
				assert.Equal(t, item.AmountQuantity, it.AmountType)
			},
		},
		{
			name: "MissingTagGetsSuggestion",
			params: item.CreateParams{
				Name:     "Hammer",
				Quantity: 1,
			},
			setupMock: func(repo *item.MockRepository, tags *item.MockTagSource) {
				tags.EXPECT().
					Suggest(gomock.Any(), "Hammer").
					Return("tools", nil)
				repo.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					Return(nil)
				tags.EXPECT().
					Learn(gomock.Any(), "Hammer", "tools").
					Return(nil)
			},
			check: func(t *testing.T, it *item.Item) {
				assert.Equal(t, "tools", it.Tag)
			},
		},
		{
			name: "SuggestionFailureIsIgnored",
			params: item.CreateParams{
				Name:     "Mystery Box",
				Quantity: 1,
			},
			setupMock: func(repo *item.MockRepository, tags *item.MockTagSource) {
				tags.EXPECT().
					Suggest(gomock.Any(), "Mystery Box").
					Return("", errors.New("no rule"))
				repo.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, it *item.Item) {
				assert.Empty(t, it.Tag)
			},
		},
		{
			name: "ExplicitAmountTypeIsKept",
			params: item.CreateParams{
				Name:       "Flour",
				Quantity:   2,
				Tag:        "baking",
				AmountType: item.AmountWeight,
			},
			setupMock: func(repo *item.MockRepository, tags *item.MockTagSource) {
				repo.EXPECT().CreateItem(gomock.Any(), gomock.Any()).Return(nil)
				tags.EXPECT().Learn(gomock.Any(), "Flour", "baking").Return(nil)
			},
			check: func(t *testing.T, it *item.Item) {
				assert.Equal(t, item.AmountWeight, it.AmountType)
			},
		},
		{
			name:   "RepoError",
			params: item.CreateParams{Name: "Hammer", Tag: "tools"},
			setupMock: func(repo *item.MockRepository, tags *item.MockTagSource) {
				repo.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := item.NewMockRepository(ctrl)
			tags := item.NewMockTagSource(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, tags)
			}

			svc := item.NewService(repo, tags)
			got, err := svc.Create(context.Background(), folderID, actorID, tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	itemID := uuid.New()

	newName := "Sledgehammer"
	newQty := int64(3)

	t.Run("PermissionDenied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := item.NewService(item.NewMockRepository(ctrl), item.NewMockTagSource(ctrl))

		_, err := svc.Update(context.Background(), itemID, actorID, folder.Roles{View: true}, item.UpdateParams{
			Name: &newName,
		})

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})

	t.Run("MergesOnlyProvidedFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		existing := &item.Item{
			ID:       itemID,
			FolderID: folderID,
			Name:     "Hammer",
			Note:     "keep me",
			Price:    decimal.RequireFromString("12.50"),
			Quantity: 10,
			Tag:      "tools",
		}

		repo := item.NewMockRepository(ctrl)
		repo.EXPECT().GetItem(gomock.Any(), itemID).Return(existing, nil)
		repo.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), actorID).
			DoAndReturn(func(_ context.Context, it *item.Item, _ uuid.UUID) error {
				assert.Equal(t, "Sledgehammer", it.Name)
				assert.Equal(t, int64(3), it.Quantity)
				assert.Equal(t, "keep me", it.Note)
				assert.Equal(t, "tools", it.Tag)
				return nil
			})

		svc := item.NewService(repo, item.NewMockTagSource(ctrl))

		got, err := svc.Update(context.Background(), itemID, actorID, folder.Roles{Edit: true}, item.UpdateParams{
			Name:     &newName,
			Quantity: &newQty,
		})

		require.NoError(t, err)
		assert.Equal(t, "Sledgehammer", got.Name)
	})

	t.Run("NewTagIsLearned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		tag := "heavy tools"

		repo := item.NewMockRepository(ctrl)
		repo.EXPECT().GetItem(gomock.Any(), itemID).Return(&item.Item{ID: itemID, Name: "Hammer"}, nil)
		repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), actorID).Return(nil)

		tags := item.NewMockTagSource(ctrl)
		tags.EXPECT().Learn(gomock.Any(), "Hammer", tag).Return(nil)

		svc := item.NewService(repo, tags)

		_, err := svc.Update(context.Background(), itemID, actorID, folder.Roles{Admin: true}, item.UpdateParams{
			Tag: &tag,
		})

		assert.NoError(t, err)
	})
}

func TestService_Delete(t *testing.T) {
	itemID := uuid.New()

	t.Run("PermissionDenied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := item.NewService(item.NewMockRepository(ctrl), item.NewMockTagSource(ctrl))

		err := svc.Delete(context.Background(), itemID, actorID, folder.Roles{Edit: true})

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})

	t.Run("DeleteItemRoleSuffices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := item.NewMockRepository(ctrl)
		repo.EXPECT().DeleteItem(gomock.Any(), itemID, actorID).Return(nil)

		svc := item.NewService(repo, item.NewMockTagSource(ctrl))

		assert.NoError(t, svc.Delete(context.Background(), itemID, actorID, folder.Roles{DeleteItem: true}))
	})
}

func TestService_Clone(t *testing.T) {
	itemID := uuid.New()

	t.Run("PermissionDenied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := item.NewService(item.NewMockRepository(ctrl), item.NewMockTagSource(ctrl))

		_, err := svc.Clone(context.Background(), itemID, actorID, folder.Roles{View: true})

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})

	t.Run("CopiesFieldsIntoNewItem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		src := &item.Item{
			ID:       itemID,
			FolderID: folderID,
			UserID:   uuid.New(),
			Name:     "Hammer",
			Quantity: 5,
			Tag:      "tools",
		}

		repo := item.NewMockRepository(ctrl)
		repo.EXPECT().GetItem(gomock.Any(), itemID).Return(src, nil)
		repo.EXPECT().
			CreateItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, it *item.Item) error {
				assert.Equal(t, "Hammer", it.Name)
				assert.Equal(t, folderID, it.FolderID)
				assert.Equal(t, actorID, it.UserID)
				assert.Empty(t, it.ID)
				return nil
			})

		svc := item.NewService(repo, item.NewMockTagSource(ctrl))

		got, err := svc.Clone(context.Background(), itemID, actorID, folder.Roles{AddItem: true})

		require.NoError(t, err)
		assert.Equal(t, "Hammer", got.Name)
	})
}

func TestService_LowStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	below := &item.Item{Name: "Bolts", Quantity: 2, MinQuantity: 5}
	atMinimum := &item.Item{Name: "Nuts", Quantity: 5, MinQuantity: 5}
	noMinimum := &item.Item{Name: "Washers", Quantity: 0, MinQuantity: 0}
	healthy := &item.Item{Name: "Screws", Quantity: 50, MinQuantity: 5}

	repo := item.NewMockRepository(ctrl)
	repo.EXPECT().
		ListItems(gomock.Any(), folderID).
		Return([]*item.Item{below, atMinimum, noMinimum, healthy}, nil)

	svc := item.NewService(repo, item.NewMockTagSource(ctrl))

	got, err := svc.LowStock(context.Background(), folderID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, below, got[0])
}

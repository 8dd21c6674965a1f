package folder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockroomhq/stockroom/internal/folder"
)

var (
	folderID = uuid.MustParse("ffffffff-0000-0000-0000-000000000001")
	ownerID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	otherID  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := folder.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateFolder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f *folder.Folder) error {
			f.ID = folderID
			return nil
		})

	svc := folder.NewService(repo)

	got, err := svc.Create(context.Background(), folder.CreateParams{Name: "Workshop", Currency: "EUR"},
		folder.Member{UserID: ownerID, FullName: "Alice Anders"})

	require.NoError(t, err)
	require.Len(t, got.Members, 1)

	owner := got.Members[0]
	assert.Equal(t, ownerID, owner.UserID)
	// The creator always starts with the full role set.
	assert.Equal(t, folder.AdminRoles(), owner.Roles)
}

func TestService_RolesFor(t *testing.T) {
	members := []folder.Member{
		{UserID: ownerID, Roles: folder.AdminRoles()},
		{UserID: otherID, Roles: folder.Roles{View: true, Edit: true}},
	}

	type testCase struct {
		name      string
		userID    uuid.UUID
		setupMock func(m *folder.MockRepository)
		want      folder.Roles
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Member",
			userID: otherID,
			setupMock: func(m *folder.MockRepository) {
				m.EXPECT().ListMembers(gomock.Any(), folderID).Return(members, nil)
			},
			want: folder.Roles{View: true, Edit: true},
		},
		{
			name:   "NonMemberGetsZeroRoles",
			userID: uuid.New(),
			setupMock: func(m *folder.MockRepository) {
				m.EXPECT().ListMembers(gomock.Any(), folderID).Return(members, nil)
			},
			want: folder.Roles{},
		},
		{
			name:   "RepoError",
			userID: ownerID,
			setupMock: func(m *folder.MockRepository) {
				m.EXPECT().ListMembers(gomock.Any(), folderID).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := folder.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := folder.NewService(repo)
			got, err := svc.RolesFor(context.Background(), folderID, tt.userID)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Rename(t *testing.T) {
	t.Run("EditRoleMayRename", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().RenameFolder(gomock.Any(), folderID, "New Name").Return(nil)

		svc := folder.NewService(repo)

		assert.NoError(t, svc.Rename(context.Background(), folderID, folder.Roles{Edit: true}, "New Name"))
	})

	t.Run("ViewOnlyIsDenied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := folder.NewService(folder.NewMockRepository(ctrl))

		err := svc.Rename(context.Background(), folderID, folder.Roles{View: true}, "New Name")

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("OnlyAdminMayDelete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := folder.NewService(folder.NewMockRepository(ctrl))

		err := svc.Delete(context.Background(), folderID, folder.Roles{Edit: true, Manager: true})

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})

	t.Run("Admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().DeleteFolder(gomock.Any(), folderID).Return(nil)

		svc := folder.NewService(repo)

		assert.NoError(t, svc.Delete(context.Background(), folderID, folder.Roles{Admin: true}))
	})
}

func TestService_Invite(t *testing.T) {
	newMember := folder.Member{UserID: uuid.New(), FullName: "Carol Clark"}

	t.Run("InviteRoleSuffices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().AddMember(gomock.Any(), folderID, newMember).Return(nil)

		svc := folder.NewService(repo)

		assert.NoError(t, svc.Invite(context.Background(), folderID, folder.Roles{Invite: true}, newMember))
	})

	t.Run("Denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := folder.NewService(folder.NewMockRepository(ctrl))

		err := svc.Invite(context.Background(), folderID, folder.Roles{Edit: true}, newMember)

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})

	t.Run("DuplicatePropagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().AddMember(gomock.Any(), folderID, newMember).Return(folder.ErrAlreadyMember)

		svc := folder.NewService(repo)

		err := svc.Invite(context.Background(), folderID, folder.Roles{Admin: true}, newMember)

		assert.ErrorIs(t, err, folder.ErrAlreadyMember)
	})
}

func TestService_Remove(t *testing.T) {
	t.Run("AdminRemovesAnyone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().RemoveMember(gomock.Any(), folderID, otherID).Return(nil)

		svc := folder.NewService(repo)

		assert.NoError(t, svc.Remove(context.Background(), folderID, folder.Roles{Admin: true}, ownerID, otherID))
	})

	t.Run("MemberRemovesThemselves", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := folder.NewMockRepository(ctrl)
		repo.EXPECT().RemoveMember(gomock.Any(), folderID, otherID).Return(nil)

		svc := folder.NewService(repo)

		assert.NoError(t, svc.Remove(context.Background(), folderID, folder.Roles{View: true}, otherID, otherID))
	})

	t.Run("NonAdminCannotRemoveOthers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := folder.NewService(folder.NewMockRepository(ctrl))

		err := svc.Remove(context.Background(), folderID, folder.Roles{Edit: true}, otherID, ownerID)

		assert.ErrorIs(t, err, folder.ErrPermissionDenied)
	})
}

func TestRoles_Capabilities(t *testing.T) {
	type testCase struct {
		name  string
		roles folder.Roles
		check func(t *testing.T, r folder.Roles)
	}

	tests := []testCase{
		{
			name:  "AdminImpliesEverything",
			roles: folder.Roles{Admin: true},
			check: func(t *testing.T, r folder.Roles) {
				assert.True(t, r.CanRevert())
				assert.True(t, r.CanDelete())
				assert.True(t, r.CanClone())
				assert.True(t, r.CanInvite())
				assert.True(t, r.CanEdit())
				assert.True(t, r.CanAddItem())
			},
		},
		{
			name:  "ManagerMayRevertAndEdit",
			roles: folder.Roles{Manager: true},
			check: func(t *testing.T, r folder.Roles) {
				assert.True(t, r.CanRevert())
				assert.True(t, r.CanEdit())
				assert.False(t, r.CanDelete())
				assert.False(t, r.CanInvite())
			},
		},
		{
			name:  "ViewOnly",
			roles: folder.Roles{View: true},
			check: func(t *testing.T, r folder.Roles) {
				assert.False(t, r.CanRevert())
				assert.False(t, r.CanDelete())
				assert.False(t, r.CanClone())
				assert.False(t, r.CanEdit())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.roles)
		})
	}
}

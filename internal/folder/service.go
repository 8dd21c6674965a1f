package folder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=folder
type Repository interface {
	CreateFolder(ctx context.Context, f *Folder) error
	GetFolder(ctx context.Context, id uuid.UUID) (*Folder, error)
	ListFolders(ctx context.Context, userID uuid.UUID) ([]*Folder, error)
	RenameFolder(ctx context.Context, id uuid.UUID, name string) error
	DeleteFolder(ctx context.Context, id uuid.UUID) error

	ListMembers(ctx context.Context, folderID uuid.UUID) ([]Member, error)
	AddMember(ctx context.Context, folderID uuid.UUID, m Member) error
	UpdateMemberRoles(ctx context.Context, folderID, userID uuid.UUID, roles Roles) error
	RemoveMember(ctx context.Context, folderID, userID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Currency string
}

// Create makes a new folder and enrolls the creator as its admin member.
func (s *Service) Create(ctx context.Context, params CreateParams, owner Member) (*Folder, error) {
	owner.Roles = AdminRoles()

	f := &Folder{
		Name:     params.Name,
		Currency: params.Currency,
		Members:  []Member{owner},
	}
	if err := s.repo.CreateFolder(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Folder, error) {
	return s.repo.GetFolder(ctx, id)
}

// List returns the folders the given user is a member of.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Folder, error) {
	return s.repo.ListFolders(ctx, userID)
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, actor Roles, name string) error {
	if !actor.CanEdit() {
		return ErrPermissionDenied
	}

	return s.repo.RenameFolder(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor Roles) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}

	return s.repo.DeleteFolder(ctx, id)
}

func (s *Service) Members(ctx context.Context, folderID uuid.UUID) ([]Member, error) {
	return s.repo.ListMembers(ctx, folderID)
}

// MemberNames maps member user ids to display names for a folder.
func (s *Service) MemberNames(ctx context.Context, folderID uuid.UUID) (map[uuid.UUID]string, error) {
	members, err := s.repo.ListMembers(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.UserID] = m.FullName
	}

	return names, nil
}

// RolesFor returns the capability set of the user within the folder.
// A user who is not a member gets the zero role set, not an error.
func (s *Service) RolesFor(ctx context.Context, folderID, userID uuid.UUID) (Roles, error) {
	members, err := s.repo.ListMembers(ctx, folderID)
	if err != nil {
		return Roles{}, fmt.Errorf("listing members: %w", err)
	}

	for _, m := range members {
		if m.UserID == userID {
			return m.Roles, nil
		}
	}

	return Roles{}, nil
}

func (s *Service) Invite(ctx context.Context, folderID uuid.UUID, actor Roles, m Member) error {
	if !actor.CanInvite() {
		return ErrPermissionDenied
	}

	return s.repo.AddMember(ctx, folderID, m)
}

func (s *Service) UpdateRoles(ctx context.Context, folderID uuid.UUID, actor Roles, userID uuid.UUID, roles Roles) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}

	return s.repo.UpdateMemberRoles(ctx, folderID, userID, roles)
}

// Remove drops a member from the folder. Admins may remove anyone;
// everyone may remove themselves.
func (s *Service) Remove(ctx context.Context, folderID uuid.UUID, actor Roles, actorID, userID uuid.UUID) error {
	if !actor.Admin && actorID != userID {
		return ErrPermissionDenied
	}

	return s.repo.RemoveMember(ctx, folderID, userID)
}

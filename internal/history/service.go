package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
	"github.com/stockroomhq/stockroom/internal/item"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=history
type Repository interface {
	ListEntries(ctx context.Context, folderID uuid.UUID) ([]*Entry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
}

// ItemRestorer applies a recorded snapshot back onto the live item. The store
// behind it records the resulting audit entry itself, in the same transaction
// as the restore.
type ItemRestorer interface {
	RestoreItem(ctx context.Context, itemID uuid.UUID, snap item.Snapshot, actorID uuid.UUID) error
}

type Service struct {
	repo  Repository
	items ItemRestorer
}

func NewService(repo Repository, items ItemRestorer) *Service {
	return &Service{repo: repo, items: items}
}

func (s *Service) List(ctx context.Context, folderID uuid.UUID) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, folderID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// Revert restores the entry's item to its previous snapshot. Deletions cannot
// be reverted, and the actor needs edit-level access. Nothing is mutated when
// any check or the remote update fails.
func (s *Service) Revert(ctx context.Context, entryID, actorID uuid.UUID, actor folder.Roles) error {
	if !actor.CanRevert() {
		return folder.ErrPermissionDenied
	}

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if entry.IsDeleted {
		return ErrRevertDeleted
	}

	if entry.PrevItem == nil {
		return ErrNoPreviousState
	}

	if err := s.items.RestoreItem(ctx, entry.ItemID, *entry.PrevItem, actorID); err != nil {
		return fmt.Errorf("restoring item: %w", err)
	}

	return nil
}

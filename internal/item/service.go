package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom/internal/folder"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=item
type Repository interface {
	CreateItem(ctx context.Context, it *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context, folderID uuid.UUID) ([]*Item, error)
	UpdateItem(ctx context.Context, it *Item, actorID uuid.UUID) error
	DeleteItem(ctx context.Context, id, actorID uuid.UUID) error
}

// TagSource suggests tags for item names and learns new name-to-tag rules.
type TagSource interface {
	Suggest(ctx context.Context, itemName string) (string, error)
	Learn(ctx context.Context, namePattern, tag string) error
}

type Service struct {
	repo Repository
	tags TagSource
}

func NewService(repo Repository, tags TagSource) *Service {
	return &Service{repo: repo, tags: tags}
}

type CreateParams struct {
	Name        string
	Note        string
	Price       decimal.Decimal
	Quantity    int64
	MinQuantity int64
	Tag         string
	ImageURLs   []string
	AmountType  AmountType
}

func (s *Service) Create(ctx context.Context, folderID, actorID uuid.UUID, params CreateParams) (*Item, error) {
	if params.AmountType == "" {
		params.AmountType = AmountQuantity
	}

	// Best effort: fill a missing tag from learned rules.
	if params.Tag == "" && s.tags != nil {
		if suggestion, err := s.tags.Suggest(ctx, params.Name); err == nil {
			params.Tag = suggestion
		}
	}

	it := &Item{
		FolderID:    folderID,
		UserID:      actorID,
		Name:        params.Name,
		Note:        params.Note,
		Price:       params.Price,
		Quantity:    params.Quantity,
		MinQuantity: params.MinQuantity,
		Tag:         params.Tag,
		ImageURLs:   params.ImageURLs,
		AmountType:  params.AmountType,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}

	if it.Tag != "" && s.tags != nil {
		_ = s.tags.Learn(ctx, it.Name, it.Tag)
	}

	return it, nil
}

// CreateBatch inserts imported items one by one. The first failure aborts the
// remainder and reports how many were created.
func (s *Service) CreateBatch(ctx context.Context, folderID, actorID uuid.UUID, params []CreateParams) ([]*Item, error) {
	items := make([]*Item, 0, len(params))

	for i, p := range params {
		it, err := s.Create(ctx, folderID, actorID, p)
		if err != nil {
			return items, fmt.Errorf("creating item %d of %d: %w", i+1, len(params), err)
		}

		items = append(items, it)
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) ListByFolder(ctx context.Context, folderID uuid.UUID) ([]*Item, error) {
	return s.repo.ListItems(ctx, folderID)
}

type UpdateParams struct {
	Name        *string
	Note        *string
	Price       *decimal.Decimal
	Quantity    *int64
	MinQuantity *int64
	Tag         *string
	ImageURLs   []string
	AmountType  *AmountType
}

func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, actor folder.Roles, params UpdateParams) (*Item, error) {
	if !actor.CanEdit() {
		return nil, folder.ErrPermissionDenied
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		it.Name = *params.Name
	}

	if params.Note != nil {
		it.Note = *params.Note
	}

	if params.Price != nil {
		it.Price = *params.Price
	}

	if params.Quantity != nil {
		it.Quantity = *params.Quantity
	}

	if params.MinQuantity != nil {
		it.MinQuantity = *params.MinQuantity
	}

	if params.Tag != nil {
		it.Tag = *params.Tag
	}

	if params.ImageURLs != nil {
		it.ImageURLs = params.ImageURLs
	}

	if params.AmountType != nil {
		it.AmountType = *params.AmountType
	}

	if err := s.repo.UpdateItem(ctx, it, actorID); err != nil {
		return nil, err
	}

	if params.Tag != nil && *params.Tag != "" && s.tags != nil {
		_ = s.tags.Learn(ctx, it.Name, *params.Tag)
	}

	return it, nil
}

func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID, actor folder.Roles) error {
	if !actor.CanDelete() {
		return folder.ErrPermissionDenied
	}

	return s.repo.DeleteItem(ctx, id, actorID)
}

// Clone creates a copy of the item within the same folder.
func (s *Service) Clone(ctx context.Context, id, actorID uuid.UUID, actor folder.Roles) (*Item, error) {
	if !actor.CanClone() {
		return nil, folder.ErrPermissionDenied
	}

	src, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &Item{
		FolderID:    src.FolderID,
		UserID:      actorID,
		Name:        src.Name,
		Note:        src.Note,
		Price:       src.Price,
		Quantity:    src.Quantity,
		MinQuantity: src.MinQuantity,
		Tag:         src.Tag,
		ImageURLs:   src.ImageURLs,
		AmountType:  src.AmountType,
	}
	if err := s.repo.CreateItem(ctx, clone); err != nil {
		return nil, err
	}

	return clone, nil
}

// LowStock returns the folder's items sitting below their minimum quantity.
// Items with no minimum configured are never reported.
func (s *Service) LowStock(ctx context.Context, folderID uuid.UUID) ([]*Item, error) {
	items, err := s.repo.ListItems(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var low []*Item

	for _, it := range items {
		if it.MinQuantity != 0 && it.Quantity < it.MinQuantity {
			low = append(low, it)
		}
	}

	return low, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/item"
)

// Store persists items. Every mutation also records a history entry in the
// same database transaction, so the audit trail can never miss a change.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectItemColumns = `
	i.id, i.folder_id, i.user_id, i.name, i.note, i.price, i.quantity, i.min_quantity,
	i.tag, i.image_urls, i.amount_type, i.created_at, i.updated_at
`

func scanItem(s scanner) (*item.Item, error) {
	var it item.Item

	var amountType string

	var imageURLs []byte

	if err := s.Scan(
		&it.ID, &it.FolderID, &it.UserID, &it.Name, &it.Note, &it.Price, &it.Quantity, &it.MinQuantity,
		&it.Tag, &imageURLs, &amountType, &it.CreatedAt, &it.UpdatedAt,
	); err != nil {
		return nil, err
	}

	it.AmountType = item.AmountType(amountType)

	if len(imageURLs) > 0 {
		if err := json.Unmarshal(imageURLs, &it.ImageURLs); err != nil {
			return nil, fmt.Errorf("decoding image urls: %w", err)
		}
	}

	return &it, nil
}

func encodeImageURLs(urls []string) ([]byte, error) {
	if urls == nil {
		urls = []string{}
	}

	data, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encoding image urls: %w", err)
	}

	return data, nil
}

func encodeSnapshot(s *item.Snapshot) (any, error) {
	if s == nil {
		return nil, nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	return data, nil
}

// recordHistory appends an audit entry inside the caller's transaction.
// Exactly one of the four flags should be true.
func recordHistory(ctx context.Context, tx *sql.Tx, folderID, actorID, itemID uuid.UUID,
	prev, changed *item.Snapshot, created, edited, deleted, reverted bool,
) error {
	prevData, err := encodeSnapshot(prev)
	if err != nil {
		return err
	}

	changedData, err := encodeSnapshot(changed)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO history_entries
			(folder_id, user_id, item_id, prev_item, changed_item,
			 is_created, is_edited, is_deleted, is_reverted, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	if _, err := tx.ExecContext(ctx, query,
		folderID, actorID, itemID, prevData, changedData,
		created, edited, deleted, reverted,
	); err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}

	return nil
}

func (s *Store) CreateItem(ctx context.Context, it *item.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	imageURLs, err := encodeImageURLs(it.ImageURLs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items
			(folder_id, user_id, name, note, price, quantity, min_quantity, tag, image_urls, amount_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	if err := tx.QueryRowContext(ctx, query,
		it.FolderID, it.UserID, it.Name, it.Note, it.Price, it.Quantity, it.MinQuantity,
		it.Tag, imageURLs, string(it.AmountType),
	).Scan(&it.ID, &it.CreatedAt); err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	snap := it.Snapshot()
	if err := recordHistory(ctx, tx, it.FolderID, it.UserID, it.ID, nil, &snap, true, false, false, false); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items i WHERE i.id = $1`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, item.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return it, nil
}

func (s *Store) ListItems(ctx context.Context, folderID uuid.UUID) ([]*item.Item, error) {
	query := `SELECT ` + selectItemColumns + `
		FROM items i
		WHERE i.folder_id = $1
		ORDER BY i.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// lockItem loads the current row FOR UPDATE so the audit snapshot and the
// mutation see the same state.
func lockItem(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items i WHERE i.id = $1 FOR UPDATE`

	it, err := scanItem(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, item.ErrNotFound
		}

		return nil, fmt.Errorf("locking item: %w", err)
	}

	return it, nil
}

func updateItemRow(ctx context.Context, tx *sql.Tx, it *item.Item) error {
	imageURLs, err := encodeImageURLs(it.ImageURLs)
	if err != nil {
		return err
	}

	query := `
		UPDATE items
		SET name = $1, note = $2, price = $3, quantity = $4, min_quantity = $5,
		    tag = $6, image_urls = $7, amount_type = $8, user_id = $9, updated_at = NOW()
		WHERE id = $10
	`

	if _, err := tx.ExecContext(ctx, query,
		it.Name, it.Note, it.Price, it.Quantity, it.MinQuantity,
		it.Tag, imageURLs, string(it.AmountType), it.UserID, it.ID,
	); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	return nil
}

func (s *Store) UpdateItem(ctx context.Context, it *item.Item, actorID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := lockItem(ctx, tx, it.ID)
	if err != nil {
		return err
	}

	prev := current.Snapshot()

	it.UserID = actorID
	if err := updateItemRow(ctx, tx, it); err != nil {
		return err
	}

	changed := it.Snapshot()
	if err := recordHistory(ctx, tx, it.FolderID, actorID, it.ID, &prev, &changed, false, true, false, false); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id, actorID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := lockItem(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	prev := current.Snapshot()
	if err := recordHistory(ctx, tx, current.FolderID, actorID, id, &prev, nil, false, false, true, false); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// RestoreItem overwrites the item's mutable fields with a previously recorded
// snapshot and records the revert in the audit trail.
func (s *Store) RestoreItem(ctx context.Context, itemID uuid.UUID, snap item.Snapshot, actorID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return err
	}

	prev := current.Snapshot()

	current.Apply(snap)
	current.UserID = actorID

	if err := updateItemRow(ctx, tx, current); err != nil {
		return err
	}

	changed := current.Snapshot()
	if err := recordHistory(ctx, tx, current.FolderID, actorID, itemID, &prev, &changed, false, false, false, true); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

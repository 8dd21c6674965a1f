package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/history"
	"github.com/stockroomhq/stockroom/internal/item"
)

// Store reads the audit trail. Entries are written by the item store as part
// of item mutations; this store never inserts or updates them.
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

const selectEntryColumns = `
	h.id, h.folder_id, h.user_id, h.item_id, h.prev_item, h.changed_item,
	h.is_created, h.is_edited, h.is_deleted, h.is_reverted, h.occurred_at
`

func scanEntry(s scanner) (*history.Entry, error) {
	var e history.Entry

	var userID uuid.NullUUID

	var prevData, changedData []byte

	if err := s.Scan(
		&e.ID, &e.FolderID, &userID, &e.ItemID, &prevData, &changedData,
		&e.IsCreated, &e.IsEdited, &e.IsDeleted, &e.IsReverted, &e.OccurredAt,
	); err != nil {
		return nil, err
	}

	if userID.Valid {
		e.UserID = userID.UUID
	}

	var err error

	if e.PrevItem, err = decodeSnapshot(prevData); err != nil {
		return nil, err
	}

	if e.ChangedItem, err = decodeSnapshot(changedData); err != nil {
		return nil, err
	}

	return &e, nil
}

func decodeSnapshot(data []byte) (*item.Snapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var snap item.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	return &snap, nil
}

func (s *Store) ListEntries(ctx context.Context, folderID uuid.UUID) ([]*history.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM history_entries h
		WHERE h.folder_id = $1
		ORDER BY h.occurred_at DESC`

	rows, err := s.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing history entries: %w", err)
	}
	defer rows.Close()

	var entries []*history.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*history.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM history_entries h WHERE h.id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, history.ErrNotFound
		}

		return nil, fmt.Errorf("getting history entry: %w", err)
	}

	return e, nil
}

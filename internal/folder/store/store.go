package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/internal/folder"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateFolder(ctx context.Context, f *folder.Folder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO folders (name, currency, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	if err := tx.QueryRowContext(ctx, query, f.Name, f.Currency).Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}

	for _, m := range f.Members {
		if err := insertMember(ctx, tx, f.ID, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetFolder(ctx context.Context, id uuid.UUID) (*folder.Folder, error) {
	query := `SELECT id, name, currency, created_at FROM folders WHERE id = $1`

	var f folder.Folder
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.Currency, &f.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, folder.ErrNotFound
		}

		return nil, fmt.Errorf("getting folder: %w", err)
	}

	members, err := s.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Members = members

	return &f, nil
}

func (s *Store) ListFolders(ctx context.Context, userID uuid.UUID) ([]*folder.Folder, error) {
	query := `
		SELECT f.id, f.name, f.currency, f.created_at
		FROM folders f
		JOIN folder_members m ON m.folder_id = f.id
		WHERE m.user_id = $1
		ORDER BY f.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	defer rows.Close()

	var folders []*folder.Folder

	for rows.Next() {
		var f folder.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Currency, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}

		folders = append(folders, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folder rows: %w", err)
	}

	return folders, nil
}

func (s *Store) RenameFolder(ctx context.Context, id uuid.UUID, name string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE folders SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("renaming folder: %w", err)
	}

	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}

	return nil
}

const selectMemberColumns = `
	m.user_id, m.email, m.full_name,
	m.is_view, m.is_add_item, m.is_delete_item, m.is_edit, m.is_invite, m.is_manager, m.is_admin
`

func (s *Store) ListMembers(ctx context.Context, folderID uuid.UUID) ([]folder.Member, error) {
	query := `SELECT ` + selectMemberColumns + `
		FROM folder_members m
		WHERE m.folder_id = $1
		ORDER BY m.full_name ASC`

	rows, err := s.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []folder.Member

	for rows.Next() {
		var m folder.Member
		if err := rows.Scan(
			&m.UserID, &m.Email, &m.FullName,
			&m.Roles.View, &m.Roles.AddItem, &m.Roles.DeleteItem,
			&m.Roles.Edit, &m.Roles.Invite, &m.Roles.Manager, &m.Roles.Admin,
		); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return members, nil
}

func (s *Store) AddMember(ctx context.Context, folderID uuid.UUID, m folder.Member) error {
	return insertMember(ctx, s.db, folderID, m)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMember(ctx context.Context, db execer, folderID uuid.UUID, m folder.Member) error {
	query := `
		INSERT INTO folder_members
			(folder_id, user_id, email, full_name,
			 is_view, is_add_item, is_delete_item, is_edit, is_invite, is_manager, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (folder_id, user_id) DO NOTHING
	`

	res, err := db.ExecContext(ctx, query,
		folderID, m.UserID, m.Email, m.FullName,
		m.Roles.View, m.Roles.AddItem, m.Roles.DeleteItem,
		m.Roles.Edit, m.Roles.Invite, m.Roles.Manager, m.Roles.Admin,
	)
	if err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return folder.ErrAlreadyMember
	}

	return nil
}

func (s *Store) UpdateMemberRoles(ctx context.Context, folderID, userID uuid.UUID, roles folder.Roles) error {
	query := `
		UPDATE folder_members
		SET is_view = $1, is_add_item = $2, is_delete_item = $3,
		    is_edit = $4, is_invite = $5, is_manager = $6, is_admin = $7
		WHERE folder_id = $8 AND user_id = $9
	`

	_, err := s.db.ExecContext(ctx, query,
		roles.View, roles.AddItem, roles.DeleteItem,
		roles.Edit, roles.Invite, roles.Manager, roles.Admin,
		folderID, userID,
	)
	if err != nil {
		return fmt.Errorf("updating member roles: %w", err)
	}

	return nil
}

func (s *Store) RemoveMember(ctx context.Context, folderID, userID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM folder_members WHERE folder_id = $1 AND user_id = $2`, folderID, userID)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	return nil
}

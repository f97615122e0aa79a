package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/dkrasnovs/notekeeper/internal/dbx"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, att *models.Attachment) (*models.Attachment, error) {

	query :=
		`INSERT INTO attachments (note_id, file_name, storage_key, upload_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		att.NoteID, att.FileName, att.StorageKey, att.UploadStatus).Scan(&att.ID, &att.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return att, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Attachment, error) {
	query :=
		`SELECT id, note_id, file_name, storage_key, upload_status, created_at FROM attachments
		 WHERE id = $1
		 `

	att := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&att.ID, &att.NoteID, &att.FileName, &att.StorageKey, &att.UploadStatus, &att.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return att, nil
}

func (r *PostgresRepository) SelectByNote(ctx context.Context, noteID string) ([]*models.Attachment, error) {
	query :=
		`SELECT id, note_id, file_name, storage_key, upload_status, created_at FROM attachments
		 WHERE note_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Attachment, 0)
	for rows.Next() {
		att := &models.Attachment{}
		if err := rows.Scan(&att.ID, &att.NoteID, &att.FileName, &att.StorageKey, &att.UploadStatus, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id string) error {
	query := `UPDATE attachments SET upload_status = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, models.UploadStatusUploaded, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DeleteByNote removes all attachment rows of a note. Deleting zero rows is
// not an error: most notes have no attachments.
func (r *PostgresRepository) DeleteByNote(ctx context.Context, noteID string) error {
	query := `DELETE FROM attachments WHERE note_id = $1`

	if _, err := r.db.ExecContext(ctx, query, noteID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

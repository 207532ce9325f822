package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/dbx"
	"github.com/everkeep/everkeep/internal/server/models"
)

const entryColumns = `id, owner_id, content, type, status, release_type, release_date, release_contact_email, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO entries (` + entryColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OwnerID, entry.Content, entry.Type, entry.Status,
		entry.ReleaseType, entry.ReleaseDate, entry.ReleaseContactEmail,
		entry.CreatedAt, entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND owner_id = $2`

	entry := &models.Entry{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&entry.ID, &entry.OwnerID, &entry.Content, &entry.Type, &entry.Status,
		&entry.ReleaseType, &entry.ReleaseDate, &entry.ReleaseContactEmail,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID uuid.UUID) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE owner_id = $1 ORDER BY created_at`
	return r.queryEntries(ctx, query, ownerID)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, ownerID uuid.UUID, status models.EntryStatus) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE owner_id = $1 AND status = $2 ORDER BY created_at`
	return r.queryEntries(ctx, query, ownerID, status)
}

func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`UPDATE entries
		 SET content = $3, type = $4, status = $5, release_type = $6,
		     release_date = $7, release_contact_email = $8, updated_at = $9
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OwnerID, entry.Content, entry.Type, entry.Status,
		entry.ReleaseType, entry.ReleaseDate, entry.ReleaseContactEmail, entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		var entry models.Entry
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.Content, &entry.Type, &entry.Status,
			&entry.ReleaseType, &entry.ReleaseDate, &entry.ReleaseContactEmail,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

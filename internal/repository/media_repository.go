package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

var ErrMediaNotFound = errors.New("media not found")

const mediaColumns = `id, filename, original_name, mime_type, size_bytes, url, uploaded_by,
	COALESCE(campaign_id, ''), created_at, updated_at`

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

func scanMedia(row pgx.Row) (models.Media, error) {
	var m models.Media
	err := row.Scan(
		&m.ID,
		&m.Filename,
		&m.OriginalName,
		&m.MimeType,
		&m.Size,
		&m.URL,
		&m.UploadedBy,
		&m.CampaignID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Media{}, ErrMediaNotFound
		}
		return models.Media{}, err
	}
	return m, nil
}

func (r *MediaRepository) Create(ctx context.Context, m models.Media) error {
	const query = `
		INSERT INTO media (id, filename, original_name, mime_type, size_bytes, url, uploaded_by, campaign_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Filename,
		m.OriginalName,
		m.MimeType,
		m.Size,
		m.URL,
		m.UploadedBy,
		m.CampaignID,
	)
	return err
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	return scanMedia(r.pool.QueryRow(ctx, query, id))
}

func (r *MediaRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE campaign_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := make([]models.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMediaNotFound
	}
	return nil
}

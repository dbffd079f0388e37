package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

var ErrCampaignNotFound = errors.New("campaign not found")

const campaignColumns = `id, name, description, type, status, budget, spent, start_date, end_date,
	target_audience, created_by, assigned_clients, impressions, clicks, conversions, ctr,
	media_urls, created_at, updated_at`

type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// CampaignFilter is the validated query-parameter set for campaign listings.
// CreatedBy and AssignedClient implement the role-based visibility scoping.
type CampaignFilter struct {
	Status         models.CampaignStatus
	Type           models.CampaignType
	StartFrom      *time.Time
	StartTo        *time.Time
	Search         string
	CreatedBy      string
	AssignedClient string
}

func (f CampaignFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.StartFrom != nil {
		args = append(args, *f.StartFrom)
		conds = append(conds, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if f.StartTo != nil {
		args = append(args, *f.StartTo)
		conds = append(conds, fmt.Sprintf("start_date <= $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if f.CreatedBy != "" {
		args = append(args, f.CreatedBy)
		conds = append(conds, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if f.AssignedClient != "" {
		args = append(args, f.AssignedClient)
		conds = append(conds, fmt.Sprintf("$%d = ANY(assigned_clients)", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanCampaign(row pgx.Row) (models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Type,
		&c.Status,
		&c.Budget,
		&c.Spent,
		&c.StartDate,
		&c.EndDate,
		&c.TargetAudience,
		&c.CreatedBy,
		&c.AssignedClients,
		&c.Metrics.Impressions,
		&c.Metrics.Clicks,
		&c.Metrics.Conversions,
		&c.Metrics.CTR,
		&c.MediaURLs,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Campaign{}, ErrCampaignNotFound
		}
		return models.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c models.Campaign) error {
	const query = `
		INSERT INTO campaigns (id, name, description, type, status, budget, spent, start_date, end_date,
			target_audience, created_by, assigned_clients, media_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.Type,
		c.Status,
		c.Budget,
		c.Spent,
		c.StartDate,
		c.EndDate,
		c.TargetAudience,
		c.CreatedBy,
		c.AssignedClients,
		c.MediaURLs,
	)
	return err
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	return scanCampaign(r.pool.QueryRow(ctx, query, id))
}

func (r *CampaignRepository) List(ctx context.Context, filter CampaignFilter, limit, offset int) ([]models.Campaign, error) {
	where, args := filter.where()
	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]models.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) Count(ctx context.Context, filter CampaignFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Update replaces the caller-editable fields. Ownership (created_by) is
// immutable after creation.
func (r *CampaignRepository) Update(ctx context.Context, c models.Campaign) (models.Campaign, error) {
	const query = `
		UPDATE campaigns
		SET name = $2, description = $3, type = $4, budget = $5, start_date = $6,
		    end_date = $7, target_audience = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + campaignColumns
	return scanCampaign(r.pool.QueryRow(ctx, query,
		c.ID, c.Name, c.Description, c.Type, c.Budget, c.StartDate, c.EndDate, c.TargetAudience))
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status models.CampaignStatus) (models.Campaign, error) {
	const query = `
		UPDATE campaigns SET status = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + campaignColumns
	return scanCampaign(r.pool.QueryRow(ctx, query, id, status))
}

func (r *CampaignRepository) UpdateBudget(ctx context.Context, id string, budget float64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET budget = $2, updated_at = NOW() WHERE id = $1`, id, budget)
	return err
}

func (r *CampaignRepository) AssignClients(ctx context.Context, id string, clientIDs []string) (models.Campaign, error) {
	const query = `
		UPDATE campaigns SET assigned_clients = $2, updated_at = NOW() WHERE id = $1
		RETURNING ` + campaignColumns
	return scanCampaign(r.pool.QueryRow(ctx, query, id, clientIDs))
}

// IncrementMetrics adds a recorded analytics row into the campaign's
// embedded aggregate and running spend, recomputing CTR in the same write.
func (r *CampaignRepository) IncrementMetrics(ctx context.Context, id string, impressions, clicks, conversions int64, spend float64) error {
	const query = `
		UPDATE campaigns
		SET impressions = impressions + $2,
		    clicks = clicks + $3,
		    conversions = conversions + $4,
		    spent = spent + $5,
		    ctr = CASE WHEN impressions + $2 > 0
		          THEN (clicks + $3)::float / (impressions + $2) * 100
		          ELSE 0 END,
		    updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, impressions, clicks, conversions, spend)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) AppendMediaURL(ctx context.Context, id, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET media_urls = array_append(media_urls, $2), updated_at = NOW() WHERE id = $1`,
		id, url)
	return err
}

func (r *CampaignRepository) RemoveMediaURL(ctx context.Context, id, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET media_urls = array_remove(media_urls, $2), updated_at = NOW() WHERE id = $1`,
		id, url)
	return err
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// CompleteExpired marks active and paused campaigns past their end date as
// completed. Used by the nightly sweep.
func (r *CampaignRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `
		UPDATE campaigns
		SET status = 'completed', updated_at = NOW()
		WHERE status IN ('active', 'paused') AND end_date < $1
	`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// RecomputeCTR refreshes the derived click-through rate for every campaign
// whose stored value has drifted from its counters.
func (r *CampaignRepository) RecomputeCTR(ctx context.Context) (int64, error) {
	const query = `
		UPDATE campaigns
		SET ctr = CASE WHEN impressions > 0
		          THEN clicks::float / impressions * 100
		          ELSE 0 END,
		    updated_at = NOW()
		WHERE ctr IS DISTINCT FROM
		      CASE WHEN impressions > 0
		      THEN clicks::float / impressions * 100
		      ELSE 0 END
	`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

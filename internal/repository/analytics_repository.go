package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

const analyticsColumns = `id, campaign_id, date, impressions, clicks, conversions, spend,
	device_desktop, device_mobile, device_tablet,
	platform_facebook, platform_google, platform_instagram, platform_other, created_at`

type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// AnalyticsFilter bounds a campaign's time series by date.
type AnalyticsFilter struct {
	CampaignID string
	From       *time.Time
	To         *time.Time
}

func (f AnalyticsFilter) where() (string, []any) {
	conds := []string{"campaign_id = $1"}
	args := []any{f.CampaignID}

	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *AnalyticsRepository) Create(ctx context.Context, a models.Analytics) error {
	const query = `
		INSERT INTO analytics (id, campaign_id, date, impressions, clicks, conversions, spend,
			device_desktop, device_mobile, device_tablet,
			platform_facebook, platform_google, platform_instagram, platform_other, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.CampaignID,
		a.Date,
		a.Impressions,
		a.Clicks,
		a.Conversions,
		a.Spend,
		a.DeviceBreakdown.Desktop,
		a.DeviceBreakdown.Mobile,
		a.DeviceBreakdown.Tablet,
		a.PlatformBreakdown.Facebook,
		a.PlatformBreakdown.Google,
		a.PlatformBreakdown.Instagram,
		a.PlatformBreakdown.Other,
	)
	return err
}

func (r *AnalyticsRepository) List(ctx context.Context, filter AnalyticsFilter) ([]models.Analytics, error) {
	where, args := filter.where()
	query := `SELECT ` + analyticsColumns + ` FROM analytics` + where + ` ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Analytics, 0)
	for rows.Next() {
		var a models.Analytics
		if err := rows.Scan(
			&a.ID,
			&a.CampaignID,
			&a.Date,
			&a.Impressions,
			&a.Clicks,
			&a.Conversions,
			&a.Spend,
			&a.DeviceBreakdown.Desktop,
			&a.DeviceBreakdown.Mobile,
			&a.DeviceBreakdown.Tablet,
			&a.PlatformBreakdown.Facebook,
			&a.PlatformBreakdown.Google,
			&a.PlatformBreakdown.Instagram,
			&a.PlatformBreakdown.Other,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// Aggregate rolls a campaign's full time series into totals plus average CTR
// and conversion rate, computed row-wise the way the dashboard expects.
func (r *AnalyticsRepository) Aggregate(ctx context.Context, campaignID string) (models.AggregatedStats, error) {
	const query = `
		SELECT
			COALESCE(SUM(impressions), 0),
			COALESCE(SUM(clicks), 0),
			COALESCE(SUM(conversions), 0),
			COALESCE(SUM(spend), 0),
			COALESCE(AVG(CASE WHEN impressions > 0 THEN clicks::float / impressions * 100 ELSE 0 END), 0),
			COALESCE(AVG(CASE WHEN clicks > 0 THEN conversions::float / clicks * 100 ELSE 0 END), 0)
		FROM analytics
		WHERE campaign_id = $1
	`
	var stats models.AggregatedStats
	err := r.pool.QueryRow(ctx, query, campaignID).Scan(
		&stats.TotalImpressions,
		&stats.TotalClicks,
		&stats.TotalConversions,
		&stats.TotalSpend,
		&stats.AvgCTR,
		&stats.AvgConversionRate,
	)
	if err != nil {
		return models.AggregatedStats{}, err
	}
	return stats, nil
}

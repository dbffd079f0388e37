package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
)

const aggregateCacheTTL = 60 * time.Second

type AnalyticsService struct {
	analytics *repository.AnalyticsRepository
	campaigns *repository.CampaignRepository
	cache     *redis.Client
	log       zerolog.Logger
}

func NewAnalyticsService(analytics *repository.AnalyticsRepository, campaigns *repository.CampaignRepository, cache *redis.Client, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		campaigns: campaigns,
		cache:     cache,
		log:       log,
	}
}

type RecordInput struct {
	CampaignID        string
	Date              time.Time
	Impressions       int64
	Clicks            int64
	Conversions       int64
	Spend             float64
	DeviceBreakdown   models.DeviceBreakdown
	PlatformBreakdown models.PlatformBreakdown
}

// Record inserts a time-series row and rolls the deltas into the campaign's
// running metrics. The two writes are not transactional; a crash between
// them leaves the campaign counters one record behind, which the next
// aggregate read papers over since it sums the rows directly.
func (s *AnalyticsService) Record(ctx context.Context, input RecordInput) (models.Analytics, error) {
	if _, err := s.campaigns.GetByID(ctx, input.CampaignID); err != nil {
		return models.Analytics{}, err
	}

	record := models.Analytics{
		ID:                ids.New(),
		CampaignID:        input.CampaignID,
		Date:              input.Date,
		Impressions:       input.Impressions,
		Clicks:            input.Clicks,
		Conversions:       input.Conversions,
		Spend:             input.Spend,
		DeviceBreakdown:   input.DeviceBreakdown,
		PlatformBreakdown: input.PlatformBreakdown,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.analytics.Create(ctx, record); err != nil {
		return models.Analytics{}, err
	}

	if err := s.campaigns.IncrementMetrics(ctx, input.CampaignID, input.Impressions, input.Clicks, input.Conversions, input.Spend); err != nil {
		s.log.Warn().Err(err).Str("campaign_id", input.CampaignID).Msg("campaign metrics increment failed")
	}

	s.invalidateAggregate(ctx, input.CampaignID)

	return record, nil
}

func (s *AnalyticsService) List(ctx context.Context, filter repository.AnalyticsFilter) ([]models.Analytics, error) {
	if _, err := s.campaigns.GetByID(ctx, filter.CampaignID); err != nil {
		return nil, err
	}
	return s.analytics.List(ctx, filter)
}

// Aggregate serves the campaign rollup through a short-lived redis cache.
// Cache failures fall back to the database read.
func (s *AnalyticsService) Aggregate(ctx context.Context, campaignID string) (models.AggregatedStats, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return models.AggregatedStats{}, err
	}

	cacheKey := aggregateCacheKey(campaignID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var stats models.AggregatedStats
			if err := json.Unmarshal(raw, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.analytics.Aggregate(ctx, campaignID)
	if err != nil {
		return models.AggregatedStats{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, aggregateCacheTTL).Err(); err != nil {
				s.log.Debug().Err(err).Str("campaign_id", campaignID).Msg("aggregate cache write failed")
			}
		}
	}

	return stats, nil
}

// ExportCSV streams the campaign's time series as CSV, newest first.
func (s *AnalyticsService) ExportCSV(ctx context.Context, filter repository.AnalyticsFilter, w io.Writer) error {
	records, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"date", "impressions", "clicks", "conversions", "spend",
		"device_desktop", "device_mobile", "device_tablet",
		"platform_facebook", "platform_google", "platform_instagram", "platform_other"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.FormatInt(r.Impressions, 10),
			strconv.FormatInt(r.Clicks, 10),
			strconv.FormatInt(r.Conversions, 10),
			strconv.FormatFloat(r.Spend, 'f', 2, 64),
			strconv.FormatInt(r.DeviceBreakdown.Desktop, 10),
			strconv.FormatInt(r.DeviceBreakdown.Mobile, 10),
			strconv.FormatInt(r.DeviceBreakdown.Tablet, 10),
			strconv.FormatInt(r.PlatformBreakdown.Facebook, 10),
			strconv.FormatInt(r.PlatformBreakdown.Google, 10),
			strconv.FormatInt(r.PlatformBreakdown.Instagram, 10),
			strconv.FormatInt(r.PlatformBreakdown.Other, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *AnalyticsService) invalidateAggregate(ctx context.Context, campaignID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, aggregateCacheKey(campaignID)).Err(); err != nil {
		s.log.Debug().Err(err).Str("campaign_id", campaignID).Msg("aggregate cache invalidation failed")
	}
}

func aggregateCacheKey(campaignID string) string {
	return fmt.Sprintf("analytics:aggregate:%s", campaignID)
}

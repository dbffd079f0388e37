package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"campaignhub/api/internal/repository"
)

type Scheduler struct {
	cron      *cron.Cron
	campaigns *repository.CampaignRepository
	log       zerolog.Logger
}

func NewScheduler(campaigns *repository.CampaignRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:      c,
		campaigns: campaigns,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	// nightly sweep of campaigns past their end date
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.completeExpired); err != nil {
		return err
	}
	// hourly repair of drifted click-through rates
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.recomputeCTR); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs, up to five seconds.
func (s *Scheduler) Stop() {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) completeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.campaigns.CompleteExpired(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error().Err(err).Msg("expired campaign sweep failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("completed", n).Msg("expired campaigns completed")
	}
}

func (s *Scheduler) recomputeCTR() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.campaigns.RecomputeCTR(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("ctr recompute failed")
		return
	}
	if n > 0 {
		s.log.Info().Int64("updated", n).Msg("campaign ctr recomputed")
	}
}

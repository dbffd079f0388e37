package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
)

type BudgetService struct {
	budgets   *repository.BudgetRepository
	campaigns *repository.CampaignRepository
	log       zerolog.Logger
}

func NewBudgetService(budgets *repository.BudgetRepository, campaigns *repository.CampaignRepository, log zerolog.Logger) *BudgetService {
	return &BudgetService{
		budgets:   budgets,
		campaigns: campaigns,
		log:       log,
	}
}

type SetBudgetInput struct {
	CampaignID  string
	TotalBudget float64
	DailyBudget float64
}

// Set creates the campaign's budget. A campaign holds at most one budget;
// a second Set fails with repository.ErrBudgetExists.
func (s *BudgetService) Set(ctx context.Context, input SetBudgetInput) (models.Budget, error) {
	if _, err := s.campaigns.GetByID(ctx, input.CampaignID); err != nil {
		return models.Budget{}, err
	}

	budget := models.Budget{
		ID:          ids.New(),
		CampaignID:  input.CampaignID,
		TotalBudget: input.TotalBudget,
		DailyBudget: input.DailyBudget,
		Spent:       0,
	}
	if err := s.budgets.Create(ctx, budget); err != nil {
		return models.Budget{}, err
	}

	// keep the campaign's denormalized budget figure in step
	if err := s.campaigns.UpdateBudget(ctx, input.CampaignID, input.TotalBudget); err != nil {
		s.log.Warn().Err(err).Str("campaign_id", input.CampaignID).Msg("campaign budget sync failed")
	}

	return s.budgets.GetByCampaign(ctx, input.CampaignID)
}

func (s *BudgetService) Get(ctx context.Context, campaignID string) (models.Budget, []models.BudgetTransaction, error) {
	budget, err := s.budgets.GetByCampaign(ctx, campaignID)
	if err != nil {
		return models.Budget{}, nil, err
	}
	txs, err := s.budgets.ListTransactions(ctx, budget.ID)
	if err != nil {
		return models.Budget{}, nil, err
	}
	return budget, txs, nil
}

// UpdateCeilings raises or lowers the total and daily ceilings. Nil fields
// are left unchanged.
func (s *BudgetService) UpdateCeilings(ctx context.Context, campaignID string, totalBudget, dailyBudget *float64) (models.Budget, error) {
	budget, err := s.budgets.UpdateCeilings(ctx, campaignID, totalBudget, dailyBudget)
	if err != nil {
		return models.Budget{}, err
	}

	if totalBudget != nil {
		if err := s.campaigns.UpdateBudget(ctx, campaignID, *totalBudget); err != nil {
			s.log.Warn().Err(err).Str("campaign_id", campaignID).Msg("campaign budget sync failed")
		}
	}
	return budget, nil
}

type SpendInput struct {
	CampaignID  string
	Amount      float64
	Description string
}

// TrackSpend applies a spend against the budget ceiling and appends the
// audit transaction. The ceiling check and the increment are one atomic
// write, so concurrent spends cannot overshoot totalBudget.
func (s *BudgetService) TrackSpend(ctx context.Context, input SpendInput) (models.Budget, error) {
	budget, err := s.budgets.TrackSpend(ctx, input.CampaignID, input.Amount)
	if err != nil {
		return models.Budget{}, err
	}

	tx := models.BudgetTransaction{
		ID:          ids.New(),
		BudgetID:    budget.ID,
		Amount:      input.Amount,
		Date:        time.Now().UTC(),
		Description: input.Description,
	}
	if err := s.budgets.AppendTransaction(ctx, tx); err != nil {
		s.log.Warn().Err(err).Str("budget_id", budget.ID).Msg("transaction append failed")
	}

	return budget, nil
}

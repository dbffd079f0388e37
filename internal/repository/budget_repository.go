package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget already exists for this campaign")
)

const budgetColumns = `id, campaign_id, total_budget, daily_budget, spent, remaining, created_at, updated_at`

type BudgetRepository struct {
	pool *pgxpool.Pool
}

func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(
		&b.ID,
		&b.CampaignID,
		&b.TotalBudget,
		&b.DailyBudget,
		&b.Spent,
		&b.Remaining,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Budget{}, ErrBudgetNotFound
		}
		return models.Budget{}, err
	}
	return b, nil
}

func (r *BudgetRepository) Create(ctx context.Context, b models.Budget) error {
	const query = `
		INSERT INTO budgets (id, campaign_id, total_budget, daily_budget, spent, remaining, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $3 - $5, NOW(), NOW())
		ON CONFLICT (campaign_id) DO NOTHING
	`
	cmd, err := r.pool.Exec(ctx, query, b.ID, b.CampaignID, b.TotalBudget, b.DailyBudget, b.Spent)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBudgetExists
	}
	return nil
}

func (r *BudgetRepository) GetByCampaign(ctx context.Context, campaignID string) (models.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE campaign_id = $1`
	return scanBudget(r.pool.QueryRow(ctx, query, campaignID))
}

// UpdateCeilings changes total and daily ceilings; remaining is recomputed
// from the new total in the same write.
func (r *BudgetRepository) UpdateCeilings(ctx context.Context, campaignID string, totalBudget, dailyBudget *float64) (models.Budget, error) {
	const query = `
		UPDATE budgets
		SET total_budget = COALESCE($2, total_budget),
		    daily_budget = COALESCE($3, daily_budget),
		    remaining = COALESCE($2, total_budget) - spent,
		    updated_at = NOW()
		WHERE campaign_id = $1
		RETURNING ` + budgetColumns
	return scanBudget(r.pool.QueryRow(ctx, query, campaignID, totalBudget, dailyBudget))
}

// TrackSpend applies a spend atomically: the conditional WHERE guarantees
// spent never races past total_budget under concurrent calls. Returns
// ErrBudgetExceeded when the ceiling check rejects the amount.
var ErrBudgetExceeded = errors.New("transaction would exceed total budget")

func (r *BudgetRepository) TrackSpend(ctx context.Context, campaignID string, amount float64) (models.Budget, error) {
	const query = `
		UPDATE budgets
		SET spent = spent + $2,
		    remaining = total_budget - (spent + $2),
		    updated_at = NOW()
		WHERE campaign_id = $1 AND spent + $2 <= total_budget
		RETURNING ` + budgetColumns

	b, err := scanBudget(r.pool.QueryRow(ctx, query, campaignID, amount))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrBudgetNotFound) {
		return models.Budget{}, err
	}

	// zero rows: distinguish a missing budget from a rejected spend
	if _, getErr := r.GetByCampaign(ctx, campaignID); getErr != nil {
		return models.Budget{}, getErr
	}
	return models.Budget{}, ErrBudgetExceeded
}

func (r *BudgetRepository) AppendTransaction(ctx context.Context, tx models.BudgetTransaction) error {
	const query = `
		INSERT INTO budget_transactions (id, budget_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, tx.ID, tx.BudgetID, tx.Amount, tx.Date, tx.Description)
	return err
}

func (r *BudgetRepository) ListTransactions(ctx context.Context, budgetID string) ([]models.BudgetTransaction, error) {
	const query = `
		SELECT id, budget_id, amount, date, description
		FROM budget_transactions
		WHERE budget_id = $1
		ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]models.BudgetTransaction, 0)
	for rows.Next() {
		var tx models.BudgetTransaction
		if err := rows.Scan(&tx.ID, &tx.BudgetID, &tx.Amount, &tx.Date, &tx.Description); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignhub/api/internal/database"
	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/models"
)

// testPool connects to the database named by CAMPAIGNHUB_TEST_POSTGRES_DSN
// and applies the embedded migrations. Tests are skipped when the variable
// is unset so the suite stays runnable without infrastructure.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("CAMPAIGNHUB_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CAMPAIGNHUB_TEST_POSTGRES_DSN not set")
	}

	require.NoError(t, database.Migrate(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// seedCampaign inserts a user and a campaign owned by that user, returning
// the campaign id. Rows cascade away with the campaign delete registered
// for cleanup.
func seedCampaign(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()

	userID := ids.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, role)
		VALUES ($1, $2, $3, 'x', 'admin')`,
		userID, "it-"+userID, "it-"+userID+"@example.com")
	require.NoError(t, err)

	campaignID := ids.New()
	now := time.Now()
	_, err = pool.Exec(ctx, `
		INSERT INTO campaigns (id, name, description, type, status, start_date, end_date, created_by)
		VALUES ($1, 'spend test', '', 'digital', 'active', $2, $3, $4)`,
		campaignID, now, now.Add(30*24*time.Hour), userID)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, campaignID)
		pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	})
	return campaignID
}

func TestBudgetTrackSpendEnforcesCeiling(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	campaignID := seedCampaign(t, pool)

	repo := NewBudgetRepository(pool)
	require.NoError(t, repo.Create(ctx, models.Budget{
		ID:          ids.New(),
		CampaignID:  campaignID,
		TotalBudget: 1000,
		DailyBudget: 100,
	}))

	// A spend within the ceiling accumulates and keeps remaining in sync.
	b, err := repo.TrackSpend(ctx, campaignID, 400)
	require.NoError(t, err)
	assert.Equal(t, 400.0, b.Spent)
	assert.Equal(t, 600.0, b.Remaining)

	b, err = repo.TrackSpend(ctx, campaignID, 600)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.Spent)
	assert.Equal(t, 0.0, b.Remaining)

	// The next spend would pass the ceiling and must be rejected without
	// touching the row.
	_, err = repo.TrackSpend(ctx, campaignID, 0.01)
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	b, err = repo.GetByCampaign(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, b.Spent)
	assert.Equal(t, 0.0, b.Remaining)
}

func TestBudgetTrackSpendMissingCampaign(t *testing.T) {
	pool := testPool(t)

	repo := NewBudgetRepository(pool)
	_, err := repo.TrackSpend(context.Background(), "no-such-campaign", 10)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestTestimonialUpdatePersistsVisibility(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := NewTestimonialRepository(pool)
	item := models.Testimonial{
		ID:       ids.New(),
		Name:     "Ada",
		Role:     "CTO",
		Company:  "Initech",
		Feedback: "Great results",
		Visible:  true,
	}
	require.NoError(t, repo.Create(ctx, item))
	t.Cleanup(func() { repo.Delete(ctx, item.ID) })

	item.Visible = false
	updated, err := repo.Update(ctx, item)
	require.NoError(t, err)
	assert.False(t, updated.Visible)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Visible)
}

func TestUpdateProfileDuplicateUsername(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	repo := NewUserRepository(pool)
	first := models.User{
		ID:       ids.New(),
		Username: "taken-" + ids.New(),
		Email:    ids.New() + "@example.com",
		Role:     models.UserRoleViewer,
		Status:   models.UserStatusActive,
	}
	second := models.User{
		ID:       ids.New(),
		Username: "free-" + ids.New(),
		Email:    ids.New() + "@example.com",
		Role:     models.UserRoleViewer,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	t.Cleanup(func() {
		repo.Delete(ctx, first.ID)
		repo.Delete(ctx, second.ID)
	})

	_, err := repo.UpdateProfile(ctx, second.ID, first.Username, "", "")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

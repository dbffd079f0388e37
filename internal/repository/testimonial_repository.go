package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

const testimonialColumns = `id, name, role, company, feedback, avatar, visible, display_order, created_at, updated_at`

type TestimonialRepository struct {
	pool *pgxpool.Pool
}

func NewTestimonialRepository(pool *pgxpool.Pool) *TestimonialRepository {
	return &TestimonialRepository{pool: pool}
}

// TestimonialFilter: a nil Visible means no visibility constraint (admin
// view); handlers force Visible=true for non-admin callers.
type TestimonialFilter struct {
	Visible *bool
}

func scanTestimonial(row pgx.Row) (models.Testimonial, error) {
	var t models.Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Role, &t.Company, &t.Feedback, &t.Avatar, &t.Visible, &t.Order, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Testimonial{}, ErrTestimonialNotFound
		}
		return models.Testimonial{}, err
	}
	return t, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, t models.Testimonial) error {
	const query = `
		INSERT INTO testimonials (id, name, role, company, feedback, avatar, visible, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Role, t.Company, t.Feedback, t.Avatar, t.Visible, t.Order)
	return err
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (models.Testimonial, error) {
	return scanTestimonial(r.pool.QueryRow(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id))
}

func (r *TestimonialRepository) List(ctx context.Context, filter TestimonialFilter, limit, offset int) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	args := []any{}
	if filter.Visible != nil {
		query += ` WHERE visible = $1`
		args = append(args, *filter.Visible)
		query += ` ORDER BY display_order ASC, created_at DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY display_order ASC, created_at DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := make([]models.Testimonial, 0)
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (r *TestimonialRepository) Count(ctx context.Context, filter TestimonialFilter) (int64, error) {
	var count int64
	if filter.Visible != nil {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials WHERE visible = $1`, *filter.Visible).Scan(&count)
		return count, err
	}
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&count)
	return count, err
}

func (r *TestimonialRepository) Update(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	const query = `
		UPDATE testimonials
		SET name = $2, role = $3, company = $4, feedback = $5, avatar = $6, visible = $7, display_order = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.pool.QueryRow(ctx, query, t.ID, t.Name, t.Role, t.Company, t.Feedback, t.Avatar, t.Visible, t.Order))
}

// ToggleVisibility flips the visible flag in a single write and returns the
// updated row.
func (r *TestimonialRepository) ToggleVisibility(ctx context.Context, id string) (models.Testimonial, error) {
	const query = `
		UPDATE testimonials SET visible = NOT visible, updated_at = NOW() WHERE id = $1
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.pool.QueryRow(ctx, query, id))
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

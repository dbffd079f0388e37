package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = `id, title, department, location, experience, description, responsibilities, requirements, status, created_at, updated_at`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// JobFilter: handlers force Status=open for non-admin callers.
type JobFilter struct {
	Department string
	Status     models.JobStatus
}

func (f JobFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Department != "" {
		args = append(args, f.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanJob(row pgx.Row) (models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Department,
		&j.Location,
		&j.Experience,
		&j.Description,
		&j.Responsibilities,
		&j.Requirements,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Job{}, ErrJobNotFound
		}
		return models.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j models.Job) error {
	const query = `
		INSERT INTO jobs (id, title, department, location, experience, description, responsibilities, requirements, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		j.ID, j.Title, j.Department, j.Location, j.Experience, j.Description,
		j.Responsibilities, j.Requirements, j.Status)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (models.Job, error) {
	return scanJob(r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (r *JobRepository) List(ctx context.Context, filter JobFilter, limit, offset int) ([]models.Job, error) {
	where, args := filter.where()
	query := `SELECT ` + jobColumns + ` FROM jobs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]models.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) Count(ctx context.Context, filter JobFilter) (int64, error) {
	where, args := filter.where()
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *JobRepository) Update(ctx context.Context, j models.Job) (models.Job, error) {
	const query = `
		UPDATE jobs
		SET title = $2, department = $3, location = $4, experience = $5, description = $6,
		    responsibilities = $7, requirements = $8, status = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + jobColumns
	return scanJob(r.pool.QueryRow(ctx, query,
		j.ID, j.Title, j.Department, j.Location, j.Experience, j.Description,
		j.Responsibilities, j.Requirements, j.Status))
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

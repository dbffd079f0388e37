package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaignhub/api/internal/models"
)

// Repositories for the public marketing-content entities. All listings sort
// by display order first, newest second, mirroring what the site renders.

var (
	ErrServiceNotFound       = errors.New("service not found")
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

const serviceColumns = `id, title, description, icon, display_order, created_at, updated_at`

func scanService(row pgx.Row) (models.Service, error) {
	var s models.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, ErrServiceNotFound
		}
		return models.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s models.Service) error {
	const query = `
		INSERT INTO services (id, title, description, icon, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, s.ID, s.Title, s.Description, s.Icon, s.Order)
	return err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (models.Service, error) {
	return scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
}

func (r *ServiceRepository) List(ctx context.Context, limit, offset int) ([]models.Service, error) {
	const query = `
		SELECT ` + serviceColumns + ` FROM services
		ORDER BY display_order ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	return count, err
}

func (r *ServiceRepository) Update(ctx context.Context, s models.Service) (models.Service, error) {
	const query = `
		UPDATE services
		SET title = $2, description = $3, icon = $4, display_order = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + serviceColumns
	return scanService(r.pool.QueryRow(ctx, query, s.ID, s.Title, s.Description, s.Icon, s.Order))
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

type TeamMemberRepository struct {
	pool *pgxpool.Pool
}

func NewTeamMemberRepository(pool *pgxpool.Pool) *TeamMemberRepository {
	return &TeamMemberRepository{pool: pool}
}

const teamMemberColumns = `id, name, role, image, bio, display_order, created_at, updated_at`

func scanTeamMember(row pgx.Row) (models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Image, &m.Bio, &m.Order, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TeamMember{}, ErrTeamMemberNotFound
		}
		return models.TeamMember{}, err
	}
	return m, nil
}

func (r *TeamMemberRepository) Create(ctx context.Context, m models.TeamMember) error {
	const query = `
		INSERT INTO team_members (id, name, role, image, bio, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, m.ID, m.Name, m.Role, m.Image, m.Bio, m.Order)
	return err
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id string) (models.TeamMember, error) {
	return scanTeamMember(r.pool.QueryRow(ctx, `SELECT `+teamMemberColumns+` FROM team_members WHERE id = $1`, id))
}

func (r *TeamMemberRepository) List(ctx context.Context, limit, offset int) ([]models.TeamMember, error) {
	const query = `
		SELECT ` + teamMemberColumns + ` FROM team_members
		ORDER BY display_order ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *TeamMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM team_members`).Scan(&count)
	return count, err
}

func (r *TeamMemberRepository) Update(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	const query = `
		UPDATE team_members
		SET name = $2, role = $3, image = $4, bio = $5, display_order = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + teamMemberColumns
	return scanTeamMember(r.pool.QueryRow(ctx, query, m.ID, m.Name, m.Role, m.Image, m.Bio, m.Order))
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTeamMemberNotFound
	}
	return nil
}

type PortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepository(pool *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{pool: pool}
}

const portfolioColumns = `id, title, category, image, client, description, result, display_order, created_at, updated_at`

func scanPortfolioItem(row pgx.Row) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Image, &p.Client, &p.Description, &p.Result, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PortfolioItem{}, ErrPortfolioItemNotFound
		}
		return models.PortfolioItem{}, err
	}
	return p, nil
}

func (r *PortfolioRepository) Create(ctx context.Context, p models.PortfolioItem) error {
	const query = `
		INSERT INTO portfolio_items (id, title, category, image, client, description, result, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Title, p.Category, p.Image, p.Client, p.Description, p.Result, p.Order)
	return err
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (models.PortfolioItem, error) {
	return scanPortfolioItem(r.pool.QueryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = $1`, id))
}

func (r *PortfolioRepository) List(ctx context.Context, category string, limit, offset int) ([]models.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY display_order ASC, created_at DESC`
	if category != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.PortfolioItem, 0)
	for rows.Next() {
		p, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PortfolioRepository) Count(ctx context.Context, category string) (int64, error) {
	var count int64
	if category != "" {
		err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portfolio_items WHERE category = $1`, category).Scan(&count)
		return count, err
	}
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM portfolio_items`).Scan(&count)
	return count, err
}

func (r *PortfolioRepository) Update(ctx context.Context, p models.PortfolioItem) (models.PortfolioItem, error) {
	const query = `
		UPDATE portfolio_items
		SET title = $2, category = $3, image = $4, client = $5, description = $6, result = $7, display_order = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + portfolioColumns
	return scanPortfolioItem(r.pool.QueryRow(ctx, query, p.ID, p.Title, p.Category, p.Image, p.Client, p.Description, p.Result, p.Order))
}

func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

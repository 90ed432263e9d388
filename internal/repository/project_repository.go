package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"portfolio/internal/models"
)

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, detailed_description, image_url, live_url, github_url,
		technologies, start_date, end_date, is_featured, display_order, created_at, updated_at`

func (r *ProjectRepository) Create(ctx context.Context, p models.Project) error {
	const query = `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.Title,
		p.Description,
		p.DetailedDescription,
		p.ImageURL,
		p.LiveURL,
		p.GithubURL,
		nonNil(p.Technologies),
		p.StartDate,
		p.EndDate,
		p.IsFeatured,
		p.DisplayOrder,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, p models.Project) error {
	const query = `
		UPDATE projects SET
			title = $2,
			description = $3,
			detailed_description = $4,
			image_url = $5,
			live_url = $6,
			github_url = $7,
			technologies = $8,
			start_date = $9,
			end_date = $10,
			is_featured = $11,
			display_order = $12,
			updated_at = $13
		WHERE id = $1
	`

	return execExpectingRow(ctx, r.db, query,
		p.ID,
		p.Title,
		p.Description,
		p.DetailedDescription,
		p.ImageURL,
		p.LiveURL,
		p.GithubURL,
		nonNil(p.Technologies),
		p.StartDate,
		p.EndDate,
		p.IsFeatured,
		p.DisplayOrder,
		p.UpdatedAt,
	)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `DELETE FROM projects WHERE id = $1`, id)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (models.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	return p, err
}

func (r *ProjectRepository) List(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	const query = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1 = FALSE OR is_featured = TRUE)
		ORDER BY display_order ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, featuredOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.DetailedDescription,
		&p.ImageURL,
		&p.LiveURL,
		&p.GithubURL,
		&p.Technologies,
		&p.StartDate,
		&p.EndDate,
		&p.IsFeatured,
		&p.DisplayOrder,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"portfolio/internal/models"
)

type ExperienceRepository struct {
	db DB
}

func NewExperienceRepository(db DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

const experienceColumns = `id, company, position, location, description, responsibilities, technologies,
		start_date, end_date, is_current_role, display_order, created_at, updated_at`

func (r *ExperienceRepository) Create(ctx context.Context, e models.Experience) error {
	const query = `
		INSERT INTO experiences (` + experienceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.Company,
		e.Position,
		e.Location,
		e.Description,
		nonNil(e.Responsibilities),
		nonNil(e.Technologies),
		e.StartDate,
		e.EndDate,
		e.IsCurrentRole,
		e.DisplayOrder,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *ExperienceRepository) Update(ctx context.Context, e models.Experience) error {
	const query = `
		UPDATE experiences SET
			company = $2,
			position = $3,
			location = $4,
			description = $5,
			responsibilities = $6,
			technologies = $7,
			start_date = $8,
			end_date = $9,
			is_current_role = $10,
			display_order = $11,
			updated_at = $12
		WHERE id = $1
	`
	return execExpectingRow(ctx, r.db, query,
		e.ID,
		e.Company,
		e.Position,
		e.Location,
		e.Description,
		nonNil(e.Responsibilities),
		nonNil(e.Technologies),
		e.StartDate,
		e.EndDate,
		e.IsCurrentRole,
		e.DisplayOrder,
		e.UpdatedAt,
	)
}

func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `DELETE FROM experiences WHERE id = $1`, id)
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (models.Experience, error) {
	const query = `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`

	e, err := scanExperience(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Experience{}, ErrNotFound
	}
	return e, err
}

func (r *ExperienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	const query = `SELECT ` + experienceColumns + ` FROM experiences ORDER BY display_order ASC, start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Experience, 0)
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func scanExperience(row pgx.Row) (models.Experience, error) {
	var e models.Experience
	err := row.Scan(
		&e.ID,
		&e.Company,
		&e.Position,
		&e.Location,
		&e.Description,
		&e.Responsibilities,
		&e.Technologies,
		&e.StartDate,
		&e.EndDate,
		&e.IsCurrentRole,
		&e.DisplayOrder,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

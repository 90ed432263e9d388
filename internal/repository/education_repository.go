package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"portfolio/internal/models"
)

type EducationRepository struct {
	db DB
}

func NewEducationRepository(db DB) *EducationRepository {
	return &EducationRepository{db: db}
}

const educationColumns = `id, institution, degree, field_of_study, location, description, gpa, coursework,
		start_date, end_date, is_currently_enrolled, display_order, created_at, updated_at`

func (r *EducationRepository) Create(ctx context.Context, e models.Education) error {
	const query = `
		INSERT INTO education (` + educationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID,
		e.Institution,
		e.Degree,
		e.FieldOfStudy,
		e.Location,
		e.Description,
		e.GPA,
		nonNil(e.Coursework),
		e.StartDate,
		e.EndDate,
		e.IsCurrentlyEnrolled,
		e.DisplayOrder,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EducationRepository) Update(ctx context.Context, e models.Education) error {
	const query = `
		UPDATE education SET
			institution = $2,
			degree = $3,
			field_of_study = $4,
			location = $5,
			description = $6,
			gpa = $7,
			coursework = $8,
			start_date = $9,
			end_date = $10,
			is_currently_enrolled = $11,
			display_order = $12,
			updated_at = $13
		WHERE id = $1
	`
	return execExpectingRow(ctx, r.db, query,
		e.ID,
		e.Institution,
		e.Degree,
		e.FieldOfStudy,
		e.Location,
		e.Description,
		e.GPA,
		nonNil(e.Coursework),
		e.StartDate,
		e.EndDate,
		e.IsCurrentlyEnrolled,
		e.DisplayOrder,
		e.UpdatedAt,
	)
}

func (r *EducationRepository) Delete(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `DELETE FROM education WHERE id = $1`, id)
}

func (r *EducationRepository) GetByID(ctx context.Context, id string) (models.Education, error) {
	const query = `SELECT ` + educationColumns + ` FROM education WHERE id = $1`

	e, err := scanEducation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Education{}, ErrNotFound
	}
	return e, err
}

func (r *EducationRepository) List(ctx context.Context) ([]models.Education, error) {
	const query = `SELECT ` + educationColumns + ` FROM education ORDER BY display_order ASC, start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func scanEducation(row pgx.Row) (models.Education, error) {
	var e models.Education
	err := row.Scan(
		&e.ID,
		&e.Institution,
		&e.Degree,
		&e.FieldOfStudy,
		&e.Location,
		&e.Description,
		&e.GPA,
		&e.Coursework,
		&e.StartDate,
		&e.EndDate,
		&e.IsCurrentlyEnrolled,
		&e.DisplayOrder,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

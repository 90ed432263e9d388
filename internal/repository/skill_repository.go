package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"portfolio/internal/models"
)

type SkillRepository struct {
	db DB
}

func NewSkillRepository(db DB) *SkillRepository {
	return &SkillRepository{db: db}
}

const skillColumns = `id, name, category, proficiency_level, icon_url, display_order, created_at, updated_at`

func (r *SkillRepository) Create(ctx context.Context, s models.Skill) error {
	const query = `
		INSERT INTO skills (` + skillColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Category, s.ProficiencyLevel, s.IconURL, s.DisplayOrder, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *SkillRepository) Update(ctx context.Context, s models.Skill) error {
	const query = `
		UPDATE skills SET
			name = $2,
			category = $3,
			proficiency_level = $4,
			icon_url = $5,
			display_order = $6,
			updated_at = $7
		WHERE id = $1
	`
	return execExpectingRow(ctx, r.db, query,
		s.ID, s.Name, s.Category, s.ProficiencyLevel, s.IconURL, s.DisplayOrder, s.UpdatedAt,
	)
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	return execExpectingRow(ctx, r.db, `DELETE FROM skills WHERE id = $1`, id)
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (models.Skill, error) {
	const query = `SELECT ` + skillColumns + ` FROM skills WHERE id = $1`

	s, err := scanSkill(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Skill{}, ErrNotFound
	}
	return s, err
}

// List returns every skill, or only those in category when it is non-empty.
func (r *SkillRepository) List(ctx context.Context, category string) ([]models.Skill, error) {
	const query = `
		SELECT ` + skillColumns + `
		FROM skills
		WHERE ($1 = '' OR category = $1)
		ORDER BY display_order ASC, name ASC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func scanSkill(row pgx.Row) (models.Skill, error) {
	var s models.Skill
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.ProficiencyLevel,
		&s.IconURL,
		&s.DisplayOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

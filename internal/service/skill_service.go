package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/ids"
	"portfolio/internal/models"
	"portfolio/internal/security"
)

const skillsResource = "skills"

type SkillStore interface {
	Create(ctx context.Context, s models.Skill) error
	Update(ctx context.Context, s models.Skill) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (models.Skill, error)
	List(ctx context.Context, category string) ([]models.Skill, error)
}

type SkillService struct {
	skills    SkillStore
	cache     ContentCache
	sanitizer *security.Sanitizer
	log       zerolog.Logger
	now       func() time.Time
}

func NewSkillService(skills SkillStore, cache ContentCache, sanitizer *security.Sanitizer, log zerolog.Logger) *SkillService {
	return &SkillService{
		skills:    skills,
		cache:     cacheOrNop(cache),
		sanitizer: sanitizer,
		log:       log,
		now:       time.Now,
	}
}

// List returns every skill, or only those in category when it is non-empty.
// Only the full listing is cached; a category is filtered from it, so query
// values never become cache keys.
func (s *SkillService) List(ctx context.Context, category string) ([]models.Skill, error) {
	all, err := cachedList(ctx, s.cache, s.log, skillsResource, "all",
		func(ctx context.Context) ([]models.Skill, error) {
			return s.skills.List(ctx, "")
		})
	if err != nil || category == "" {
		return all, err
	}

	filtered := make([]models.Skill, 0, len(all))
	for _, skill := range all {
		if skill.Category == category {
			filtered = append(filtered, skill)
		}
	}
	return filtered, nil
}

func (s *SkillService) Get(ctx context.Context, id string) (models.Skill, error) {
	return s.skills.GetByID(ctx, id)
}

func (s *SkillService) Create(ctx context.Context, skill models.Skill) (models.Skill, error) {
	s.clean(&skill)
	if err := validateSkill(skill); err != nil {
		return models.Skill{}, err
	}

	now := s.now().UTC()
	skill.ID = ids.New()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	if err := s.skills.Create(ctx, skill); err != nil {
		return models.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	invalidate(ctx, s.cache, s.log, skillsResource)
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, id string, patch models.SkillPatch) (models.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return models.Skill{}, err
	}

	skill.Apply(patch)
	s.clean(&skill)
	if err := validateSkill(skill); err != nil {
		return models.Skill{}, err
	}
	skill.UpdatedAt = s.now().UTC()

	if err := s.skills.Update(ctx, skill); err != nil {
		return models.Skill{}, fmt.Errorf("update skill: %w", err)
	}
	invalidate(ctx, s.cache, s.log, skillsResource)
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	if err := s.skills.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, skillsResource)
	return nil
}

func (s *SkillService) clean(skill *models.Skill) {
	skill.Name = s.sanitizer.Text(skill.Name)
	skill.Category = s.sanitizer.Text(skill.Category)
}

func validateSkill(skill models.Skill) error {
	if err := requireText(skill.Name, skill.Category); err != nil {
		return err
	}
	if skill.ProficiencyLevel < 1 || skill.ProficiencyLevel > 100 {
		return fmt.Errorf("%w: proficiency level must be between 1 and 100", ErrInvalidInput)
	}
	return nil
}

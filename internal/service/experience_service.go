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

const experiencesResource = "experiences"

type ExperienceStore interface {
	Create(ctx context.Context, e models.Experience) error
	Update(ctx context.Context, e models.Experience) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (models.Experience, error)
	List(ctx context.Context) ([]models.Experience, error)
}

type ExperienceService struct {
	experiences ExperienceStore
	cache       ContentCache
	sanitizer   *security.Sanitizer
	log         zerolog.Logger
	now         func() time.Time
}

func NewExperienceService(experiences ExperienceStore, cache ContentCache, sanitizer *security.Sanitizer, log zerolog.Logger) *ExperienceService {
	return &ExperienceService{
		experiences: experiences,
		cache:       cacheOrNop(cache),
		sanitizer:   sanitizer,
		log:         log,
		now:         time.Now,
	}
}

func (s *ExperienceService) List(ctx context.Context) ([]models.Experience, error) {
	return cachedList(ctx, s.cache, s.log, experiencesResource, "all", s.experiences.List)
}

func (s *ExperienceService) Get(ctx context.Context, id string) (models.Experience, error) {
	return s.experiences.GetByID(ctx, id)
}

func (s *ExperienceService) Create(ctx context.Context, e models.Experience) (models.Experience, error) {
	s.clean(&e)
	if err := requireText(e.Company, e.Position); err != nil {
		return models.Experience{}, err
	}

	now := s.now().UTC()
	e.ID = ids.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.experiences.Create(ctx, e); err != nil {
		return models.Experience{}, fmt.Errorf("create experience: %w", err)
	}
	invalidate(ctx, s.cache, s.log, experiencesResource)
	return e, nil
}

func (s *ExperienceService) Update(ctx context.Context, id string, patch models.ExperiencePatch) (models.Experience, error) {
	e, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		return models.Experience{}, err
	}

	e.Apply(patch)
	s.clean(&e)
	if err := requireText(e.Company, e.Position); err != nil {
		return models.Experience{}, err
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.experiences.Update(ctx, e); err != nil {
		return models.Experience{}, fmt.Errorf("update experience: %w", err)
	}
	invalidate(ctx, s.cache, s.log, experiencesResource)
	return e, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	if err := s.experiences.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, experiencesResource)
	return nil
}

func (s *ExperienceService) clean(e *models.Experience) {
	e.Company = s.sanitizer.Text(e.Company)
	e.Position = s.sanitizer.Text(e.Position)
	e.Description = s.sanitizer.Text(e.Description)
	e.Location = s.sanitizer.OptionalText(e.Location)
	if e.Responsibilities == nil {
		e.Responsibilities = []string{}
	}
	if e.Technologies == nil {
		e.Technologies = []string{}
	}
}

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

const educationResource = "education"

type EducationStore interface {
	Create(ctx context.Context, e models.Education) error
	Update(ctx context.Context, e models.Education) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (models.Education, error)
	List(ctx context.Context) ([]models.Education, error)
}

type EducationService struct {
	education EducationStore
	cache     ContentCache
	sanitizer *security.Sanitizer
	log       zerolog.Logger
	now       func() time.Time
}

func NewEducationService(education EducationStore, cache ContentCache, sanitizer *security.Sanitizer, log zerolog.Logger) *EducationService {
	return &EducationService{
		education: education,
		cache:     cacheOrNop(cache),
		sanitizer: sanitizer,
		log:       log,
		now:       time.Now,
	}
}

func (s *EducationService) List(ctx context.Context) ([]models.Education, error) {
	return cachedList(ctx, s.cache, s.log, educationResource, "all", s.education.List)
}

func (s *EducationService) Get(ctx context.Context, id string) (models.Education, error) {
	return s.education.GetByID(ctx, id)
}

func (s *EducationService) Create(ctx context.Context, e models.Education) (models.Education, error) {
	s.clean(&e)
	if err := validateEducation(e); err != nil {
		return models.Education{}, err
	}

	now := s.now().UTC()
	e.ID = ids.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.education.Create(ctx, e); err != nil {
		return models.Education{}, fmt.Errorf("create education: %w", err)
	}
	invalidate(ctx, s.cache, s.log, educationResource)
	return e, nil
}

func (s *EducationService) Update(ctx context.Context, id string, patch models.EducationPatch) (models.Education, error) {
	e, err := s.education.GetByID(ctx, id)
	if err != nil {
		return models.Education{}, err
	}

	e.Apply(patch)
	s.clean(&e)
	if err := validateEducation(e); err != nil {
		return models.Education{}, err
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.education.Update(ctx, e); err != nil {
		return models.Education{}, fmt.Errorf("update education: %w", err)
	}
	invalidate(ctx, s.cache, s.log, educationResource)
	return e, nil
}

func (s *EducationService) Delete(ctx context.Context, id string) error {
	if err := s.education.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, educationResource)
	return nil
}

func (s *EducationService) clean(e *models.Education) {
	e.Institution = s.sanitizer.Text(e.Institution)
	e.Degree = s.sanitizer.Text(e.Degree)
	e.FieldOfStudy = s.sanitizer.OptionalText(e.FieldOfStudy)
	e.Location = s.sanitizer.OptionalText(e.Location)
	e.Description = s.sanitizer.OptionalText(e.Description)
	if e.Coursework == nil {
		e.Coursework = []string{}
	}
}

func validateEducation(e models.Education) error {
	if err := requireText(e.Institution, e.Degree); err != nil {
		return err
	}
	if e.GPA != nil && (*e.GPA < 0 || *e.GPA > 5) {
		return fmt.Errorf("%w: gpa out of range", ErrInvalidInput)
	}
	return nil
}

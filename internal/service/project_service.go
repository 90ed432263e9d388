package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"portfolio/internal/ids"
	"portfolio/internal/models"
	"portfolio/internal/security"
)

const projectsResource = "projects"

type ProjectStore interface {
	Create(ctx context.Context, p models.Project) error
	Update(ctx context.Context, p models.Project) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (models.Project, error)
	List(ctx context.Context, featuredOnly bool) ([]models.Project, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, input UploadInput) (UploadResult, error)
	RemoveByURL(ctx context.Context, url string)
}

type ProjectService struct {
	projects  ProjectStore
	uploads   ImageUploader
	cache     ContentCache
	sanitizer *security.Sanitizer
	log       zerolog.Logger
	now       func() time.Time
}

func NewProjectService(projects ProjectStore, uploads ImageUploader, cache ContentCache, sanitizer *security.Sanitizer, log zerolog.Logger) *ProjectService {
	return &ProjectService{
		projects:  projects,
		uploads:   uploads,
		cache:     cacheOrNop(cache),
		sanitizer: sanitizer,
		log:       log,
		now:       time.Now,
	}
}

func (s *ProjectService) List(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	return cachedList(ctx, s.cache, s.log, projectsResource, "featured="+strconv.FormatBool(featuredOnly),
		func(ctx context.Context) ([]models.Project, error) {
			return s.projects.List(ctx, featuredOnly)
		})
}

func (s *ProjectService) Get(ctx context.Context, id string) (models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, p models.Project) (models.Project, error) {
	s.clean(&p)
	if err := requireText(p.Title, p.Description); err != nil {
		return models.Project{}, err
	}

	now := s.now().UTC()
	p.ID = ids.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.projects.Create(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	invalidate(ctx, s.cache, s.log, projectsResource)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	p.Apply(patch)
	s.clean(&p)
	if err := requireText(p.Title, p.Description); err != nil {
		return models.Project{}, err
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.projects.Update(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	invalidate(ctx, s.cache, s.log, projectsResource)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, projectsResource)

	if p.ImageURL != nil && s.uploads != nil {
		s.uploads.RemoveByURL(ctx, *p.ImageURL)
	}
	return nil
}

// AttachImage stores the uploaded file and points the project's imageUrl at
// it. The previous image, if any, is removed afterwards.
func (s *ProjectService) AttachImage(ctx context.Context, id string, file io.Reader, declaredType string) (models.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	uploaded, err := s.uploads.Upload(ctx, UploadInput{
		Prefix:       projectsResource,
		File:         file,
		DeclaredType: declaredType,
	})
	if err != nil {
		return models.Project{}, err
	}

	previous := p.ImageURL
	p.ImageURL = &uploaded.URL
	p.UpdatedAt = s.now().UTC()

	if err := s.projects.Update(ctx, p); err != nil {
		s.uploads.RemoveByURL(ctx, uploaded.URL)
		return models.Project{}, fmt.Errorf("update project image: %w", err)
	}
	invalidate(ctx, s.cache, s.log, projectsResource)

	if previous != nil && *previous != uploaded.URL {
		s.uploads.RemoveByURL(ctx, *previous)
	}

	s.log.Info().Str("project_id", p.ID).Str("key", uploaded.Key).Int64("size", uploaded.Size).Msg("project image stored")
	return p, nil
}

func (s *ProjectService) clean(p *models.Project) {
	p.Title = s.sanitizer.Text(p.Title)
	p.Description = s.sanitizer.Text(p.Description)
	p.DetailedDescription = s.sanitizer.OptionalText(p.DetailedDescription)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}

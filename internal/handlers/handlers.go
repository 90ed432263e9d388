package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/security"
	"portfolio/internal/service"
)

type Authenticator interface {
	Login(ctx context.Context, input service.LoginInput) (service.AuthResult, error)
	SignUp(ctx context.Context, input service.RegisterInput) (service.AuthResult, error)
	Validate(token string) (*security.Claims, error)
}

type ProjectAPI interface {
	List(ctx context.Context, featuredOnly bool) ([]models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	Create(ctx context.Context, p models.Project) (models.Project, error)
	Update(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id string) error
	AttachImage(ctx context.Context, id string, file io.Reader, declaredType string) (models.Project, error)
}

type SkillAPI interface {
	List(ctx context.Context, category string) ([]models.Skill, error)
	Get(ctx context.Context, id string) (models.Skill, error)
	Create(ctx context.Context, s models.Skill) (models.Skill, error)
	Update(ctx context.Context, id string, patch models.SkillPatch) (models.Skill, error)
	Delete(ctx context.Context, id string) error
}

type ExperienceAPI interface {
	List(ctx context.Context) ([]models.Experience, error)
	Get(ctx context.Context, id string) (models.Experience, error)
	Create(ctx context.Context, e models.Experience) (models.Experience, error)
	Update(ctx context.Context, id string, patch models.ExperiencePatch) (models.Experience, error)
	Delete(ctx context.Context, id string) error
}

type EducationAPI interface {
	List(ctx context.Context) ([]models.Education, error)
	Get(ctx context.Context, id string) (models.Education, error)
	Create(ctx context.Context, e models.Education) (models.Education, error)
	Update(ctx context.Context, id string, patch models.EducationPatch) (models.Education, error)
	Delete(ctx context.Context, id string) error
}

type ContactAPI interface {
	Submit(ctx context.Context, input service.ContactInput) (models.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// HealthCheck is one dependency checked by /healthz.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Deps struct {
	Log            zerolog.Logger
	Environment    string
	Auth           Authenticator
	Projects       ProjectAPI
	Skills         SkillAPI
	Experiences    ExperienceAPI
	Education      EducationAPI
	Contact        ContactAPI
	Checks         []HealthCheck
	Metrics        http.Handler
	AuthLimiter    gin.HandlerFunc
	ContactLimiter gin.HandlerFunc
	MaxUploadBytes int64
}

type HandlerSet struct {
	log            zerolog.Logger
	environment    string
	auth           Authenticator
	projects       ProjectAPI
	skills         SkillAPI
	experiences    ExperienceAPI
	education      EducationAPI
	contact        ContactAPI
	checks         []HealthCheck
	metrics        http.Handler
	authLimiter    gin.HandlerFunc
	contactLimiter gin.HandlerFunc
	maxUploadBytes int64
}

func NewHandlerSet(deps Deps) HandlerSet {
	return HandlerSet{
		log:            deps.Log,
		environment:    deps.Environment,
		auth:           deps.Auth,
		projects:       deps.Projects,
		skills:         deps.Skills,
		experiences:    deps.Experiences,
		education:      deps.Education,
		contact:        deps.Contact,
		checks:         deps.Checks,
		metrics:        deps.Metrics,
		authLimiter:    orPassThrough(deps.AuthLimiter),
		contactLimiter: orPassThrough(deps.ContactLimiter),
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

func (h HandlerSet) Routes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	api := router.Group("/api")

	authenticate := middleware.Auth(h.auth)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)
	protected := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticate, adminOnly, handler}
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.authLimiter, h.Login)
		auth.POST("/register", h.authLimiter, h.Register)
		auth.GET("/me", protected(h.Me)...)
	}

	projects := api.Group("/projects")
	{
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.POST("", protected(h.CreateProject)...)
		projects.PUT("/:id", protected(h.UpdateProject)...)
		projects.DELETE("/:id", protected(h.DeleteProject)...)
		projects.POST("/:id/image", protected(h.UploadProjectImage)...)
	}

	skills := api.Group("/skills")
	{
		skills.GET("", h.ListSkills)
		skills.GET("/:id", h.GetSkill)
		skills.POST("", protected(h.CreateSkill)...)
		skills.PUT("/:id", protected(h.UpdateSkill)...)
		skills.DELETE("/:id", protected(h.DeleteSkill)...)
	}

	experiences := api.Group("/experiences")
	{
		experiences.GET("", h.ListExperiences)
		experiences.GET("/:id", h.GetExperience)
		experiences.POST("", protected(h.CreateExperience)...)
		experiences.PUT("/:id", protected(h.UpdateExperience)...)
		experiences.DELETE("/:id", protected(h.DeleteExperience)...)
	}

	education := api.Group("/education")
	{
		education.GET("", h.ListEducation)
		education.GET("/:id", h.GetEducation)
		education.POST("", protected(h.CreateEducation)...)
		education.PUT("/:id", protected(h.UpdateEducation)...)
		education.DELETE("/:id", protected(h.DeleteEducation)...)
	}

	contact := api.Group("/contact")
	{
		contact.POST("", h.contactLimiter, h.SubmitContact)
		contact.GET("", protected(h.ListContactMessages)...)
		contact.PUT("/:id/read", protected(h.MarkContactRead)...)
		contact.DELETE("/:id", protected(h.DeleteContactMessage)...)
	}
}

func orPassThrough(handler gin.HandlerFunc) gin.HandlerFunc {
	if handler != nil {
		return handler
	}
	return func(c *gin.Context) { c.Next() }
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/media/sniffer"
	"portfolio/internal/models"
)

type projectRequest struct {
	Title               string     `json:"title" binding:"required,max=200"`
	Description         string     `json:"description" binding:"required"`
	DetailedDescription *string    `json:"detailedDescription"`
	ImageURL            *string    `json:"imageUrl" binding:"omitempty,url"`
	LiveURL             *string    `json:"liveUrl" binding:"omitempty,url"`
	GithubURL           *string    `json:"githubUrl" binding:"omitempty,url"`
	Technologies        []string   `json:"technologies"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsFeatured          bool       `json:"isFeatured"`
	DisplayOrder        int        `json:"displayOrder"`
}

func (r projectRequest) toModel() models.Project {
	return models.Project{
		Title:               r.Title,
		Description:         r.Description,
		DetailedDescription: r.DetailedDescription,
		ImageURL:            r.ImageURL,
		LiveURL:             r.LiveURL,
		GithubURL:           r.GithubURL,
		Technologies:        r.Technologies,
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		IsFeatured:          r.IsFeatured,
		DisplayOrder:        r.DisplayOrder,
	}
}

func (h HandlerSet) ListProjects(c *gin.Context) {
	featuredOnly, err := boolQuery(c, "featuredOnly")
	if err != nil {
		badRequest(c, err)
		return
	}

	projects, err := h.projects.List(c.Request.Context(), featuredOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h HandlerSet) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h HandlerSet) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h HandlerSet) UpdateProject(c *gin.Context) {
	var patch models.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h HandlerSet) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) UploadProjectImage(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		// multipart framing overhead on top of the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	project, err := h.projects.AttachImage(c.Request.Context(), c.Param("id"), file, sniffer.DeclaredType(http.Header(header.Header)))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

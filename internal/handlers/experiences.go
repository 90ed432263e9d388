package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
)

type experienceRequest struct {
	Company          string     `json:"company" binding:"required,max=200"`
	Position         string     `json:"position" binding:"required,max=200"`
	Location         *string    `json:"location"`
	Description      string     `json:"description" binding:"required"`
	Responsibilities []string   `json:"responsibilities"`
	Technologies     []string   `json:"technologies"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	IsCurrentRole    bool       `json:"isCurrentRole"`
	DisplayOrder     int        `json:"displayOrder"`
}

func (h HandlerSet) ListExperiences(c *gin.Context) {
	items, err := h.experiences.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h HandlerSet) GetExperience(c *gin.Context) {
	item, err := h.experiences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) CreateExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.experiences.Create(c.Request.Context(), models.Experience{
		Company:          req.Company,
		Position:         req.Position,
		Location:         req.Location,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Technologies:     req.Technologies,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IsCurrentRole:    req.IsCurrentRole,
		DisplayOrder:     req.DisplayOrder,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h HandlerSet) UpdateExperience(c *gin.Context) {
	var patch models.ExperiencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.experiences.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) DeleteExperience(c *gin.Context) {
	if err := h.experiences.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
)

type educationRequest struct {
	Institution         string     `json:"institution" binding:"required,max=200"`
	Degree              string     `json:"degree" binding:"required,max=200"`
	FieldOfStudy        *string    `json:"fieldOfStudy"`
	Location            *string    `json:"location"`
	Description         *string    `json:"description"`
	GPA                 *float64   `json:"gpa"`
	Coursework          []string   `json:"coursework"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	IsCurrentlyEnrolled bool       `json:"isCurrentlyEnrolled"`
	DisplayOrder        int        `json:"displayOrder"`
}

func (h HandlerSet) ListEducation(c *gin.Context) {
	items, err := h.education.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h HandlerSet) GetEducation(c *gin.Context) {
	item, err := h.education.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) CreateEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.education.Create(c.Request.Context(), models.Education{
		Institution:         req.Institution,
		Degree:              req.Degree,
		FieldOfStudy:        req.FieldOfStudy,
		Location:            req.Location,
		Description:         req.Description,
		GPA:                 req.GPA,
		Coursework:          req.Coursework,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		IsCurrentlyEnrolled: req.IsCurrentlyEnrolled,
		DisplayOrder:        req.DisplayOrder,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h HandlerSet) UpdateEducation(c *gin.Context) {
	var patch models.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.education.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h HandlerSet) DeleteEducation(c *gin.Context) {
	if err := h.education.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

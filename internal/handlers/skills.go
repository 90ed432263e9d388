package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
)

type skillRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	Category         string  `json:"category" binding:"required,max=50"`
	ProficiencyLevel int     `json:"proficiencyLevel" binding:"min=1,max=100"`
	IconURL          *string `json:"iconUrl" binding:"omitempty,url"`
	DisplayOrder     int     `json:"displayOrder"`
}

func (h HandlerSet) ListSkills(c *gin.Context) {
	skills, err := h.skills.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h HandlerSet) GetSkill(c *gin.Context) {
	skill, err := h.skills.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h HandlerSet) CreateSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	skill, err := h.skills.Create(c.Request.Context(), models.Skill{
		Name:             req.Name,
		Category:         req.Category,
		ProficiencyLevel: req.ProficiencyLevel,
		IconURL:          req.IconURL,
		DisplayOrder:     req.DisplayOrder,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h HandlerSet) UpdateSkill(c *gin.Context) {
	var patch models.SkillPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}

	skill, err := h.skills.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h HandlerSet) DeleteSkill(c *gin.Context) {
	if err := h.skills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

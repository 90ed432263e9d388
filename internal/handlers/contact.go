package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/service"
)

type contactRequest struct {
	Name    string  `json:"name" binding:"required,max=100"`
	Email   string  `json:"email" binding:"required,email,max=100"`
	Subject *string `json:"subject" binding:"omitempty,max=200"`
	Message string  `json:"message" binding:"required,max=5000"`
}

func (h HandlerSet) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.contact.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}

func (h HandlerSet) ListContactMessages(c *gin.Context) {
	unreadOnly, err := boolQuery(c, "unreadOnly")
	if err != nil {
		badRequest(c, err)
		return
	}

	messages, err := h.contact.List(c.Request.Context(), unreadOnly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h HandlerSet) MarkContactRead(c *gin.Context) {
	if err := h.contact.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteContactMessage(c *gin.Context) {
	if err := h.contact.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

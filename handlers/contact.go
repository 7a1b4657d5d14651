package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/services/notification"
)

// ContactHandler relays contact-form submissions to the studio owner.
type ContactHandler struct {
	notifySvc notification.Service
	logger    *zap.Logger
}

// NewContactHandler builds the handler.
func NewContactHandler(notifySvc notification.Service, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{notifySvc: notifySvc, logger: logger}
}

// Send emails the submitted message to the owner.
func (h *ContactHandler) Send(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.notifySvc.SendContactMessage(input.Name, input.Email, input.Message); err != nil {
		h.logger.Error("contact email failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"error": "Email failed to send. Please try again soon."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

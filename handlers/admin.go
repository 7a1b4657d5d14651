package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/models"
	"glowbook/services/admin"
	"glowbook/services/availability"
)

// AdminHandler serves the owner's login and availability dashboard.
type AdminHandler struct {
	adminSvc admin.Service
	availSvc availability.Service
	logger   *zap.Logger
}

// NewAdminHandler builds the handler.
func NewAdminHandler(adminSvc admin.Service, availSvc availability.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, availSvc: availSvc, logger: logger}
}

// Login verifies credentials and returns a bearer token for the dashboard.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	token, err := h.adminSvc.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
			return
		}
		h.logger.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login is unavailable right now."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ChangePassword rotates the admin password.
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var input struct {
		Username    string `json:"username" binding:"required"`
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	err := h.adminSvc.ChangePassword(c.Request.Context(), input.Username, input.OldPassword, input.NewPassword)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
			return
		}
		h.logger.Error("admin password change failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the password."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAvailability returns the weekly availability template for editing,
// along with the grid labels the dashboard renders.
func (h *AdminHandler) GetAvailability(c *gin.Context) {
	avail, err := h.availSvc.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load the availability template."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"days":         models.Days,
		"timeblocks":   models.TimeBlocks,
		"availability": avail,
	})
}

// UpdateAvailability replaces the weekly availability template.
func (h *AdminHandler) UpdateAvailability(c *gin.Context) {
	var input struct {
		Availability models.WeeklyAvailability `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.availSvc.Update(c.Request.Context(), input.Availability); err != nil {
		h.logger.Error("failed to save availability", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save the availability template."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

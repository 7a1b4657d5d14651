package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/middleware"
	"glowbook/services/booking"
)

// Apology messages shown to visitors when an external call fails.
const (
	apologyConnection = "Sorry, there was an error while connecting to the calendar."
	apologyBooking    = "Sorry, there was an error while booking the appointment."
	apologyLookup     = "Sorry, there was an error while looking up your booking."
	apologyCancel     = "Sorry, there was an error while cancelling the event."
	apologyReschedule = "Sorry, there was an error while rescheduling your appointment."
	apologyEmail      = "Sorry, there was an error while sending your confirmation email."
)

// BookingHandler serves the visitor booking flow.
type BookingHandler struct {
	svc    booking.Service
	logger *zap.Logger
}

// NewBookingHandler builds the handler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// GetOpenings returns the week info and openings for the session's current
// offset, along with the timezone display string.
func (h *BookingHandler) GetOpenings(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	sched, err := h.svc.WeekSchedule(c.Request.Context(), sess)
	if err != nil {
		h.logger.Error("failed to get openings", zap.Int("offset", sess.Offset), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week":     sched.Info,
		"openings": sched.Openings,
		"offset":   sess.Offset,
		"timezone": sess.TimezoneLabel,
	})
}

// Navigate moves the browsed week forward or back; the offset never goes
// negative.
func (h *BookingHandler) Navigate(c *gin.Context) {
	var input struct {
		Direction string `json:"direction" binding:"required,oneof=next prev"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess := middleware.SessionFromContext(c)
	delta := 1
	if input.Direction == "prev" {
		delta = -1
	}
	h.svc.Navigate(sess, delta)

	c.JSON(http.StatusOK, gin.H{"offset": sess.Offset})
}

// SelectSlot records the visitor's chosen (day, block) pair after
// revalidating it against fresh openings.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		Day   string `json:"day" binding:"required"`
		Block string `json:"block" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess := middleware.SessionFromContext(c)
	if err := h.svc.SelectSlot(c.Request.Context(), sess, input.Day, input.Block); err != nil {
		switch {
		case errors.Is(err, booking.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "That time is no longer available. Please pick another slot."})
		case errors.Is(err, booking.ErrConnection):
			c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		default:
			h.logger.Error("failed to select slot", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": apologyBooking})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"apptDate": sess.ApptDate,
		"apptTime": sess.ApptTime,
		"timezone": sess.TimezoneLabel,
	})
}

// SetContact records the visitor's name and email ahead of confirmation.
func (h *BookingHandler) SetContact(c *gin.Context) {
	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess := middleware.SessionFromContext(c)
	if err := h.svc.SetContact(sess, input.Name, input.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rescheduling": sess.Rescheduling})
}

// Confirm books the selected slot on the remote calendar and emails the
// confirmation. A failed email is reported alongside the booked event.
func (h *BookingHandler) Confirm(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	receipt, err := h.svc.Confirm(c.Request.Context(), sess)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrIncompleteBooking):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please pick a slot and enter your details first."})
		case errors.Is(err, booking.ErrConnection):
			c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		default:
			h.logger.Error("failed to confirm booking", zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"error": apologyBooking})
		}
		return
	}

	resp := gin.H{"apptID": receipt.EventID}
	if receipt.NotificationErr != nil {
		resp["emailError"] = apologyEmail
	}
	c.JSON(http.StatusOK, resp)
}

// GetAppointment fetches an existing appointment by its remote event ID and
// stores it in the session for cancelling or rescheduling.
func (h *BookingHandler) GetAppointment(c *gin.Context) {
	apptID := c.Param("apptID")
	sess := middleware.SessionFromContext(c)

	if err := h.svc.LoadAppointment(c.Request.Context(), sess, apptID); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": apologyLookup})
		case errors.Is(err, booking.ErrConnection):
			c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		default:
			h.logger.Error("failed to load appointment", zap.String("apptID", apptID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": apologyLookup})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"apptDate": sess.ApptDate,
		"apptTime": sess.ApptTime,
	})
}

// Cancel deletes the remote event and sends the cancellation notice.
func (h *BookingHandler) Cancel(c *gin.Context) {
	apptID := c.Param("apptID")
	sess := middleware.SessionFromContext(c)

	receipt, err := h.svc.Cancel(c.Request.Context(), sess, apptID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": apologyLookup})
		case errors.Is(err, booking.ErrConnection):
			c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		default:
			h.logger.Error("failed to cancel appointment", zap.String("apptID", apptID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"error": apologyCancel})
		}
		return
	}

	resp := gin.H{"success": true}
	if receipt.NotificationErr != nil {
		resp["emailError"] = apologyEmail
	}
	c.JSON(http.StatusOK, resp)
}

// StartReschedule flags the session as rescheduling and retains the current
// slot for rollback.
func (h *BookingHandler) StartReschedule(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	h.svc.StartReschedule(sess)
	c.JSON(http.StatusOK, gin.H{"rescheduling": true})
}

// Reschedule moves the appointment to the newly selected slot.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	apptID := c.Param("apptID")
	sess := middleware.SessionFromContext(c)

	receipt, err := h.svc.Reschedule(c.Request.Context(), sess, apptID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrIncompleteBooking):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please pick a new slot first."})
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": apologyLookup})
		case errors.Is(err, booking.ErrConnection):
			c.JSON(http.StatusOK, gin.H{"error": apologyConnection})
		default:
			h.logger.Error("failed to reschedule", zap.String("apptID", apptID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"error": apologyReschedule})
		}
		return
	}

	resp := gin.H{"success": true, "apptID": receipt.EventID}
	if receipt.NotificationErr != nil {
		resp["emailError"] = apologyEmail
	}
	c.JSON(http.StatusOK, resp)
}

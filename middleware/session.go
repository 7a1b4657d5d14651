package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/models"
	"glowbook/services/booking"
	"glowbook/utils"
)

// SessionCookieName carries the visitor's booking session identifier.
const SessionCookieName = "glowbook_session"

const sessionContextKey = "bookingSession"

// VisitorSession loads the visitor's booking session from the cookie, or
// creates a fresh one, and saves it back after the handler runs so handler
// mutations survive across requests.
func VisitorSession(store *booking.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *models.BookingSession

		if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
			loaded, err := store.Load(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = loaded
			case errors.Is(err, booking.ErrSessionNotFound):
				// Expired cookie; fall through to a fresh session.
			default:
				utils.GetLogger().Error("failed to load booking session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session store unavailable"})
				return
			}
		}

		if sess == nil {
			sess = store.New()
			c.SetCookie(SessionCookieName, sess.SessionID, 0, "/", "", false, true)
		}

		c.Set(sessionContextKey, sess)
		c.Next()

		if err := store.Save(c.Request.Context(), sess); err != nil {
			utils.GetLogger().Error("failed to save booking session",
				zap.String("sessionID", sess.SessionID), zap.Error(err))
		}
	}
}

// SessionFromContext returns the booking session attached by VisitorSession.
func SessionFromContext(c *gin.Context) *models.BookingSession {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.BookingSession)
	return sess
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"glowbook/handlers"
	"glowbook/middleware"
	"glowbook/services/booking"
	"glowbook/utils"
)

// HandlerBundle collects the handlers and the session store the routes need.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Admin    *handlers.AdminHandler
	Contact  *handlers.ContactHandler
	Sessions *booking.SessionStore
}

// RegisterBookingRoutes sets up the visitor booking endpoints. Every one of
// them runs inside the visitor session middleware.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.VisitorSession(hb.Sessions))
	{
		api.GET("/openings", hb.Booking.GetOpenings)
		api.POST("/week/navigate", hb.Booking.Navigate)
		api.POST("/slot", hb.Booking.SelectSlot)
		api.POST("/contact-details", hb.Booking.SetContact)
		api.POST("/appointment", hb.Booking.Confirm)
		api.GET("/appointment/:apptID", hb.Booking.GetAppointment)
		api.DELETE("/appointment/:apptID", hb.Booking.Cancel)
		api.PUT("/appointment/:apptID", hb.Booking.Reschedule)
		api.POST("/reschedule/start", hb.Booking.StartReschedule)
	}
}

// RegisterContactRoute sets up the contact-form relay.
func RegisterContactRoute(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/contact", hb.Contact.Send)
}

// RegisterAdminRoutes sets up the owner's login and availability dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.Admin.Login)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.GET("/availability", hb.Admin.GetAvailability)
		protected.PUT("/availability", hb.Admin.UpdateAvailability)
		protected.POST("/password", hb.Admin.ChangePassword)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterContactRoute(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}

package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// apologyInternal matches the register of the booking handlers' apology
// messages, so a panicked request reads like any other failure to a visitor.
const apologyInternal = "Sorry, something went wrong on our end. Please try again."

// ErrorHandler recovers from handler panics, logs them, and answers with
// the standard apology JSON. It is the outermost middleware on the router.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("unhandled panic",
					zap.Any("panic", r),
					zap.String("path", c.FullPath()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apologyInternal})
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"clinicvoice/services/telephony"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TwilioSignatureMiddleware rejects webhooks that Twilio did not sign.
// A nil validator disables the check.
func TwilioSignatureMiddleware(validator *telephony.SignatureValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validator == nil {
			c.Next()
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		if !validator.Valid(c.Request) {
			zap.L().Warn("Rejected unsigned webhook",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", getClientIP(c)))
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

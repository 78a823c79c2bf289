// File: clinicvoice/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups the endpoint handlers and the guards placed in front of them.
type HandlerBundle struct {
	// Voice webhooks (Twilio).
	Index         gin.HandlerFunc
	InboundCall   gin.HandlerFunc
	ProcessSpeech gin.HandlerFunc
	CallStatus    gin.HandlerFunc

	// Machine-client endpoints.
	MakeCall         gin.HandlerFunc
	ListAppointments gin.HandlerFunc

	// Guards.
	WebhookGuard gin.HandlerFunc
	APIAuth      gin.HandlerFunc
	CallLimiter  gin.HandlerFunc
}

package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"clinicvoice/models"
	ai "clinicvoice/services/intelligence"
	"clinicvoice/services/telephony"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fallbackTwiML is spoken if a document cannot be rendered at all.
const fallbackTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>` + telephony.ApologyText + `</Say></Response>`

var phoneNumberPattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// Call statuses after which a call can send no more speech.
var terminalCallStatuses = map[string]bool{
	"completed": true,
	"busy":      true,
	"failed":    true,
	"no-answer": true,
	"canceled":  true,
}

// CallHandler bridges Twilio voice webhooks to the conversation service.
type CallHandler struct {
	Conversation ai.ConversationService
	Voice        *telephony.Responder
	Calls        telephony.CallPlacer
	Logger       *zap.Logger
}

func NewCallHandler(conv ai.ConversationService, voice *telephony.Responder, calls telephony.CallPlacer, logger *zap.Logger) *CallHandler {
	return &CallHandler{
		Conversation: conv,
		Voice:        voice,
		Calls:        calls,
		Logger:       logger,
	}
}

// Index handles GET /.
func (h *CallHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Twilio + Gemini AI Voice Bot Running")
}

// InboundCall handles POST /voice: greets the caller and starts collecting speech.
func (h *CallHandler) InboundCall(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	callSID := c.PostForm("CallSid")
	if callSID == "" {
		logger.Warn("InboundCall: voice event without CallSid", zap.Error(ai.ErrMissingCallContext))
		h.writeTwiML(c, logger)(h.Voice.Apology())
		return
	}

	if _, err := h.Conversation.StartCall(c.Request.Context(), callSID); err != nil {
		logger.Error("InboundCall: failed to start session", zap.String("callSid", callSID), zap.Error(err))
		h.writeTwiML(c, logger)(h.Voice.Apology())
		return
	}

	h.writeTwiML(c, logger)(h.Voice.Greeting())
}

// ProcessSpeech handles POST /process: one caller utterance per request.
func (h *CallHandler) ProcessSpeech(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	callSID := c.PostForm("CallSid")
	callerPhone := patientPhone(c)
	utterance := c.PostForm("SpeechResult")

	outcome, err := h.Conversation.ProcessTurn(c.Request.Context(), callSID, callerPhone, utterance)
	if err != nil {
		if errors.Is(err, ai.ErrNoActiveSession) || errors.Is(err, ai.ErrMissingCallContext) {
			logger.Warn("ProcessSpeech: no conversation for call", zap.String("callSid", callSID), zap.Error(err))
		} else {
			logger.Error("ProcessSpeech: turn failed", zap.String("callSid", callSID), zap.Error(err))
		}
		h.writeTwiML(c, logger)(h.Voice.Apology())
		return
	}

	switch outcome.Status {
	case models.TurnBooked:
		logger.Info("ProcessSpeech: appointment booked", zap.String("callSid", callSID))
		h.writeTwiML(c, logger)(h.Voice.Closing())
	case models.TurnContinue:
		h.writeTwiML(c, logger)(h.Voice.Ask(outcome.Text))
	default:
		logger.Warn("ProcessSpeech: unexpected turn status", zap.Stringer("status", outcome.Status))
		h.writeTwiML(c, logger)(h.Voice.Apology())
	}
}

// CallStatus handles POST /status: drops the session once the call is over.
func (h *CallHandler) CallStatus(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	callSID := c.PostForm("CallSid")
	status := c.PostForm("CallStatus")

	if callSID != "" && terminalCallStatuses[status] {
		if err := h.Conversation.EndCall(c.Request.Context(), callSID); err != nil {
			logger.Warn("CallStatus: failed to end session", zap.String("callSid", callSID), zap.Error(err))
		} else {
			logger.Debug("CallStatus: session closed", zap.String("callSid", callSID), zap.String("status", status))
		}
	}
	c.Status(http.StatusNoContent)
}

// MakeCall handles POST /make_call: rings to_phone_no and runs the same flow once answered.
func (h *CallHandler) MakeCall(c *gin.Context) {
	logger := getLogger(c, h.Logger)
	to := strings.TrimSpace(c.PostForm("to_phone_no"))
	if to == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "to_phone_no is required",
		})
		return
	}
	if !phoneNumberPattern.MatchString(to) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "to_phone_no must be an E.164 phone number",
		})
		return
	}

	callSID, err := h.Calls.PlaceCall(c.Request.Context(), to)
	if err != nil {
		logger.Error("MakeCall: failed to place call", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "failed to initiate call",
			"details": err.Error(),
		})
		return
	}

	logger.Info("MakeCall: call initiated", zap.String("callSid", callSID))
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Call initiated",
		"call_sid": callSID,
	})
}

// patientPhone is the far end of the call: From on inbound calls, To on
// calls placed through /make_call (Direction "outbound-api" or "outbound-dial").
func patientPhone(c *gin.Context) string {
	if strings.HasPrefix(c.PostForm("Direction"), "outbound") {
		return c.PostForm("To")
	}
	return c.PostForm("From")
}

// writeTwiML returns a sink for a rendered document. Voice endpoints always
// answer 200 so the caller never hits a dead line.
func (h *CallHandler) writeTwiML(c *gin.Context, logger *zap.Logger) func(string, error) {
	return func(doc string, err error) {
		if err != nil {
			logger.Error("failed to render TwiML", zap.Error(err))
			doc = fallbackTwiML
		}
		c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(doc))
	}
}

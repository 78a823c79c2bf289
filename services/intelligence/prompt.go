package ai

import (
	"fmt"
	"time"

	genai "github.com/google/generative-ai-go/genai"
)

const (
	// BookAppointmentAction is the only action the assistant may call.
	BookAppointmentAction = "bookAppointment"

	// SpeakLouderInstruction stands in for an empty transcript.
	SpeakLouderInstruction = "Ask user to speak louder."

	promptTimeLayout = "2006-01-02 15:04:05"
)

// BuildPrompt returns the system instruction for a new call. Relative times
// ("tomorrow", "in one hour") are resolved against now, captured once per call.
func BuildPrompt(now time.Time) string {
	return fmt.Sprintf(`
        You are an appointment scheduler for a dental clinic. Your job is to assist users in booking appointments with the doctor.
        If the user wants to book an appointment, politely ask for their name and the preferred date and time.
        If user says today, tomorrow, or after 1 hour, convert it based on current time: %s
        If the user says anything unrelated to booking an appointment, gently remind them you only help with appointment-related queries.
    `, now.Format(promptTimeLayout))
}

// BookAppointmentTool declares bookAppointment to Gemini. The caller's number
// is deliberately absent; it is taken from the telephony event.
func BookAppointmentTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        BookAppointmentAction,
			Description: "Books an appointment at a dental clinic.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"patient_name": {Type: genai.TypeString, Description: "The customer's name."},
					"date":         {Type: genai.TypeString, Description: "YYYY-MM-DD"},
					"time":         {Type: genai.TypeString, Description: "HH:MM"},
				},
				Required: []string{"patient_name", "date", "time"},
			},
		}},
	}
}

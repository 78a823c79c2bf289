package models

// SMSPayload is the body of a queued SMS task.
type SMSPayload struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	Kind     string `json:"kind"`               // "confirmation" or "reminder"
	FireDate string `json:"fireDate,omitempty"` // RFC3339, reminders only
}

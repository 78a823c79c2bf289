package models

import "time"

// Chat roles used in a call's history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one text turn of a call conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// CallSession is the conversation context for one call leg. The prompt is
// fixed when the session is created.
type CallSession struct {
	CallSID   string        `json:"callSid"`
	Prompt    string        `json:"prompt"`
	StartedAt time.Time     `json:"startedAt"`
	History   []ChatMessage `json:"history"`
}

// Record appends one caller utterance and the assistant's answer.
func (s *CallSession) Record(utterance, reply string) {
	s.History = append(s.History,
		ChatMessage{Role: RoleUser, Text: utterance},
		ChatMessage{Role: RoleModel, Text: reply},
	)
}

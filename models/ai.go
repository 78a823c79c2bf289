package models

// Reply is what the assistant produced for one turn: either a TextReply or
// an ActionReply. The set is closed.
type Reply interface {
	isReply()
}

// TextReply is plain conversational text to speak back to the caller.
type TextReply struct {
	Text string
}

// ActionReply is a structured call to one of the assistant's declared actions.
type ActionReply struct {
	Name string
	Args map[string]any
}

func (TextReply) isReply()   {}
func (ActionReply) isReply() {}

// TurnStatus says how a conversational turn ended.
type TurnStatus int

const (
	TurnContinue TurnStatus = iota // keep collecting speech
	TurnBooked                     // appointment stored, session closed
	TurnError                      // apologise and hang up
)

func (s TurnStatus) String() string {
	switch s {
	case TurnContinue:
		return "continue"
	case TurnBooked:
		return "booked"
	default:
		return "error"
	}
}

// TurnOutcome is the result of processing one caller utterance.
type TurnOutcome struct {
	Status      TurnStatus
	Text        string       // assistant line, set on TurnContinue
	Appointment *Appointment // set on TurnBooked
}

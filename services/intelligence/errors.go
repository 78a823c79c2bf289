package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCallContext is returned when an event carries no call identifier.
	ErrMissingCallContext = errors.New("missing call identifier")
	// ErrNoActiveSession is returned for a call identifier with no conversation.
	ErrNoActiveSession = errors.New("no active session for call")
	// ErrAITransport covers an unreachable assistant and replies that cannot be interpreted.
	ErrAITransport = errors.New("assistant unavailable or reply malformed")
)

// ActionError reports an action call the service cannot carry out.
type ActionError struct {
	Action string
	Reason string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %q: %s", e.Action, e.Reason)
}

// Unwrap classifies every ActionError as a malformed assistant reply.
func (e *ActionError) Unwrap() error {
	return ErrAITransport
}

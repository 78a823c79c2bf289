package ai

import (
	"context"
	"errors"
	"sync"

	"clinicvoice/models"
)

// SessionFactory builds the conversation context for a call seen for the first time.
type SessionFactory func(callSID string) *models.CallSession

// SessionRegistry maps call identifiers to their conversation sessions.
type SessionRegistry struct {
	store SessionStore
	mu    sync.Mutex
}

func NewSessionRegistry(store SessionStore) *SessionRegistry {
	return &SessionRegistry{store: store}
}

// GetOrCreate returns the session for callSID, creating it with factory when
// absent. factory runs at most once per absent call.
func (r *SessionRegistry) GetOrCreate(ctx context.Context, callSID string, factory SessionFactory) (*models.CallSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.store.Get(ctx, callSID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrNoActiveSession) {
		return nil, err
	}

	session = factory(callSID)
	if err := r.store.Set(ctx, callSID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Lookup returns ErrNoActiveSession when callSID has no session.
func (r *SessionRegistry) Lookup(ctx context.Context, callSID string) (*models.CallSession, error) {
	return r.store.Get(ctx, callSID)
}

// Save stores the session's new state. A call removed in the meantime is not
// brought back; Save then returns ErrNoActiveSession.
func (r *SessionRegistry) Save(ctx context.Context, session *models.CallSession) error {
	return r.store.Update(ctx, session.CallSID, session)
}

// Remove deletes the session. Removing an unknown call is not an error.
func (r *SessionRegistry) Remove(ctx context.Context, callSID string) error {
	return r.store.Clear(ctx, callSID)
}

package registration

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFormTTL is how long an untouched form session survives.
const DefaultFormTTL = 30 * time.Minute

// Store keeps the live form sessions, keyed by form ID. Opening a form is the
// equivalent of mounting the component; Discard and Sweep unmount it.
type Store struct {
	newForm func() *Form
	ttl     time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	forms map[string]*Form
}

// NewStore creates a store whose forms are built by newForm. A ttl of zero
// selects DefaultFormTTL.
func NewStore(newForm func() *Form, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	return &Store{
		newForm: newForm,
		ttl:     ttl,
		now:     time.Now,
		forms:   make(map[string]*Form),
	}
}

// Open creates and registers a new empty form.
func (s *Store) Open() *Form {
	f := s.newForm()
	s.mu.Lock()
	s.forms[f.ID()] = f
	s.mu.Unlock()
	return f
}

// Get returns the form with the given ID.
func (s *Store) Get(id string) (*Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[id]
	return f, ok
}

// Discard drops a form, typically after a successful submission.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.forms, id)
	s.mu.Unlock()
}

// Len returns the number of live forms.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

// Sweep drops every form idle for longer than the TTL. Forms with a
// submission in flight are kept. It returns the number of forms dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, f := range s.forms {
		if f.idle(now, s.ttl) {
			delete(s.forms, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps the store every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.DebugContext(ctx, "Swept idle registration forms", "count", n, "remaining", s.Len())
			}
		}
	}
}

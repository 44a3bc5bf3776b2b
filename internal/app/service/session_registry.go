package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"token_creator/internal/app/port"
)

// ViewFactory builds the view of a new session.
type ViewFactory func(sessionID string) port.TokenCreatorView

// SessionRegistry implements port.SessionRegistry on top of go-cache. Views idle for
// longer than ttl are evicted by the janitor and closed.
type SessionRegistry struct {
	views   *cache.Cache
	factory ViewFactory
	ttl     time.Duration
	metrics port.MetricsRecorder
	logger  port.Logger
	mu      sync.Mutex
}

// NewSessionRegistry creates a registry whose janitor runs every cleanupInterval.
func NewSessionRegistry(ttl, cleanupInterval time.Duration, factory ViewFactory, metrics port.MetricsRecorder, logger port.Logger) *SessionRegistry {
	r := &SessionRegistry{
		views:   cache.New(ttl, cleanupInterval),
		factory: factory,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
	r.views.OnEvicted(func(id string, item interface{}) {
		if view, ok := item.(port.TokenCreatorView); ok {
			view.Close()
		}
		r.logger.Debug("Session evicted", "session", id)
		r.metrics.ActiveSessions(r.views.ItemCount())
	})
	return r
}

// Acquire implements port.SessionRegistry. Each access slides the session expiry.
// Unknown or expired ids get a fresh id so a late eviction of the old entry cannot
// close the new view.
func (r *SessionRegistry) Acquire(sessionID string) (string, port.TokenCreatorView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID != "" {
		if item, ok := r.views.Get(sessionID); ok {
			view := item.(port.TokenCreatorView)
			r.views.Set(sessionID, view, cache.DefaultExpiration)
			return sessionID, view
		}
	}

	id := uuid.NewString()
	view := r.factory(id)
	r.views.Set(id, view, cache.DefaultExpiration)
	r.logger.Info("Session created", "session", id)
	r.metrics.ActiveSessions(r.views.ItemCount())
	return id, view
}

// Lookup returns the view of an existing session without creating one.
func (r *SessionRegistry) Lookup(sessionID string) (port.TokenCreatorView, bool) {
	if sessionID == "" {
		return nil, false
	}
	item, ok := r.views.Get(sessionID)
	if !ok {
		return nil, false
	}
	return item.(port.TokenCreatorView), true
}

// Count implements port.SessionRegistry. Expired but not yet evicted sessions are included.
func (r *SessionRegistry) Count() int {
	return r.views.ItemCount()
}

// Expire runs the eviction pass immediately.
func (r *SessionRegistry) Expire() {
	r.views.DeleteExpired()
}

// Close closes every view and empties the registry.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.views.DeleteExpired()
	for id := range r.views.Items() {
		r.views.Delete(id)
	}
	r.metrics.ActiveSessions(0)
}

package interview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("interview: session not found")

type entry struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Registry holds the live sessions in memory. Sessions are never persisted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	build    func(id string) *Controller
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(build func(id string) *Controller, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		build:    build,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *Registry) Create() *Controller {
	ctrl := r.build(uuid.NewString())
	r.mu.Lock()
	r.sessions[ctrl.ID()] = &entry{ctrl: ctrl, lastSeen: r.now()}
	r.mu.Unlock()
	return ctrl
}

// Get also marks the session as recently used.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = r.now()
	return e.ctrl, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.ctrl.Close()
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and removes sessions idle for longer than the TTL. It
// returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	var expired []*Controller
	r.mu.Lock()
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			expired = append(expired, e.ctrl)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, ctrl := range expired {
		ctrl.Close()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			r.Sweep(now)
		}
	}
}

// CloseAll closes every session, used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range sessions {
		e.ctrl.Close()
	}
}

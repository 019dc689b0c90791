// Package view keeps the ephemeral per-page state of each browser session:
// detail-page visits, verification flows and listing drafts. A view lives
// until the client closes it, its owner opens a replacement, or it idles out.
package view

import (
	"fmt"
	"sync"
	"time"

	"mottars_backend/internal/common"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Kind names what a view is for.
type Kind string

const (
	KindDetailVisit      Kind = "detail_visit"
	KindVerificationFlow Kind = "verification_flow"
	KindListingDraft     Kind = "listing_draft"
)

// Closer is implemented by every view. Close must be safe to call more than once.
type Closer interface {
	Close()
}

type entry struct {
	id         string
	owner      string
	kind       Kind
	view       Closer
	scope      *Scope
	lastActive time.Time
}

// Registry holds open views keyed by id. Only the owning session may reach a view.
type Registry struct {
	clock  clockwork.Clock
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry(clk clockwork.Clock, logger *zap.Logger) *Registry {
	return &Registry{
		clock:   clk,
		logger:  logger.Named("ViewRegistry"),
		entries: make(map[string]*entry),
	}
}

// Clock returns the time source shared by all views.
func (r *Registry) Clock() clockwork.Clock { return r.clock }

// Open builds a new view for owner. build receives the view id and a fresh
// Scope; if it fails the scope is closed and nothing is registered.
func (r *Registry) Open(owner string, kind Kind, build func(id string, scope *Scope) (Closer, error)) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("view owner cannot be empty")
	}
	id := uuid.NewString()
	scope := NewScope(r.clock)

	v, err := build(id, scope)
	if err != nil {
		scope.Close()
		return "", err
	}

	r.mu.Lock()
	r.entries[id] = &entry{id: id, owner: owner, kind: kind, view: v, scope: scope, lastActive: r.clock.Now()}
	r.mu.Unlock()

	r.logger.Debug("View opened", zap.String("viewID", id), zap.String("kind", string(kind)))
	return id, nil
}

// Lookup returns the view id for owner as a T, marking it active.
// Missing views, views of another session and views of another type all
// look the same to the caller.
func Lookup[T any](r *Registry, owner, id string) (T, error) {
	var zero T
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.owner != owner {
		r.mu.Unlock()
		return zero, common.ErrNotFound.WithDetails("View not found or already closed.")
	}
	e.lastActive = r.clock.Now()
	r.mu.Unlock()

	v, ok := e.view.(T)
	if !ok {
		return zero, common.ErrNotFound.WithDetails("View not found or already closed.")
	}
	return v, nil
}

// Close tears down one view of owner.
func (r *Registry) Close(owner, id string) error {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.owner != owner {
		r.mu.Unlock()
		return common.ErrNotFound.WithDetails("View not found or already closed.")
	}
	delete(r.entries, id)
	r.mu.Unlock()

	r.teardown(e, "closed")
	return nil
}

// CloseKind tears down every view of kind held by owner and returns how many were closed.
func (r *Registry) CloseKind(owner string, kind Kind) int {
	return r.closeWhere(func(e *entry) bool { return e.owner == owner && e.kind == kind }, "replaced")
}

// SweepIdle closes views not touched for longer than maxIdle.
func (r *Registry) SweepIdle(maxIdle time.Duration) int {
	cutoff := r.clock.Now().Add(-maxIdle)
	return r.closeWhere(func(e *entry) bool { return e.lastActive.Before(cutoff) }, "idle")
}

// CloseAll tears down every view. Used at shutdown.
func (r *Registry) CloseAll() int {
	return r.closeWhere(func(*entry) bool { return true }, "shutdown")
}

// Count returns the number of open views.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Pending returns the number of unfinished tasks across all open views.
func (r *Registry) Pending() int {
	return r.sumScopes((*Scope).Pending)
}

// Due returns the number of tasks across all open views whose deadline has
// passed but whose callback has not returned yet.
func (r *Registry) Due() int {
	return r.sumScopes((*Scope).Due)
}

func (r *Registry) sumScopes(count func(*Scope) int) int {
	r.mu.Lock()
	scopes := make([]*Scope, 0, len(r.entries))
	for _, e := range r.entries {
		scopes = append(scopes, e.scope)
	}
	r.mu.Unlock()

	n := 0
	for _, sc := range scopes {
		n += count(sc)
	}
	return n
}

func (r *Registry) closeWhere(match func(*entry) bool, reason string) int {
	r.mu.Lock()
	var victims []*entry
	for id, e := range r.entries {
		if match(e) {
			victims = append(victims, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range victims {
		r.teardown(e, reason)
	}
	return len(victims)
}

func (r *Registry) teardown(e *entry, reason string) {
	e.view.Close()
	e.scope.Close()
	r.logger.Debug("View closed",
		zap.String("viewID", e.id),
		zap.String("kind", string(e.kind)),
		zap.String("reason", reason),
	)
}

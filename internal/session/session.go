// Package session tracks the current authenticated identity and
// notifies subscribers on change. The holder is an explicit object
// owned by the application root and injected into every resource
// manager; identity is written only by the auth provider's change
// callback (or the HTTP layer via request context) and read by every
// authorization check.
package session

import (
	"context"
	"sync"
)

// Identity is what the external auth provider tells us about the
// signed-in user. This layer only reads it.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
}

// Provider is the external auth provider's change-notification
// stream. The callback fires with nil on sign-out.
type Provider interface {
	OnIdentityChanged(fn func(*Identity))
}

type ctxKey struct{}

// WithIdentity returns a context carrying a request-scoped identity,
// set by the auth middleware after verifying the bearer token.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts a request-scoped identity, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

// Holder owns the current identity. Single writer (the provider
// callback), many readers. Updates are whole-value replacements, so
// readers never observe a partial identity.
type Holder struct {
	mu      sync.Mutex
	current *Identity
	admins  map[string]struct{}
	subs    map[int]func(*Identity)
	nextSub int
	ready   chan struct{}
	bound   bool
}

// NewHolder creates a holder whose identity is unknown until the
// provider's first change notification fires.
func NewHolder(adminUIDs []string) *Holder {
	admins := make(map[string]struct{}, len(adminUIDs))
	for _, uid := range adminUIDs {
		admins[uid] = struct{}{}
	}
	return &Holder{
		admins: admins,
		subs:   make(map[int]func(*Identity)),
		ready:  make(chan struct{}),
	}
}

// NewEstablished creates a holder with a known identity. Used by the
// HTTP layer for request-scoped sessions and by tests.
func NewEstablished(id *Identity, adminUIDs []string) *Holder {
	h := NewHolder(adminUIDs)
	h.Set(id)
	return h
}

// Bind registers exactly one listener with the external provider for
// the process lifetime. Calling it twice is a no-op.
func (h *Holder) Bind(p Provider) {
	h.mu.Lock()
	if h.bound {
		h.mu.Unlock()
		return
	}
	h.bound = true
	h.mu.Unlock()

	p.OnIdentityChanged(h.Set)
}

// Set replaces the current identity (nil means signed out) and
// notifies subscribers. The first call marks the holder initialized.
func (h *Holder) Set(id *Identity) {
	h.mu.Lock()
	h.current = id
	select {
	case <-h.ready:
	default:
		close(h.ready)
	}
	subs := make([]func(*Identity), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

// Current returns the latest delivered identity, or nil.
func (h *Holder) Current() *Identity {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Subscribe registers fn, immediately delivers the current value,
// and returns an unsubscribe func.
func (h *Holder) Subscribe(fn func(*Identity)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	current := h.current
	h.mu.Unlock()

	fn(current)

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// RequireAuth resolves the effective identity or fails with
// ErrUnauthenticated. A request-scoped identity on ctx wins;
// otherwise, when bound to a provider, it first awaits the
// provider's initial notification, since identity is unknown at
// process start.
func (h *Holder) RequireAuth(ctx context.Context) (*Identity, error) {
	if id, ok := FromContext(ctx); ok {
		return id, nil
	}

	h.mu.Lock()
	bound := h.bound
	h.mu.Unlock()

	if bound {
		select {
		case <-h.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	id := h.Current()
	if id == nil {
		return nil, ErrUnauthenticated
	}
	return id, nil
}

// RequireAdmin is RequireAuth plus the configured allow-list check.
func (h *Holder) RequireAdmin(ctx context.Context) (*Identity, error) {
	id, err := h.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !h.IsAdmin(id.UID) {
		return nil, ErrForbidden
	}
	return id, nil
}

// IsAdmin reports whether uid is in the admin allow-list.
func (h *Holder) IsAdmin(uid string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.admins[uid]
	return ok
}

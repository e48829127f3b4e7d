// Package session persists research sessions.
//
// A session is the state a user edits between solves: the research line
// (aspects and spacers) and the set of preferred aspects. The CLI keeps one
// named session on disk; the HTTP server creates one per client with a
// random ID and a TTL.
//
// # Backends
//
//   - [MemoryStore]: in-process, for tests and a single server instance
//   - [FileStore]: JSON files under ~/.config/aspectpath/sessions, for the CLI
//   - [RedisStore]: shared between server instances, expiry handled by Redis
//   - [MongoStore]: durable sessions in a MongoDB collection
//
// # Usage
//
//	sess := session.New(session.DefaultTTL)
//	sess.Push("ignis", "hex", "aer")
//	sess.Toggle("lux")
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // not found or expired
//	}
package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// DefaultTTL is the lifetime of sessions created by the HTTP server.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultID names the session the CLI works on when none is given.
const DefaultID = "default"

// Session stores one research line and its preferred aspects.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	Path      []string  `json:"path" bson:"path"`
	Preferred []string  `json:"preferred" bson:"preferred"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	// ExpiresAt is zero for sessions that never expire.
	ExpiresAt time.Time `json:"expires_at,omitzero" bson:"expires_at"`
}

// New creates an empty session with a random ID. A ttl of zero creates a
// session that never expires.
func New(ttl time.Duration) *Session {
	return NewNamed(uuid.NewString(), ttl)
}

// NewNamed creates an empty session with the given ID.
func NewNamed(id string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:        id,
		Path:      []string{},
		Preferred: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}

// IsExpired returns true if the session has an expiry in the past.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime, or zero for sessions without expiry.
func (s *Session) TTL() time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return max(time.Until(s.ExpiresAt), time.Second)
}

func (s *Session) touch() { s.UpdatedAt = time.Now().UTC() }

// Push appends entries to the research line.
func (s *Session) Push(entries ...string) {
	s.Path = append(s.Path, entries...)
	s.touch()
}

// SetPath replaces the research line.
func (s *Session) SetPath(path []string) {
	s.Path = slices.Clone(path)
	if s.Path == nil {
		s.Path = []string{}
	}
	s.touch()
}

// RemoveAt removes the entry at index i of the research line.
func (s *Session) RemoveAt(i int) error {
	if i < 0 || i >= len(s.Path) {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "position %d out of range (line has %d entries)", i+1, len(s.Path))
	}
	s.Path = slices.Delete(s.Path, i, i+1)
	s.touch()
	return nil
}

// Pop removes the last entry of the research line and reports whether
// there was one.
func (s *Session) Pop() bool {
	if len(s.Path) == 0 {
		return false
	}
	s.Path = s.Path[:len(s.Path)-1]
	s.touch()
	return true
}

// Clear empties the research line. The preferred set is kept.
func (s *Session) Clear() {
	s.Path = []string{}
	s.touch()
}

// Toggle flips aspect in the preferred set and reports whether it is now
// preferred. The set is kept sorted.
func (s *Session) Toggle(aspect string) bool {
	if i, ok := slices.BinarySearch(s.Preferred, aspect); ok {
		s.Preferred = slices.Delete(s.Preferred, i, i+1)
		s.touch()
		return false
	}
	s.Prefer(aspect)
	return true
}

// Prefer adds aspect to the preferred set.
func (s *Session) Prefer(aspect string) {
	if i, ok := slices.BinarySearch(s.Preferred, aspect); !ok {
		s.Preferred = slices.Insert(s.Preferred, i, aspect)
	}
	s.touch()
}

// Unprefer removes aspect from the preferred set.
func (s *Session) Unprefer(aspect string) {
	if i, ok := slices.BinarySearch(s.Preferred, aspect); ok {
		s.Preferred = slices.Delete(s.Preferred, i, i+1)
	}
	s.touch()
}

// ClearPreferred empties the preferred set.
func (s *Session) ClearPreferred() {
	s.Preferred = []string{}
	s.touch()
}

// Preferences returns a snapshot of the preferred set for the solver.
func (s *Session) Preferences() solver.Preferred {
	return solver.NewPreferred(s.Preferred...)
}

// normalize restores the sorted, duplicate-free preferred set after decoding
// data written by other tools.
func (s *Session) normalize() {
	if s.Path == nil {
		s.Path = []string{}
	}
	s.Preferred = slices.Compact(slices.Sorted(slices.Values(s.Preferred)))
	if s.Preferred == nil {
		s.Preferred = []string{}
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Load returns the session with the given ID, creating an empty one with
// ttl when it does not exist yet. The new session is not stored.
func Load(ctx context.Context, store Store, id string, ttl time.Duration) (*Session, error) {
	if err := apperrors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if sess == nil {
		sess = NewNamed(id, ttl)
	}
	return sess, nil
}

// MustExist returns the session with the given ID or a SESSION_NOT_FOUND error.
func MustExist(ctx context.Context, store Store, id string) (*Session, error) {
	if err := apperrors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	sess, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if sess == nil {
		return nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return sess, nil
}

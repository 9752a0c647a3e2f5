// ABOUTME: Identifier generators injected into the session and set-log code.
// ABOUTME: Provides UUIDv4 (default) and time-sortable ULID schemes.
package ids

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator hands out identifiers that are unique within the process.
type Generator interface {
	NewID() string
}

// Scheme names a generator implementation.
type Scheme string

const (
	SchemeUUID Scheme = "uuid"
	SchemeULID Scheme = "ulid"
)

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

// NewID calls f.
func (f GeneratorFunc) NewID() string {
	return f()
}

// UUID generates random v4 UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() string {
	return uuid.New().String()
}

// ULID generates monotonic ULIDs.
type ULID struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewULID creates a ULID generator backed by crypto/rand.
func NewULID() *ULID {
	return &ULID{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewID returns a new ULID string.
func (g *ULID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}

// New returns the generator for a scheme. Empty means uuid.
func New(scheme Scheme) (Generator, error) {
	switch scheme {
	case "", SchemeUUID:
		return UUID{}, nil
	case SchemeULID:
		return NewULID(), nil
	default:
		return nil, fmt.Errorf("unknown id scheme: %q", scheme)
	}
}

// Sequence returns a deterministic generator producing prefix-1, prefix-2, ...
// It is meant for tests and fixtures.
func Sequence(prefix string) Generator {
	var mu sync.Mutex
	n := 0
	return GeneratorFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

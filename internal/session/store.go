// Package session keeps per-visitor state: current currency, current
// search and current booking.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/skywings/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

type Store interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	// Lock marks the session busy until release is called. A second
	// Lock on a busy session fails with domain.ErrOperationInFlight.
	Lock(ctx context.Context, id string) (release func(), err error)
}

const minCleanupInterval = time.Second

// MemoryStore keeps encoded sessions so callers never share pointers.
// Expired sessions are purged by the cache janitor.
type MemoryStore struct {
	items *gocache.Cache

	mu   sync.Mutex
	busy map[string]struct{}
}

// NewMemoryStore sweeps expired sessions every ttl/2, at most once a
// second. A non-positive ttl keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return NewMemoryStoreWithCleanup(ttl, max(ttl/2, minCleanupInterval))
}

func NewMemoryStoreWithCleanup(ttl, cleanup time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryStore{
		items: gocache.New(ttl, cleanup),
		busy:  make(map[string]struct{}),
	}
}

func (m *MemoryStore) Create(_ context.Context, s *domain.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.items.Add(s.ID, payload, gocache.DefaultExpiration); err != nil {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	v, ok := m.items.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	var s domain.Session
	if err := json.Unmarshal(v.([]byte), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Save refreshes the session TTL.
func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	m.items.Set(s.ID, payload, gocache.DefaultExpiration)
	return nil
}

// Len counts stored sessions, including expired ones the janitor has not
// swept yet.
func (m *MemoryStore) Len() int {
	return m.items.ItemCount()
}

func (m *MemoryStore) Lock(_ context.Context, id string) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.busy[id]; held {
		return nil, domain.ErrOperationInFlight
	}
	m.busy[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.busy, id)
			m.mu.Unlock()
		})
	}, nil
}

var _ Store = (*MemoryStore)(nil)

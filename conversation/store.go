// Package conversation owns per-conversation state: the message, event, and
// guardrail logs, the shared profile, and the active agent. Access goes
// through the Store interface so the orchestrator never touches a raw map;
// the store's locking contract serializes turns per conversation.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/concierge/types"
)

// Conversation is the full persisted state for one conversation identifier.
// Logs are append-only: they grow monotonically across turns and are never
// rewritten.
type Conversation struct {
	ID               string                  `json:"id"`
	Profile          types.Profile           `json:"profile"`
	ActiveAgent      string                  `json:"active_agent"`
	Messages         []types.Message         `json:"messages"`
	Events           []types.Event           `json:"events"`
	GuardrailRecords []types.GuardrailRecord `json:"guardrail_records"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// Store is the injected conversation backend. Lock must be held for the
// whole turn (resolve through commit) and released on every exit path; the
// per-identifier mutual exclusion is what keeps concurrent turns for the
// same conversation from interleaving.
type Store interface {
	// Lock acquires the per-conversation mutex and returns its release func.
	Lock(id string) (unlock func())
	// GetOrCreate returns the conversation, creating it with an empty
	// profile and the given entry agent when the id is unknown.
	GetOrCreate(ctx context.Context, id, entryAgent string) (*Conversation, error)
	// Get returns the conversation if it exists.
	Get(ctx context.Context, id string) (*Conversation, bool, error)
	// Commit applies a completed turn's buffered delta in one step.
	Commit(ctx context.Context, id string, delta types.TurnDelta) error
}

// NewID allocates a fresh conversation identifier.
func NewID() string {
	return uuid.NewString()
}

// locks is a keyed mutex set shared by store implementations.
type locks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newLocks() *locks {
	return &locks{m: make(map[string]*sync.Mutex)}
}

func (l *locks) acquire(id string) func() {
	l.mu.Lock()
	m, ok := l.m[id]
	if !ok {
		m = &sync.Mutex{}
		l.m[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// MemoryStore keeps conversations in process memory. Lifecycle and eviction
// are external concerns; the store never deletes entries on its own.
type MemoryStore struct {
	mu    sync.RWMutex
	conns map[string]*Conversation
	locks *locks
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conns: make(map[string]*Conversation),
		locks: newLocks(),
	}
}

func (s *MemoryStore) Lock(id string) func() {
	return s.locks.acquire(id)
}

func (s *MemoryStore) GetOrCreate(_ context.Context, id, entryAgent string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conv, ok := s.conns[id]; ok {
		return snapshot(conv), nil
	}

	now := time.Now()
	conv := &Conversation{
		ID:          id,
		ActiveAgent: entryAgent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.conns[id] = conv
	return snapshot(conv), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Conversation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conns[id]
	if !ok {
		return nil, false, nil
	}
	return snapshot(conv), true, nil
}

func (s *MemoryStore) Commit(_ context.Context, id string, delta types.TurnDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conns[id]
	if !ok {
		// Commit without a prior GetOrCreate is a programming error, but
		// losing a turn is worse than creating the record late.
		conv = &Conversation{ID: id, CreatedAt: time.Now()}
		s.conns[id] = conv
	}

	applyDelta(conv, delta)
	return nil
}

// snapshot copies the conversation so callers can't mutate stored state
// behind the store's back.
func snapshot(c *Conversation) *Conversation {
	cp := *c
	cp.Messages = append([]types.Message(nil), c.Messages...)
	cp.Events = append([]types.Event(nil), c.Events...)
	cp.GuardrailRecords = append([]types.GuardrailRecord(nil), c.GuardrailRecords...)
	return &cp
}

func applyDelta(conv *Conversation, delta types.TurnDelta) {
	conv.Messages = append(conv.Messages, delta.Messages...)
	conv.Events = append(conv.Events, delta.Events...)
	conv.GuardrailRecords = append(conv.GuardrailRecords, delta.GuardrailRecords...)
	if delta.ActiveAgent != "" {
		conv.ActiveAgent = delta.ActiveAgent
	}
	conv.Profile = delta.Profile
	conv.UpdatedAt = time.Now()
}

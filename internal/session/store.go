package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation, immutable once appended.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type entry struct {
	turns    []Turn
	lastSeen time.Time
}

// Store keeps per-caller conversation history in memory. Each caller gets its
// own session keyed by ID, so concurrent callers never interleave turns.
// History is gone on restart, which is the intended lifetime.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Resolve returns the given session ID, or mints a fresh one when the caller
// did not supply any. The session itself is created lazily on first append.
func (s *Store) Resolve(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// History returns a copy of the session's turns in chronological order.
// Unknown IDs yield an empty history.
func (s *Store) History(id string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = s.now()
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// AppendExchange appends exactly one (user, assistant) pair atomically. The
// pipeline calls this only after a fully successful run; a failed run never
// reaches here, so history cannot grow partially.
func (s *Store) AppendExchange(id, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &entry{}
		s.sessions[id] = e
	}
	e.turns = append(e.turns,
		Turn{Role: RoleUser, Content: userText},
		Turn{Role: RoleAssistant, Content: assistantText},
	)
	e.lastSeen = s.now()
}

// Len reports the number of turns in a session.
func (s *Store) Len(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return 0
	}
	return len(e.turns)
}

// Count reports the number of live sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle longer than ttl and returns how many were
// evicted.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	evicted := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

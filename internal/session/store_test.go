package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAppendExchange_Order(t *testing.T) {
	s := NewStore()
	id := s.Resolve("")
	if id == "" {
		t.Fatal("Resolve should mint an ID when none is supplied")
	}

	s.AppendExchange(id, "hello", "hi there")

	turns := s.History(id)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "hello" {
		t.Errorf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Content != "hi there" {
		t.Errorf("unexpected second turn: %+v", turns[1])
	}
}

func TestResolve_KeepsCallerID(t *testing.T) {
	s := NewStore()
	if got := s.Resolve("caller-7"); got != "caller-7" {
		t.Errorf("expected caller-supplied ID back, got %q", got)
	}
}

func TestHistory_UnknownSessionIsEmpty(t *testing.T) {
	s := NewStore()
	if turns := s.History("nope"); len(turns) != 0 {
		t.Errorf("expected empty history, got %d turns", len(turns))
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AppendExchange("a", "u1", "a1")

	turns := s.History("a")
	turns[0].Content = "mutated"

	if s.History("a")[0].Content != "u1" {
		t.Error("History must return a copy, not the backing slice")
	}
}

// Two callers hammering their own sessions concurrently must never see each
// other's turns.
func TestConcurrentSessionsStayIsolated(t *testing.T) {
	s := NewStore()
	const exchanges = 100

	var wg sync.WaitGroup
	for _, id := range []string{"caller-a", "caller-b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < exchanges; i++ {
				s.AppendExchange(id, fmt.Sprintf("%s-user-%d", id, i), fmt.Sprintf("%s-assistant-%d", id, i))
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []string{"caller-a", "caller-b"} {
		turns := s.History(id)
		if len(turns) != exchanges*2 {
			t.Fatalf("session %s: expected %d turns, got %d", id, exchanges*2, len(turns))
		}
		for i, turn := range turns {
			if turn.Content[:len(id)] != id {
				t.Fatalf("session %s: turn %d leaked from another session: %q", id, i, turn.Content)
			}
			wantRole := RoleUser
			if i%2 == 1 {
				wantRole = RoleAssistant
			}
			if turn.Role != wantRole {
				t.Fatalf("session %s: turn %d has role %s, want %s", id, i, turn.Role, wantRole)
			}
		}
	}
}

func TestSweep(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.AppendExchange("old", "u", "a")

	now = now.Add(45 * time.Minute)
	s.AppendExchange("fresh", "u", "a")

	if n := s.Sweep(30 * time.Minute); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if s.Len("old") != 0 {
		t.Error("idle session should be gone")
	}
	if s.Len("fresh") != 2 {
		t.Error("active session should survive the sweep")
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 live session, got %d", s.Count())
	}
}

package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/akhilesh1566/Website-Chatbot/internal/models"
)

func TestMemoryStore_AppendOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for i := 0; i < 3; i++ {
		turn := models.ConversationTurn{
			Question: fmt.Sprintf("q%d", i),
			Answer:   fmt.Sprintf("a%d", i),
		}
		if err := s.Append(ctx, "sess", turn); err != nil {
			t.Fatal(err)
		}
	}

	turns, err := s.Turns(ctx, "sess")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 3 {
		t.Fatalf("Expected 3 turns, got %d", len(turns))
	}
	for i, turn := range turns {
		if turn.Question != fmt.Sprintf("q%d", i) {
			t.Errorf("Turn %d out of order: %+v", i, turn)
		}
	}
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Append(ctx, "a", models.ConversationTurn{Question: "qa", Answer: "aa"})
	_ = s.Append(ctx, "b", models.ConversationTurn{Question: "qb", Answer: "ab"})

	turns, _ := s.Turns(ctx, "a")
	if len(turns) != 1 || turns[0].Question != "qa" {
		t.Errorf("Session a sees wrong history: %+v", turns)
	}
}

func TestMemoryStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Append(ctx, "sess", models.ConversationTurn{Question: "q", Answer: "a"})
	if err := s.Reset(ctx, "sess"); err != nil {
		t.Fatal(err)
	}

	turns, _ := s.Turns(ctx, "sess")
	if len(turns) != 0 {
		t.Errorf("Expected empty history after reset, got %d turns", len(turns))
	}
}

func TestMemoryStore_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Append(ctx, "sess", models.ConversationTurn{Question: "q", Answer: "a"})
	turns, _ := s.Turns(ctx, "sess")
	turns[0].Question = "mutated"

	again, _ := s.Turns(ctx, "sess")
	if again[0].Question != "q" {
		t.Error("Turns must return a copy, not the backing slice")
	}
}

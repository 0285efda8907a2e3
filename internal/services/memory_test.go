package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/greensort/ecosort-web-ui/internal/models"
	"github.com/greensort/ecosort-web-ui/internal/services"
)

func TestMemorySeedsWelcome(t *testing.T) {
	store := services.NewMemory()

	msgs, err := store.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("new store holds %d messages, want exactly 1", len(msgs))
	}
	if msgs[0].Sender != models.SenderAssistant {
		t.Errorf("seeded sender = %q, want assistant", msgs[0].Sender)
	}
	if msgs[0].Content != models.WelcomeText {
		t.Errorf("seeded content = %q, want welcome text", msgs[0].Content)
	}
	if msgs[0].ID == "" {
		t.Error("seeded message has no ID")
	}
}

func TestMemoryAppendOrder(t *testing.T) {
	store := services.NewMemory()
	ctx := context.Background()

	first := models.Message{ID: "1", Sender: models.SenderHuman, Content: "How to recycle plastic?", Timestamp: time.Now()}
	second := models.Message{ID: "2", Sender: models.SenderAssistant, Content: "In the yellow bin.", Timestamp: time.Now()}

	if id, err := store.AddMessage(ctx, first); err != nil || id != "1" {
		t.Fatalf("AddMessage() = %q, %v", id, err)
	}
	if id, err := store.AddMessage(ctx, second); err != nil || id != "2" {
		t.Fatalf("AddMessage() = %q, %v", id, err)
	}

	msgs, err := store.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("store holds %d messages, want 3", len(msgs))
	}
	if msgs[1].ID != "1" || msgs[2].ID != "2" {
		t.Errorf("messages out of insertion order: %q then %q", msgs[1].ID, msgs[2].ID)
	}
}

func TestMemoryReturnsCopy(t *testing.T) {
	store := services.NewMemory()
	ctx := context.Background()

	msgs, err := store.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	msgs[0].Content = "tampered"

	fresh, err := store.Messages(ctx)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if fresh[0].Content != models.WelcomeText {
		t.Error("stored message was mutated through the returned slice")
	}
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/greensort/ecosort-web-ui/internal/models"
)

// Memory implements the conversation store as an in-process append-only log. Conversations live
// only for the lifetime of the session, so there is no backing file; the mutex makes the store safe
// to read from the render path while the reply goroutine appends.
type Memory struct {
	mu       sync.Mutex
	messages []models.Message
}

// NewMemory creates a conversation store seeded with the fixed assistant welcome message. Seeding
// is gated on the store being empty, so it happens exactly once per session.
func NewMemory() *Memory {
	m := &Memory{}
	m.seed()
	return m
}

func (m *Memory) seed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.messages) > 0 {
		return
	}
	m.messages = append(m.messages, models.Message{
		ID:        uuid.New().String(),
		Sender:    models.SenderAssistant,
		Content:   models.WelcomeText,
		Timestamp: time.Now(),
	})
}

// Messages returns the conversation in insertion order. The returned slice is a copy; callers
// cannot mutate stored messages through it.
func (m *Memory) Messages(context.Context) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]models.Message, len(m.messages))
	copy(msgs, m.messages)
	return msgs, nil
}

// AddMessage appends a message to the end of the conversation and returns its ID. There are no
// update, delete, or reorder operations; once appended, a message never changes.
func (m *Memory) AddMessage(_ context.Context, msg models.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	return msg.ID, nil
}

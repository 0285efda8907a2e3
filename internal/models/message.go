package models

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
)

// Message represents an individual entry in the conversation thread. It contains the core components
// of a chat message including its unique identifier, the sender, the textual content, and the precise
// time when the message was created. Messages are immutable once appended to a conversation.
type Message struct {
	ID        string
	Sender    Sender
	Content   string
	Timestamp time.Time
}

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	// SenderHuman marks a message typed by the person using the chat.
	SenderHuman Sender = "human"
	// SenderAssistant marks a message produced by the remote assistant, including the seeded
	// welcome message and any fallback text substituted on failure.
	SenderAssistant Sender = "assistant"
)

// WelcomeText is the assistant message every conversation is seeded with before any human input.
const WelcomeText = "Hi! I'm EcoSort, your waste sorting assistant. Ask me how to dispose of " +
	"any item and I'll point you to the right bin, with a few tips on reducing waste along the way. " +
	"What would you like to sort today?"

// ApologyText is returned when the generation service answers successfully but the response
// carries no usable candidate text.
const ApologyText = "Sorry, I couldn't come up with an answer for that one. Could you try " +
	"rephrasing your question?"

// FallbackText is appended to the conversation when the generation call fails outright, so the
// thread stays coherent and the user can simply ask again.
const FallbackText = "Something went wrong while I was thinking about that. Please check your " +
	"connection and API key, then try again."

var markdown = goldmark.New(
	goldmark.WithExtensions(
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
)

// RenderContent converts a message's content into HTML ready to be placed in the chat view.
// Assistant replies are treated as markdown since the remote model freely uses lists and emphasis;
// human messages are escaped verbatim.
func RenderContent(msg Message) (template.HTML, error) {
	if msg.Sender == SenderHuman {
		return template.HTML(template.HTMLEscapeString(msg.Content)), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(msg.Content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

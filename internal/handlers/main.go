package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmaxmax/go-sse"

	ecosortwebui "github.com/greensort/ecosort-web-ui"
	"github.com/greensort/ecosort-web-ui/internal/models"
	"github.com/greensort/ecosort-web-ui/internal/session"
)

// Gateway represents the single integration point with the remote text-generation service. It
// takes the session credential and a user question, performs one synchronous call, and returns the
// extracted reply text or a transport/API error.
type Gateway interface {
	Generate(ctx context.Context, apiKey, question string) (string, error)
}

// Store defines the interface for the conversation log. It supports reading the ordered message
// sequence and appending to it; nothing else, since messages are immutable and never removed.
type Store interface {
	Messages(ctx context.Context) ([]models.Message, error)
	AddMessage(ctx context.Context, msg models.Message) (string, error)
}

// Main handles the core functionality of the chat application, coordinating the credential gate,
// the conversation store, the assistant gateway, and server-sent events pushing resolved replies
// to the browser.
type Main struct {
	sseSrv    *sse.Server
	templates *template.Template

	gateway Gateway
	store   Store
	session *session.Session

	logger *slog.Logger
}

const conversationSSETopic = "conversation"

const errLoggerKey = "err"

// SSE event types for real-time updates.
var (
	messagesSSEType = sse.Type("messages")
	noticeSSEType   = sse.Type("notice")
)

// NewMain creates a new Main instance with the provided Gateway and Store implementations and a
// fresh session in awaiting-credential mode. It parses the required HTML templates from the
// embedded filesystem and configures the SSE server so every client follows the conversation
// topic.
func NewMain(gateway Gateway, store Store, logger *slog.Logger) (Main, error) {
	tmpl, err := template.ParseFS(
		ecosortwebui.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Main{}, err
	}

	return Main{
		sseSrv: &sse.Server{
			OnSession: func(s *sse.Session) (sse.Subscription, bool) {
				return sse.Subscription{
					Client:      s,
					LastEventID: s.LastEventID,
					Topics:      []string{sse.DefaultTopic, conversationSSETopic},
				}, true
			},
		},
		templates: tmpl,
		gateway:   gateway,
		store:     store,
		session:   &session.Session{},
		logger:    logger.With(slog.String("module", "handlers")),
	}, nil
}

// HandleSSE serves the event stream endpoint the chat view subscribes to.
func (m Main) HandleSSE(w http.ResponseWriter, r *http.Request) {
	m.sseSrv.ServeHTTP(w, r)
}

// Shutdown gracefully terminates the Main instance's SSE server. It broadcasts a close message to
// all connected clients and waits up to 5 seconds for connections to terminate. After the timeout,
// any remaining connections are forcefully closed.
func (m Main) Shutdown(ctx context.Context) error {
	e := &sse.Message{Type: sse.Type("closeChat")}
	// We create a close event that complies with SSE spec requiring data
	e.AppendData("bye")

	// We ignore the error here since we're shutting down anyway
	_ = m.sseSrv.Publish(e)

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	return m.sseSrv.Shutdown(ctx)
}

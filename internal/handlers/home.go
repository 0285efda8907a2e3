package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/greensort/ecosort-web-ui/internal/models"
)

type homePageData struct {
	Chatting    bool
	Messages    []message
	Suggestions []string
}

type message struct {
	ID        string
	Sender    string
	Content   template.HTML
	Timestamp time.Time

	Loading bool
}

// Example questions shown as clickable chips below the input; clicking one pre-fills the input.
var suggestions = []string{
	"How do I recycle plastic bottles?",
	"Where do used batteries go?",
	"Can greasy pizza boxes be recycled?",
	"What should I do with old electronics?",
}

// HandleHome renders the page for the current session mode: the credential form while the session
// is awaiting a credential, and the chat view with the full conversation once a credential has
// been accepted.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	data := homePageData{
		Chatting:    m.session.Chatting(),
		Suggestions: suggestions,
	}

	if data.Chatting {
		msgs, err := m.store.Messages(r.Context())
		if err != nil {
			m.logger.Error("Failed to get messages", slog.String(errLoggerKey, err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		views, err := viewMessages(msgs)
		if err != nil {
			m.logger.Error("Failed to render contents", slog.String(errLoggerKey, err.Error()))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Messages = views
	}

	if err := m.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func viewMessages(msgs []models.Message) ([]message, error) {
	views := make([]message, len(msgs))
	for i := range msgs {
		v, err := viewMessage(msgs[i])
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	return views, nil
}

func viewMessage(msg models.Message) (message, error) {
	content, err := models.RenderContent(msg)
	if err != nil {
		return message{}, fmt.Errorf("failed to render message %s: %w", msg.ID, err)
	}
	return message{
		ID:        msg.ID,
		Sender:    string(msg.Sender),
		Content:   content,
		Timestamp: msg.Timestamp,
	}, nil
}

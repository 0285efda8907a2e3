package handlers

import (
	"log/slog"
	"net/http"
)

type notice struct {
	Text string
}

const emptyCredentialWarning = "Please enter your API key before starting the chat."

// HandleSession processes credential submissions through HTTP POST requests. An empty or
// whitespace-only key is rejected with a visible warning and leaves the session in
// awaiting-credential mode; a non-empty key transitions the session into chatting mode, which is
// irreversible, and the handler responds with the chat view so the page can swap the credential
// form out.
func (m Main) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := r.FormValue("api_key")
	if err := m.session.SetCredential(key); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		if err := m.templates.ExecuteTemplate(w, "notice", notice{Text: emptyCredentialWarning}); err != nil {
			m.logger.Error("Failed to render notice", slog.String(errLoggerKey, err.Error()))
		}
		return
	}

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

	data := homePageData{
		Chatting:    true,
		Messages:    views,
		Suggestions: suggestions,
	}
	if err := m.templates.ExecuteTemplate(w, "chatbox", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

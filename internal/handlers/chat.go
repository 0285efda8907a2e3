package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"

	"github.com/greensort/ecosort-web-ui/internal/models"
)

const gatewayFailureNotice = "The assistant could not be reached. Please try again in a moment."

// HandleChats processes message submissions through HTTP POST requests. It appends the user's
// message to the conversation synchronously, responds with the rendered user message plus a
// loading placeholder for the reply, and resolves the reply asynchronously; the resolved assistant
// message reaches the browser through Server-Sent Events.
//
// Exactly one generation request may be outstanding at a time. A submission arriving while a prior
// request is still in flight is ignored: no message is appended, no outbound call is made, and the
// handler answers 204 so the page leaves the thread untouched.
func (m Main) HandleChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The chat form is never rendered in awaiting-credential mode, but the endpoint still refuses
	// to call out without a credential.
	if !m.session.Chatting() {
		w.WriteHeader(http.StatusConflict)
		if err := m.templates.ExecuteTemplate(w, "notice", notice{Text: emptyCredentialWarning}); err != nil {
			m.logger.Error("Failed to render notice", slog.String(errLoggerKey, err.Error()))
		}
		return
	}

	msg := strings.TrimSpace(r.FormValue("message"))
	if msg == "" {
		m.logger.Error("Message is required")
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	if !m.session.TryAcquire() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	um := models.Message{
		ID:        uuid.New().String(),
		Sender:    models.SenderHuman,
		Content:   msg,
		Timestamp: time.Now(),
	}
	if _, err := m.store.AddMessage(r.Context(), um); err != nil {
		m.session.Release()
		m.logger.Error("Failed to add user message", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// The reply message ID is fixed up front so the loading placeholder in the response and the
	// SSE event that later replaces it agree on the element to target.
	replyID := uuid.New().String()
	go m.resolveReply(replyID, msg)

	userView, err := viewMessage(um)
	if err != nil {
		m.logger.Error("Failed to render contents", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := m.templates.ExecuteTemplate(w, "user_message", userView); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = m.templates.ExecuteTemplate(w, "ai_message", message{
		ID:        replyID,
		Sender:    string(models.SenderAssistant),
		Timestamp: time.Now(),
		Loading:   true,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// resolveReply performs the generation call and appends exactly one assistant message, regardless
// of outcome. The call is not tied to the request context: once sent, it cannot be aborted, and
// its resolution is always applied to the conversation.
func (m Main) resolveReply(replyID, question string) {
	defer m.session.Release()

	text, err := m.gateway.Generate(context.Background(), m.session.Credential(), question)
	if err != nil {
		m.logger.Error("Generation call failed", slog.String(errLoggerKey, err.Error()))
		m.publishNotice(gatewayFailureNotice)
		text = models.FallbackText
	}

	am := models.Message{
		ID:        replyID,
		Sender:    models.SenderAssistant,
		Content:   text,
		Timestamp: time.Now(),
	}
	if _, err := m.store.AddMessage(context.Background(), am); err != nil {
		m.logger.Error("Failed to add assistant message", slog.String(errLoggerKey, err.Error()))
		return
	}

	view, err := viewMessage(am)
	if err != nil {
		m.logger.Error("Failed to render contents", slog.String(errLoggerKey, err.Error()))
		return
	}

	var sb strings.Builder
	if err := m.templates.ExecuteTemplate(&sb, "ai_message", view); err != nil {
		m.logger.Error("Failed to execute ai_message template", slog.String(errLoggerKey, err.Error()))
		return
	}

	e := &sse.Message{Type: messagesSSEType}
	e.AppendData(sb.String())
	if err := m.sseSrv.Publish(e, conversationSSETopic); err != nil {
		m.logger.Error("Failed to publish message", slog.String(errLoggerKey, err.Error()))
	}
}

// publishNotice pushes a one-shot warning to the chat view, separate from the fallback message
// appended to the conversation.
func (m Main) publishNotice(text string) {
	var sb strings.Builder
	if err := m.templates.ExecuteTemplate(&sb, "notice", notice{Text: text}); err != nil {
		m.logger.Error("Failed to execute notice template", slog.String(errLoggerKey, err.Error()))
		return
	}

	e := &sse.Message{Type: noticeSSEType}
	e.AppendData(sb.String())
	if err := m.sseSrv.Publish(e, conversationSSETopic); err != nil {
		m.logger.Error("Failed to publish notice", slog.String(errLoggerKey, err.Error()))
	}
}

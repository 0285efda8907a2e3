// Package session holds the per-session state of the chat: the credential gate and the single
// in-flight request slot. The application is inherently single-session, so one Session instance
// lives on the handler for the lifetime of the process.
package session

import (
	"errors"
	"strings"
	"sync"
)

// ErrEmptyCredential is returned when a submitted credential is empty or whitespace-only.
var ErrEmptyCredential = errors.New("credential must not be empty")

// Session tracks the two-state mode of the chat (awaiting a credential vs chatting) and guards
// against concurrent outstanding generation requests. The mode transitions once, from awaiting to
// chatting, and never reverts.
type Session struct {
	mu       sync.Mutex
	apiKey   string
	chatting bool
	busy     bool
}

// SetCredential accepts a non-empty credential and transitions the session into chatting mode.
// Empty and whitespace-only credentials are rejected with ErrEmptyCredential and leave the session
// untouched.
func (s *Session) SetCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apiKey = key
	s.chatting = true
	return nil
}

// Chatting reports whether a credential has been accepted.
func (s *Session) Chatting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chatting
}

// Credential returns the accepted credential. It is empty until SetCredential succeeds.
func (s *Session) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apiKey
}

// TryAcquire claims the single in-flight request slot. It returns false without blocking when a
// prior request is still outstanding; callers must treat that as "ignore the submission", not
// queue it.
func (s *Session) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// Release frees the in-flight slot once the outstanding request has resolved, whether it
// succeeded or failed.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
}

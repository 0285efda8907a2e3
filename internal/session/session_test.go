package session_test

import (
	"errors"
	"testing"

	"github.com/greensort/ecosort-web-ui/internal/session"
)

func TestSetCredential(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		wantErr      error
		wantChatting bool
	}{
		{
			name:    "empty",
			key:     "",
			wantErr: session.ErrEmptyCredential,
		},
		{
			name:    "whitespace only",
			key:     "   \t ",
			wantErr: session.ErrEmptyCredential,
		},
		{
			name:         "valid",
			key:          "abc123",
			wantChatting: true,
		},
		{
			name:         "valid with surrounding whitespace",
			key:          "  abc123  ",
			wantChatting: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &session.Session{}

			err := s.SetCredential(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SetCredential() error = %v, want %v", err, tt.wantErr)
			}
			if s.Chatting() != tt.wantChatting {
				t.Errorf("Chatting() = %v, want %v", s.Chatting(), tt.wantChatting)
			}
			if tt.wantChatting && s.Credential() != "abc123" {
				t.Errorf("Credential() = %q, want %q", s.Credential(), "abc123")
			}
		})
	}
}

func TestModeNeverReverts(t *testing.T) {
	s := &session.Session{}

	if err := s.SetCredential("abc123"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}

	// A later invalid submission must not push the session back behind the gate.
	if err := s.SetCredential(""); !errors.Is(err, session.ErrEmptyCredential) {
		t.Fatalf("SetCredential() error = %v, want ErrEmptyCredential", err)
	}
	if !s.Chatting() {
		t.Error("Chatting() = false after a rejected resubmission, mode must not revert")
	}
	if s.Credential() != "abc123" {
		t.Errorf("Credential() = %q, want %q", s.Credential(), "abc123")
	}
}

func TestBusySlot(t *testing.T) {
	s := &session.Session{}

	if !s.TryAcquire() {
		t.Fatal("TryAcquire() = false on an idle session")
	}
	if s.TryAcquire() {
		t.Error("TryAcquire() = true while a request is outstanding")
	}

	s.Release()

	if !s.TryAcquire() {
		t.Error("TryAcquire() = false after Release()")
	}
}

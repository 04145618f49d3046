package message_test

import (
	stderrors "errors"
	"testing"

	"github.com/easyops/pgdocs-qa/pkg/core/message"
)

func TestRole_IsValid(t *testing.T) {
	for _, role := range []message.Role{message.RoleSystem, message.RoleUser, message.RoleAssistant} {
		if !role.IsValid() {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if message.Role("operator").IsValid() {
		t.Fatal("expected unknown role to be invalid")
	}
}

func TestRole_Capitalize(t *testing.T) {
	if got := message.RoleUser.Capitalize(); got != "User" {
		t.Fatalf("expected User, got %q", got)
	}
	if got := message.RoleAssistant.Capitalize(); got != "Assistant" {
		t.Fatalf("expected Assistant, got %q", got)
	}
}

func TestNewMessage(t *testing.T) {
	msg := message.NewUserMessage("hello")
	if msg.Role != message.RoleUser {
		t.Fatalf("expected user role, got %s", msg.Role)
	}
	if msg.Content != "hello" {
		t.Fatalf("expected content hello, got %q", msg.Content)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("expected timestamp to be set")
	}
}

func TestMessage_Validate(t *testing.T) {
	msg := message.NewUserMessage("hello")
	if err := msg.Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}

	empty := message.NewUserMessage("")
	if err := empty.Validate(); !stderrors.Is(err, message.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}

	bad := message.Message{Role: "operator", Content: "hi"}
	if err := bad.Validate(); !stderrors.Is(err, message.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestTokenUsage_Add(t *testing.T) {
	var usage message.TokenUsage
	if !usage.IsEmpty() {
		t.Fatal("expected zero usage to be empty")
	}

	usage.Add(message.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	usage.Add(message.TokenUsage{PromptTokens: 2, CompletionTokens: 3, TotalTokens: 5})

	if usage.PromptTokens != 12 || usage.CompletionTokens != 8 || usage.TotalTokens != 20 {
		t.Fatalf("unexpected accumulated usage: %+v", usage)
	}
	if usage.IsEmpty() {
		t.Fatal("expected accumulated usage to be non-empty")
	}
}

package prompts_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/easyops/pgdocs-qa/pkg/core/errors"
	"github.com/easyops/pgdocs-qa/pkg/prompts"
)

const validPrompts = `relevance_check_prompt: "Classify: {question}"
system_prompt: "Context: {context} History: {chat_history}"
reference_prompt: "Q: {question} Ref: {context}"
irrelevant_response: "Out of scope."
`

func writePrompts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write prompts file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	templates, err := prompts.Load(writePrompts(t, validPrompts))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if templates.RelevanceCheck != "Classify: {question}" {
		t.Fatalf("unexpected relevance template: %q", templates.RelevanceCheck)
	}
	if templates.IrrelevantResponse != "Out of scope." {
		t.Fatalf("unexpected irrelevant response: %q", templates.IrrelevantResponse)
	}
}

func TestLoad_MissingKeyFails(t *testing.T) {
	incomplete := `relevance_check_prompt: "Classify: {question}"
system_prompt: "Context: {context}"
irrelevant_response: "Out of scope."
`
	_, err := prompts.Load(writePrompts(t, incomplete))
	if err == nil {
		t.Fatal("expected error for missing reference_prompt")
	}
	if !stderrors.Is(err, errors.ErrPromptTemplateMissing) {
		t.Fatalf("expected ErrPromptTemplateMissing, got %v", err)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := prompts.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRender(t *testing.T) {
	got := prompts.Render("Q: {question}\nC: {context}", map[string]string{
		prompts.PlaceholderQuestion: "What is WAL?",
		prompts.PlaceholderContext:  "WAL is the write-ahead log.",
	})

	want := "Q: What is WAL?\nC: WAL is the write-ahead log."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_LeavesUnknownPlaceholders(t *testing.T) {
	got := prompts.Render("{question} {unknown}", map[string]string{
		prompts.PlaceholderQuestion: "hi",
	})
	if got != "hi {unknown}" {
		t.Fatalf("expected unknown placeholder untouched, got %q", got)
	}
}

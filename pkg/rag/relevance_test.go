package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/rag"
)

const relevanceTemplate = "Is this question about PostgreSQL?\nQuestion: {question}"

func TestRelevanceGate_RelevantFirstLine(t *testing.T) {
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			return llm.Response{Content: "RELEVANT - asks about indexes\nextra detail"}, nil
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	isRelevant, explanation := gate.CheckRelevance(context.Background(), "How do indexes work?")
	if !isRelevant {
		t.Fatal("expected relevant")
	}
	if explanation != "RELEVANT - asks about indexes" {
		t.Fatalf("expected first line as explanation, got %q", explanation)
	}
}

func TestRelevanceGate_CaseInsensitive(t *testing.T) {
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			return llm.Response{Content: "relevant: database tuning question"}, nil
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	isRelevant, _ := gate.CheckRelevance(context.Background(), "How do I tune shared_buffers?")
	if !isRelevant {
		t.Fatal("expected lowercase verdict to count as relevant")
	}
}

func TestRelevanceGate_Irrelevant(t *testing.T) {
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			return llm.Response{Content: "IRRELEVANT - cooking question\nmore detail"}, nil
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	isRelevant, explanation := gate.CheckRelevance(context.Background(), "Best pasta recipe?")
	if isRelevant {
		t.Fatal("expected irrelevant")
	}
	if explanation != "IRRELEVANT - cooking question" {
		t.Fatalf("expected first line as explanation, got %q", explanation)
	}
}

func TestRelevanceGate_UnparsableVerdictIsIrrelevant(t *testing.T) {
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			return llm.Response{Content: "I am not sure what you mean."}, nil
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	isRelevant, _ := gate.CheckRelevance(context.Background(), "???")
	if isRelevant {
		t.Fatal("expected unparsable verdict to be treated as irrelevant")
	}
}

func TestRelevanceGate_FailsOpenOnProviderError(t *testing.T) {
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			return llm.Response{}, errors.New("connection refused")
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	isRelevant, explanation := gate.CheckRelevance(context.Background(), "How do I create a view?")
	if !isRelevant {
		t.Fatal("expected gate to fail open on provider error")
	}
	if explanation != rag.FailOpenExplanation {
		t.Fatalf("expected %q, got %q", rag.FailOpenExplanation, explanation)
	}
}

func TestRelevanceGate_RendersQuestionIntoPrompt(t *testing.T) {
	var prompt string
	provider := &mockProvider{
		generateFn: func(ctx context.Context, req llm.Request) (llm.Response, error) {
			prompt = req.Messages[0].Content
			return llm.Response{Content: "RELEVANT"}, nil
		},
	}
	gate := rag.NewRelevanceGate(provider, relevanceTemplate, nil)

	gate.CheckRelevance(context.Background(), "What is WAL?")
	if !strings.Contains(prompt, "Question: What is WAL?") {
		t.Fatalf("expected question substituted into prompt, got %q", prompt)
	}
}

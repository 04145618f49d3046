package rag_test

import (
	"context"

	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/rag"
)

// mockProvider 可编程的 LLM 提供商替身
type mockProvider struct {
	generateFn func(ctx context.Context, req llm.Request) (llm.Response, error)
	embedFn    func(ctx context.Context, texts []string) ([][]float32, error)
	calls      int
}

func (m *mockProvider) Generate(ctx context.Context, req llm.Request) (llm.Response, error) {
	m.calls++
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return llm.Response{Content: "mock answer"}, nil
}

func (m *mockProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedFn != nil {
		return m.embedFn(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Model() string { return "mock-model" }

func (m *mockProvider) Close() error { return nil }

var _ llm.Provider = (*mockProvider)(nil)

// mockRetriever 返回固定结果的检索器替身
type mockRetriever struct {
	chunks []rag.RetrievedChunk
	err    error
}

func (m *mockRetriever) Retrieve(ctx context.Context, query string, topK int) ([]rag.RetrievedChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

var _ rag.Retriever = (*mockRetriever)(nil)

// chunksWithScores 按给定分数构造检索结果
func chunksWithScores(scores ...float64) []rag.RetrievedChunk {
	chunks := make([]rag.RetrievedChunk, len(scores))
	for i, score := range scores {
		chunks[i] = rag.RetrievedChunk{
			Text:        "chunk text",
			SourceTitle: "Doc",
			SourceURL:   "https://www.postgresql.org/docs/current/",
			Score:       score,
		}
	}
	return chunks
}

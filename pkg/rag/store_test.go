package rag_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/easyops/pgdocs-qa/pkg/rag"
)

func TestInMemoryVectorStore_SearchOrdersByDistance(t *testing.T) {
	store := rag.NewInMemoryVectorStore()
	err := store.Add(context.Background(), []rag.StoredChunk{
		{Text: "orthogonal", SourceTitle: "Far", Vector: []float32{0, 1, 0}},
		{Text: "identical", SourceTitle: "Near", Vector: []float32{1, 0, 0}},
		{Text: "opposite", SourceTitle: "Farthest", Vector: []float32{-1, 0, 0}},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].SourceTitle != "Near" || results[0].Score != 0 {
		t.Fatalf("expected identical vector first with score 0, got %q (%f)", results[0].SourceTitle, results[0].Score)
	}
	if results[1].SourceTitle != "Far" || results[1].Score != 1 {
		t.Fatalf("expected orthogonal vector second with score 1, got %q (%f)", results[1].SourceTitle, results[1].Score)
	}
	// 余弦相异度截断到 [0, 1]，反向向量不会超出 1
	if results[2].Score != 1 {
		t.Fatalf("expected clamped score 1 for opposite vector, got %f", results[2].Score)
	}
}

func TestInMemoryVectorStore_SearchHonorsTopK(t *testing.T) {
	store := rag.NewInMemoryVectorStore()
	chunks := make([]rag.StoredChunk, 10)
	for i := range chunks {
		chunks[i] = rag.StoredChunk{Text: "chunk", Vector: []float32{1, float32(i), 0}}
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected topK to cap results at 3, got %d", len(results))
	}
}

func TestInMemoryVectorStore_LoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.json")
	snapshot := `[
		{"id": "c1", "text": "first", "source_title": "Doc A", "source_url": "https://example.org/a", "vector": [1, 0]},
		{"text": "second", "source_title": "Doc B", "source_url": "https://example.org/b", "vector": [0, 1]}
	]`
	if err := os.WriteFile(path, []byte(snapshot), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	store := rag.NewInMemoryVectorStore()
	n, err := store.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 chunks loaded, got %d", n)
	}
	if store.Len() != 2 {
		t.Fatalf("expected store length 2, got %d", store.Len())
	}
}

func TestInMemoryVectorStore_LoadSnapshotMissingFile(t *testing.T) {
	store := rag.NewInMemoryVectorStore()
	if _, err := store.LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing snapshot file")
	}
}

func TestVectorRetriever_EmbedsQueryAndSearches(t *testing.T) {
	store := rag.NewInMemoryVectorStore()
	err := store.Add(context.Background(), []rag.StoredChunk{
		{Text: "match", SourceTitle: "Doc", Vector: []float32{1, 0, 0}},
		{Text: "miss", SourceTitle: "Other", Vector: []float32{0, 1, 0}},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	retriever := rag.NewVectorRetriever(store, &mockProvider{})

	chunks, err := retriever.Retrieve(context.Background(), "query", 1)
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "match" {
		t.Fatalf("expected nearest chunk, got %q", chunks[0].Text)
	}
	if chunks[0].Relevance() != 1 {
		t.Fatalf("expected relevance 1 for identical vector, got %f", chunks[0].Relevance())
	}
}

package rag

import (
	"context"
)

// VectorRetriever 向量检索器
//
// 用嵌入器生成查询向量，再到向量存储中做最近邻搜索。
// 嵌入计算与索引构建都在系统边界之外。
type VectorRetriever struct {
	store    *InMemoryVectorStore
	embedder Embedder
}

// NewVectorRetriever 创建向量检索器
func NewVectorRetriever(store *InMemoryVectorStore, embedder Embedder) *VectorRetriever {
	return &VectorRetriever{
		store:    store,
		embedder: embedder,
	}
}

// Retrieve 检索与查询最相关的段落，按分数升序
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]RetrievedChunk, error) {
	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, nil
	}

	return r.store.Search(ctx, embeddings[0], topK)
}

// compile-time interface check
var _ Retriever = (*VectorRetriever)(nil)

package rag

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/easyops/pgdocs-qa/pkg/core/errors"
)

// StoredChunk 向量存储中的一条记录
//
// 向量由外部索引工具预先计算；本存储不做嵌入计算。
type StoredChunk struct {
	// ID 记录标识
	ID string `json:"id"`
	// Text 段落文本
	Text string `json:"text"`
	// SourceTitle 来源文档标题
	SourceTitle string `json:"source_title"`
	// SourceURL 来源文档地址
	SourceURL string `json:"source_url"`
	// ChunkIndex 段落在文档中的序号
	ChunkIndex int `json:"chunk_index"`
	// ChunkCount 文档的段落总数
	ChunkCount int `json:"chunk_count"`
	// Vector 嵌入向量
	Vector []float32 `json:"vector"`
}

// InMemoryVectorStore 内存向量存储
//
// 以余弦相异度 (1 - 余弦相似度，截断到 [0, 1]) 做最近邻搜索，
// 与外部索引的 COSINE 度量保持同一方向：分数越低越相关。
type InMemoryVectorStore struct {
	mu     sync.RWMutex
	chunks []StoredChunk
}

// NewInMemoryVectorStore 创建内存向量存储
func NewInMemoryVectorStore() *InMemoryVectorStore {
	return &InMemoryVectorStore{
		chunks: make([]StoredChunk, 0),
	}
}

// Add 添加记录；缺失的 ID 自动生成
func (s *InMemoryVectorStore) Add(ctx context.Context, chunks []StoredChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		s.chunks = append(s.chunks, chunk)
	}

	return nil
}

// Search 返回与查询向量最相近的 topK 条记录，按分数升序
func (s *InMemoryVectorStore) Search(ctx context.Context, vector []float32, topK int) ([]RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]RetrievedChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		score := cosineDistance(vector, chunk.Vector)
		results = append(results, RetrievedChunk{
			Text:        chunk.Text,
			SourceTitle: chunk.SourceTitle,
			SourceURL:   chunk.SourceURL,
			ChunkIndex:  chunk.ChunkIndex,
			ChunkCount:  chunk.ChunkCount,
			Score:       score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if topK < len(results) {
		results = results[:topK]
	}

	return results, nil
}

// Len 返回当前记录数量
func (s *InMemoryVectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// LoadSnapshot 从 JSON 快照文件加载预嵌入的记录
//
// 快照由外部索引工具产出。返回加载的记录数量。
func (s *InMemoryVectorStore) LoadSnapshot(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.WrapError(err, "read vector snapshot")
	}

	var chunks []StoredChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return 0, errors.WrapError(err, "parse vector snapshot")
	}

	if err := s.Add(context.Background(), chunks); err != nil {
		return 0, err
	}

	return len(chunks), nil
}

// cosineDistance 计算余弦相异度，截断到 [0, 1]
func cosineDistance(a, b []float32) float64 {
	sim := cosineSimilarity(a, b)
	dist := 1 - sim
	if dist < 0 {
		return 0
	}
	if dist > 1 {
		return 1
	}
	return dist
}

// cosineSimilarity 计算余弦相似度
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

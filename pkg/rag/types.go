// Package rag 实现回答编排决策引擎
//
// 引擎对每个问题决定三种出路之一：拒答（域外问题）、
// 使用人工整理的参考答案回答、或基于检索段落生成回答，
// 并维护跨轮次的对话状态。
package rag

import "context"

// RetrievedChunk 一条检索结果
//
// Score 是 [0, 1] 区间的相异度，越低越相关；
// 展示用的相关度为 1 - Score。由外部检索器按 Score 升序返回。
type RetrievedChunk struct {
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
	// Score 相异度分数，越低越好
	Score float64 `json:"score"`
}

// Relevance 返回展示用的相关度 (1 - Score)
func (c RetrievedChunk) Relevance() float64 {
	return 1 - c.Score
}

// MeanScore 计算检索结果的平均相异度
//
// 空结果返回 0；调用方需要先区分空结果的情况。
func MeanScore(chunks []RetrievedChunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range chunks {
		sum += c.Score
	}
	return sum / float64(len(chunks))
}

// Strategy 回答策略标签
//
// Response 是带标签的结果类型，调用方按 Strategy 穷举处理，
// 不做运行时字段探测。
type Strategy string

const (
	// StrategyRejected 域外问题被拒答
	StrategyRejected Strategy = "rejected"
	// StrategyReference 使用参考答案回答
	StrategyReference Strategy = "reference"
	// StrategyGrounded 基于检索段落生成回答
	StrategyGrounded Strategy = "grounded"
	// StrategyError 生成失败，返回固定致歉回复
	StrategyError Strategy = "error"
)

// Source 回答的来源引用
type Source struct {
	// Title 来源标题
	Title string `json:"title"`
	// URL 来源地址
	URL string `json:"url"`
	// Score 相异度分数（参考答案来源固定为 0）
	Score float64 `json:"score"`
}

// Response 一次回答的完整结果；构造后不再修改
type Response struct {
	// Answer 回答文本
	Answer string `json:"answer"`
	// Sources 来源引用
	Sources []Source `json:"sources"`
	// IsRelevant 问题是否在域内
	IsRelevant bool `json:"is_relevant"`
	// Strategy 本次回答采用的策略
	Strategy Strategy `json:"strategy"`
	// Diagnostic 内部诊断信息，仅用于观测，不展示给用户
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Retriever 检索器接口（外部协作者）
//
// 返回结果按 Score 升序排列，可能为空；
// 对固定的索引状态和查询必须是确定的。
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]RetrievedChunk, error)
}

// Embedder 嵌入器接口（llm.Provider 满足此接口）
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

package rag

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/easyops/pgdocs-qa/pkg/core/errors"
	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/core/message"
	"github.com/easyops/pgdocs-qa/pkg/otel"
	"github.com/easyops/pgdocs-qa/pkg/prompts"
	"github.com/easyops/pgdocs-qa/pkg/qa"
)

// 参考答案来源的固定引用
const (
	referenceSourceTitle = "Reference: %s"
	referenceSourceURL   = "built-in"
)

// DefaultTopK 默认检索块数量
const DefaultTopK = 5

// DefaultMaxHistoryTurns 提示词中默认携带的最大对话轮数
const DefaultMaxHistoryTurns = 3

// Pipeline 回答编排管道
//
// 每个问题的控制流：相关性门控（不相关则短路）->
// 数据集匹配 + 检索（二者无数据依赖）-> 策略裁决 ->
// 生成 -> 追加对话轮次 -> 返回结果。
// 每次调用恰好向对话状态追加一个用户轮次和一个助手轮次，
// 与最终采用的策略无关（拒答与失败也不例外）。
type Pipeline struct {
	provider  llm.Provider
	retriever Retriever
	matcher   *qa.Matcher
	gate      *RelevanceGate
	generator *AnswerGenerator
	state     *ConversationState
	templates *prompts.Templates
	logger    otel.Logger
	tracer    trace.Tracer

	topK            int
	maxHistoryTurns int
}

// PipelineOption 管道配置选项
type PipelineOption func(*Pipeline)

// WithTopK 设置每次查询的检索块数量
func WithTopK(topK int) PipelineOption {
	return func(p *Pipeline) {
		p.topK = topK
	}
}

// WithMaxHistoryTurns 设置提示词中携带的最大对话轮数
func WithMaxHistoryTurns(turns int) PipelineOption {
	return func(p *Pipeline) {
		p.maxHistoryTurns = turns
	}
}

// WithMatcher 设置问题匹配器（默认使用内置数据集）
func WithMatcher(matcher *qa.Matcher) PipelineOption {
	return func(p *Pipeline) {
		p.matcher = matcher
	}
}

// WithLogger 设置日志
func WithLogger(logger otel.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTracer 设置追踪器
func WithTracer(tracer trace.Tracer) PipelineOption {
	return func(p *Pipeline) {
		p.tracer = tracer
	}
}

// NewPipeline 创建回答编排管道
//
// templates 必须已通过加载校验；provider 与 retriever 为外部协作者。
func NewPipeline(provider llm.Provider, retriever Retriever, templates *prompts.Templates, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		provider:        provider,
		retriever:       retriever,
		templates:       templates,
		state:           NewConversationState(),
		topK:            DefaultTopK,
		maxHistoryTurns: DefaultMaxHistoryTurns,
		logger:          otel.NewNoopLogger(),
		tracer:          otel.NoopTracer(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.matcher == nil {
		p.matcher = qa.NewMatcher(qa.Dataset())
	}

	p.gate = NewRelevanceGate(provider, templates.RelevanceCheck, p.logger)
	p.generator = NewAnswerGenerator(provider, templates, p.logger)

	return p
}

// AnswerQuestion 回答一个问题
//
// checkRelevance 为 false 时跳过相关性门控。
// 任何失败路径都返回格式完整的 Response，
// 原始传输错误只进入 Diagnostic，不进入回答文本。
func (p *Pipeline) AnswerQuestion(ctx context.Context, question string, checkRelevance bool) Response {
	ctx, span := p.tracer.Start(ctx, "pipeline.answer_question")
	defer span.End()

	logger := p.logger.WithContext(ctx)

	// 相关性门控
	if checkRelevance {
		isRelevant, explanation := p.gate.CheckRelevance(ctx, question)
		if !isRelevant {
			logger.Info("question rejected as out of domain", "explanation", explanation)
			span.SetAttributes(attribute.String("answer.strategy", string(StrategyRejected)))

			p.state.AppendExchange(question, p.templates.IrrelevantResponse)
			return Response{
				Answer:     p.templates.IrrelevantResponse,
				Sources:    []Source{},
				IsRelevant: false,
				Strategy:   StrategyRejected,
				Diagnostic: explanation,
			}
		}
	}

	// 数据集匹配与检索互相独立
	match, matchScore := p.matcher.Match(question)

	chunks, err := p.retriever.Retrieve(ctx, question, p.topK)
	if err != nil {
		// 检索失败降级为空结果，让策略裁决继续
		logger.Warn("retrieval failed, degrading to empty result",
			"error", errors.WrapError(err, errors.ErrRetrieval.Error()))
		chunks = nil
	}

	decision := Decide(match, matchScore, chunks)
	logger.Info("answer path decided",
		"decision", decision.String(),
		"match_score", matchScore,
		"retrieved", len(chunks),
		"mean_score", MeanScore(chunks))

	if decision == DecisionUseReference {
		answer, err := p.generator.GenerateReference(ctx, question, match)
		if err == nil {
			span.SetAttributes(attribute.String("answer.strategy", string(StrategyReference)))

			p.state.AppendExchange(question, answer)
			return Response{
				Answer: answer,
				Sources: []Source{{
					Title: fmt.Sprintf(referenceSourceTitle, match.Category),
					URL:   referenceSourceURL,
					Score: 0,
				}},
				IsRelevant: true,
				Strategy:   StrategyReference,
			}
		}

		// 参考答案路径失败不终止请求，降级到检索增强路径
		logger.Warn("reference generation failed, falling back to grounded path",
			"error", err)
	}

	return p.answerGrounded(ctx, span, question, chunks)
}

// answerGrounded 检索增强路径
func (p *Pipeline) answerGrounded(ctx context.Context, span trace.Span, question string, chunks []RetrievedChunk) Response {
	logger := p.logger.WithContext(ctx)

	contextText := FormatContext(chunks)
	historyText := FormatHistory(p.state.History(), p.maxHistoryTurns)

	answer, err := p.generator.GenerateGrounded(ctx, question, contextText, historyText)
	if err != nil {
		logger.Error("grounded generation failed", "error", err)
		span.SetAttributes(attribute.String("answer.strategy", string(StrategyError)))

		// 致歉回复本身也是一个助手轮次
		p.state.AppendExchange(question, ApologyAnswer)
		return Response{
			Answer:     ApologyAnswer,
			Sources:    []Source{},
			IsRelevant: true,
			Strategy:   StrategyError,
			Diagnostic: err.Error(),
		}
	}

	sources := make([]Source, len(chunks))
	for i, chunk := range chunks {
		sources[i] = Source{
			Title: chunk.SourceTitle,
			URL:   chunk.SourceURL,
			Score: chunk.Score,
		}
	}

	span.SetAttributes(attribute.String("answer.strategy", string(StrategyGrounded)))

	p.state.AppendExchange(question, answer)
	return Response{
		Answer:     answer,
		Sources:    sources,
		IsRelevant: true,
		Strategy:   StrategyGrounded,
	}
}

// ClearHistory 清空对话历史
func (p *Pipeline) ClearHistory() {
	p.state.Clear()
	p.logger.Info("conversation history cleared")
}

// GetHistory 返回有序的对话历史副本
func (p *Pipeline) GetHistory() []message.Message {
	return p.state.History()
}

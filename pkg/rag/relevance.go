package rag

import (
	"context"
	"strings"

	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/core/message"
	"github.com/easyops/pgdocs-qa/pkg/otel"
	"github.com/easyops/pgdocs-qa/pkg/prompts"
)

// FailOpenExplanation 相关性检查失败时的固定说明
const FailOpenExplanation = "Unable to verify relevance"

// relevantToken 分类响应首行的相关标记
const relevantToken = "RELEVANT"

// RelevanceGate 相关性门控
//
// 通过一次 LLM 调用判断问题是否在域内。
// 失败策略是放行：拦下一个正当问题比偶尔回答一个
// 域外问题代价更高，所以任何传输或解析失败都返回相关。
type RelevanceGate struct {
	provider llm.Provider
	template string
	logger   otel.Logger
}

// NewRelevanceGate 创建相关性门控
func NewRelevanceGate(provider llm.Provider, template string, logger otel.Logger) *RelevanceGate {
	if logger == nil {
		logger = otel.NewNoopLogger()
	}
	return &RelevanceGate{
		provider: provider,
		template: template,
		logger:   logger,
	}
}

// CheckRelevance 判断问题是否在域内
//
// 只解析响应的首行：大小写不敏感地检查是否以 RELEVANT 开头，
// 其余任何内容（包括 IRRELEVANT）都视为不相关。
// 返回的说明为首行（单行响应时为完整响应）。
func (g *RelevanceGate) CheckRelevance(ctx context.Context, question string) (bool, string) {
	prompt := prompts.Render(g.template, map[string]string{
		prompts.PlaceholderQuestion: question,
	})

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []message.Message{message.NewUserMessage(prompt)},
	})
	if err != nil {
		g.logger.WithContext(ctx).Warn("relevance check failed, failing open",
			"error", err)
		return true, FailOpenExplanation
	}

	text := strings.TrimSpace(resp.Content)
	firstLine := text
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine = text[:idx]
	}

	isRelevant := strings.HasPrefix(strings.ToUpper(strings.TrimSpace(firstLine)), relevantToken)
	return isRelevant, firstLine
}

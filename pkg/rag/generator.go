package rag

import (
	"context"
	"fmt"

	"github.com/easyops/pgdocs-qa/pkg/core/errors"
	"github.com/easyops/pgdocs-qa/pkg/core/llm"
	"github.com/easyops/pgdocs-qa/pkg/core/message"
	"github.com/easyops/pgdocs-qa/pkg/otel"
	"github.com/easyops/pgdocs-qa/pkg/prompts"
	"github.com/easyops/pgdocs-qa/pkg/qa"
)

// ApologyAnswer 检索增强路径生成失败时返回的固定致歉回复
const ApologyAnswer = "I apologize, but I encountered an error processing your question. Please try again."

// AnswerGenerator 回答生成器
//
// 两条生成路径：参考答案转述与检索增强生成。
// 两条路径各调用一次模型；失败的恢复策略由编排器决定。
type AnswerGenerator struct {
	provider  llm.Provider
	templates *prompts.Templates
	counter   *tokenCounter
	logger    otel.Logger
}

// NewAnswerGenerator 创建回答生成器
func NewAnswerGenerator(provider llm.Provider, templates *prompts.Templates, logger otel.Logger) *AnswerGenerator {
	if logger == nil {
		logger = otel.NewNoopLogger()
	}
	return &AnswerGenerator{
		provider:  provider,
		templates: templates,
		counter:   newTokenCounter(provider.Model()),
		logger:    logger,
	}
}

// GenerateReference 参考答案路径
//
// 请模型针对具体问题，把人工整理的参考答案转述得清晰易懂。
// 传输失败原样返回错误，由编排器降级到检索增强路径。
func (g *AnswerGenerator) GenerateReference(ctx context.Context, question string, entry *qa.Entry) (string, error) {
	prompt := prompts.Render(g.templates.Reference, map[string]string{
		prompts.PlaceholderQuestion: question,
		prompts.PlaceholderContext:  entry.ReferenceAnswer,
	})

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []message.Message{message.NewUserMessage(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrReferenceGeneration, err)
	}

	return resp.Content, nil
}

// GenerateGrounded 检索增强路径
//
// 系统消息由模板嵌入组装好的上下文与历史，
// 用户消息是原始问题。
func (g *AnswerGenerator) GenerateGrounded(ctx context.Context, question, contextText, historyText string) (string, error) {
	systemPrompt := prompts.Render(g.templates.System, map[string]string{
		prompts.PlaceholderContext:     contextText,
		prompts.PlaceholderChatHistory: historyText,
	})

	g.logger.WithContext(ctx).Debug("grounded prompt assembled",
		"prompt_tokens", g.counter.count(systemPrompt)+g.counter.count(question))

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []message.Message{
			message.NewSystemMessage(systemPrompt),
			message.NewUserMessage(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrGroundedGeneration, err)
	}

	return resp.Content, nil
}

package rag

import (
	"fmt"
	"strings"

	"github.com/easyops/pgdocs-qa/pkg/core/message"
)

// NoHistorySentinel 历史为空时返回的固定文本
const NoHistorySentinel = "No previous conversation"

// maxTurnContentLen 单条历史消息的最大渲染长度
const maxTurnContentLen = 200

// FormatContext 将检索段落渲染为模型可读的上下文
//
// 每个段落渲染为编号块，按检索器返回的顺序（最优在前），
// 块之间用可见分隔符连接。纯函数。
func FormatContext(chunks []RetrievedChunk) string {
	parts := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf(
			"[Source %d: %s]\nURL: %s\nContent: %s\n",
			i+1, chunk.SourceTitle, chunk.SourceURL, chunk.Text,
		))
	}

	return strings.Join(parts, "\n---\n")
}

// FormatHistory 将最近的对话历史渲染为提示词片段
//
// 取最后 maxTurns 个问答轮次（即最后 2*maxTurns 条消息），
// 每条渲染为 "<Role>: <content>"，角色首字母大写；
// 超过 200 字符的内容截断并追加省略号。
// 历史为空时返回固定文本。纯函数。
func FormatHistory(turns []message.Message, maxTurns int) string {
	if len(turns) == 0 {
		return NoHistorySentinel
	}

	recent := turns
	if limit := maxTurns * 2; limit > 0 && len(recent) > limit {
		recent = recent[len(recent)-limit:]
	}

	lines := make([]string, 0, len(recent))
	for _, turn := range recent {
		content := turn.Content
		if len(content) > maxTurnContentLen {
			content = content[:maxTurnContentLen] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role.Capitalize(), content))
	}

	return strings.Join(lines, "\n")
}

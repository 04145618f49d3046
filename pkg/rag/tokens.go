package rag

import (
	"github.com/pkoukk/tiktoken-go"
)

// tokenCounter 提示词 Token 计数
//
// 用于记录组装后提示词的体量，及早发现上下文超限。
// tiktoken 不可用时降级为按字符估算。
type tokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// newTokenCounter 创建 Token 计数器
// 默认使用 cl100k_base 编码（GPT-4、GPT-4o 等使用）。
func newTokenCounter(model string) *tokenCounter {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return &tokenCounter{}
		}
	}
	return &tokenCounter{encoding: encoding}
}

// count 返回文本的 Token 数量
func (c *tokenCounter) count(text string) int {
	if c.encoding == nil {
		// 粗略估算：英文 1 token ≈ 4 字符
		return len(text) / 4
	}
	return len(c.encoding.Encode(text, nil, nil))
}

package rag

import "github.com/easyops/pgdocs-qa/pkg/qa"

// 策略裁决的契约阈值；由测试固定，不是可调默认值。
const (
	// StrongMatchThreshold 强匹配下界：相似度高于此值时，
	// 参考答案比任何检索结果都更权威
	StrongMatchThreshold = 0.85
	// PoorRetrievalThreshold 检索质量下界：平均相异度高于此值
	// 说明检索质量差
	PoorRetrievalThreshold = 0.35
)

// Decision 回答路径裁决结果
type Decision int

const (
	// DecisionUseGrounded 走检索增强生成路径
	DecisionUseGrounded Decision = iota
	// DecisionUseReference 走参考答案转述路径
	DecisionUseReference
)

// String 返回裁决名称
func (d Decision) String() string {
	switch d {
	case DecisionUseReference:
		return "use_reference"
	default:
		return "use_grounded"
	}
}

// Decide 组合匹配结果与检索质量，裁决回答路径
//
// 纯函数，规则按序评估：
//  1. 无匹配 -> 检索增强路径。
//  2. 强匹配 (score > 0.85) -> 无条件使用参考答案。
//  3. 中等匹配 (0.65 <= score <= 0.85) -> 仅当检索为空或
//     平均相异度超过 0.35（检索质量差）时使用参考答案。
func Decide(match *qa.Entry, matchScore float64, chunks []RetrievedChunk) Decision {
	if match == nil {
		return DecisionUseGrounded
	}

	if matchScore > StrongMatchThreshold {
		return DecisionUseReference
	}

	if len(chunks) == 0 || MeanScore(chunks) > PoorRetrievalThreshold {
		return DecisionUseReference
	}

	return DecisionUseGrounded
}

package qa

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultConsiderThreshold 匹配成立的最低相似度
const DefaultConsiderThreshold = 0.65

// Matcher 问题匹配器
//
// 对输入问题与数据集问题做模糊匹配。纯函数式：
// 匹配结果只取决于 (问题, 数据集)，无任何隐藏状态。
// 数据集很小且静态，逐条扫描的开销可以接受。
type Matcher struct {
	entries   []Entry
	threshold float64
}

// MatcherOption 匹配器配置选项
type MatcherOption func(*Matcher)

// WithConsiderThreshold 设置匹配成立的最低相似度
func WithConsiderThreshold(threshold float64) MatcherOption {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// NewMatcher 创建问题匹配器
func NewMatcher(entries []Entry, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		entries:   entries,
		threshold: DefaultConsiderThreshold,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Match 在数据集中查找与问题最相似的条目
//
// 相似度为经典的匹配字符比率 2*M/T，与词序无关。
// 平局保留数据集中先出现的条目，保证结果确定。
// 返回最佳条目（相似度达到阈值时，否则为 nil）和原始最佳相似度，
// 供调用方做进一步的强弱匹配判断。
func (m *Matcher) Match(question string) (*Entry, float64) {
	normalized := normalize(question)

	var best *Entry
	bestScore := 0.0

	for i := range m.entries {
		score := Similarity(normalized, normalize(m.entries[i].Question))
		if score > bestScore {
			bestScore = score
			best = &m.entries[i]
		}
	}

	if best == nil || bestScore < m.threshold {
		return nil, bestScore
	}

	return best, bestScore
}

// Similarity 计算两个字符串的相似度比率 [0, 1]
func Similarity(a, b string) float64 {
	matcher := difflib.NewMatcher(splitChars(a), splitChars(b))
	return matcher.Ratio()
}

// normalize 归一化问题文本（小写 + 去首尾空白）
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitChars 将字符串拆分为单字符序列
func splitChars(s string) []string {
	return strings.Split(s, "")
}

// Package prompts 提供提示词模板的加载和渲染
//
// 模板在启动时从 YAML 文件加载一次；缺失必需键是致命的配置错误，
// 而不是按请求处理的错误。
package prompts

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/easyops/pgdocs-qa/pkg/core/errors"
)

// 模板必需键
const (
	KeyRelevanceCheck     = "relevance_check_prompt"
	KeySystem             = "system_prompt"
	KeyReference          = "reference_prompt"
	KeyIrrelevantResponse = "irrelevant_response"
)

// 模板占位符
const (
	PlaceholderQuestion    = "{question}"
	PlaceholderContext     = "{context}"
	PlaceholderChatHistory = "{chat_history}"
)

// Templates 提示词模板集合
type Templates struct {
	// RelevanceCheck 相关性检查提示词，占位符: {question}
	RelevanceCheck string
	// System 检索增强回答的系统提示词，占位符: {context}, {chat_history}
	System string
	// Reference 参考答案转述提示词，占位符: {question}, {context}
	Reference string
	// IrrelevantResponse 对域外问题返回的固定回复
	IrrelevantResponse string
}

// Load 从 YAML 文件加载模板
func Load(path string) (*Templates, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.WrapError(err, "load prompt templates")
	}

	t := &Templates{}
	for _, entry := range []struct {
		key  string
		dest *string
	}{
		{KeyRelevanceCheck, &t.RelevanceCheck},
		{KeySystem, &t.System},
		{KeyReference, &t.Reference},
		{KeyIrrelevantResponse, &t.IrrelevantResponse},
	} {
		v := k.String(entry.key)
		if v == "" {
			return nil, errors.WrapError(errors.ErrPromptTemplateMissing, entry.key)
		}
		*entry.dest = v
	}

	return t, nil
}

// Render 渲染模板，替换所有给定占位符
func Render(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for placeholder, value := range vars {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

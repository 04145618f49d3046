// Package errors 定义系统的通用错误类型
package errors

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrContextCanceled 上下文被取消
	ErrContextCanceled = errors.New("context canceled")
)

// LLM 相关错误
var (
	// ErrRateLimited 请求被限速
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout 请求超时
	ErrTimeout = errors.New("request timeout")
	// ErrInvalidAPIKey API 密钥无效
	ErrInvalidAPIKey = errors.New("invalid API key")
	// ErrModelNotFound 模型未找到
	ErrModelNotFound = errors.New("model not found")
	// ErrProviderUnavailable 提供商不可用
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrInvalidResponse LLM 响应无效
	ErrInvalidResponse = errors.New("invalid LLM response")
)

// 管道相关错误
//
// 这些错误标识回答流程中可恢复的失败类别，
// 由编排器按类别分支处理（失败放行、降级、终止）。
var (
	// ErrRelevanceCheck 相关性检查失败（本地恢复，默认放行）
	ErrRelevanceCheck = errors.New("relevance check failed")
	// ErrReferenceGeneration 参考答案路径生成失败（降级到检索增强路径）
	ErrReferenceGeneration = errors.New("reference answer generation failed")
	// ErrGroundedGeneration 检索增强路径生成失败（请求终止）
	ErrGroundedGeneration = errors.New("grounded answer generation failed")
	// ErrRetrieval 检索失败（降级为空检索结果）
	ErrRetrieval = errors.New("retrieval failed")
)

// 配置相关错误
var (
	// ErrPromptTemplateMissing 提示词模板缺失
	ErrPromptTemplateMissing = errors.New("prompt template missing")
	// ErrAPIKeyRequired API 密钥必填
	ErrAPIKeyRequired = errors.New("API key is required")
)

// WrapError 包装错误并添加上下文信息
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// IsRetryable 判断错误是否可重试
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrProviderUnavailable)
}

// IsFatal 判断错误是否为致命错误（不可恢复）
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidAPIKey) ||
		errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrPromptTemplateMissing)
}

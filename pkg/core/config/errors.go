package config

import "errors"

// 配置验证相关错误
var (
	// ErrModelRequired 模型名称必填
	ErrModelRequired = errors.New("model name is required")
	// ErrAPIKeyRequired API 密钥必填
	ErrAPIKeyRequired = errors.New("API key is required")
	// ErrInvalidTimeout 超时时间无效
	ErrInvalidTimeout = errors.New("invalid timeout value")
	// ErrInvalidMaxRetries 重试次数无效
	ErrInvalidMaxRetries = errors.New("invalid max retries value")
	// ErrInvalidTemperature 温度值无效
	ErrInvalidTemperature = errors.New("temperature must be between 0 and 2")
	// ErrInvalidTopK 检索数量无效
	ErrInvalidTopK = errors.New("top_k must be between 1 and 50")
	// ErrInvalidMaxHistoryTurns 对话轮数无效
	ErrInvalidMaxHistoryTurns = errors.New("max_history_turns must be positive")
	// ErrPromptsPathRequired 提示词模板路径必填
	ErrPromptsPathRequired = errors.New("prompts path is required")
)

// Package config 提供配置加载和管理功能
package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config 全局配置结构
type Config struct {
	// LLM LLM 配置
	LLM LLMConfig `koanf:"llm"`
	// Pipeline 回答管道配置
	Pipeline PipelineConfig `koanf:"pipeline"`
	// Observability 可观测性配置
	Observability ObservabilityConfig `koanf:"observability"`
}

// PipelineConfig 回答管道配置
type PipelineConfig struct {
	// TopK 每次查询的检索块数量
	TopK int `koanf:"top_k"`
	// CheckRelevance 是否默认启用相关性检查
	CheckRelevance bool `koanf:"check_relevance"`
	// MaxHistoryTurns 提示词中携带的最大对话轮数
	MaxHistoryTurns int `koanf:"max_history_turns"`
	// PromptsPath 提示词模板文件路径
	PromptsPath string `koanf:"prompts_path"`
	// SnapshotPath 向量快照文件路径（由外部索引工具产出）
	SnapshotPath string `koanf:"snapshot_path"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `koanf:"enabled"`
	// ServiceName 服务名称
	ServiceName string `koanf:"service_name"`
}

// Loader 配置加载器
type Loader struct {
	k *koanf.Koanf
}

// NewLoader 创建配置加载器
func NewLoader() *Loader {
	return &Loader{
		k: koanf.New("."),
	}
}

// LoadFile 从 YAML 文件加载配置
func (l *Loader) LoadFile(path string) error {
	// 文件不存在不报错，使用默认值
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return l.k.Load(file.Provider(path), yaml.Parser())
}

// LoadEnv 从环境变量加载配置
func (l *Loader) LoadEnv(prefix string) error {
	return l.k.Load(env.Provider(prefix, ".", func(s string) string {
		// 转换环境变量名: PGDOCSQA_LLM_API_KEY -> llm.api_key
		// 配置树固定为两层，只在第一个下划线处分段
		s = strings.ToLower(strings.TrimPrefix(s, prefix))
		if section, key, found := strings.Cut(s, "_"); found {
			return section + "." + key
		}
		return s
	}), nil)
}

// Unmarshal 解析配置到结构体
func (l *Loader) Unmarshal(cfg *Config) error {
	return l.k.Unmarshal("", cfg)
}

// Load 加载完整配置（文件 + 环境变量）
//
// 返回的配置已应用默认值但尚未验证；
// 调用方在组装管道前必须调用 Validate，验证失败视为启动失败。
func Load(configPath string) (*Config, error) {
	loader := NewLoader()

	if configPath != "" {
		if err := loader.LoadFile(configPath); err != nil {
			return nil, err
		}
	}

	// 环境变量优先级更高
	if err := loader.LoadEnv("PGDOCSQA_"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := loader.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

// Validate 验证配置；任何错误都应视为致命的启动错误
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Pipeline.TopK <= 0 || c.Pipeline.TopK > 50 {
		return ErrInvalidTopK
	}
	if c.Pipeline.MaxHistoryTurns <= 0 {
		return ErrInvalidMaxHistoryTurns
	}
	if c.Pipeline.PromptsPath == "" {
		return ErrPromptsPathRequired
	}
	return nil
}

// applyDefaults 应用默认配置值
func applyDefaults(cfg *Config) {
	// LLM 默认值
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.LLM.EmbeddingModel == "" {
		cfg.LLM.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = 3
	}
	if cfg.LLM.RetryDelay == 0 {
		cfg.LLM.RetryDelay = time.Second
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}

	// Pipeline 默认值
	if cfg.Pipeline.TopK == 0 {
		cfg.Pipeline.TopK = 5
	}
	if cfg.Pipeline.MaxHistoryTurns == 0 {
		cfg.Pipeline.MaxHistoryTurns = 3
	}
	if cfg.Pipeline.PromptsPath == "" {
		cfg.Pipeline.PromptsPath = "config/prompts.yaml"
	}

	// Observability 默认值
	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = "pgdocs-qa"
	}
}

package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultClassifierEnabled        = true          // 是否启用语言模型分类器
	DefaultClassifierModel          = "gpt-4o-mini" // 默认模型
	DefaultClassifierTimeoutSeconds = 30            // 单次分类调用超时，单位秒
	DefaultClassifierMode           = "json"        // 响应解析模式: json | text
	DefaultClassifierMaxTokens      = 2048          // 响应最大token数
)

type (
	// ClassifierConfig 语言模型分类器配置.
	// BaseURL 留空时使用 OpenAI 官方端点；指向本地模型服务（如 ollama、vllm）
	// 的 OpenAI 兼容端点同样可用.
	ClassifierConfig struct {
		Enabled        bool    `mapstructure:"enabled"`
		APIKey         string  `mapstructure:"api_key"`
		BaseURL        string  `mapstructure:"base_url"`
		Model          string  `mapstructure:"model"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds" rule:"min=1,max=600"`
		Mode           string  `mapstructure:"mode"            rule:"oneof=json text"`
		MaxTokens      int     `mapstructure:"max_tokens"`
		Temperature    float32 `mapstructure:"temperature"`
	}
)

// GetTimeoutDuration 返回分类调用超时作为 time.Duration.
func (c *ClassifierConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// setDefaults 设置分类器配置的默认值.
func (c *ClassifierConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("classifier.enabled", DefaultClassifierEnabled)
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.base_url", "")
	v.SetDefault("classifier.model", DefaultClassifierModel)
	v.SetDefault("classifier.timeout_seconds", DefaultClassifierTimeoutSeconds)
	v.SetDefault("classifier.mode", DefaultClassifierMode)
	v.SetDefault("classifier.max_tokens", DefaultClassifierMaxTokens)
	v.SetDefault("classifier.temperature", 0.0)
}

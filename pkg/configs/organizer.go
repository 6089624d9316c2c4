package configs

import (
	"github.com/spf13/viper"
)

const (
	// DefaultOrganizedPrefix 保留的命名空间段，键中包含该段的对象视为已整理.
	DefaultOrganizedPrefix = "_organized"
	// DefaultHistoryKey 整理历史文档在桶内的固定键.
	DefaultHistoryKey = "_metadata/organization_history.json"
)

type (
	// OrganizerConfig 整理引擎配置.
	OrganizerConfig struct {
		OrganizedPrefix string         `mapstructure:"organized_prefix"`
		HistoryKey      string         `mapstructure:"history_key"`
		ConsistencyPass bool           `mapstructure:"consistency_pass"` // 是否启用同前缀文件归组
		FallbackRules   []FallbackRule `mapstructure:"fallback_rules"`   // 覆盖内置的规则表（为空使用内置）
	}

	// FallbackRule 规则分类器的一条子串匹配规则，Contains 中任一子串命中即归入 Folder.
	FallbackRule struct {
		Contains []string `mapstructure:"contains"`
		Folder   string   `mapstructure:"folder"`
	}
)

// setDefaults 设置整理引擎配置的默认值.
func (c *OrganizerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("organizer.organized_prefix", DefaultOrganizedPrefix)
	v.SetDefault("organizer.history_key", DefaultHistoryKey)
	v.SetDefault("organizer.consistency_pass", true)
}

package classifier

import (
	"context"
	"strings"

	"github.com/tidyvault/tidyvault/pkg/configs"
)

// defaultRules 内置规则表，顺序即优先级，首个命中生效.
// Folder 为展示名，最终进入建议前由调用方归一化.
var defaultRules = []configs.FallbackRule{
	{Contains: []string{"tax", "1099", "w-2", "w2"}, Folder: "Tax Documents"},
	{Contains: []string{"lease", "tenant", "rent"}, Folder: "Tenant Records"},
	{Contains: []string{"invoice", "receipt"}, Folder: "Receipts"},
	{Contains: []string{"insurance", "policy", "claim"}, Folder: "Insurance"},
	{Contains: []string{"contract", "agreement"}, Folder: "Contracts"},
	{Contains: []string{"statement", "bank"}, Folder: "Bank Statements"},
	{Contains: []string{"report", "summary"}, Folder: "Reports"},
	{Contains: []string{"photo", "img", ".jpg", ".jpeg", ".png"}, Folder: "Photos"},
}

// RuleClassifier 确定性的规则分类器：按展示名做大小写不敏感的子串匹配，
// 全函数，永不返回空文件夹.网关整批失败或遗漏个别文件时兜底.
type RuleClassifier struct {
	rules []configs.FallbackRule
}

// NewRuleClassifier 创建规则分类器，rules 为空时使用内置规则表.
func NewRuleClassifier(rules []configs.FallbackRule) *RuleClassifier {
	if len(rules) == 0 {
		rules = defaultRules
	}

	return &RuleClassifier{rules: rules}
}

// ClassifyName 为单个展示名返回文件夹名，未命中任何规则时返回 DefaultFolder.
func (r *RuleClassifier) ClassifyName(name string) string {
	lower := strings.ToLower(name)

	for _, rule := range r.rules {
		for _, sub := range rule.Contains {
			if sub == "" {
				continue
			}

			if strings.Contains(lower, strings.ToLower(sub)) {
				return rule.Folder
			}
		}
	}

	return DefaultFolder
}

// Classify 实现 Classifier 接口：逐个分类，映射总是完整的，不会出错.
// 网关被禁用时可直接作为 Classifier 注入.
func (r *RuleClassifier) Classify(_ context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = Normalize(r.ClassifyName(name))
	}

	return out, nil
}

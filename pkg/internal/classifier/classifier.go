// Package classifier 提供文件名到语义文件夹的分类能力.
//
// 网关实现（OpenAIClassifier）调用语言模型后端，一次请求提交全部文件名并解析
// 返回的 name→folder 映射；规则实现（RuleClassifier）基于子串匹配，确定性、
// 无 I/O，在网关失败或遗漏时兜底.两者共用 Classifier 接口，调用方按
// “填补缺口、永不失败”的策略组合使用.
package classifier

import (
	"context"
	"errors"
)

// Classifier 将一组文件展示名映射为文件夹名.返回的映射允许是输入的子集，
// 调用方负责为缺失的文件兜底.
type Classifier interface {
	Classify(ctx context.Context, names []string) (map[string]string, error)
}

// ErrGateway 语言模型后端调用失败（超时、网络错误、响应不可解析）.
// 调用方捕获后应整批退回规则分类，而不是向上抛出.
var ErrGateway = errors.New("classifier gateway unavailable")

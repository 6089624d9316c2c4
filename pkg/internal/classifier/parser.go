package classifier

import (
	"strings"

	"github.com/bytedance/sonic"
)

// ResponseParser 从模型响应正文提取 name→folder 映射.
// 解析是尽力而为的：坏行/坏值跳过，不因单条记录失败整批报错；
// 提取出的 folder 一律在此处归一化.
type ResponseParser interface {
	Parse(body string) map[string]string
}

// NewResponseParser 按配置模式选择解析策略，未知模式退回 JSON 解析.
func NewResponseParser(mode string) ResponseParser {
	if strings.EqualFold(mode, "text") {
		return LineMappingParser{}
	}

	return JSONMappingParser{}
}

// JSONMappingParser 把响应体解析为单个 string→string JSON 对象.
// 容忍模型在 JSON 前后输出说明文字或 markdown 代码栅栏.
type JSONMappingParser struct{}

func (JSONMappingParser) Parse(body string) map[string]string {
	body = extractJSONObject(body)
	if body == "" {
		return nil
	}

	var raw map[string]any
	if err := sonic.UnmarshalString(body, &raw); err != nil {
		return nil
	}

	out := make(map[string]string, len(raw))

	for name, v := range raw {
		s, ok := v.(string)
		if !ok {
			// 非字符串值跳过，不整批失败
			continue
		}

		if folder := Normalize(s); folder != "" {
			out[name] = folder
		}
	}

	return out
}

// extractJSONObject 截取首个 '{' 到末个 '}' 之间的内容.
func extractJSONObject(body string) string {
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")

	if start < 0 || end <= start {
		return ""
	}

	return body[start : end+1]
}

// LineMappingParser 逐行解析自由文本响应，每行形如 "name: folder".
// 只在第一个分隔符处切分：分隔符之前是文件名，之后全部是文件夹名.
type LineMappingParser struct{}

func (LineMappingParser) Parse(body string) map[string]string {
	out := make(map[string]string)

	for line := range strings.Lines(body) {
		line = strings.TrimSpace(line)
		// 容忍列表前缀
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")

		if line == "" {
			continue
		}

		name, folder, found := strings.Cut(line, ":")
		if !found {
			// 坏行跳过
			continue
		}

		name = strings.TrimSpace(name)

		folder = Normalize(folder)
		if name == "" || folder == "" {
			continue
		}

		out[name] = folder
	}

	return out
}

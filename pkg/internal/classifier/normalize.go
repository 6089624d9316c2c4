package classifier

import (
	"strings"

	"github.com/gosimple/slug"
)

// DefaultFolder 任何规则都未命中时的兜底文件夹.
const DefaultFolder = "uncategorized"

// canonicalFolders 把模型常给出的低质量文件夹名映射为规范标签.
// 键为归一化后的字符串，保证查表前后都是归一化形态.
var canonicalFolders = map[string]string{
	"tax":           "tax-documents",
	"taxes":         "tax-documents",
	"1099":          "tax-documents",
	"w2":            "tax-documents",
	"w-2":           "tax-documents",
	"lease":         "tenant-records",
	"leases":        "tenant-records",
	"tenant":        "tenant-records",
	"tenants":       "tenant-records",
	"invoice":       "receipts",
	"invoices":      "receipts",
	"receipt":       "receipts",
	"misc":          DefaultFolder,
	"miscellaneous": DefaultFolder,
	"other":         DefaultFolder,
	"others":        DefaultFolder,
	"unknown":       DefaultFolder,
}

// Normalize 归一化文件夹名：去除首尾空白、转小写、把空白串折叠为单个连字符.
// 幂等：对已归一化的输入返回原串.
func Normalize(s string) string {
	return slug.Make(strings.TrimSpace(s))
}

// Canonicalize 先归一化，再把已知的低质量标签映射为规范标签.
// 确定性且全函数：空输入返回 DefaultFolder.
func Canonicalize(s string) string {
	n := Normalize(s)
	if n == "" {
		return DefaultFolder
	}

	if c, ok := canonicalFolders[n]; ok {
		return c
	}

	return n
}

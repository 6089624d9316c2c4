// Package main 启动应用程序
package main

import "github.com/tidyvault/tidyvault/pkg/cmd"

//	@title			TidyVault API
//	@version		1.0
//	@description	TidyVault 是一个文档自动整理服务：列举对象存储中的未整理文件，借助 LLM 生成分类建议，并以可回退的批次执行移动。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

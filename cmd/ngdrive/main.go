// Package main 启动应用程序
package main

import "github.com/yeisme/ngdrive/pkg/cmd"

//	@title			NgDrive API
//	@version		1.0
//	@description	NgDrive 是一个面向浏览器的文件保管服务，提供登录认证、文件上传、分类筛选、在线预览、下载与最近浏览记录等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

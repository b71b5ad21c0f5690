package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/ngdrive/pkg/api"
	"github.com/yeisme/ngdrive/pkg/app"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "start the HTTP server",
	Aliases: []string{"server", "run"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// runServe 构建应用并阻塞运行 HTTP 服务.
func runServe() error {
	a := app.NewApp(configPath)
	api.RegisterGroup(a.Engine)

	return a.Run()
}

// registerServeCommands 注册服务相关命令.
func registerServeCommands() {
	rootCmd.AddCommand(serveCmd)
}

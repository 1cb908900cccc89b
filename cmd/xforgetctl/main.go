// xforgetctl 是 xforget 缓存的命令行工具，用于压测对比和演示淘汰行为。
//
// 用法:
//
//	xforgetctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件路径（YAML 或 JSON）
//	    --log-level   日志级别 (debug/info/warn/error)
//	    --log-format  日志格式 (text/json)
//	    --log-file    日志文件路径，设置后按大小轮转
//
// 命令:
//
//	bench          并发压测，对比 forget/lru/tinylfu 的命中率与热点键存活情况
//	demo           运行淘汰场景演示，打印每个场景最终保留的键
//	version        打印版本信息
//
// 退出码:
//
//	0: 执行成功
//	1: 执行失败
//	2: 参数或配置错误（未知策略、非法容量、配置文件无法解析等）
//
// 示例:
//
//	xforgetctl bench                          # 使用默认参数压测 forget 策略
//	xforgetctl bench --policy all --metrics   # 对比全部策略并输出指标
//	xforgetctl -c xforget.yaml bench          # 使用配置文件
//	xforgetctl --log-level debug demo         # 演示并输出每次淘汰的日志
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xforgetctl",
		Usage:   "xforget 缓存压测与演示工具",
		Version: versionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件路径，为空时输出到 stderr",
			},
		},
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

func run(args []string) int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	return exitCode(app.Run(ctx, args))
}

// exitCode 把命令返回的错误映射为退出码，并输出错误信息。
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		// flag 解析器已向 stderr 输出错误详情
		return 2
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "已取消")
		return 1
	}
	fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	return 1
}

// isCLIUsageError 判断错误是否来自 urfave/cli 的参数解析。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
		"Required flag",
		"flag needs an argument",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"percolation_tool/pkg/cli"
	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/initutil"
	"percolation_tool/pkg/logutil"
)

const TOOL_VERSION = "1.0.0+20251019"

func main() {
	var rootCmd = &cobra.Command{
		Use:     "percolate",
		Short:   fmt.Sprintf("percolate v%s 用蒙特卡洛模拟估计渗流阈值", TOOL_VERSION),
		Version: TOOL_VERSION,
		Long: fmt.Sprintf("percolate v%s 用蒙特卡洛模拟估计 n×n 网格的渗流阈值\n", TOOL_VERSION) +
			"支持 stats/compare/maxn 子命令，并对比 Quick-Find 和带权并查集两种引擎的性能",
	}

	rootCmd.AddCommand(cli.StatsCmd(), cli.CompareCmd(), cli.MaxNCmd())
	var logFile, configPath string
	logLevel := logutil.WARN

	// 定义全局flag(屁股后面带P的函数才支持短选项)
	rootCmd.PersistentFlags().VarP(&logLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "percolate.log", "日志文件名(默认percolate.log，stdout 表示标准输出)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件(key=value; 格式，可选)")
	// 阻止 Cobra 在命令参数错误时输出帮助
	rootCmd.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	rootCmd.SilenceErrors = true
	// flag 解析错误按用法错误退出
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errorutil.NewExitError(errorutil.CodeInvalidUsage, err)
	})

	// PersistentPreRunE 在 flag 值填充后执行
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initutil.InitSystem(logFile, logLevel, configPath)
	}

	if err := rootCmd.Execute(); err != nil {
		msg, code := errorutil.FormatErrorAndCode(err)
		logutil.Error("命令执行失败: %v", err)
		fmt.Fprintln(os.Stderr, msg)
		logutil.CloseLogger()
		os.Exit(code)
	}

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	logutil.CloseLogger()
	os.Exit(0)
}

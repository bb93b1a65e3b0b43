// Package cli 提供 percolate 的子命令
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/initutil"
	"percolation_tool/pkg/percstats"
	"percolation_tool/pkg/report"
)

func addFormatFlag(cmd *cobra.Command, f *report.Format) {
	*f = report.FormatTxt
	cmd.Flags().VarP(f, "format", "t", "输出格式(txt/json)")
}

func addSeedFlag(cmd *cobra.Command, seed *uint64) {
	cmd.Flags().Uint64VarP(seed, "seed", "s", 0, "随机种子，0 表示使用配置文件中的种子或者随机播种")
}

// seedOptions 命令行优先，其次配置文件，都为 0 时随机播种
func seedOptions(cmd *cobra.Command, seed uint64) []percstats.Option {
	if !cmd.Flags().Changed("seed") {
		seed = initutil.GetConfig().Seed
	}
	if seed == 0 {
		return nil
	}
	return []percstats.Option{percstats.WithSeed(seed)}
}

// intFlagOr 用户没有显式指定时使用配置值
func intFlagOr(cmd *cobra.Command, name string, flagVal, confVal int) int {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	return confVal
}

func parsePositiveInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errorutil.InvalidArgf("%s 不是整数: %q", name, s)
	}
	if v <= 0 {
		return 0, errorutil.InvalidArgf("%s 必须为正数, got %d", name, v)
	}
	return v, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeOutput(w io.Writer, s string) error {
	if _, err := fmt.Fprint(w, s); err != nil {
		return errorutil.NewExitErrorWithMessage(errorutil.CodeIOError, "写入输出失败", err)
	}
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/logutil"
	"percolation_tool/pkg/percstats"
	"percolation_tool/pkg/report"
	"percolation_tool/pkg/stopwatch"
	"percolation_tool/pkg/unionfind"
)

// 不带参数时依次运行的示例
var exampleRuns = []struct{ n, trials int }{
	{200, 100},
	{200, 100},
	{2, 100000},
}

type statsOptions struct {
	engine unionfind.Kind
	seed   uint64
	format report.Format
}

func StatsCmd() *cobra.Command {
	opts := &statsOptions{engine: unionfind.KindWeighted}

	cmd := &cobra.Command{
		Use:   "stats [n trials]",
		Short: "估计 n×n 网格的渗流阈值",
		Long: `在 n×n 网格上做 trials 次蒙特卡洛试验，输出阈值的均值、标准差和 95% 置信区间
Examples:

percolate stats 200 100
percolate stats 200 100 -g quickfind -s 42 -t json

不带参数时依次运行 200×100 两次和 2×100000 一次`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errorutil.InvalidArgf("需要 0 个或 2 个参数 (n trials), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := exampleRuns
			if len(args) == 2 {
				n, err := parsePositiveInt("n", args[0])
				if err != nil {
					return err
				}
				trials, err := parsePositiveInt("trials", args[1])
				if err != nil {
					return err
				}
				runs = []struct{ n, trials int }{{n, trials}}
			}

			seedOpts := seedOptions(cmd, opts.seed)
			var txt string
			var docs []string
			for _, r := range runs {
				sw := stopwatch.Start()
				est, err := percstats.NewContext(commandContext(cmd), r.n, r.trials, opts.engine, seedOpts...)
				if err != nil {
					return err
				}
				elapsed := sw.Elapsed()
				logutil.Info("stats n=%d trials=%d 耗时 %s", r.n, r.trials, elapsed)

				if opts.format == report.FormatJSON {
					js, err := report.StatsJSON(est.Summary(), elapsed)
					if err != nil {
						return errorutil.NewExitError(errorutil.CodeInternalErr, err)
					}
					docs = append(docs, js)
					continue
				}
				txt += report.FormatStats(est.Summary(), elapsed, opts.engine.Label()) + "\n"
			}

			if opts.format == report.FormatJSON {
				if len(docs) == 1 {
					return writeOutput(cmd.OutOrStdout(), docs[0])
				}
				return writeOutput(cmd.OutOrStdout(), report.JSONList(docs...))
			}
			return writeOutput(cmd.OutOrStdout(), txt)
		},
	}

	cmd.Flags().VarP(&opts.engine, "engine", "g", "并查集引擎(weighted/quickfind)")
	addSeedFlag(cmd, &opts.seed)
	addFormatFlag(cmd, &opts.format)
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"percolation_tool/pkg/bench"
	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/initutil"
	"percolation_tool/pkg/report"
	"percolation_tool/pkg/unionfind"
)

type maxNOptions struct {
	engine unionfind.Kind
	start  int
	stop   int
	step   int
	trials int
	limit  time.Duration
	seed   uint64
	format report.Format
	quiet  bool
}

func MaxNCmd() *cobra.Command {
	opts := &maxNOptions{}

	cmd := &cobra.Command{
		Use:   "maxn",
		Short: "搜索时间预算内能完成的最大网格规模",
		Long: `从 start 开始按 step 增大 n，直到单次运行超出时间预算或者超过 stop
默认范围: quickfind 50..1000 步长 50, weighted 100..2000 步长 100
不指定 --engine 时两种引擎都跑，并输出性能提升倍数
Examples:

percolate maxn
percolate maxn -g weighted --start 100 --stop 500 --step 100 -m 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []unionfind.Kind{unionfind.KindQuickFind, unionfind.KindWeighted}
			if cmd.Flags().Changed("engine") {
				kinds = []unionfind.Kind{opts.engine}
			}

			// 逐个规模输出进度，json 模式下写到 stderr
			progressOut := cmd.OutOrStdout()
			if opts.format == report.FormatJSON {
				progressOut = cmd.ErrOrStderr()
			}
			progress := func(p bench.Progress) {
				fmt.Fprint(progressOut, report.FormatMaxNProgress(p))
			}
			if opts.quiet {
				progress = nil
			}

			conf := initutil.GetConfig()
			var results []bench.MaxNResult
			for _, kind := range kinds {
				cfg := bench.DefaultMaxNConfig(kind)
				cfg.Trials = intFlagOr(cmd, "trials", opts.trials, conf.Trials)
				cfg.Limit = conf.Limit
				if cmd.Flags().Changed("limit") {
					cfg.Limit = opts.limit
				}
				cfg.Start = intFlagOr(cmd, "start", opts.start, cfg.Start)
				cfg.Stop = intFlagOr(cmd, "stop", opts.stop, cfg.Stop)
				cfg.Step = intFlagOr(cmd, "step", opts.step, cfg.Step)
				cfg.Options = seedOptions(cmd, opts.seed)
				cfg.Progress = progress

				res, err := bench.MaxN(commandContext(cmd), cfg)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if opts.format == report.FormatJSON {
				js, err := report.MaxNJSON(results...)
				if err != nil {
					return errorutil.NewExitError(errorutil.CodeInternalErr, err)
				}
				return writeOutput(cmd.OutOrStdout(), js)
			}
			if len(results) == 2 {
				return writeOutput(cmd.OutOrStdout(), report.FormatMaxN(results[0], results[1]))
			}
			return writeOutput(cmd.OutOrStdout(), report.FormatMaxNResult(results[0]))
		},
	}

	cmd.Flags().VarP(&opts.engine, "engine", "g", "只搜索一种引擎(weighted/quickfind)")
	cmd.Flags().IntVar(&opts.start, "start", 0, "起始规模")
	cmd.Flags().IntVar(&opts.stop, "stop", 0, "最大规模")
	cmd.Flags().IntVar(&opts.step, "step", 0, "规模步长")
	cmd.Flags().IntVarP(&opts.trials, "trials", "n", bench.DefaultTrials, "每个规模的试验次数")
	cmd.Flags().DurationVarP(&opts.limit, "limit", "m", bench.DefaultLimit, "单次运行的时间预算")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "不输出每个规模的进度")
	addSeedFlag(cmd, &opts.seed)
	addFormatFlag(cmd, &opts.format)
	return cmd
}

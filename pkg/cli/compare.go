package cli

import (
	"time"

	"github.com/spf13/cobra"

	"percolation_tool/pkg/bench"
	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/initutil"
	"percolation_tool/pkg/report"
)

type compareOptions struct {
	sizes  []int
	trials int
	limit  time.Duration
	seed   uint64
	format report.Format
}

func CompareCmd() *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "对比 Quick-Find 和带权并查集在不同规模下的耗时",
		Long: `对每个网格规模分别用两种引擎运行估计器并计时
Quick-Find 超出时间预算后停止，后面更大的规模不再测试
Examples:

percolate compare
percolate compare -z 10,20,50 -n 50 -m 10s -t json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := initutil.GetConfig()
			cfg := bench.CompareConfig{
				Sizes:   conf.Sizes,
				Trials:  intFlagOr(cmd, "trials", opts.trials, conf.Trials),
				Limit:   conf.Limit,
				Options: seedOptions(cmd, opts.seed),
			}
			if cmd.Flags().Changed("sizes") {
				cfg.Sizes = opts.sizes
			}
			if cmd.Flags().Changed("limit") {
				cfg.Limit = opts.limit
			}

			r, err := bench.Compare(commandContext(cmd), cfg)
			if err != nil {
				return err
			}

			if opts.format == report.FormatJSON {
				js, err := report.CompareJSON(r)
				if err != nil {
					return errorutil.NewExitError(errorutil.CodeInternalErr, err)
				}
				return writeOutput(cmd.OutOrStdout(), js)
			}
			return writeOutput(cmd.OutOrStdout(), report.FormatCompare(r))
		},
	}

	cmd.Flags().IntSliceVarP(&opts.sizes, "sizes", "z", bench.DefaultSizes, "网格规模列表")
	cmd.Flags().IntVarP(&opts.trials, "trials", "n", bench.DefaultTrials, "每个规模的试验次数")
	cmd.Flags().DurationVarP(&opts.limit, "limit", "m", bench.DefaultLimit, "单次运行的时间预算")
	addSeedFlag(cmd, &opts.seed)
	addFormatFlag(cmd, &opts.format)
	return cmd
}

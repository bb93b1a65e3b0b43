// Package bench 比较 Quick-Find 和带权并查集两种引擎在不同网格规模下的耗时
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/logutil"
	"percolation_tool/pkg/percstats"
	"percolation_tool/pkg/stopwatch"
	"percolation_tool/pkg/unionfind"
)

const (
	DefaultTrials = 100
	DefaultLimit  = 60 * time.Second
)

// DefaultSizes 是对比表默认测试的网格规模
var DefaultSizes = []int{10, 20, 50, 100, 150, 200}

type CompareConfig struct {
	Sizes   []int
	Trials  int
	Limit   time.Duration
	Options []percstats.Option
}

func DefaultCompareConfig() CompareConfig {
	return CompareConfig{
		Sizes:  append([]int(nil), DefaultSizes...),
		Trials: DefaultTrials,
		Limit:  DefaultLimit,
	}
}

// Row 是对比表中的一行
type Row struct {
	N         int           `json:"n"`
	QuickFind time.Duration `json:"quickfind"`
	Weighted  time.Duration `json:"weighted"`
	Speedup   float64       `json:"speedup"`
	TimedOut  bool          `json:"timed_out"`
}

// Report 按网格规模升序保存对比结果
type Report struct {
	Trials int
	Limit  time.Duration
	rows   *treemap.Map
}

func NewReport(trials int, limit time.Duration) *Report {
	return &Report{Trials: trials, Limit: limit, rows: treemap.NewWithIntComparator()}
}

func (r *Report) Add(row Row) {
	r.rows.Put(row.N, row)
}

// Rows 按 n 升序返回所有行
func (r *Report) Rows() []Row {
	out := make([]Row, 0, r.rows.Size())
	it := r.rows.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Row))
	}
	return out
}

func (r *Report) Row(n int) (Row, bool) {
	v, ok := r.rows.Get(n)
	if !ok {
		return Row{}, false
	}
	return v.(Row), true
}

// TimedOutAt 返回 Quick-Find 第一次超时的规模
func (r *Report) TimedOutAt() (int, bool) {
	for _, row := range r.Rows() {
		if row.TimedOut {
			return row.N, true
		}
	}
	return 0, false
}

// timedRun 在时间预算内运行一次估计器
// 超时的判断有两种：ctx 在试验之间到期，或者最后一次试验拖过了预算
func timedRun(ctx context.Context, n, trials int, kind unionfind.Kind, limit time.Duration, opts []percstats.Option) (time.Duration, bool, error) {
	runCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	sw := stopwatch.Start()
	_, err := percstats.NewContext(runCtx, n, trials, kind, opts...)
	elapsed := sw.Elapsed()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return elapsed, true, nil
		}
		return elapsed, false, err
	}
	return elapsed, elapsed > limit, nil
}

func validateCommon(trials int, limit time.Duration) error {
	if trials <= 0 {
		return errorutil.InvalidArgf("试验次数必须为正数, got trials=%d", trials)
	}
	if limit <= 0 {
		return errorutil.InvalidArgf("时间预算必须为正数, got limit=%s", limit)
	}
	return nil
}

// Compare 对每个规模依次运行 Quick-Find 和带权并查集并计时，
// Quick-Find 超出预算后记录超时并停止后续规模
func Compare(ctx context.Context, cfg CompareConfig) (*Report, error) {
	if err := validateCommon(cfg.Trials, cfg.Limit); err != nil {
		return nil, err
	}
	if len(cfg.Sizes) == 0 {
		return nil, errorutil.InvalidArgf("至少需要一个网格规模")
	}

	// 去重并排序
	sizes := treeset.NewWithIntComparator()
	for _, n := range cfg.Sizes {
		if n <= 0 {
			return nil, errorutil.InvalidArgf("网格大小必须为正数, got n=%d", n)
		}
		sizes.Add(n)
	}

	report := NewReport(cfg.Trials, cfg.Limit)
	for _, v := range sizes.Values() {
		n := v.(int)

		qf, timedOut, err := timedRun(ctx, n, cfg.Trials, unionfind.KindQuickFind, cfg.Limit, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("quick-find n=%d: %w", n, err)
		}
		if timedOut {
			logutil.Warn("Quick-Find 在 n=%d 时超出时间预算 %s", n, cfg.Limit)
			report.Add(Row{N: n, QuickFind: qf, TimedOut: true})
			break
		}

		w, _, err := timedRun(ctx, n, cfg.Trials, unionfind.KindWeighted, cfg.Limit, cfg.Options)
		if err != nil {
			return nil, fmt.Errorf("weighted n=%d: %w", n, err)
		}

		row := Row{N: n, QuickFind: qf, Weighted: w}
		if w > 0 {
			row.Speedup = qf.Seconds() / w.Seconds()
		}
		logutil.Info("n=%d quickfind=%s weighted=%s speedup=%.3f", n, qf, w, row.Speedup)
		report.Add(row)
	}
	return report, nil
}

type MaxNConfig struct {
	Kind    unionfind.Kind
	Start   int
	Stop    int
	Step    int
	Trials  int
	Limit   time.Duration
	Options []percstats.Option
	// 每个规模结束后回调一次，可以为 nil
	Progress func(p Progress)
}

// Progress 是搜索过程中单个规模的结果
type Progress struct {
	Kind     unionfind.Kind
	N        int
	Elapsed  time.Duration
	TimedOut bool
}

// DefaultMaxNConfig 返回每种引擎默认的搜索范围
func DefaultMaxNConfig(kind unionfind.Kind) MaxNConfig {
	cfg := MaxNConfig{Kind: kind, Trials: DefaultTrials, Limit: DefaultLimit}
	switch kind {
	case unionfind.KindQuickFind:
		cfg.Start, cfg.Stop, cfg.Step = 50, 1000, 50
	default:
		cfg.Start, cfg.Stop, cfg.Step = 100, 2000, 100
	}
	return cfg
}

type MaxNResult struct {
	Kind    unionfind.Kind `json:"engine"`
	MaxN    int            `json:"max_n"`
	Elapsed time.Duration  `json:"elapsed"`
	Limit   time.Duration  `json:"limit"`
}

// MaxN 从 Start 到 Stop 按 Step 递增 n，返回在时间预算内完成的最大规模
// 一个规模都没完成时 MaxN 为 0
func MaxN(ctx context.Context, cfg MaxNConfig) (MaxNResult, error) {
	res := MaxNResult{Kind: cfg.Kind, Limit: cfg.Limit}
	if err := validateCommon(cfg.Trials, cfg.Limit); err != nil {
		return res, err
	}
	if cfg.Start <= 0 || cfg.Step <= 0 || cfg.Stop < cfg.Start {
		return res, errorutil.InvalidArgf("搜索范围不合法: start=%d stop=%d step=%d", cfg.Start, cfg.Stop, cfg.Step)
	}

	for n := cfg.Start; n <= cfg.Stop; n += cfg.Step {
		elapsed, timedOut, err := timedRun(ctx, n, cfg.Trials, cfg.Kind, cfg.Limit, cfg.Options)
		if err != nil {
			return res, fmt.Errorf("%s n=%d: %w", cfg.Kind, n, err)
		}
		if cfg.Progress != nil {
			cfg.Progress(Progress{Kind: cfg.Kind, N: n, Elapsed: elapsed, TimedOut: timedOut})
		}
		if timedOut {
			logutil.Info("%s n=%d 超出时间预算 %s", cfg.Kind.Label(), n, cfg.Limit)
			break
		}
		logutil.Info("%s n=%d completed in %s", cfg.Kind.Label(), n, elapsed)
		res.MaxN = n
		res.Elapsed = elapsed
	}
	return res, nil
}

// Improvement 返回带权并查集相对 Quick-Find 的最大规模倍数
func Improvement(qf, wqu MaxNResult) float64 {
	if qf.MaxN == 0 {
		return 0
	}
	return float64(wqu.MaxN) / float64(qf.MaxN)
}

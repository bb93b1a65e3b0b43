// Package percstats 用蒙特卡洛方法估计渗透阈值
//
// 每次试验新建一个网格，随机打开关闭的格点直到网格渗透，
// 记录此时开放格点所占比例；所有试验结束后计算样本均值、
// 样本标准差（贝塞尔校正）和 95% 置信区间
package percstats

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/logutil"
	"percolation_tool/pkg/percolation"
	"percolation_tool/pkg/toolutil"
	"percolation_tool/pkg/unionfind"
)

// 95% 置信区间对应的正态分位数
const confidenceZ = 1.96

type options struct {
	rng *rand.Rand
}

type Option func(*options)

// WithSeed 使用固定种子，相同种子得到完全相同的试验轨迹
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand 注入自定义随机源
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

type Estimator struct {
	n          int
	trials     int
	kind       unionfind.Kind
	thresholds []float64
	mean       float64
	stddev     float64
}

// Summary 是给报表用的统计结果
type Summary struct {
	N              int            `json:"n"`
	Trials         int            `json:"trials"`
	Engine         unionfind.Kind `json:"engine"`
	Mean           float64        `json:"mean"`
	Stddev         float64        `json:"stddev"`
	ConfidenceLow  float64        `json:"confidence_low"`
	ConfidenceHigh float64        `json:"confidence_high"`
	Min            float64        `json:"min"`
	Max            float64        `json:"max"`
}

// New 在 n×n 网格上运行 trials 次独立试验
func New(n, trials int, kind unionfind.Kind, opts ...Option) (*Estimator, error) {
	return NewContext(context.Background(), n, trials, kind, opts...)
}

// NewContext 与 New 相同，但在两次试验之间检查 ctx，
// 单次试验内部不会被打断
func NewContext(ctx context.Context, n, trials int, kind unionfind.Kind, opts ...Option) (*Estimator, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgf("网格大小必须为正数, got n=%d", n)
	}
	if trials <= 0 {
		return nil, errorutil.InvalidArgf("试验次数必须为正数, got trials=%d", trials)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		// 每次运行使用不同的种子
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Estimator{
		n:          n,
		trials:     trials,
		kind:       kind,
		thresholds: make([]float64, 0, trials),
	}

	logutil.Debug("开始估计 n=%d trials=%d engine=%s", n, trials, kind)
	for t := 0; t < trials; t++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("第 %d/%d 次试验前中止: %w", t+1, trials, err)
		}
		threshold, err := runTrial(n, kind, o.rng)
		if err != nil {
			return nil, fmt.Errorf("第 %d 次试验失败: %w", t+1, err)
		}
		e.thresholds = append(e.thresholds, threshold)
		logutil.Debug("trial %d threshold=%.6f", t+1, threshold)
	}

	e.calculateStats()
	logutil.Info("n=%d trials=%d engine=%s mean=%.6f stddev=%.6f", n, trials, kind, e.mean, e.stddev)
	return e, nil
}

// runTrial 打开随机格点直到渗透，返回开放格点的比例
func runTrial(n int, kind unionfind.Kind, rng *rand.Rand) (float64, error) {
	g, err := percolation.New(n, kind)
	if err != nil {
		return 0, err
	}
	for !g.Percolates() {
		// 拒绝采样：抽到已经打开的格点就重抽
		row, col := rng.IntN(n), rng.IntN(n)
		open, err := g.IsOpen(row, col)
		if err != nil {
			return 0, err
		}
		if open {
			continue
		}
		if err := g.Open(row, col); err != nil {
			return 0, err
		}
	}
	return float64(g.NumberOfOpenSites()) / float64(n*n), nil
}

// 只有一次试验时标准差定义为 0，置信区间退化为均值本身
func (e *Estimator) calculateStats() {
	s := toolutil.StreamOf(e.thresholds)
	e.mean, _ = toolutil.Average(s)
	if e.trials < 2 {
		e.stddev = 0
		return
	}
	sq := toolutil.Reduce(
		toolutil.Map(s, func(x float64) float64 { return (x - e.mean) * (x - e.mean) }),
		0.0,
		func(acc, x float64) float64 { return acc + x },
	)
	e.stddev = math.Sqrt(sq / float64(e.trials-1))
}

func (e *Estimator) Mean() float64 { return e.mean }

func (e *Estimator) Stddev() float64 { return e.stddev }

func (e *Estimator) margin() float64 {
	return confidenceZ * e.stddev / math.Sqrt(float64(e.trials))
}

// ConfidenceLow 是 95% 置信区间的下界
func (e *Estimator) ConfidenceLow() float64 { return e.mean - e.margin() }

// ConfidenceHigh 是 95% 置信区间的上界
func (e *Estimator) ConfidenceHigh() float64 { return e.mean + e.margin() }

func (e *Estimator) N() int { return e.n }

func (e *Estimator) Trials() int { return e.trials }

func (e *Estimator) Kind() unionfind.Kind { return e.kind }

// Thresholds 返回每次试验的阈值，返回的是副本
func (e *Estimator) Thresholds() []float64 {
	return toolutil.StreamOf(e.thresholds).ToSliceSafe()
}

func (e *Estimator) Min() float64 {
	v, _ := toolutil.Min(toolutil.StreamOf(e.thresholds))
	return v
}

func (e *Estimator) Max() float64 {
	v, _ := toolutil.Max(toolutil.StreamOf(e.thresholds))
	return v
}

func (e *Estimator) Summary() Summary {
	return Summary{
		N:              e.n,
		Trials:         e.trials,
		Engine:         e.kind,
		Mean:           e.mean,
		Stddev:         e.stddev,
		ConfidenceLow:  e.ConfidenceLow(),
		ConfidenceHigh: e.ConfidenceHigh(),
		Min:            e.Min(),
		Max:            e.Max(),
	}
}

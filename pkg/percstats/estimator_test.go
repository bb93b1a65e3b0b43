package percstats

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/unionfind"
)

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name      string
		n, trials int
	}{
		{"n zero", 0, 10},
		{"n negative", -1, 10},
		{"trials zero", 5, 0},
		{"trials negative", 5, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.n, tt.trials, unionfind.KindWeighted)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
		})
	}
}

func TestUnknownEngine(t *testing.T) {
	_, err := New(3, 2, unionfind.Kind("bogus"), WithSeed(1))
	assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}

func TestSingleSiteGrid(t *testing.T) {
	e, err := New(1, 20, unionfind.KindWeighted, WithSeed(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Mean())
	assert.Equal(t, 0.0, e.Stddev())
	assert.Equal(t, 1.0, e.ConfidenceLow())
	assert.Equal(t, 1.0, e.ConfidenceHigh())
}

// 只有一次试验时标准差为 0，不会出现 NaN
func TestSingleTrialPolicy(t *testing.T) {
	e, err := New(10, 1, unionfind.KindWeighted, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.Stddev())
	assert.False(t, math.IsNaN(e.ConfidenceLow()))
	assert.Equal(t, e.Mean(), e.ConfidenceLow())
	assert.Equal(t, e.Mean(), e.ConfidenceHigh())
	assert.Len(t, e.Thresholds(), 1)
}

func TestSameSeedSameTrajectory(t *testing.T) {
	a, err := New(12, 15, unionfind.KindWeighted, WithSeed(99))
	require.NoError(t, err)
	b, err := New(12, 15, unionfind.KindWeighted, WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, a.Thresholds(), b.Thresholds())
	assert.Equal(t, a.Mean(), b.Mean())

	c, err := New(12, 15, unionfind.KindWeighted, WithSeed(100))
	require.NoError(t, err)
	assert.NotEqual(t, a.Thresholds(), c.Thresholds())
}

// 两种引擎只有性能不同：同样的随机源得到同样的阈值
func TestEnginesGiveSameThresholds(t *testing.T) {
	w, err := New(10, 25, unionfind.KindWeighted, WithRand(rand.New(rand.NewPCG(5, 6))))
	require.NoError(t, err)
	q, err := New(10, 25, unionfind.KindQuickFind, WithRand(rand.New(rand.NewPCG(5, 6))))
	require.NoError(t, err)
	assert.Equal(t, w.Thresholds(), q.Thresholds())
	assert.Equal(t, unionfind.KindQuickFind, q.Kind())
}

// 2×2 网格只有某一列全部打开才渗透：
// 阈值为 0.5 的概率 1/3，为 0.75 的概率 2/3，均值约 0.667
func TestTwoByTwoMean(t *testing.T) {
	e, err := New(2, 100000, unionfind.KindWeighted, WithSeed(2024))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, e.Mean(), 0.64)
	assert.LessOrEqual(t, e.Mean(), 0.70)
	assert.InDelta(t, 0.1179, e.Stddev(), 0.005)
	assert.Equal(t, 0.5, e.Min())
	assert.Equal(t, 0.75, e.Max())
}

func TestStatisticsFormulas(t *testing.T) {
	e, err := New(20, 40, unionfind.KindWeighted, WithSeed(3))
	require.NoError(t, err)

	ths := e.Thresholds()
	require.Len(t, ths, 40)
	var sum float64
	for _, th := range ths {
		assert.Greater(t, th, 0.0)
		assert.LessOrEqual(t, th, 1.0)
		// 阈值乘以 n² 一定是整数
		sites := th * 400
		assert.InDelta(t, math.Round(sites), sites, 1e-9)
		sum += th
	}
	mean := sum / 40
	assert.InDelta(t, mean, e.Mean(), 1e-12)

	var sq float64
	for _, th := range ths {
		sq += (th - mean) * (th - mean)
	}
	stddev := math.Sqrt(sq / 39)
	assert.InDelta(t, stddev, e.Stddev(), 1e-12)

	margin := 1.96 * stddev / math.Sqrt(40)
	assert.InDelta(t, mean-margin, e.ConfidenceLow(), 1e-12)
	assert.InDelta(t, mean+margin, e.ConfidenceHigh(), 1e-12)
	assert.Less(t, e.ConfidenceLow(), e.ConfidenceHigh())

	// 20×20 的阈值应该落在渐近值 0.5927 附近
	assert.InDelta(t, 0.59, e.Mean(), 0.06)
}

func TestThresholdsReturnsCopy(t *testing.T) {
	e, err := New(5, 3, unionfind.KindWeighted, WithSeed(8))
	require.NoError(t, err)
	ths := e.Thresholds()
	ths[0] = -1
	assert.NotEqual(t, -1.0, e.Thresholds()[0])
}

func TestSummary(t *testing.T) {
	e, err := New(6, 10, unionfind.KindQuickFind, WithSeed(4))
	require.NoError(t, err)
	s := e.Summary()
	assert.Equal(t, 6, s.N)
	assert.Equal(t, 10, s.Trials)
	assert.Equal(t, unionfind.KindQuickFind, s.Engine)
	assert.Equal(t, e.Mean(), s.Mean)
	assert.Equal(t, e.ConfidenceHigh(), s.ConfidenceHigh)
	assert.LessOrEqual(t, s.Min, s.Mean)
	assert.GreaterOrEqual(t, s.Max, s.Mean)
}

func TestContextCancelledBetweenTrials(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e, err := NewContext(ctx, 5, 10, unionfind.KindWeighted, WithSeed(1))
	assert.Nil(t, e)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkEstimator(b *testing.B) {
	for _, kind := range []unionfind.Kind{unionfind.KindWeighted, unionfind.KindQuickFind} {
		b.Run(string(kind), func(b *testing.B) {
			for b.Loop() {
				if _, err := New(50, 5, kind, WithSeed(1)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

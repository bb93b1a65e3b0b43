package unionfind

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"percolation_tool/pkg/errorutil"
)

// 两种实现跑同一组用例
func newEngines(t *testing.T, n int) map[Kind]Engine {
	t.Helper()
	engines := make(map[Kind]Engine)
	for _, kind := range []Kind{KindWeighted, KindQuickFind} {
		e, err := New(kind, n)
		require.NoError(t, err)
		engines[kind] = e
	}
	return engines
}

func TestConnected(t *testing.T) {
	for kind, uf := range newEngines(t, 10) {
		t.Run(string(kind), func(t *testing.T) {
			require.NoError(t, uf.Union(4, 3))
			require.NoError(t, uf.Union(3, 8))
			require.NoError(t, uf.Union(6, 5))
			require.NoError(t, uf.Union(9, 4))
			require.NoError(t, uf.Union(2, 1))

			testCases := []struct {
				p, q     int
				expected bool
			}{
				{0, 0, true},
				{4, 3, true},
				{3, 4, true},
				{8, 9, true},
				{0, 7, false},
				{3, 1, false},
				{5, 6, true},
			}
			for _, tc := range testCases {
				result, err := uf.Connected(tc.p, tc.q)
				require.NoError(t, err)
				if result != tc.expected {
					t.Errorf("connected(%d, %d) = %t; expected = %t", tc.p, tc.q, result, tc.expected)
				}
			}
		})
	}
}

func TestUnionIsNoOpWhenConnected(t *testing.T) {
	for kind, uf := range newEngines(t, 4) {
		t.Run(string(kind), func(t *testing.T) {
			require.NoError(t, uf.Union(0, 1))
			before, _ := uf.Find(0)
			require.NoError(t, uf.Union(1, 0))
			after, _ := uf.Find(0)
			assert.Equal(t, before, after)
		})
	}
}

func TestOutOfRange(t *testing.T) {
	for kind, uf := range newEngines(t, 5) {
		t.Run(string(kind), func(t *testing.T) {
			_, err := uf.Find(5)
			assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
			_, err = uf.Find(-1)
			assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
			assert.ErrorIs(t, uf.Union(0, 5), errorutil.ErrInvalidArgument)
			_, err = uf.Connected(-1, 0)
			assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)

			// 失败的调用不能改变状态
			ok, err := uf.Connected(0, 4)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestNewInvalid(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New(KindWeighted, n)
		assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
		_, err = New(KindQuickFind, n)
		assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
	}
	e, err := New(Kind("bogus"), 3)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, errorutil.ErrInvalidArgument)
}

func TestWeightedSize(t *testing.T) {
	uf, err := NewUnionFind(10)
	require.NoError(t, err)

	require.NoError(t, uf.Union(1, 2))
	require.NoError(t, uf.Union(2, 3))
	size, err := uf.Size(1)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	require.NoError(t, uf.Union(4, 5))
	size, _ = uf.Size(5)
	assert.Equal(t, 2, size)
	size, _ = uf.Size(0)
	assert.Equal(t, 1, size)
}

// 小树挂到大树下，大小相同时 x 的根挂到 y 的根下
func TestWeightedUnionBySize(t *testing.T) {
	uf, _ := NewUnionFind(6)

	require.NoError(t, uf.Union(0, 1))
	assert.Equal(t, 1, uf.parent[0], "tie attaches x's root under y's root")

	require.NoError(t, uf.Union(1, 2))
	assert.Equal(t, 1, uf.parent[2], "smaller tree goes under larger")
	assert.Equal(t, 3, uf.size[1])

	require.NoError(t, uf.Union(3, 0))
	assert.Equal(t, 1, uf.parent[3])
	assert.Equal(t, 4, uf.size[1])
}

// Find 之后路径上的每个节点都直接指向根
func TestWeightedPathCompression(t *testing.T) {
	uf, _ := NewUnionFind(5)
	// 手工搭一条链 0 -> 1 -> 2 -> 3 -> 4
	for i := 0; i < 4; i++ {
		uf.parent[i] = i + 1
	}
	uf.size[4] = 5

	root, err := uf.Find(0)
	require.NoError(t, err)
	assert.Equal(t, 4, root)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 4, uf.parent[i], "node %d not compressed", i)
	}
}

func TestQuickFindRelabelsWholeComponent(t *testing.T) {
	qf, _ := NewQuickFind(6)
	require.NoError(t, qf.Union(0, 1))
	require.NoError(t, qf.Union(2, 3))
	require.NoError(t, qf.Union(1, 3))

	// 所有连通的元素共享同一个标签
	assert.Equal(t, []int{3, 3, 3, 3, 4, 5}, qf.id)
}

// 随机的 Union 序列下两种实现给出相同的连通关系
func TestEnginesAgreeOnRandomUnions(t *testing.T) {
	const n = 200
	r := rand.New(rand.NewPCG(7, 11))
	uf, _ := NewUnionFind(n)
	qf, _ := NewQuickFind(n)

	for i := 0; i < 150; i++ {
		x, y := r.IntN(n), r.IntN(n)
		require.NoError(t, uf.Union(x, y))
		require.NoError(t, qf.Union(x, y))
	}
	for i := 0; i < 1000; i++ {
		x, y := r.IntN(n), r.IntN(n)
		a, _ := uf.Connected(x, y)
		b, _ := qf.Connected(x, y)
		if a != b {
			t.Fatalf("connected(%d, %d): weighted=%t quickfind=%t", x, y, a, b)
		}
	}
}

func TestKindFlagValue(t *testing.T) {
	var k Kind
	require.NoError(t, k.Set("quickfind"))
	assert.Equal(t, KindQuickFind, k)
	assert.Equal(t, "quickfind", k.String())
	assert.Equal(t, "engine", k.Type())
	assert.Error(t, k.Set("fast"))
	assert.Equal(t, KindQuickFind, k)
	assert.Equal(t, []string{"weighted", "quickfind"}, k.Values())
	assert.Equal(t, "Quick-Find", k.Label())
	assert.Equal(t, "Weighted Quick-Union", KindWeighted.Label())
}

func BenchmarkUnionFind(b *testing.B) {
	const n = 1 << 12
	for _, kind := range []Kind{KindWeighted, KindQuickFind} {
		b.Run(string(kind), func(b *testing.B) {
			r := rand.New(rand.NewPCG(1, 2))
			for b.Loop() {
				e, _ := New(kind, n)
				for i := 0; i < n/2; i++ {
					_ = e.Union(r.IntN(n), r.IntN(n))
				}
			}
		})
	}
}

// Package percolation 在 n×n 网格上维护开放格点，并借助连通性引擎判断网格是否渗透
package percolation

import (
	"fmt"

	"percolation_tool/pkg/errorutil"
	"percolation_tool/pkg/unionfind"
)

// Grid 是 n×n 的格点模型
// 并查集中多出两个虚拟节点：n² 是顶部哨兵，n²+1 是底部哨兵
// 第 0 行开放的格点与顶部哨兵相连，第 n-1 行与底部哨兵相连，
// 这样"是否渗透"就变成了一次两点连通查询
type Grid struct {
	n         int
	open      []bool
	openCount int
	uf        unionfind.Engine
	kind      unionfind.Kind
	top       int
	bottom    int
}

// New 创建所有格点都关闭的 n×n 网格
func New(n int, kind unionfind.Kind) (*Grid, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgf("网格大小必须为正数, got n=%d", n)
	}
	sites := n * n
	uf, err := unionfind.New(kind, sites+2)
	if err != nil {
		return nil, fmt.Errorf("创建连通性引擎失败: %w", err)
	}
	return &Grid{
		n:      n,
		open:   make([]bool, sites),
		uf:     uf,
		kind:   kind,
		top:    sites,
		bottom: sites + 1,
	}, nil
}

// NewWeighted 使用带权并查集创建网格
func NewWeighted(n int) (*Grid, error) {
	return New(n, unionfind.KindWeighted)
}

func (g *Grid) N() int { return g.n }

func (g *Grid) Kind() unionfind.Kind { return g.kind }

func (g *Grid) index(row, col int) int {
	return row*g.n + col
}

func (g *Grid) validate(row, col int) error {
	if row < 0 || row >= g.n || col < 0 || col >= g.n {
		return errorutil.InvalidArgf("格点 (%d, %d) 超出范围 [0, %d)", row, col, g.n)
	}
	return nil
}

// Open 打开格点 (row, col)，已经打开时什么也不做
func (g *Grid) Open(row, col int) error {
	if err := g.validate(row, col); err != nil {
		return err
	}
	idx := g.index(row, col)
	if g.open[idx] {
		return nil
	}
	g.open[idx] = true
	g.openCount++

	if row == 0 {
		if err := g.uf.Union(idx, g.top); err != nil {
			return err
		}
	}
	if row == g.n-1 {
		if err := g.uf.Union(idx, g.bottom); err != nil {
			return err
		}
	}

	// 上 下 左 右
	neighbors := [4][2]int{{row - 1, col}, {row + 1, col}, {row, col - 1}, {row, col + 1}}
	for _, nb := range neighbors {
		r, c := nb[0], nb[1]
		if r < 0 || r >= g.n || c < 0 || c >= g.n {
			continue
		}
		nIdx := g.index(r, c)
		if !g.open[nIdx] {
			continue
		}
		if err := g.uf.Union(idx, nIdx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) IsOpen(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}
	return g.open[g.index(row, col)], nil
}

// IsFull 判断格点是否打开并且与顶部连通，关闭的格点直接返回 false
func (g *Grid) IsFull(row, col int) (bool, error) {
	if err := g.validate(row, col); err != nil {
		return false, err
	}
	idx := g.index(row, col)
	if !g.open[idx] {
		return false, nil
	}
	return g.uf.Connected(idx, g.top)
}

func (g *Grid) NumberOfOpenSites() int {
	return g.openCount
}

// Percolates 判断顶部哨兵和底部哨兵是否连通
func (g *Grid) Percolates() bool {
	// 哨兵下标总是合法的，这里不会出错
	ok, _ := g.uf.Connected(g.top, g.bottom)
	return ok
}

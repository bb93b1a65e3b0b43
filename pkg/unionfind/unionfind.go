package unionfind

import "percolation_tool/pkg/errorutil"

// UnionFind 是带权并查集，支持路径压缩和按大小合并
type UnionFind struct {
	parent []int
	size   []int // 只有根节点上的值有意义：该集合的元素个数
}

// NewUnionFind 初始化并查集，元素范围为 [0, n)
func NewUnionFind(n int) (*UnionFind, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgf("并查集大小必须为正数, got %d", n)
	}
	parent := make([]int, n)
	size := make([]int, n)
	for i := range parent {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{parent: parent, size: size}, nil
}

func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Find 查找元素所在集合的根节点（带路径压缩）
// 两遍循环：第一遍找到根，第二遍把路径上每个节点直接挂到根上
func (uf *UnionFind) Find(x int) (int, error) {
	if err := checkIndex(x, len(uf.parent)); err != nil {
		return 0, err
	}
	return uf.root(x), nil
}

func (uf *UnionFind) root(x int) int {
	r := x
	for uf.parent[r] != r {
		r = uf.parent[r]
	}
	for x != r {
		next := uf.parent[x]
		uf.parent[x] = r
		x = next
	}
	return r
}

// Union 合并两个集合（按大小优化，小树挂到大树下面）
// 大小相同时 x 的根挂到 y 的根下面
func (uf *UnionFind) Union(x, y int) error {
	if err := checkPair(x, y, len(uf.parent)); err != nil {
		return err
	}
	rootX := uf.root(x)
	rootY := uf.root(y)
	if rootX == rootY {
		return nil // 已经在同一个集合
	}

	if uf.size[rootX] > uf.size[rootY] {
		uf.parent[rootY] = rootX
		uf.size[rootX] += uf.size[rootY]
	} else {
		uf.parent[rootX] = rootY
		uf.size[rootY] += uf.size[rootX]
	}
	return nil
}

// Connected 判断两个元素是否在同一个集合
func (uf *UnionFind) Connected(x, y int) (bool, error) {
	if err := checkPair(x, y, len(uf.parent)); err != nil {
		return false, err
	}
	return uf.root(x) == uf.root(y), nil
}

// Size 返回某个集合的大小
func (uf *UnionFind) Size(x int) (int, error) {
	r, err := uf.Find(x)
	if err != nil {
		return 0, err
	}
	return uf.size[r], nil
}

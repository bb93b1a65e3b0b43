package unionfind

import (
	"fmt"

	"percolation_tool/pkg/errorutil"
)

// Engine 是连通性引擎的统一接口，带权实现和 QuickFind 实现结果完全一致，只是性能不同
type Engine interface {
	// Find 返回 x 所在集合的代表元，越界返回 errorutil.ErrInvalidArgument
	Find(x int) (int, error)
	// Union 合并 x 和 y 所在的集合，已经连通时什么也不做
	Union(x, y int) error
	Connected(x, y int) (bool, error)
	Len() int
}

var (
	_ Engine = (*UnionFind)(nil)
	_ Engine = (*QuickFind)(nil)
)

type Kind string

const (
	KindWeighted  Kind = "weighted"
	KindQuickFind Kind = "quickfind"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可
func (k *Kind) String() string { return string(*k) }

func (k *Kind) Set(val string) error {
	switch val {
	case string(KindWeighted), string(KindQuickFind):
		*k = Kind(val)
		return nil
	default:
		return fmt.Errorf("无效的 engine 值: %s (可选 %v)", val, Kind("").Values())
	}
}

func (k *Kind) Type() string {
	return "engine"
}

// 列出所有的合法值
func (Kind) Values() []string {
	return []string{
		string(KindWeighted),
		string(KindQuickFind),
	}
}

// Label 是打印报表时使用的名字
func (k Kind) Label() string {
	switch k {
	case KindWeighted:
		return "Weighted Quick-Union"
	case KindQuickFind:
		return "Quick-Find"
	}
	return string(k)
}

// New 按类型创建一个大小为 size 的连通性引擎
func New(kind Kind, size int) (Engine, error) {
	// 分开判断 err，避免把 typed nil 指针装进接口返回
	switch kind {
	case KindWeighted:
		uf, err := NewUnionFind(size)
		if err != nil {
			return nil, err
		}
		return uf, nil
	case KindQuickFind:
		qf, err := NewQuickFind(size)
		if err != nil {
			return nil, err
		}
		return qf, nil
	}
	return nil, errorutil.InvalidArgf("未知的引擎类型 %q", string(kind))
}

func checkIndex(x, n int) error {
	if x < 0 || x >= n {
		return errorutil.InvalidArgf("节点 %d 超出范围 [0, %d)", x, n)
	}
	return nil
}

func checkPair(x, y, n int) error {
	if err := checkIndex(x, n); err != nil {
		return err
	}
	return checkIndex(y, n)
}

package unionfind

import "percolation_tool/pkg/errorutil"

// QuickFind 用标签数组实现并查集：Find 是 O(1)，Union 要扫描整个数组
// 它是带权实现的对照组，Union 的线性扫描不能优化掉
type QuickFind struct {
	id []int
}

func NewQuickFind(n int) (*QuickFind, error) {
	if n <= 0 {
		return nil, errorutil.InvalidArgf("并查集大小必须为正数, got %d", n)
	}
	id := make([]int, n)
	for i := range id {
		id[i] = i
	}
	return &QuickFind{id: id}, nil
}

func (qf *QuickFind) Len() int {
	return len(qf.id)
}

func (qf *QuickFind) Find(x int) (int, error) {
	if err := checkIndex(x, len(qf.id)); err != nil {
		return 0, err
	}
	return qf.id[x], nil
}

// Union 把所有标签等于 id[x] 的元素改写成 id[y]
func (qf *QuickFind) Union(x, y int) error {
	if err := checkPair(x, y, len(qf.id)); err != nil {
		return err
	}
	idX := qf.id[x]
	idY := qf.id[y]
	if idX == idY {
		return nil
	}

	for i := range qf.id {
		if qf.id[i] == idX {
			qf.id[i] = idY
		}
	}
	return nil
}

func (qf *QuickFind) Connected(x, y int) (bool, error) {
	if err := checkPair(x, y, len(qf.id)); err != nil {
		return false, err
	}
	return qf.id[x] == qf.id[y], nil
}

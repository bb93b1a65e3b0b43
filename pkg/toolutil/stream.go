package toolutil

import (
	"golang.org/x/exp/constraints"

	"github.com/mohae/deepcopy"
)

// Stream 是一个数据流容器，支持链式数据处理
type Stream[T any] struct {
	data []T
}

// StreamOf 将切片包装为 Stream 对象
func StreamOf[T any](data []T) Stream[T] {
	return Stream[T]{data}
}

func (s Stream[T]) ToSlice() []T {
	return s.data
}

// ToSliceSafe 返回深拷贝，调用方修改结果不会影响流内部数据
func (s Stream[T]) ToSliceSafe() []T {
	if s.data == nil {
		return nil
	}
	return deepcopy.Copy(s.data).([]T)
}

func (s Stream[T]) Count() int {
	return len(s.data)
}

// Map 映射元素为另一个类型
func Map[T any, R any](s Stream[T], f func(T) R) Stream[R] {
	out := make([]R, len(s.data))
	for i, v := range s.data {
		out[i] = f(v)
	}
	return Stream[R]{out}
}

// Reduce 将流中的元素归约为一个值
func Reduce[T any, R any](s Stream[T], init R, comb func(R, T) R) R {
	acc := init
	for _, v := range s.data {
		acc = comb(acc, v)
	}
	return acc
}

func Max[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	max := s.data[0]
	for _, v := range s.data[1:] {
		if v > max {
			max = v
		}
	}
	return max, true
}

func Min[T constraints.Ordered](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	min := s.data[0]
	for _, v := range s.data[1:] {
		if v < min {
			min = v
		}
	}
	return min, true
}

// 泛型约束要求支持 + 号运算
func Sum[T constraints.Integer | constraints.Float](s Stream[T]) (T, bool) {
	if len(s.data) == 0 {
		var zero T
		return zero, false
	}
	var sum T
	for _, v := range s.data {
		sum += v
	}
	return sum, true
}

// 平均值只对浮点有意义
func Average[T constraints.Float](s Stream[T]) (T, bool) {
	sum, ok := Sum(s)
	if !ok {
		return sum, false
	}
	return sum / T(len(s.data)), true
}

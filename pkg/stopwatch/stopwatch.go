// Package stopwatch 是一个简单的计时器，用于测量估计器运行的墙钟时间
package stopwatch

import "time"

type Stopwatch struct {
	start time.Time
	now   func() time.Time
}

// Start 创建并立即开始计时
func Start() *Stopwatch {
	return StartWithClock(time.Now)
}

// StartWithClock 使用自定义时钟，测试中可以注入假时钟
func StartWithClock(now func() time.Time) *Stopwatch {
	return &Stopwatch{start: now(), now: now}
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

func (s *Stopwatch) ElapsedSeconds() float64 {
	return s.Elapsed().Seconds()
}

// Reset 重新开始计时
func (s *Stopwatch) Reset() {
	s.start = s.now()
}

// Time 运行 f 并返回耗时
func Time(f func() error) (time.Duration, error) {
	sw := Start()
	err := f()
	return sw.Elapsed(), err
}

package utils

import "time"

// Clock 时间来源，测试时可替换
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统时间
type SystemClock struct{}

// Now 返回当前时间
func (SystemClock) Now() time.Time { return time.Now() }

// FrameTimer 计算相邻两帧之间的真实时间间隔（秒）
//
// 第一帧返回 0；时钟回拨时返回 0，保证 dt 永不为负。
type FrameTimer struct {
	clock Clock
	last  time.Time
	valid bool
}

// NewFrameTimer 创建帧计时器
func NewFrameTimer(clock Clock) *FrameTimer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameTimer{clock: clock}
}

// Tick 返回自上一次 Tick 以来经过的秒数
func (ft *FrameTimer) Tick() float64 {
	now := ft.clock.Now()
	if !ft.valid {
		ft.last = now
		ft.valid = true
		return 0
	}
	dt := now.Sub(ft.last).Seconds()
	ft.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset 丢弃上一帧时间，下一次 Tick 返回 0（例如从暂停恢复时）
func (ft *FrameTimer) Reset() {
	ft.valid = false
}

package utils

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestFrameTimer_Tick(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	ft := NewFrameTimer(clock)

	if dt := ft.Tick(); dt != 0 {
		t.Errorf("首帧 dt = %v, want 0", dt)
	}

	clock.now = clock.now.Add(250 * time.Millisecond)
	if dt := ft.Tick(); dt != 0.25 {
		t.Errorf("dt = %v, want 0.25", dt)
	}

	// 时钟回拨
	clock.now = clock.now.Add(-time.Second)
	if dt := ft.Tick(); dt != 0 {
		t.Errorf("时钟回拨 dt = %v, want 0", dt)
	}

	clock.now = clock.now.Add(time.Second)
	ft.Reset()
	if dt := ft.Tick(); dt != 0 {
		t.Errorf("Reset 后 dt = %v, want 0", dt)
	}
}

func TestNewFrameTimer_DefaultClock(t *testing.T) {
	ft := NewFrameTimer(nil)
	ft.Tick()
	if dt := ft.Tick(); dt < 0 {
		t.Errorf("系统时钟 dt = %v, want >= 0", dt)
	}
}

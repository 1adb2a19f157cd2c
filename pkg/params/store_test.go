package params

import (
	"math"
	"sync"
	"testing"
)

func TestNewStoreStartsChanged(t *testing.T) {
	s := NewStore(DefaultSnapshot())

	snap, changed := s.BeginFrame()
	if !changed {
		t.Error("第一帧应视为已修改，以便摆放初始半径")
	}
	if snap != DefaultSnapshot() {
		t.Errorf("snapshot = %+v, want defaults %+v", snap, DefaultSnapshot())
	}

	if _, changed := s.BeginFrame(); changed {
		t.Error("修改标记应只被消费一次")
	}
}

func TestSettersMarkChanged(t *testing.T) {
	tests := []struct {
		name  string
		write func(*Store)
		check func(Snapshot) bool
	}{
		{"公转倍率", func(s *Store) { s.SetOrbitSpeedScale(2.5) }, func(p Snapshot) bool { return p.OrbitSpeedScale == 2.5 }},
		{"自转倍率", func(s *Store) { s.SetSpinSpeedScale(0) }, func(p Snapshot) bool { return p.SpinSpeedScale == 0 }},
		{"主轨道半径", func(s *Store) { s.SetPrimaryOrbitRadius(7) }, func(p Snapshot) bool { return p.PrimaryOrbitRadius == 7 }},
		{"卫星轨道半径", func(s *Store) { s.SetSecondaryOrbitRadius(0.2) }, func(p Snapshot) bool { return p.SecondaryOrbitRadius == 0.2 }},
		{"椭圆模式", func(s *Store) { s.SetEllipticalMode(true) }, func(p Snapshot) bool { return p.EllipticalMode }},
		{"写入相同值也算修改", func(s *Store) { s.SetOrbitSpeedScale(DefaultOrbitSpeedScale) }, func(p Snapshot) bool { return true }},
		{"强制标记", func(s *Store) { s.MarkChanged() }, func(p Snapshot) bool { return p == DefaultSnapshot() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(DefaultSnapshot())
			s.BeginFrame()

			tt.write(s)
			if !s.Changed() {
				t.Fatal("写入后 Changed() 应为 true")
			}
			snap, changed := s.BeginFrame()
			if !changed {
				t.Error("BeginFrame 应报告修改")
			}
			if !tt.check(snap) {
				t.Errorf("snapshot = %+v 不符合预期", snap)
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore(DefaultSnapshot())
	snap, _ := s.BeginFrame()

	s.SetPrimaryOrbitRadius(9)

	if snap.PrimaryOrbitRadius != DefaultPrimaryOrbitRadius {
		t.Errorf("已取得的快照被后续写入改变: %v", snap.PrimaryOrbitRadius)
	}
	if got := s.Snapshot().PrimaryOrbitRadius; got != 9 {
		t.Errorf("Snapshot().PrimaryOrbitRadius = %v, want 9", got)
	}
	if !s.Changed() {
		t.Error("Snapshot() 不应消费修改标记")
	}
}

func TestSanitizeKeepsDomain(t *testing.T) {
	s := NewStore(DefaultSnapshot())
	s.SetOrbitSpeedScale(-1)
	s.SetSpinSpeedScale(math.NaN())
	s.SetPrimaryOrbitRadius(0)
	s.SetSecondaryOrbitRadius(math.Inf(1))

	p := s.Snapshot()
	if p.OrbitSpeedScale != 0 {
		t.Errorf("负倍率应被截为 0, got %v", p.OrbitSpeedScale)
	}
	if p.SpinSpeedScale != DefaultSpinSpeedScale {
		t.Errorf("NaN 倍率应回退默认值, got %v", p.SpinSpeedScale)
	}
	if p.PrimaryOrbitRadius != MinRadius {
		t.Errorf("零半径应被提升到 MinRadius, got %v", p.PrimaryOrbitRadius)
	}
	if p.SecondaryOrbitRadius != DefaultSecondaryOrbitRadius {
		t.Errorf("无穷半径应回退默认值, got %v", p.SecondaryOrbitRadius)
	}
}

func TestToggleEllipticalMode(t *testing.T) {
	s := NewStore(DefaultSnapshot())
	s.BeginFrame()

	if !s.ToggleEllipticalMode() {
		t.Fatal("第一次翻转应进入椭圆模式")
	}
	if got := s.Snapshot().Mode(); got != ModeElliptical {
		t.Errorf("Mode() = %v, want elliptical", got)
	}
	if s.ToggleEllipticalMode() {
		t.Fatal("第二次翻转应回到圆轨道模式")
	}

	// 模式切换不影响其它参数
	p := s.Snapshot()
	p.EllipticalMode = false
	if p != DefaultSnapshot() {
		t.Errorf("切换模式改变了其它参数: %+v", p)
	}
}

func TestConcurrentWritesNeverTear(t *testing.T) {
	s := NewStore(DefaultSnapshot())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.update(func(p *Snapshot) {
					p.PrimaryOrbitRadius = v
					p.SecondaryOrbitRadius = v
				})
			}
		}(float64(i + 1))
	}

	for j := 0; j < 200; j++ {
		p, _ := s.BeginFrame()
		if p.PrimaryOrbitRadius != p.SecondaryOrbitRadius && p.PrimaryOrbitRadius != DefaultPrimaryOrbitRadius {
			t.Fatalf("读到写了一半的快照: %+v", p)
		}
	}
	wg.Wait()
}

func TestModeString(t *testing.T) {
	if ModeCircular.String() != "circular" || ModeElliptical.String() != "elliptical" {
		t.Error("模式名不正确")
	}
	if Mode(42).String() != "unknown" {
		t.Error("未知模式应返回 unknown")
	}
}

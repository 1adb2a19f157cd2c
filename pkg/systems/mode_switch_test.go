package systems

import (
	"testing"

	"github.com/decker502/orrery/pkg/params"
)

func TestModeSwitch_Observe(t *testing.T) {
	circular := params.DefaultSnapshot()
	elliptical := snapshotWith(func(s *params.Snapshot) { s.EllipticalMode = true })

	steps := []struct {
		name     string
		snap     params.Snapshot
		wantSwap bool
		wantFrom params.Mode
		wantTo   params.Mode
	}{
		{"首帧只记录初始模式", circular, false, 0, 0},
		{"模式不变", circular, false, 0, 0},
		{"圆 -> 椭圆", elliptical, true, params.ModeCircular, params.ModeElliptical},
		{"保持椭圆", elliptical, false, 0, 0},
		{"椭圆 -> 圆", circular, true, params.ModeElliptical, params.ModeCircular},
	}

	ms := NewModeSwitch()
	for i, st := range steps {
		tr, ok := ms.Observe(st.snap, uint64(i+1))
		if ok != st.wantSwap {
			t.Fatalf("%s: 切换 = %v, want %v", st.name, ok, st.wantSwap)
		}
		if ok {
			if tr.From != st.wantFrom || tr.To != st.wantTo {
				t.Errorf("%s: %s -> %s, want %s -> %s", st.name, tr.From, tr.To, st.wantFrom, st.wantTo)
			}
			if tr.Frame != uint64(i+1) {
				t.Errorf("%s: Frame = %d, want %d", st.name, tr.Frame, i+1)
			}
		}
		if ms.Current() != st.snap.Mode() {
			t.Errorf("%s: Current() = %s, want %s", st.name, ms.Current(), st.snap.Mode())
		}
	}
	if ms.Switches() != 2 {
		t.Errorf("Switches() = %d, want 2", ms.Switches())
	}
}

func TestModeSwitch_InitialElliptical(t *testing.T) {
	ms := NewModeSwitch()
	if _, ok := ms.Observe(snapshotWith(func(s *params.Snapshot) { s.EllipticalMode = true }), 1); ok {
		t.Error("以椭圆模式启动不应算作切换")
	}
	if ms.Current() != params.ModeElliptical {
		t.Errorf("Current() = %s, want elliptical", ms.Current())
	}
}

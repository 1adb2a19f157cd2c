package systems

import (
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

func TestUISyncSystem_PullsFromStore(t *testing.T) {
	em := ecs.NewEntityManager()
	store := params.NewStore(params.DefaultSnapshot())

	sliderID := em.CreateEntity()
	slider := &components.SliderComponent{
		Min: 1, Max: 10, Value: 3,
		ValueSource: func() float64 { return store.Snapshot().PrimaryOrbitRadius },
	}
	ecs.AddComponent(em, sliderID, slider)

	cbID := em.CreateEntity()
	cb := &components.CheckboxComponent{
		Size:        16,
		StateSource: func() bool { return store.Snapshot().EllipticalMode },
	}
	ecs.AddComponent(em, cbID, cb)

	sys := NewUISyncSystem(em)

	store.SetPrimaryOrbitRadius(6)
	store.ToggleEllipticalMode()
	sys.Update()
	if slider.Value != 6 {
		t.Errorf("slider.Value = %v, want 6", slider.Value)
	}
	if !cb.IsChecked {
		t.Error("复选框应同步为勾选")
	}

	// 超出控件范围的值被截断显示，存储本身不变
	store.SetPrimaryOrbitRadius(25)
	sys.Update()
	if slider.Value != 10 {
		t.Errorf("slider.Value = %v, want 10", slider.Value)
	}
	if store.Snapshot().PrimaryOrbitRadius != 25 {
		t.Error("同步不应改写存储")
	}

	// 拖动中的滑块不被覆盖
	slider.IsDragging = true
	slider.Value = 2
	sys.Update()
	if slider.Value != 2 {
		t.Errorf("拖动中 slider.Value = %v, want 2", slider.Value)
	}
}

package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
)

// UISyncSystem 把数据源的当前值同步回控件
//
// 快捷键、终端查看器等途径也会写参数存储，控件需要每帧读回。
// 正在拖动的滑块跳过，避免和鼠标位置互相覆盖。
type UISyncSystem struct {
	entityManager *ecs.EntityManager
}

// NewUISyncSystem 创建控件同步系统
func NewUISyncSystem(em *ecs.EntityManager) *UISyncSystem {
	return &UISyncSystem{entityManager: em}
}

// Update 同步所有带数据源的滑块和复选框
func (s *UISyncSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		if !ok || slider.ValueSource == nil || slider.IsDragging {
			continue
		}
		v := slider.ValueSource()
		if v < slider.Min {
			v = slider.Min
		}
		if v > slider.Max {
			v = slider.Max
		}
		slider.Value = v
	}

	for _, id := range ecs.GetEntitiesWith1[*components.CheckboxComponent](s.entityManager) {
		checkbox, ok := ecs.GetComponent[*components.CheckboxComponent](s.entityManager, id)
		if !ok || checkbox.StateSource == nil {
			continue
		}
		checkbox.IsChecked = checkbox.StateSource()
	}
}

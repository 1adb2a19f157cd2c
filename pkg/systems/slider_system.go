package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// SliderMouseInput 滑块系统鼠标输入接口
// 用于依赖注入，支持测试时 mock
type SliderMouseInput interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

// ebitenSliderMouseInput Ebitengine 默认实现
type ebitenSliderMouseInput struct{}

func (e *ebitenSliderMouseInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenSliderMouseInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	// 使用支持触摸的按下检测
	return utils.IsPointerPressed()
}

// defaultSliderMouseInput 默认鼠标输入实例
var defaultSliderMouseInput SliderMouseInput = &ebitenSliderMouseInput{}

// SliderSystem 滑块交互系统
// 负责处理滑块的鼠标拖拽交互
//
// 职责：
//   - 检测鼠标是否在滑槽区域内
//   - 检测鼠标左键按下/拖拽状态
//   - 把点击位置换算成 [Min, Max] 内的值
//   - 更新 SliderComponent.Value 并调用 OnValueChange 回调
type SliderSystem struct {
	entityManager *ecs.EntityManager
	mouseInput    SliderMouseInput
	enabled       bool
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager) *SliderSystem {
	return NewSliderSystemWithInput(em, defaultSliderMouseInput)
}

// NewSliderSystemWithInput 创建带自定义鼠标输入的滑块交互系统（用于测试）
func NewSliderSystemWithInput(em *ecs.EntityManager, input SliderMouseInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		mouseInput:    input,
		enabled:       true,
	}
}

// SetEnabled 面板隐藏时禁用交互，同时结束正在进行的拖拽
func (s *SliderSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if enabled {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		if slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, id); ok {
			slider.IsDragging = false
			slider.IsHovered = false
		}
	}
}

// IsDragging 是否有滑块正在被拖动（拖动时鼠标不应再触发其它操作）
func (s *SliderSystem) IsDragging() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager) {
		if slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, id); ok && slider.IsDragging {
			return true
		}
	}
	return false
}

// Update 更新滑块交互状态
// 检测鼠标位置和按下状态，更新滑块值
func (s *SliderSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	// 获取鼠标位置和按下状态（通过接口调用，支持 mock）
	mouseX, mouseY := s.mouseInput.CursorPosition()
	mousePressed := s.mouseInput.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// 查询所有滑块实体
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if slider == nil || pos == nil {
			continue
		}

		// 检测鼠标是否在滑槽区域内
		isInSlot := s.isMouseInSlot(float64(mouseX), float64(mouseY), pos.X, pos.Y, slider.SlotWidth, slider.SlotHeight)

		// 更新悬停状态
		slider.IsHovered = isInSlot

		if !mousePressed {
			// 鼠标释放，停止拖拽
			slider.IsDragging = false
			continue
		}

		// 如果鼠标按下且在滑槽内，或者正在拖拽
		if !isInSlot && !slider.IsDragging {
			continue
		}
		slider.IsDragging = true

		// 计算新的比例（0.0 ~ 1.0）并换算成实际值
		ratio := s.calculateRatio(float64(mouseX), pos.X, slider.SlotWidth)
		if ratio < 0.0 {
			ratio = 0.0
		}
		if ratio > 1.0 {
			ratio = 1.0
		}
		newValue := slider.ValueAt(ratio)

		// 如果值发生变化，更新并触发回调
		if newValue != slider.Value {
			slider.Value = newValue
			if slider.OnValueChange != nil {
				slider.OnValueChange(newValue)
			}
		}
	}
}

// isMouseInSlot 检测鼠标是否在滑槽区域内
func (s *SliderSystem) isMouseInSlot(mouseX, mouseY, slotX, slotY, slotWidth, slotHeight float64) bool {
	return mouseX >= slotX &&
		mouseX <= slotX+slotWidth &&
		mouseY >= slotY &&
		mouseY <= slotY+slotHeight
}

// calculateRatio 根据鼠标X坐标计算滑块比例
func (s *SliderSystem) calculateRatio(mouseX, slotX, slotWidth float64) float64 {
	if slotWidth <= 0 {
		return 0.0
	}
	return (mouseX - slotX) / slotWidth
}

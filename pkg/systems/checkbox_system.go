package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// CheckboxMouseInput 复选框系统鼠标输入接口
// 用于依赖注入，支持测试时 mock
type CheckboxMouseInput interface {
	CursorPosition() (int, int)
	IsMouseButtonJustReleased(button ebiten.MouseButton) bool
}

// ebitenCheckboxMouseInput Ebitengine 默认实现
type ebitenCheckboxMouseInput struct{}

func (e *ebitenCheckboxMouseInput) CursorPosition() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenCheckboxMouseInput) IsMouseButtonJustReleased(button ebiten.MouseButton) bool {
	// 使用支持触摸的释放检测
	released, _, _ := utils.IsPointerJustReleased()
	return released
}

// defaultCheckboxMouseInput 默认鼠标输入实例
var defaultCheckboxMouseInput CheckboxMouseInput = &ebitenCheckboxMouseInput{}

// CheckboxSystem 复选框交互系统
// 负责处理复选框的鼠标点击交互
//
// 职责：
//   - 检测鼠标是否在复选框或其标签区域内
//   - 鼠标左键释放时切换 CheckboxComponent.IsChecked
//   - 调用 OnToggle 回调
type CheckboxSystem struct {
	entityManager *ecs.EntityManager
	mouseInput    CheckboxMouseInput
	enabled       bool
}

// checkboxLabelHitWidth 标签文字也可点击（像素，向右延伸）
const checkboxLabelHitWidth = 200.0

// NewCheckboxSystem 创建复选框交互系统
func NewCheckboxSystem(em *ecs.EntityManager) *CheckboxSystem {
	return NewCheckboxSystemWithInput(em, defaultCheckboxMouseInput)
}

// NewCheckboxSystemWithInput 创建带自定义鼠标输入的复选框交互系统（用于测试）
func NewCheckboxSystemWithInput(em *ecs.EntityManager, input CheckboxMouseInput) *CheckboxSystem {
	return &CheckboxSystem{
		entityManager: em,
		mouseInput:    input,
		enabled:       true,
	}
}

// SetEnabled 面板隐藏时禁用交互
func (s *CheckboxSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Update 更新复选框交互状态
// 检测鼠标位置和点击，更新复选框状态
func (s *CheckboxSystem) Update(deltaTime float64) {
	if !s.enabled {
		return
	}

	// 获取鼠标位置
	mouseX, mouseY := s.mouseInput.CursorPosition()

	// 检测鼠标左键是否刚释放
	mouseJustReleased := s.mouseInput.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	// 查询所有复选框实体
	entities := ecs.GetEntitiesWith2[*components.CheckboxComponent, *components.PositionComponent](s.entityManager)

	for _, entityID := range entities {
		checkbox, _ := ecs.GetComponent[*components.CheckboxComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if checkbox == nil || pos == nil {
			continue
		}
		if checkbox.Size <= 0 {
			checkbox.IsHovered = false
			continue
		}

		// 检测鼠标是否在复选框区域内（含右侧标签）
		isInCheckbox := s.isMouseInCheckbox(float64(mouseX), float64(mouseY), pos.X, pos.Y,
			checkbox.Size+checkboxLabelHitWidth, checkbox.Size)

		// 更新悬停状态
		checkbox.IsHovered = isInCheckbox

		// 释放时处理点击
		if mouseJustReleased && isInCheckbox {
			// 切换状态
			checkbox.IsChecked = !checkbox.IsChecked

			// 触发回调
			if checkbox.OnToggle != nil {
				checkbox.OnToggle(checkbox.IsChecked)
			}
		}
	}
}

// isMouseInCheckbox 检测鼠标是否在复选框区域内
func (s *CheckboxSystem) isMouseInCheckbox(mouseX, mouseY, checkboxX, checkboxY, width, height float64) bool {
	return mouseX >= checkboxX &&
		mouseX <= checkboxX+width &&
		mouseY >= checkboxY &&
		mouseY <= checkboxY+height
}

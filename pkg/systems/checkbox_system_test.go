package systems

import (
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// mockCheckboxMouseInput 用于测试的 mock 鼠标输入
type mockCheckboxMouseInput struct {
	mouseX   int
	mouseY   int
	released bool
}

func (m *mockCheckboxMouseInput) CursorPosition() (int, int) {
	return m.mouseX, m.mouseY
}

func (m *mockCheckboxMouseInput) IsMouseButtonJustReleased(button ebiten.MouseButton) bool {
	return m.released
}

func createTestCheckbox(em *ecs.EntityManager, onToggle func(bool)) *components.CheckboxComponent {
	id := em.CreateEntity()
	cb := &components.CheckboxComponent{Size: 16, Label: "elliptical", OnToggle: onToggle}
	ecs.AddComponent(em, id, &components.PositionComponent{X: 50, Y: 50})
	ecs.AddComponent(em, id, cb)
	return cb
}

func TestCheckboxSystem_Toggle(t *testing.T) {
	tests := []struct {
		name       string
		mouseX     int
		mouseY     int
		released   bool
		wantToggle bool
	}{
		{"点击方框", 58, 58, true, true},
		{"点击标签", 120, 58, true, true},
		{"悬停未点击", 58, 58, false, false},
		{"点击区域外", 10, 10, true, false},
		{"点击下方", 58, 80, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			var toggled []bool
			cb := createTestCheckbox(em, func(v bool) { toggled = append(toggled, v) })

			input := &mockCheckboxMouseInput{mouseX: tt.mouseX, mouseY: tt.mouseY, released: tt.released}
			NewCheckboxSystemWithInput(em, input).Update(0)

			if cb.IsChecked != tt.wantToggle {
				t.Errorf("IsChecked = %v, want %v", cb.IsChecked, tt.wantToggle)
			}
			if tt.wantToggle && (len(toggled) != 1 || !toggled[0]) {
				t.Errorf("OnToggle 调用 = %v, want [true]", toggled)
			}
			if !tt.wantToggle && len(toggled) != 0 {
				t.Errorf("不应调用 OnToggle, got %v", toggled)
			}
		})
	}
}

func TestCheckboxSystem_ToggleTwice(t *testing.T) {
	em := ecs.NewEntityManager()
	cb := createTestCheckbox(em, nil)
	input := &mockCheckboxMouseInput{mouseX: 55, mouseY: 55, released: true}
	system := NewCheckboxSystemWithInput(em, input)

	system.Update(0)
	system.Update(0)
	if cb.IsChecked {
		t.Error("点击两次后应恢复未勾选")
	}
}

func TestCheckboxSystem_DisabledAndZeroSize(t *testing.T) {
	em := ecs.NewEntityManager()
	cb := createTestCheckbox(em, nil)
	input := &mockCheckboxMouseInput{mouseX: 55, mouseY: 55, released: true}
	system := NewCheckboxSystemWithInput(em, input)

	system.SetEnabled(false)
	system.Update(0)
	if cb.IsChecked {
		t.Error("禁用时不应切换")
	}

	system.SetEnabled(true)
	cb.Size = 0
	system.Update(0)
	if cb.IsChecked || cb.IsHovered {
		t.Error("尺寸为 0 的复选框不可点击")
	}
}

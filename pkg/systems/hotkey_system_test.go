package systems

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// mockKeyInput 用于测试的 mock 键盘输入
type mockKeyInput struct {
	pressed map[ebiten.Key]bool
}

func (m *mockKeyInput) IsKeyJustPressed(key ebiten.Key) bool {
	return m.pressed[key]
}

func TestHotkeySystem_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		pressed []ebiten.Key
		want    []HotkeyAction
	}{
		{"无按键", nil, nil},
		{"空格暂停", []ebiten.Key{ebiten.KeySpace}, []HotkeyAction{ActionTogglePause}},
		{"E 切换模式", []ebiten.Key{ebiten.KeyE}, []HotkeyAction{ActionToggleElliptical}},
		{"同帧多键按动作顺序", []ebiten.Key{ebiten.KeyG, ebiten.KeyR, ebiten.KeySpace},
			[]HotkeyAction{ActionTogglePause, ActionForceReconcile, ActionToggleGuides}},
		{"F1 帮助", []ebiten.Key{ebiten.KeyF1}, []HotkeyAction{ActionToggleHelp}},
		{"未绑定的键忽略", []ebiten.Key{ebiten.KeyQ}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := &mockKeyInput{pressed: map[ebiten.Key]bool{}}
			for _, k := range tt.pressed {
				input.pressed[k] = true
			}

			var called []HotkeyAction
			handlers := map[HotkeyAction]func(){}
			for _, a := range []HotkeyAction{ActionTogglePause, ActionToggleElliptical, ActionForceReconcile,
				ActionTogglePanel, ActionToggleGuides, ActionToggleFullscreen, ActionToggleHelp} {
				action := a
				handlers[action] = func() { called = append(called, action) }
			}

			got := NewHotkeySystemWithInput(input, DefaultKeyBindings, handlers).Update()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Update() = %v, want %v", got, tt.want)
			}
			if !reflect.DeepEqual(called, tt.want) {
				t.Errorf("handlers called = %v, want %v", called, tt.want)
			}
		})
	}
}

func TestHotkeySystem_MissingHandler(t *testing.T) {
	input := &mockKeyInput{pressed: map[ebiten.Key]bool{ebiten.KeyH: true}}
	got := NewHotkeySystemWithInput(input, DefaultKeyBindings, nil).Update()
	if len(got) != 1 || got[0] != ActionTogglePanel {
		t.Errorf("Update() = %v, want [toggle-panel]", got)
	}
}

func TestHotkeyAction_String(t *testing.T) {
	if ActionToggleElliptical.String() != "toggle-elliptical" {
		t.Errorf("String() = %q", ActionToggleElliptical.String())
	}
	if HotkeyAction(99).String() != "unknown" {
		t.Errorf("未知动作 String() = %q", HotkeyAction(99).String())
	}
}

package systems

import (
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HotkeyAction 快捷键动作
type HotkeyAction int

const (
	// ActionTogglePause 暂停/继续
	ActionTogglePause HotkeyAction = iota
	// ActionToggleElliptical 切换椭圆轨道模式
	ActionToggleElliptical
	// ActionForceReconcile 强制半径校正
	ActionForceReconcile
	// ActionTogglePanel 显示/隐藏控制面板
	ActionTogglePanel
	// ActionToggleGuides 显示/隐藏轨道辅助线
	ActionToggleGuides
	// ActionToggleFullscreen 切换全屏
	ActionToggleFullscreen
	// ActionToggleHelp 显示/隐藏快捷键帮助
	ActionToggleHelp
)

// String 返回动作名（日志用）
func (a HotkeyAction) String() string {
	switch a {
	case ActionTogglePause:
		return "toggle-pause"
	case ActionToggleElliptical:
		return "toggle-elliptical"
	case ActionForceReconcile:
		return "force-reconcile"
	case ActionTogglePanel:
		return "toggle-panel"
	case ActionToggleGuides:
		return "toggle-guides"
	case ActionToggleFullscreen:
		return "toggle-fullscreen"
	case ActionToggleHelp:
		return "toggle-help"
	default:
		return "unknown"
	}
}

// DefaultKeyBindings 默认快捷键
var DefaultKeyBindings = map[ebiten.Key]HotkeyAction{
	ebiten.KeySpace: ActionTogglePause,
	ebiten.KeyE:     ActionToggleElliptical,
	ebiten.KeyR:     ActionForceReconcile,
	ebiten.KeyH:     ActionTogglePanel,
	ebiten.KeyG:     ActionToggleGuides,
	ebiten.KeyF11:   ActionToggleFullscreen,
	ebiten.KeyF1:    ActionToggleHelp,
}

// KeyInput 键盘输入接口
// 用于依赖注入，支持测试时 mock
type KeyInput interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

// ebitenKeyInput Ebitengine 默认实现
type ebitenKeyInput struct{}

func (e *ebitenKeyInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// HotkeySystem 快捷键系统
// 每帧检测绑定的按键，按动作顺序调用处理函数
type HotkeySystem struct {
	input    KeyInput
	bindings map[ebiten.Key]HotkeyAction
	handlers map[HotkeyAction]func()
	keys     []ebiten.Key // 检测顺序（按动作排序，保证同帧多键时行为确定）
}

// NewHotkeySystem 创建使用默认按键绑定的快捷键系统
func NewHotkeySystem(handlers map[HotkeyAction]func()) *HotkeySystem {
	return NewHotkeySystemWithInput(&ebitenKeyInput{}, DefaultKeyBindings, handlers)
}

// NewHotkeySystemWithInput 创建带自定义输入和绑定的快捷键系统（用于测试）
func NewHotkeySystemWithInput(input KeyInput, bindings map[ebiten.Key]HotkeyAction, handlers map[HotkeyAction]func()) *HotkeySystem {
	keys := make([]ebiten.Key, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if bindings[keys[i]] != bindings[keys[j]] {
			return bindings[keys[i]] < bindings[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return &HotkeySystem{
		input:    input,
		bindings: bindings,
		handlers: handlers,
		keys:     keys,
	}
}

// Update 检测按键并执行动作，返回本帧触发的动作
func (s *HotkeySystem) Update() []HotkeyAction {
	var fired []HotkeyAction
	for _, key := range s.keys {
		if !s.input.IsKeyJustPressed(key) {
			continue
		}
		action := s.bindings[key]
		fired = append(fired, action)
		log.Printf("[Hotkey] %s -> %s", key, action)
		if h, ok := s.handlers[action]; ok && h != nil {
			h()
		}
	}
	return fired
}

// Package modules 提供可在场景间复用的界面模块
package modules

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/decker502/orrery/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	helpMaskColor   = color.RGBA{A: 140}
	helpNoteColor   = color.RGBA{R: 28, G: 30, B: 44, A: 235}
	helpBorderColor = color.RGBA{R: 255, G: 210, B: 110, A: 255}
)

const (
	helpLineHeight = 18
	helpPadding    = 16
	helpNoteWidth  = 360
)

// 动作说明（调试字体只支持 ASCII）
var helpDescriptions = map[systems.HotkeyAction]string{
	systems.ActionTogglePause:      "pause / resume",
	systems.ActionToggleElliptical: "circular / elliptical orbit",
	systems.ActionForceReconcile:   "re-apply orbit radii",
	systems.ActionTogglePanel:      "show / hide control panel",
	systems.ActionToggleGuides:     "show / hide orbit guides",
	systems.ActionToggleFullscreen: "fullscreen",
	systems.ActionToggleHelp:       "show / hide this help",
}

// HelpPanelModule 快捷键帮助面板
//
// 职责：
//   - 根据按键绑定生成帮助文本
//   - 处理面板显示/隐藏
//   - 渲染遮罩和居中便笺
type HelpPanelModule struct {
	lines    []string
	active   bool
	onClose  func()
	width    int
	height   int
	noteRect [4]float32 // x, y, w, h
}

// NewHelpPanelModule 创建帮助面板模块
//
// 参数:
//   - bindings: 按键绑定（通常为 systems.DefaultKeyBindings）
//   - windowWidth, windowHeight: 逻辑屏幕尺寸
//   - onClose: 关闭面板回调（可选）
func NewHelpPanelModule(bindings map[ebiten.Key]systems.HotkeyAction, windowWidth, windowHeight int, onClose func()) *HelpPanelModule {
	m := &HelpPanelModule{
		lines:   HelpLines(bindings),
		onClose: onClose,
		width:   windowWidth,
		height:  windowHeight,
	}

	h := float32(len(m.lines)*helpLineHeight + 2*helpPadding)
	m.noteRect = [4]float32{
		float32(windowWidth-helpNoteWidth) / 2,
		(float32(windowHeight) - h) / 2,
		helpNoteWidth,
		h,
	}
	return m
}

// HelpLines 按动作顺序列出 "按键  说明"，同一动作的多个按键合并为一行
func HelpLines(bindings map[ebiten.Key]systems.HotkeyAction) []string {
	keysByAction := make(map[systems.HotkeyAction][]ebiten.Key)
	for k, a := range bindings {
		keysByAction[a] = append(keysByAction[a], k)
	}
	actions := make([]systems.HotkeyAction, 0, len(keysByAction))
	for a := range keysByAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	lines := make([]string, 0, len(actions)+2)
	lines = append(lines, "Keys", "")
	for _, a := range actions {
		keys := keysByAction[a]
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		names := ""
		for i, k := range keys {
			if i > 0 {
				names += "/"
			}
			names += k.String()
		}
		desc, ok := helpDescriptions[a]
		if !ok {
			desc = a.String()
		}
		lines = append(lines, fmt.Sprintf("%-8s %s", names, desc))
	}
	return lines
}

// Show 显示帮助面板
func (m *HelpPanelModule) Show() {
	m.active = true
}

// Hide 隐藏帮助面板，触发关闭回调
func (m *HelpPanelModule) Hide() {
	if !m.active {
		return
	}
	m.active = false
	if m.onClose != nil {
		m.onClose()
	}
}

// Toggle 切换显示状态，返回新状态
func (m *HelpPanelModule) Toggle() bool {
	if m.active {
		m.Hide()
	} else {
		m.Show()
	}
	log.Printf("[HelpPanelModule] active = %v", m.active)
	return m.active
}

// IsActive 面板是否显示
func (m *HelpPanelModule) IsActive() bool {
	return m.active
}

// Lines 帮助文本
func (m *HelpPanelModule) Lines() []string {
	return m.lines
}

// HandleClick 面板显示时，点击便笺以外的区域关闭面板；返回是否消费了点击
func (m *HelpPanelModule) HandleClick(x, y int) bool {
	if !m.active {
		return false
	}
	r := m.noteRect
	inside := float32(x) >= r[0] && float32(x) <= r[0]+r[2] && float32(y) >= r[1] && float32(y) <= r[1]+r[3]
	if !inside {
		m.Hide()
	}
	return true
}

// Draw 渲染遮罩和帮助便笺
func (m *HelpPanelModule) Draw(screen *ebiten.Image) {
	if !m.active {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, float32(m.width), float32(m.height), helpMaskColor, false)

	r := m.noteRect
	vector.DrawFilledRect(screen, r[0], r[1], r[2], r[3], helpNoteColor, true)
	vector.StrokeRect(screen, r[0], r[1], r[2], r[3], 2, helpBorderColor, true)

	for i, line := range m.lines {
		ebitenutil.DebugPrintAt(screen, line, int(r[0])+helpPadding, int(r[1])+helpPadding+i*helpLineHeight)
	}
}

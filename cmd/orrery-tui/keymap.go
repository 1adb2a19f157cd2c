package main

import (
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/params"
	"github.com/gdamore/tcell/v2"
)

type tuiAction int

const (
	actionNone tuiAction = iota
	actionQuit
	actionPause
	actionToggleElliptical
	actionOrbitSpeedDown
	actionOrbitSpeedUp
	actionSpinSpeedDown
	actionSpinSpeedUp
	actionPrimaryDown
	actionPrimaryUp
	actionSecondaryDown
	actionSecondaryUp
	actionZoomIn
	actionZoomOut
)

// 每次按键修改的幅度（占取值范围的比例）
const paramStepRatio = 0.05

var runeActions = map[rune]tuiAction{
	'q': actionQuit,
	' ': actionPause,
	'e': actionToggleElliptical,
	'o': actionOrbitSpeedDown,
	'O': actionOrbitSpeedUp,
	's': actionSpinSpeedDown,
	'S': actionSpinSpeedUp,
	'r': actionPrimaryDown,
	'R': actionPrimaryUp,
	'm': actionSecondaryDown,
	'M': actionSecondaryUp,
	'+': actionZoomIn,
	'=': actionZoomIn,
	'-': actionZoomOut,
}

const helpLine = "q 退出  空格 暂停  e 椭圆  o/O 公转  s/S 自转  r/R 地球半径  m/M 月球半径  +/- 缩放"

// keyAction 把按键事件映射为动作
func keyAction(ev *tcell.EventKey) tuiAction {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		if a, ok := runeActions[ev.Rune()]; ok {
			return a
		}
	}
	return actionNone
}

// applyParamAction 把参数类动作写入存储，返回是否处理
//
// 新值限制在控件范围内，与滑动条的取值一致。
func applyParamAction(store *params.Store, bounds config.BoundsConfig, a tuiAction) bool {
	snap := store.Snapshot()
	step := func(r config.Range, cur float64, dir float64) float64 {
		return r.Clamp(cur + dir*(r.Max-r.Min)*paramStepRatio)
	}

	switch a {
	case actionToggleElliptical:
		store.ToggleEllipticalMode()
	case actionOrbitSpeedDown:
		store.SetOrbitSpeedScale(step(bounds.OrbitSpeedScale, snap.OrbitSpeedScale, -1))
	case actionOrbitSpeedUp:
		store.SetOrbitSpeedScale(step(bounds.OrbitSpeedScale, snap.OrbitSpeedScale, 1))
	case actionSpinSpeedDown:
		store.SetSpinSpeedScale(step(bounds.SpinSpeedScale, snap.SpinSpeedScale, -1))
	case actionSpinSpeedUp:
		store.SetSpinSpeedScale(step(bounds.SpinSpeedScale, snap.SpinSpeedScale, 1))
	case actionPrimaryDown:
		store.SetPrimaryOrbitRadius(step(bounds.PrimaryOrbitRadius, snap.PrimaryOrbitRadius, -1))
	case actionPrimaryUp:
		store.SetPrimaryOrbitRadius(step(bounds.PrimaryOrbitRadius, snap.PrimaryOrbitRadius, 1))
	case actionSecondaryDown:
		store.SetSecondaryOrbitRadius(step(bounds.SecondaryOrbitRadius, snap.SecondaryOrbitRadius, -1))
	case actionSecondaryUp:
		store.SetSecondaryOrbitRadius(step(bounds.SecondaryOrbitRadius, snap.SecondaryOrbitRadius, 1))
	default:
		return false
	}
	return true
}

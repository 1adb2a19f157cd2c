package systems

import (
	"log"

	"github.com/decker502/orrery/pkg/params"
)

// ModeTransition 一次模式切换
type ModeTransition struct {
	From  params.Mode
	To    params.Mode
	Frame uint64 // 观察到切换的帧号
}

// ModeSwitch 圆轨道 / 椭圆轨道模式切换
//
// 模式完全由参数存储中的 EllipticalMode 决定，切换立即生效。
// ModeSwitch 本身不改动任何实体，只负责记录切换（日志、指标、帧报告）。
// 进入椭圆模式时 θ 从上次的值继续；切回圆轨道时由同一帧的半径校正把天体放回圆轨道。
type ModeSwitch struct {
	current     params.Mode
	initialized bool
	switches    int
}

// NewModeSwitch 创建模式切换观察者
func NewModeSwitch() *ModeSwitch {
	return &ModeSwitch{}
}

// Observe 对比本帧快照与上一帧的模式
// 第一次调用只记录初始模式，不视为切换
func (m *ModeSwitch) Observe(snap params.Snapshot, frame uint64) (ModeTransition, bool) {
	mode := snap.Mode()
	if !m.initialized {
		m.current = mode
		m.initialized = true
		log.Printf("[ModeSwitch] 初始模式: %s", mode)
		return ModeTransition{}, false
	}
	if mode == m.current {
		return ModeTransition{}, false
	}

	tr := ModeTransition{From: m.current, To: mode, Frame: frame}
	m.current = mode
	m.switches++
	log.Printf("[ModeSwitch] 第 %d 帧: %s -> %s", frame, tr.From, tr.To)
	return tr, true
}

// Current 当前模式
func (m *ModeSwitch) Current() params.Mode {
	return m.current
}

// Switches 累计切换次数
func (m *ModeSwitch) Switches() int {
	return m.switches
}

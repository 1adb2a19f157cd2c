// Package params 提供模拟参数存储（Parameter Store）
//
// Store 是整个进程唯一的一份可调参数：由控制面板写入，由每个运动系统读取。
// 写入路径通过 setter 标记"已修改"，读取路径由帧驱动在每帧开始时调用 BeginFrame
// 取得一份不可变快照并消费修改标记，保证同一帧内所有系统看到一致的数据。
package params

import (
	"math"
	"sync"
)

// 默认参数
const (
	DefaultOrbitSpeedScale      = 1.0
	DefaultSpinSpeedScale       = 1.0
	DefaultPrimaryOrbitRadius   = 3.0
	DefaultSecondaryOrbitRadius = 0.9

	// MinRadius 半径下限，保证半径始终为正
	MinRadius = 1e-3
)

// Snapshot 某一帧的参数快照（值类型，拷贝后互不影响）
type Snapshot struct {
	OrbitSpeedScale      float64 // 所有公转角速度的倍率
	SpinSpeedScale       float64 // 所有自转角速度的倍率
	PrimaryOrbitRadius   float64 // 环绕天体到中心的距离（圆轨道模式）
	SecondaryOrbitRadius float64 // 卫星到环绕天体的距离（圆轨道模式）
	EllipticalMode       bool    // 环绕天体是否使用椭圆轨道
}

// DefaultSnapshot 返回默认参数
func DefaultSnapshot() Snapshot {
	return Snapshot{
		OrbitSpeedScale:      DefaultOrbitSpeedScale,
		SpinSpeedScale:       DefaultSpinSpeedScale,
		PrimaryOrbitRadius:   DefaultPrimaryOrbitRadius,
		SecondaryOrbitRadius: DefaultSecondaryOrbitRadius,
		EllipticalMode:       false,
	}
}

// Mode 返回快照对应的运动模式
func (s Snapshot) Mode() Mode {
	if s.EllipticalMode {
		return ModeElliptical
	}
	return ModeCircular
}

// Store 参数存储
//
// 单线程帧循环中不需要锁；mutex 只是为了让其它 goroutine（例如终端查看器的
// 输入协程）写入时，读取端永远不会看到写了一半的数据。
type Store struct {
	mu      sync.Mutex
	current Snapshot
	changed bool
}

// NewStore 用给定初始值创建参数存储
// 初始状态视为"已修改"，第一帧会执行一次半径校正，把场景摆到配置的位置
func NewStore(initial Snapshot) *Store {
	return &Store{
		current: sanitize(initial),
		changed: true,
	}
}

// BeginFrame 取得本帧快照并消费修改标记
//
// 每帧只应调用一次：返回的 changed 表示"自上一帧读取以来是否有写入"。
func (s *Store) BeginFrame() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.changed
	s.changed = false
	return s.current, changed
}

// Snapshot 读取当前参数，不消费修改标记
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Changed 返回是否有尚未被帧驱动消费的写入
func (s *Store) Changed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// MarkChanged 强制下一帧视为"参数已修改"
// 用于在没有实际编辑时也触发一次半径校正
func (s *Store) MarkChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changed = true
}

// update 以函数方式批量修改参数，只标记一次修改
// edit 在持锁状态下执行，不能再调用 Store 的方法
func (s *Store) update(edit func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	edit(&next)
	s.current = sanitize(next)
	s.changed = true
}

// SetOrbitSpeedScale 设置公转倍率（负值按 0 处理）
func (s *Store) SetOrbitSpeedScale(v float64) {
	s.update(func(p *Snapshot) { p.OrbitSpeedScale = v })
}

// SetSpinSpeedScale 设置自转倍率（负值按 0 处理）
func (s *Store) SetSpinSpeedScale(v float64) {
	s.update(func(p *Snapshot) { p.SpinSpeedScale = v })
}

// SetPrimaryOrbitRadius 设置环绕天体轨道半径
func (s *Store) SetPrimaryOrbitRadius(v float64) {
	s.update(func(p *Snapshot) { p.PrimaryOrbitRadius = v })
}

// SetSecondaryOrbitRadius 设置卫星轨道半径
func (s *Store) SetSecondaryOrbitRadius(v float64) {
	s.update(func(p *Snapshot) { p.SecondaryOrbitRadius = v })
}

// SetEllipticalMode 切换椭圆轨道模式
// 切换本身也是一次写入，会标记修改
func (s *Store) SetEllipticalMode(enabled bool) {
	s.update(func(p *Snapshot) { p.EllipticalMode = enabled })
}

// ToggleEllipticalMode 翻转椭圆轨道模式并返回新值
func (s *Store) ToggleEllipticalMode() bool {
	var enabled bool
	s.update(func(p *Snapshot) {
		p.EllipticalMode = !p.EllipticalMode
		enabled = p.EllipticalMode
	})
	return enabled
}

// sanitize 把数值限制在参数域内：倍率 ≥ 0，半径 > 0，NaN 退回默认值
func sanitize(p Snapshot) Snapshot {
	p.OrbitSpeedScale = nonNegative(p.OrbitSpeedScale, DefaultOrbitSpeedScale)
	p.SpinSpeedScale = nonNegative(p.SpinSpeedScale, DefaultSpinSpeedScale)
	p.PrimaryOrbitRadius = positive(p.PrimaryOrbitRadius, DefaultPrimaryOrbitRadius)
	p.SecondaryOrbitRadius = positive(p.SecondaryOrbitRadius, DefaultSecondaryOrbitRadius)
	return p
}

func nonNegative(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < 0 {
		return 0
	}
	return v
}

func positive(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	if v < MinRadius {
		return MinRadius
	}
	return v
}

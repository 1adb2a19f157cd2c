package systems

import (
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

// FrameMetrics 帧驱动的指标接收者（可为 nil）
type FrameMetrics interface {
	ObserveFrame(deltaTime float64, mode params.Mode, theta float64)
	ObserveReconcile()
	ObserveModeSwitch(from, to params.Mode)
}

// FrameReport 一帧执行后的摘要
type FrameReport struct {
	Frame      uint64
	DeltaTime  float64 // 实际喂给系统的 dt（已截断负值，暂停时为 0）
	Snapshot   params.Snapshot
	Changed    bool // 本帧参数存储是否有写入
	Reconciled bool // 本帧是否执行了半径校正
	Mode       params.Mode
	Transition *ModeTransition // 本帧发生的模式切换，没有则为 nil
	Theta      float64         // 环绕天体椭圆参数角（未取模）
}

// FrameDriver 帧驱动
//
// 每帧固定顺序：
//  1. 从参数存储取快照（消费修改标记）
//  2. 观察模式切换
//  3. 旋转系统
//  4. 椭圆轨道系统
//  5. 半径校正系统
//  6. 世界变换传播
//
// 单线程执行，所有系统看到同一份快照。
type FrameDriver struct {
	entityManager *ecs.EntityManager
	store         *params.Store
	metrics       FrameMetrics

	rotation   *RotationalMotionSystem
	ellipse    *EllipticalOrbitSystem
	reconcile  *RadiusReconcileSystem
	transforms *TransformSystem
	modeSwitch *ModeSwitch

	frame   uint64
	elapsed float64 // 喂给系统的 dt 之和（模拟时间）
	paused  bool
}

// NewFrameDriver 创建帧驱动；metrics 可为 nil
func NewFrameDriver(em *ecs.EntityManager, store *params.Store, metrics FrameMetrics) *FrameDriver {
	return &FrameDriver{
		entityManager: em,
		store:         store,
		metrics:       metrics,
		rotation:      NewRotationalMotionSystem(em),
		ellipse:       NewEllipticalOrbitSystem(em),
		reconcile:     NewRadiusReconcileSystem(em),
		transforms:    NewTransformSystem(em),
		modeSwitch:    NewModeSwitch(),
	}
}

// Step 推进一帧
func (d *FrameDriver) Step(deltaTime float64) FrameReport {
	if deltaTime < 0 {
		deltaTime = 0
	}
	if d.paused {
		deltaTime = 0
	}

	d.frame++
	d.elapsed += deltaTime

	snap, changed := d.store.BeginFrame()
	report := FrameReport{
		Frame:     d.frame,
		DeltaTime: deltaTime,
		Snapshot:  snap,
		Changed:   changed,
		Mode:      snap.Mode(),
	}

	if tr, ok := d.modeSwitch.Observe(snap, d.frame); ok {
		report.Transition = &tr
		if d.metrics != nil {
			d.metrics.ObserveModeSwitch(tr.From, tr.To)
		}
	}

	d.rotation.Update(deltaTime, snap)
	d.ellipse.Update(deltaTime, snap)
	report.Reconciled = d.reconcile.Update(snap, changed)
	d.transforms.Update()

	report.Theta = d.ellipse.Theta()

	if d.metrics != nil {
		if report.Reconciled {
			d.metrics.ObserveReconcile()
		}
		d.metrics.ObserveFrame(deltaTime, report.Mode, report.Theta)
	}
	return report
}

// SetPaused 设置暂停状态；暂停时 Step 以 dt = 0 执行
func (d *FrameDriver) SetPaused(paused bool) {
	d.paused = paused
}

// TogglePaused 切换暂停状态，返回新状态
func (d *FrameDriver) TogglePaused() bool {
	d.paused = !d.paused
	return d.paused
}

// IsPaused 是否暂停
func (d *FrameDriver) IsPaused() bool {
	return d.paused
}

// Frame 已执行的帧数
func (d *FrameDriver) Frame() uint64 {
	return d.frame
}

// Elapsed 累计模拟时间（秒）
func (d *FrameDriver) Elapsed() float64 {
	return d.elapsed
}

// Store 参数存储
func (d *FrameDriver) Store() *params.Store {
	return d.store
}

// Transforms 世界变换传播系统（渲染时读取世界矩阵）
func (d *FrameDriver) Transforms() *TransformSystem {
	return d.transforms
}

// ModeSwitch 模式切换观察者
func (d *FrameDriver) ModeSwitch() *ModeSwitch {
	return d.modeSwitch
}

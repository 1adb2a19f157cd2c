package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

// ControlPanelName 控制面板名称（UIComponent.Panel）
const ControlPanelName = "controls"

// 面板文字颜色
var (
	headingColor = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	noteColor    = color.RGBA{R: 170, G: 170, B: 180, A: 255}
)

// ControlPanel 控制面板中创建的实体
type ControlPanel struct {
	Entities []ecs.EntityID

	OrbitSpeedSlider ecs.EntityID
	SpinSpeedSlider  ecs.EntityID
	PrimarySlider    ecs.EntityID
	SecondarySlider  ecs.EntityID
	EllipticalToggle ecs.EntityID

	// 面板背景区域（屏幕坐标）
	X, Y, Width, Height float64
}

// NewControlPanel 创建控制面板
//
// 每个滑动条直接绑定参数存储的 setter：拖动时写入存储，
// 不拖动时通过 ValueSource 从存储读回，保持与快捷键写入同步。
//
// 参数:
//   - em: 实体管理器
//   - store: 参数存储
//   - cfg: 场景配置（滑动条范围、椭圆参数说明）
func NewControlPanel(em *ecs.EntityManager, store *params.Store, cfg *config.SceneConfig) *ControlPanel {
	p := &ControlPanel{
		X:     config.PanelX,
		Y:     config.PanelY,
		Width: config.PanelWidth,
	}
	x := config.PanelX + config.PanelPadding
	y := config.PanelY + config.PanelPadding

	p.add(newLabel(em, x, y, "Speeds & scales", true, headingColor))
	y += config.HeadingHeight

	p.OrbitSpeedSlider = p.add(newSlider(em, x, y, "Orbit speed scale", cfg.Bounds.OrbitSpeedScale,
		store.SetOrbitSpeedScale,
		func() float64 { return store.Snapshot().OrbitSpeedScale }))
	y += config.SliderRowHeight

	p.SpinSpeedSlider = p.add(newSlider(em, x, y, "Spin speed scale", cfg.Bounds.SpinSpeedScale,
		store.SetSpinSpeedScale,
		func() float64 { return store.Snapshot().SpinSpeedScale }))
	y += config.SliderRowHeight

	p.add(newLabel(em, x, y, "Distances", true, headingColor))
	y += config.HeadingHeight

	p.PrimarySlider = p.add(newSlider(em, x, y, cfg.Bodies.Orbiting.Name+" orbit radius", cfg.Bounds.PrimaryOrbitRadius,
		store.SetPrimaryOrbitRadius,
		func() float64 { return store.Snapshot().PrimaryOrbitRadius }))
	y += config.SliderRowHeight

	p.SecondarySlider = p.add(newSlider(em, x, y, cfg.Bodies.Satellite.Name+" orbit radius", cfg.Bounds.SecondaryOrbitRadius,
		store.SetSecondaryOrbitRadius,
		func() float64 { return store.Snapshot().SecondaryOrbitRadius }))
	y += config.SliderRowHeight

	p.EllipticalToggle = p.add(newCheckbox(em, x, y,
		fmt.Sprintf("Elliptical orbit (%s)", cfg.Bodies.Orbiting.Name),
		store.SetEllipticalMode,
		func() bool { return store.Snapshot().EllipticalMode }))
	y += config.CheckboxSize + config.PanelPadding

	note := fmt.Sprintf("Parametric ellipse a=%.2f b=%.2f\n(angle parameter, not Kepler)",
		cfg.Ellipse.SemiMajor, cfg.Ellipse.SemiMinor)
	p.add(newLabel(em, x, y, note, false, noteColor))
	y += 2 * config.HeadingHeight

	p.Height = y - config.PanelY
	return p
}

func (p *ControlPanel) add(id ecs.EntityID) ecs.EntityID {
	p.Entities = append(p.Entities, id)
	return id
}

func newLabel(em *ecs.EntityManager, x, y float64, text string, heading bool, clr color.Color) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.LabelComponent{Text: text, IsHeading: heading, Color: clr})
	ecs.AddComponent(em, id, &components.UIComponent{Panel: ControlPanelName})
	return id
}

// newSlider 创建滑动条；PositionComponent 是滑槽左上角，标签画在滑槽上方
func newSlider(em *ecs.EntityManager, x, y float64, label string, rng config.Range,
	onChange func(float64), source func() float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y + config.SliderRowHeight - config.SliderHeight - 4})
	ecs.AddComponent(em, id, &components.SliderComponent{
		SlotWidth:     config.SliderWidth,
		SlotHeight:    config.SliderHeight,
		KnobWidth:     config.SliderHeight,
		Min:           rng.Min,
		Max:           rng.Max,
		Value:         rng.Clamp(source()),
		Label:         label,
		OnValueChange: onChange,
		ValueSource:   source,
	})
	ecs.AddComponent(em, id, &components.UIComponent{Panel: ControlPanelName})
	return id
}

func newCheckbox(em *ecs.EntityManager, x, y float64, label string,
	onToggle func(bool), source func() bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.CheckboxComponent{
		Size:        config.CheckboxSize,
		IsChecked:   source(),
		Label:       label,
		OnToggle:    onToggle,
		StateSource: source,
	})
	ecs.AddComponent(em, id, &components.UIComponent{Panel: ControlPanelName})
	return id
}

package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 面板视觉常量
var (
	panelBackgroundColor = color.RGBA{R: 20, G: 22, B: 32, A: 210}
	panelBorderColor     = color.RGBA{R: 90, G: 95, B: 120, A: 255}
	slotColor            = color.RGBA{R: 50, G: 54, B: 70, A: 255}
	slotFillColor        = color.RGBA{R: 70, G: 110, B: 180, A: 255}
	knobColor            = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	knobActiveColor      = color.RGBA{R: 255, G: 210, B: 110, A: 255}
	checkboxBorderColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	checkboxHoverColor   = color.RGBA{R: 255, G: 210, B: 110, A: 255}
	checkboxFillColor    = color.RGBA{R: 110, G: 200, B: 130, A: 255}
)

// debugGlyphHeight ebitenutil 调试字体行高
const debugGlyphHeight = 16

// PanelStatus 面板底部的运行状态
type PanelStatus struct {
	Mode   string
	Theta  float64 // 已取模的显示角度
	Paused bool
	TPS    float64
}

// PanelRenderSystem 控制面板渲染系统
// 背景、标题、滑动条、复选框都用 vector 绘制，文字用调试字体
type PanelRenderSystem struct {
	entityManager *ecs.EntityManager

	// 面板背景区域
	X, Y, Width, Height float64
	Visible             bool
}

// NewPanelRenderSystem 创建面板渲染系统
func NewPanelRenderSystem(em *ecs.EntityManager, x, y, width, height float64) *PanelRenderSystem {
	return &PanelRenderSystem{
		entityManager: em,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		Visible:       true,
	}
}

// Draw 绘制面板
func (s *PanelRenderSystem) Draw(screen *ebiten.Image, status PanelStatus) {
	if !s.Visible {
		ebitenutil.DebugPrintAt(screen, "H: show panel", 8, 8)
		return
	}

	statusHeight := float64(2 * debugGlyphHeight)
	x, y := float32(s.X), float32(s.Y)
	w, h := float32(s.Width), float32(s.Height+statusHeight)
	vector.DrawFilledRect(screen, x, y, w, h, panelBackgroundColor, true)
	vector.StrokeRect(screen, x, y, w, h, 1, panelBorderColor, true)

	for _, id := range ecs.GetEntitiesWith2[*components.LabelComponent, *components.PositionComponent](s.entityManager) {
		label, _ := ecs.GetComponent[*components.LabelComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if label == nil || pos == nil {
			continue
		}
		if label.IsHeading {
			vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y)+debugGlyphHeight, float32(s.Width-2*(pos.X-s.X)), 1, panelBorderColor, true)
		}
		ebitenutil.DebugPrintAt(screen, label.Text, int(pos.X), int(pos.Y))
	}

	for _, id := range ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if slider == nil || pos == nil {
			continue
		}
		s.drawSlider(screen, slider, pos)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.CheckboxComponent, *components.PositionComponent](s.entityManager) {
		checkbox, _ := ecs.GetComponent[*components.CheckboxComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if checkbox == nil || pos == nil {
			continue
		}
		s.drawCheckbox(screen, checkbox, pos)
	}

	ebitenutil.DebugPrintAt(screen, FormatStatus(status), int(s.X)+8, int(s.Y+s.Height))
}

func (s *PanelRenderSystem) drawSlider(screen *ebiten.Image, slider *components.SliderComponent, pos *components.PositionComponent) {
	x, y := float32(pos.X), float32(pos.Y)
	w, h := float32(slider.SlotWidth), float32(slider.SlotHeight)
	ratio := float32(slider.Ratio())

	// 标签在滑槽上方
	ebitenutil.DebugPrintAt(screen, slider.Label, int(pos.X), int(pos.Y)-debugGlyphHeight)

	vector.DrawFilledRect(screen, x, y+h/3, w, h/3, slotColor, true)
	vector.DrawFilledRect(screen, x, y+h/3, w*ratio, h/3, slotFillColor, true)

	knob := knobColor
	if slider.IsDragging || slider.IsHovered {
		knob = knobActiveColor
	}
	kw := float32(slider.KnobWidth)
	vector.DrawFilledRect(screen, x+w*ratio-kw/2, y, kw, h, knob, true)

	ebitenutil.DebugPrintAt(screen, FormatSliderValue(slider.Value), int(pos.X+slider.SlotWidth)+10, int(pos.Y)-2)
}

func (s *PanelRenderSystem) drawCheckbox(screen *ebiten.Image, checkbox *components.CheckboxComponent, pos *components.PositionComponent) {
	x, y, size := float32(pos.X), float32(pos.Y), float32(checkbox.Size)
	border := checkboxBorderColor
	if checkbox.IsHovered {
		border = checkboxHoverColor
	}
	vector.StrokeRect(screen, x, y, size, size, 1.5, border, true)
	if checkbox.IsChecked {
		vector.DrawFilledRect(screen, x+3, y+3, size-6, size-6, checkboxFillColor, true)
	}
	ebitenutil.DebugPrintAt(screen, checkbox.Label, int(pos.X+checkbox.Size)+8, int(pos.Y))
}

// FormatSliderValue 滑动条数值显示
func FormatSliderValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatStatus 状态行文字
func FormatStatus(st PanelStatus) string {
	state := "running"
	if st.Paused {
		state = "paused"
	}
	return fmt.Sprintf("mode: %s  theta: %.2f\n%s  TPS %.0f", st.Mode, math.Mod(st.Theta, 2*math.Pi), state, st.TPS)
}

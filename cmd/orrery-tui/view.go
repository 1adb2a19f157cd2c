package main

import (
	"fmt"
	"math"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
)

const (
	// 终端字符高约为宽的两倍，横向坐标乘以该系数
	cellAspect = 2.0
	// 底部状态栏行数
	statusRows   = 2
	guideSamples = 72
	minZoom      = 0.25
	maxZoom      = 8.0
)

// viewport 俯视 (X, Z) 平面到字符格的映射
type viewport struct {
	cols, rows int
	scale      float64 // 每场景单位的行数
	zoom       float64
}

// newViewport 按场景最大范围自动适配终端大小
func newViewport(cols, rows int, extent float64) viewport {
	v := viewport{cols: cols, rows: rows, zoom: 1}
	v.fit(extent)
	return v
}

func (v *viewport) fit(extent float64) {
	if extent <= 0 {
		extent = 1
	}
	usableRows := float64(v.rows - statusRows)
	byRows := (usableRows/2 - 1) / extent
	byCols := (float64(v.cols)/2 - 1) / (extent * cellAspect)
	v.scale = math.Max(math.Min(byRows, byCols), 0.1)
}

// resize 终端尺寸变化后重新适配
func (v *viewport) resize(cols, rows int, extent float64) {
	v.cols, v.rows = cols, rows
	v.fit(extent)
}

func (v *viewport) zoomBy(factor float64) {
	v.zoom = math.Min(math.Max(v.zoom*factor, minZoom), maxZoom)
}

// cell 返回世界坐标对应的字符格；超出绘制区时 ok 为 false
func (v viewport) cell(p mgl64.Vec3) (col, row int, ok bool) {
	cx := float64(v.cols) / 2
	cy := float64(v.rows-statusRows) / 2
	s := v.scale * v.zoom
	col = int(math.Round(cx + p.X()*s*cellAspect))
	row = int(math.Round(cy + p.Z()*s))
	ok = col >= 0 && col < v.cols && row >= 0 && row < v.rows-statusRows
	return col, row, ok
}

// sceneExtent 场景在 XZ 平面上可能达到的最大半径
func sceneExtent(cfg *config.SceneConfig) float64 {
	outer := math.Max(cfg.Bounds.PrimaryOrbitRadius.Max, cfg.Ellipse.SemiMajor)
	return outer + cfg.Bounds.SecondaryOrbitRadius.Max
}

var (
	styleGuide  = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var bodyGlyphs = map[components.BodyRole]struct {
	r     rune
	style tcell.Style
}{
	components.RoleCentral:   {'@', tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)},
	components.RoleOrbiting:  {'o', tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)},
	components.RoleSatellite: {'.', tcell.StyleDefault.Foreground(tcell.ColorSilver)},
}

// renderer 把场景画到 tcell 屏幕
type renderer struct {
	em     *ecs.EntityManager
	solar  *entities.SolarSystem
	driver *systems.FrameDriver
	view   viewport
}

func (r *renderer) draw(screen tcell.Screen, report systems.FrameReport) {
	screen.Clear()
	r.drawGuides(screen, report.Snapshot)
	r.drawBodies(screen)
	r.drawStatus(screen, report)
	screen.Show()
}

// guideLoop 在枢轴局部空间采样一圈轨道并变换到世界坐标
func guideLoop(world mgl64.Mat4, a, b float64) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, 0, guideSamples)
	for i := 0; i < guideSamples; i++ {
		th := 2 * math.Pi * float64(i) / guideSamples
		local := mgl64.Vec4{a * math.Cos(th), 0, b * math.Sin(th), 1}
		pts = append(pts, world.Mul4x1(local).Vec3())
	}
	return pts
}

func (r *renderer) drawGuides(screen tcell.Screen, snap params.Snapshot) {
	transforms := r.driver.Transforms()
	var loops [][]mgl64.Vec3

	if world, ok := transforms.WorldMatrix(r.solar.OrbitPivot); ok {
		if snap.EllipticalMode {
			if e, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](r.em, r.solar.Earth); ok {
				loops = append(loops, guideLoop(world, e.SemiMajor, e.SemiMinor))
			}
		} else {
			loops = append(loops, guideLoop(world, snap.PrimaryOrbitRadius, snap.PrimaryOrbitRadius))
		}
	}
	if world, ok := transforms.WorldMatrix(r.solar.MoonPivot); ok {
		loops = append(loops, guideLoop(world, snap.SecondaryOrbitRadius, snap.SecondaryOrbitRadius))
	}

	for _, loop := range loops {
		for _, p := range loop {
			if col, row, ok := r.view.cell(p); ok {
				screen.SetContent(col, row, '·', nil, styleGuide)
			}
		}
	}
}

func (r *renderer) drawBodies(screen tcell.Screen) {
	for _, id := range []ecs.EntityID{r.solar.Sun, r.solar.Earth, r.solar.Moon} {
		body, ok := ecs.GetComponent[*components.BodyComponent](r.em, id)
		if !ok {
			continue
		}
		g, ok := ecs.GetComponent[*components.GlobalTransformComponent](r.em, id)
		if !ok {
			continue
		}
		glyph := bodyGlyphs[body.Role]
		if col, row, ok := r.view.cell(g.Position()); ok {
			screen.SetContent(col, row, glyph.r, nil, glyph.style)
		}
	}
}

func (r *renderer) drawStatus(screen tcell.Screen, report systems.FrameReport) {
	status := statusLine(report, r.driver.IsPaused())
	y := r.view.rows - statusRows
	drawText(screen, 0, y, r.view.cols, status, styleStatus)
	drawText(screen, 0, y+1, r.view.cols, helpLine, styleHelp)
}

// statusLine 状态栏文本
func statusLine(report systems.FrameReport, paused bool) string {
	snap := report.Snapshot
	state := "运行"
	if paused {
		state = "暂停"
	}
	return fmt.Sprintf(" %s | %s | θ=%.2f | 公转×%.2f 自转×%.2f | r₁=%.2f r₂=%.2f | 帧 %d",
		report.Mode, state, report.Theta,
		snap.OrbitSpeedScale, snap.SpinSpeedScale,
		snap.PrimaryOrbitRadius, snap.SecondaryOrbitRadius, report.Frame)
}

// drawText 写一行文本，超出宽度的部分截断，余下部分用背景填满
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col += w
	}
	for ; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}

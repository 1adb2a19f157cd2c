package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 场景视觉常量
var (
	spaceColor      = color.RGBA{R: 5, G: 6, B: 14, A: 255}
	guideColor      = color.RGBA{R: 80, G: 90, B: 120, A: 160}
	ellipseColor    = color.RGBA{R: 120, G: 200, B: 140, A: 180}
	spinMarkerColor = color.RGBA{R: 255, G: 255, B: 255, A: 220}
)

// guideSegments 轨道辅助线的折线段数
const guideSegments = 96

// BodyDraw 一个天体的屏幕绘制信息
type BodyDraw struct {
	Entity ecs.EntityID
	Name   string
	Role   components.BodyRole
	X, Y   float64 // 屏幕中心
	Radius float64 // 屏幕像素半径
	Depth  float64 // 视距，越大越远
	Color  color.RGBA

	// 自转标记点（天体本地 +X 方向表面点）
	MarkerX, MarkerY float64
	MarkerVisible    bool
}

// OrreryRenderSystem 天体场景渲染系统
//
// 透视投影后按视距从远到近画圆（画家算法），
// 可选绘制圆轨道/椭圆轨道辅助线。
type OrreryRenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *utils.Camera
	ShowGuides    bool
}

// NewOrreryRenderSystem 创建天体渲染系统
func NewOrreryRenderSystem(em *ecs.EntityManager, camera *utils.Camera) *OrreryRenderSystem {
	return &OrreryRenderSystem{
		entityManager: em,
		camera:        camera,
		ShowGuides:    true,
	}
}

// SetCamera 替换相机（窗口尺寸变化时）
func (s *OrreryRenderSystem) SetCamera(camera *utils.Camera) {
	s.camera = camera
}

// DrawList 计算本帧所有可见天体的屏幕位置，按视距从远到近排序
// 相机背后的天体被剔除
func (s *OrreryRenderSystem) DrawList() []BodyDraw {
	ids := ecs.GetEntitiesWith2[*components.BodyComponent, *components.GlobalTransformComponent](s.entityManager)
	list := make([]BodyDraw, 0, len(ids))

	for _, id := range ids {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		global, _ := ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, id)
		if body == nil || global == nil {
			continue
		}

		x, y, depth, ok := s.camera.Project(global.Position())
		if !ok {
			continue
		}
		d := BodyDraw{
			Entity: id,
			Name:   body.Name,
			Role:   body.Role,
			X:      x,
			Y:      y,
			Radius: s.camera.PixelRadius(body.Radius, depth),
			Depth:  depth,
			Color:  body.Color,
		}

		surface := global.Matrix.Mul4x1(mgl64.Vec4{body.Radius, 0, 0, 1}).Vec3()
		if mx, my, mdepth, ok := s.camera.Project(surface); ok && mdepth <= depth {
			d.MarkerX, d.MarkerY, d.MarkerVisible = mx, my, true
		}
		list = append(list, d)
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].Depth > list[j].Depth })
	return list
}

// GuidePoints 返回轨道辅助线折线的屏幕坐标
//
// 圆轨道：以公转枢轴为中心、半径为 primary 的圆；月球轨道同理。
// 椭圆模式：环绕天体的参数椭圆（同样位于公转枢轴坐标系内）。
func (s *OrreryRenderSystem) GuidePoints(snap params.Snapshot) [][]mgl64.Vec2 {
	var paths [][]mgl64.Vec2

	orbiting, hasOrbiting := findBody(s.entityManager, components.RoleOrbiting)
	satellite, hasSatellite := findBody(s.entityManager, components.RoleSatellite)

	if hasOrbiting {
		if pivot, ok := s.parentWorld(orbiting); ok {
			if ellipse, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](s.entityManager, orbiting); ok && snap.EllipticalMode {
				paths = append(paths, s.projectLoop(pivot, ellipse.SemiMajor, ellipse.SemiMinor))
			} else {
				paths = append(paths, s.projectLoop(pivot, snap.PrimaryOrbitRadius, snap.PrimaryOrbitRadius))
			}
		}
	}
	if hasSatellite {
		if pivot, ok := s.parentWorld(satellite); ok {
			paths = append(paths, s.projectLoop(pivot, snap.SecondaryOrbitRadius, snap.SecondaryOrbitRadius))
		}
	}
	return paths
}

func (s *OrreryRenderSystem) parentWorld(id ecs.EntityID) (mgl64.Mat4, bool) {
	parent, ok := s.entityManager.Parent(id)
	if !ok {
		return mgl64.Mat4{}, false
	}
	global, ok := ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, parent)
	if !ok {
		return mgl64.Mat4{}, false
	}
	return global.Matrix, true
}

// projectLoop 把局部 XZ 平面上的椭圆 (a·cosθ, 0, b·sinθ) 变换到世界并投影
// 相机背后的点被丢弃，折线在该处断开
func (s *OrreryRenderSystem) projectLoop(world mgl64.Mat4, a, b float64) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, guideSegments+1)
	for i := 0; i <= guideSegments; i++ {
		theta := 2 * math.Pi * float64(i) / guideSegments
		local := mgl64.Vec4{a * math.Cos(theta), 0, b * math.Sin(theta), 1}
		x, y, _, ok := s.camera.Project(world.Mul4x1(local).Vec3())
		if !ok {
			continue
		}
		pts = append(pts, mgl64.Vec2{x, y})
	}
	return pts
}

// Draw 绘制背景、轨道辅助线和天体
func (s *OrreryRenderSystem) Draw(screen *ebiten.Image, snap params.Snapshot) {
	screen.Fill(spaceColor)

	if s.ShowGuides {
		clr := guideColor
		if snap.EllipticalMode {
			clr = ellipseColor
		}
		for i, path := range s.GuidePoints(snap) {
			c := clr
			if i > 0 {
				c = guideColor
			}
			for j := 1; j < len(path); j++ {
				vector.StrokeLine(screen,
					float32(path[j-1].X()), float32(path[j-1].Y()),
					float32(path[j].X()), float32(path[j].Y()),
					1, c, true)
			}
		}
	}

	for _, d := range s.DrawList() {
		r := float32(math.Max(d.Radius, 1.5))
		if d.Role == components.RoleCentral {
			// 光晕
			glow := d.Color
			glow.A = 60
			vector.DrawFilledCircle(screen, float32(d.X), float32(d.Y), r*1.4, glow, true)
		}
		vector.DrawFilledCircle(screen, float32(d.X), float32(d.Y), r, d.Color, true)
		if d.MarkerVisible {
			vector.DrawFilledCircle(screen, float32(d.MarkerX), float32(d.MarkerY), 2, spinMarkerColor, true)
		}
	}
}

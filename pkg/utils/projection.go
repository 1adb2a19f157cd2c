package utils

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// 相机近/远裁剪面
const (
	cameraNear = 0.1
	cameraFar  = 200.0
)

// Camera 透视相机：把世界坐标投影到屏幕像素坐标
type Camera struct {
	view       mgl64.Mat4
	projection mgl64.Mat4
	width      float64
	height     float64
	focal      float64 // 屏幕上每单位距离处 1 个场景单位对应的像素数
}

// NewCamera 创建看向 target 的透视相机
// fovDegrees 为竖直视角，width/height 为屏幕像素尺寸
func NewCamera(eye, target mgl64.Vec3, fovDegrees, width, height float64) *Camera {
	fov := mgl64.DegToRad(fovDegrees)
	return &Camera{
		view:       mgl64.LookAtV(eye, target, mgl64.Vec3{0, 1, 0}),
		projection: mgl64.Perspective(fov, width/height, cameraNear, cameraFar),
		width:      width,
		height:     height,
		focal:      (height / 2) / math.Tan(fov/2),
	}
}

// Project 把世界坐标投影到屏幕
//
// 返回屏幕坐标、视距（相机前方距离）以及该点是否在相机前方。
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := c.projection.Mul4(c.view).Mul4x1(p.Vec4(1))
	if clip.W() <= cameraNear {
		return 0, 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x = (ndcX + 1) / 2 * c.width
	y = (1 - ndcY) / 2 * c.height
	return x, y, clip.W(), true
}

// PixelRadius 返回视距 depth 处半径为 r 的球体在屏幕上的像素半径
func (c *Camera) PixelRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * c.focal / depth
}

package components

import "math"

// OrbitComponent 公转枢轴
// 挂在不可见的枢轴实体上，每帧绕竖直轴旋转，带动子实体做圆周运动。
type OrbitComponent struct {
	AngularSpeed float64 // rad/s（基础值），负值表示反向公转；乘以 OrbitSpeedScale
}

// SpinComponent 自转
type SpinComponent struct {
	AngularSpeed float64 // rad/s（基础值），绕自身竖直轴；乘以 SpinSpeedScale
}

// EllipticalOrbitComponent 参数椭圆轨道
//
// Theta 是显式积分的参数角（不是真近点角），逐帧累加保存，
// 不由总时间重新计算，因此暂停/变速时不会跳变。
type EllipticalOrbitComponent struct {
	SemiMajor    float64 // a
	SemiMinor    float64 // b
	AngularSpeed float64 // 参数角速度 rad/s；乘以 OrbitSpeedScale
	Theta        float64 // 当前参数角（不取模）
}

// Point 返回参数角 theta 对应的父枢轴局部坐标 (a·cosθ, 0, b·sinθ)
func (e *EllipticalOrbitComponent) Point(theta float64) (x, y, z float64) {
	return e.SemiMajor * math.Cos(theta), 0, e.SemiMinor * math.Sin(theta)
}

// DisplayTheta 返回 [0, 2π) 范围内的参数角，仅用于显示
func (e *EllipticalOrbitComponent) DisplayTheta() float64 {
	th := math.Mod(e.Theta, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

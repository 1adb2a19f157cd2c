package components

import "image/color"

// BodyRole 天体在层级中的角色
type BodyRole int

const (
	// RoleCentral 中心天体（太阳）
	RoleCentral BodyRole = iota
	// RoleOrbiting 环绕天体（地球）
	RoleOrbiting
	// RoleSatellite 卫星（月球）
	RoleSatellite
)

// String 返回角色名
func (r BodyRole) String() string {
	switch r {
	case RoleCentral:
		return "central"
	case RoleOrbiting:
		return "orbiting"
	case RoleSatellite:
		return "satellite"
	default:
		return "unknown"
	}
}

// BodyComponent 可见天体
type BodyComponent struct {
	Role   BodyRole
	Name   string
	Radius float64 // 显示半径（场景单位）
	Color  color.RGBA
}

// PivotComponent 枢轴标记：不可见，只负责带动子实体旋转
type PivotComponent struct {
	Name string
}

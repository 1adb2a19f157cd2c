package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

// RadiusReconcileSystem 圆轨道半径校正
//
// 只在参数存储本帧有写入、且处于圆轨道模式时运行：
// 把环绕天体放到 (primary, 0, 0)，卫星放到 (secondary, 0, 0)。
// 两者都是父枢轴局部坐标，枢轴的旋转不受影响，
// 所以天体在当前公转角度上沿径向"跳"到新半径。
type RadiusReconcileSystem struct {
	entityManager *ecs.EntityManager
}

// NewRadiusReconcileSystem 创建半径校正系统
func NewRadiusReconcileSystem(em *ecs.EntityManager) *RadiusReconcileSystem {
	return &RadiusReconcileSystem{
		entityManager: em,
	}
}

// Update 执行半径校正，返回本帧是否实际写入
func (s *RadiusReconcileSystem) Update(snap params.Snapshot, changed bool) bool {
	if !changed || snap.EllipticalMode {
		return false
	}

	applied := false
	if s.place(components.RoleOrbiting, snap.PrimaryOrbitRadius) {
		applied = true
	}
	if s.place(components.RoleSatellite, snap.SecondaryOrbitRadius) {
		applied = true
	}
	return applied
}

func (s *RadiusReconcileSystem) place(role components.BodyRole, radius float64) bool {
	id, ok := findBody(s.entityManager, role)
	if !ok {
		return false
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return false
	}
	transform.Translation[0] = radius
	transform.Translation[1] = 0
	transform.Translation[2] = 0
	return true
}

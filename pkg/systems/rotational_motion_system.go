package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

// RotationalMotionSystem 公转枢轴与自转
//
// 每帧把增量旋转复合到已有旋转上，从不根据总时间重新计算，
// 因此中途修改倍率不会让角度跳变。只改旋转，不碰平移。
type RotationalMotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewRotationalMotionSystem 创建旋转系统
func NewRotationalMotionSystem(em *ecs.EntityManager) *RotationalMotionSystem {
	return &RotationalMotionSystem{
		entityManager: em,
	}
}

// Update 按 dt 推进所有公转枢轴和自转天体
func (s *RotationalMotionSystem) Update(deltaTime float64, snap params.Snapshot) {
	if deltaTime == 0 {
		return
	}

	// 公转：绕父坐标系竖直轴
	for _, id := range ecs.GetEntitiesWith2[*components.OrbitComponent, *components.TransformComponent](s.entityManager) {
		orbit, _ := ecs.GetComponent[*components.OrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if orbit == nil || transform == nil {
			continue
		}
		transform.RotateY(orbit.AngularSpeed * snap.OrbitSpeedScale * deltaTime)
	}

	// 自转：绕自身竖直轴（地球的倾斜轴）
	for _, id := range ecs.GetEntitiesWith2[*components.SpinComponent, *components.TransformComponent](s.entityManager) {
		spin, _ := ecs.GetComponent[*components.SpinComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if spin == nil || transform == nil {
			continue
		}
		transform.RotateLocalY(spin.AngularSpeed * snap.SpinSpeedScale * deltaTime)
	}
}

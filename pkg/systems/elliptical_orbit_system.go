package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
)

// EllipticalOrbitSystem 参数椭圆轨道
//
// 只在椭圆模式下运行。参数角 θ 逐帧累加（不取模），
// 平移直接写成父枢轴局部坐标 (a·cosθ, 0, b·sinθ)。
// 圆轨道模式下 θ 保持不变，重新进入椭圆模式时从上次的位置继续。
type EllipticalOrbitSystem struct {
	entityManager *ecs.EntityManager
}

// NewEllipticalOrbitSystem 创建椭圆轨道系统
func NewEllipticalOrbitSystem(em *ecs.EntityManager) *EllipticalOrbitSystem {
	return &EllipticalOrbitSystem{
		entityManager: em,
	}
}

// Update 推进参数角并写入平移
func (s *EllipticalOrbitSystem) Update(deltaTime float64, snap params.Snapshot) {
	if !snap.EllipticalMode {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EllipticalOrbitComponent, *components.TransformComponent](s.entityManager) {
		ellipse, _ := ecs.GetComponent[*components.EllipticalOrbitComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if ellipse == nil || transform == nil {
			continue
		}

		ellipse.Theta += ellipse.AngularSpeed * snap.OrbitSpeedScale * deltaTime
		x, y, z := ellipse.Point(ellipse.Theta)
		transform.Translation[0] = x
		transform.Translation[1] = y
		transform.Translation[2] = z
	}
}

// Theta 返回环绕天体当前的参数角（未取模）；场景中没有椭圆轨道时返回 0
func (s *EllipticalOrbitSystem) Theta() float64 {
	id, ok := findBody(s.entityManager, components.RoleOrbiting)
	if !ok {
		return 0
	}
	ellipse, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return ellipse.Theta
}

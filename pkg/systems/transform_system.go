package systems

import (
	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// TransformSystem 世界变换传播
//
// 先父后子遍历层级：world(child) = world(parent) · local(child)。
// 没有 TransformComponent 的实体视为单位变换，把父实体的世界变换原样传给子实体。
type TransformSystem struct {
	entityManager *ecs.EntityManager
	worlds        map[ecs.EntityID]mgl64.Mat4
}

// NewTransformSystem 创建变换传播系统
func NewTransformSystem(em *ecs.EntityManager) *TransformSystem {
	return &TransformSystem{
		entityManager: em,
		worlds:        make(map[ecs.EntityID]mgl64.Mat4),
	}
}

// Update 重新计算所有实体的世界变换
func (s *TransformSystem) Update() {
	clear(s.worlds)

	s.entityManager.Walk(func(id, parent ecs.EntityID) {
		world := mgl64.Ident4()
		if parent != ecs.InvalidEntity {
			if pw, ok := s.worlds[parent]; ok {
				world = pw
			}
		}

		local, hasLocal := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if hasLocal {
			world = world.Mul4(local.LocalMatrix())
		}
		s.worlds[id] = world

		// UI 实体等不参与空间层级的实体不写 GlobalTransform
		if !hasLocal && parent == ecs.InvalidEntity {
			return
		}
		if global, ok := ecs.GetComponent[*components.GlobalTransformComponent](s.entityManager, id); ok {
			global.Matrix = world
			return
		}
		ecs.AddComponent(s.entityManager, id, &components.GlobalTransformComponent{Matrix: world})
	})
}

// WorldMatrix 返回上一次 Update 计算出的世界变换
func (s *TransformSystem) WorldMatrix(id ecs.EntityID) (mgl64.Mat4, bool) {
	m, ok := s.worlds[id]
	return m, ok
}

// Package entities 提供场景实体的工厂函数
package entities

import (
	"fmt"
	"log"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/go-gl/mathgl/mgl64"
)

// SolarSystem 太阳-地球-月球层级中各节点的实体 ID
//
//	Sun
//	 └─ OrbitPivot（旋转，带动地球绕太阳公转）
//	     └─ Earth
//	         └─ MoonPivot（旋转，带动月球绕地球公转）
//	             └─ Moon
type SolarSystem struct {
	Sun        ecs.EntityID
	OrbitPivot ecs.EntityID
	Earth      ecs.EntityID
	MoonPivot  ecs.EntityID
	Moon       ecs.EntityID
}

// NewSolarSystem 根据场景配置创建天体层级
//
// 参数:
//   - em: 实体管理器
//   - cfg: 已校验的场景配置（天体外观、角速度、椭圆参数、默认半径）
//
// 返回: 各节点实体 ID；层级挂载失败时返回错误
func NewSolarSystem(em *ecs.EntityManager, cfg *config.SceneConfig) (*SolarSystem, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scene config is nil")
	}

	sun := newBody(em, components.RoleCentral, cfg.Bodies.Central, mgl64.Vec3{})

	orbitPivot := newPivot(em, "OrbitPivot", cfg.Orbits.PrimaryPivotSpeed)

	earth := newBody(em, components.RoleOrbiting, cfg.Bodies.Orbiting,
		mgl64.Vec3{cfg.Defaults.PrimaryOrbitRadius, 0, 0})
	ecs.AddComponent(em, earth, &components.EllipticalOrbitComponent{
		SemiMajor:    cfg.Ellipse.SemiMajor,
		SemiMinor:    cfg.Ellipse.SemiMinor,
		AngularSpeed: cfg.Ellipse.AngularSpeed,
	})

	moonPivot := newPivot(em, "MoonPivot", cfg.Orbits.SecondaryPivotSpeed)

	moon := newBody(em, components.RoleSatellite, cfg.Bodies.Satellite,
		mgl64.Vec3{cfg.Defaults.SecondaryOrbitRadius, 0, 0})

	links := []struct{ child, parent ecs.EntityID }{
		{orbitPivot, sun},
		{earth, orbitPivot},
		{moonPivot, earth},
		{moon, moonPivot},
	}
	for _, l := range links {
		if err := em.SetParent(l.child, l.parent); err != nil {
			return nil, fmt.Errorf("构建天体层级失败: %w", err)
		}
	}

	log.Printf("[SolarSystem] 创建层级: %s(%d) -> pivot(%d) -> %s(%d) -> pivot(%d) -> %s(%d)",
		cfg.Bodies.Central.Name, sun, orbitPivot,
		cfg.Bodies.Orbiting.Name, earth, moonPivot,
		cfg.Bodies.Satellite.Name, moon)

	return &SolarSystem{
		Sun:        sun,
		OrbitPivot: orbitPivot,
		Earth:      earth,
		MoonPivot:  moonPivot,
		Moon:       moon,
	}, nil
}

// newBody 创建可见天体：外观 + 局部变换 + 自转
// 配置了倾角的天体绕 Z 轴预先倾斜，自转沿倾斜后的本地竖直轴进行
func newBody(em *ecs.EntityManager, role components.BodyRole, cfg config.BodyConfig, at mgl64.Vec3) ecs.EntityID {
	id := em.CreateEntity()

	transform := components.NewTransform(at)
	if cfg.TiltDegrees != 0 {
		transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(cfg.TiltDegrees), mgl64.Vec3{0, 0, 1})
	}
	ecs.AddComponent(em, id, transform)

	ecs.AddComponent(em, id, &components.BodyComponent{
		Role:   role,
		Name:   cfg.Name,
		Radius: cfg.Radius,
		Color:  config.MustParseHexColor(cfg.Color),
	})

	if cfg.SpinSpeed != 0 {
		ecs.AddComponent(em, id, &components.SpinComponent{AngularSpeed: cfg.SpinSpeed})
	}
	return id
}

// newPivot 创建不可见的公转枢轴
func newPivot(em *ecs.EntityManager, name string, speed float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(mgl64.Vec3{}))
	ecs.AddComponent(em, id, &components.PivotComponent{Name: name})
	ecs.AddComponent(em, id, &components.OrbitComponent{AngularSpeed: speed})
	return id
}

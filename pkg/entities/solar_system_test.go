package entities

import (
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func loadTestConfig(t *testing.T) *config.SceneConfig {
	t.Helper()
	cfg, err := config.LoadBuiltinSceneConfig("")
	if err != nil {
		t.Fatalf("加载内置配置失败: %v", err)
	}
	return cfg
}

func TestNewSolarSystem_Hierarchy(t *testing.T) {
	em := ecs.NewEntityManager()
	ss, err := NewSolarSystem(em, loadTestConfig(t))
	if err != nil {
		t.Fatalf("NewSolarSystem 返回错误: %v", err)
	}

	tests := []struct {
		name   string
		child  ecs.EntityID
		parent ecs.EntityID
	}{
		{"公转枢轴挂在太阳下", ss.OrbitPivot, ss.Sun},
		{"地球挂在公转枢轴下", ss.Earth, ss.OrbitPivot},
		{"月球枢轴挂在地球下", ss.MoonPivot, ss.Earth},
		{"月球挂在月球枢轴下", ss.Moon, ss.MoonPivot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := em.Parent(tt.child)
			if !ok || got != tt.parent {
				t.Errorf("Parent(%d) = %d, %v; want %d", tt.child, got, ok, tt.parent)
			}
		})
	}

	if roots := em.Roots(); len(roots) != 1 || roots[0] != ss.Sun {
		t.Errorf("Roots() = %v, want [%d]", roots, ss.Sun)
	}
}

func TestNewSolarSystem_Components(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := loadTestConfig(t)
	ss, err := NewSolarSystem(em, cfg)
	if err != nil {
		t.Fatalf("NewSolarSystem 返回错误: %v", err)
	}

	earthTf, ok := ecs.GetComponent[*components.TransformComponent](em, ss.Earth)
	if !ok {
		t.Fatal("地球缺少 TransformComponent")
	}
	if !scalar.EqualWithinAbs(earthTf.Translation.X(), cfg.Defaults.PrimaryOrbitRadius, tol) {
		t.Errorf("地球初始 x = %v, want %v", earthTf.Translation.X(), cfg.Defaults.PrimaryOrbitRadius)
	}

	// 倾角绕 Z 轴：本地竖直轴被旋转到 (-sin, cos, 0)
	up := earthTf.Rotation.Rotate([3]float64{0, 1, 0})
	tilt := cfg.Bodies.Orbiting.TiltDegrees * math.Pi / 180
	if !scalar.EqualWithinAbs(up[0], -math.Sin(tilt), tol) || !scalar.EqualWithinAbs(up[1], math.Cos(tilt), tol) {
		t.Errorf("地球自转轴 = %v, want 倾斜 %.2f°", up, cfg.Bodies.Orbiting.TiltDegrees)
	}

	if !ecs.HasComponent[*components.EllipticalOrbitComponent](em, ss.Earth) {
		t.Error("地球应带有 EllipticalOrbitComponent")
	}
	for _, id := range []ecs.EntityID{ss.OrbitPivot, ss.MoonPivot} {
		if !ecs.HasComponent[*components.OrbitComponent](em, id) {
			t.Errorf("枢轴 %d 缺少 OrbitComponent", id)
		}
		if ecs.HasComponent[*components.BodyComponent](em, id) {
			t.Errorf("枢轴 %d 不应是可见天体", id)
		}
	}

	moonTf, _ := ecs.GetComponent[*components.TransformComponent](em, ss.Moon)
	if !scalar.EqualWithinAbs(moonTf.Translation.X(), cfg.Defaults.SecondaryOrbitRadius, tol) {
		t.Errorf("月球初始 x = %v, want %v", moonTf.Translation.X(), cfg.Defaults.SecondaryOrbitRadius)
	}
}

func TestNewSolarSystem_NilConfig(t *testing.T) {
	if _, err := NewSolarSystem(ecs.NewEntityManager(), nil); err == nil {
		t.Error("nil 配置应返回错误")
	}
}

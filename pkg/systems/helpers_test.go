package systems

import (
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/params"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

// newTestScene 用内置配置创建完整的太阳-地球-月球场景
func newTestScene(t *testing.T) (*ecs.EntityManager, *entities.SolarSystem, *config.SceneConfig) {
	t.Helper()
	cfg, err := config.LoadBuiltinSceneConfig("")
	if err != nil {
		t.Fatalf("加载内置配置失败: %v", err)
	}
	em := ecs.NewEntityManager()
	ss, err := entities.NewSolarSystem(em, cfg)
	if err != nil {
		t.Fatalf("NewSolarSystem 返回错误: %v", err)
	}
	return em, ss, cfg
}

func transformOf(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.TransformComponent {
	t.Helper()
	tf, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		t.Fatalf("实体 %d 缺少 TransformComponent", id)
	}
	return tf
}

// yawOf 返回只绕 Y 轴旋转的四元数的角度，范围 (-π, π]
func yawOf(q mgl64.Quat) float64 {
	v := q.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(-v.Z(), v.X())
}

// angleDiff 两个角度差取到 (-π, π]
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// quatEqual 按分量绝对误差比较；q 与 -q 表示同一旋转
func quatEqual(a, b mgl64.Quat, eps float64) bool {
	return quatEqualAbs(a, b, eps) || quatEqualAbs(a, b.Scale(-1), eps)
}

func quatEqualAbs(a, b mgl64.Quat, eps float64) bool {
	if !scalar.EqualWithinAbs(a.W, b.W, eps) {
		return false
	}
	return vecEqual(a.V, b.V, eps)
}

func vecEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func snapshotWith(edit func(*params.Snapshot)) params.Snapshot {
	s := params.DefaultSnapshot()
	if edit != nil {
		edit(&s)
	}
	return s
}

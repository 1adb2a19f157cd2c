package systems

import (
	"math"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/params"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

func newEllipseEntity(em *ecs.EntityManager, a, b, speed float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(mgl64.Vec3{a, 0, 0}))
	ecs.AddComponent(em, id, &components.EllipticalOrbitComponent{SemiMajor: a, SemiMinor: b, AngularSpeed: speed})
	return id
}

func TestEllipticalOrbit_Points(t *testing.T) {
	elliptical := snapshotWith(func(s *params.Snapshot) { s.EllipticalMode = true })

	tests := []struct {
		name string
		dt   float64
		want mgl64.Vec3
	}{
		{"θ = 0", 0, mgl64.Vec3{2, 0, 0}},
		{"θ = π/2", math.Pi / 2, mgl64.Vec3{0, 0, 1}},
		{"θ = π", math.Pi, mgl64.Vec3{-2, 0, 0}},
		{"θ = 3π/2", 3 * math.Pi / 2, mgl64.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			id := newEllipseEntity(em, 2, 1, 1)

			NewEllipticalOrbitSystem(em).Update(tt.dt, elliptical)

			tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			if !vecEqual(tf.Translation, tt.want, tol) {
				t.Errorf("平移 = %v, want %v", tf.Translation, tt.want)
			}
		})
	}
}

func TestEllipticalOrbit_FrozenInCircularMode(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newEllipseEntity(em, 2, 1, 1)
	sys := NewEllipticalOrbitSystem(em)

	elliptical := snapshotWith(func(s *params.Snapshot) { s.EllipticalMode = true })
	sys.Update(0.7, elliptical)

	ellipse, _ := ecs.GetComponent[*components.EllipticalOrbitComponent](em, id)
	tf, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	thetaBefore := ellipse.Theta
	tf.Translation = mgl64.Vec3{9, 9, 9}

	for i := 0; i < 50; i++ {
		sys.Update(0.1, params.DefaultSnapshot())
	}
	if ellipse.Theta != thetaBefore {
		t.Errorf("圆轨道模式下 θ 改变: %v -> %v", thetaBefore, ellipse.Theta)
	}
	if tf.Translation != (mgl64.Vec3{9, 9, 9}) {
		t.Errorf("圆轨道模式下不应写平移, got %v", tf.Translation)
	}

	// 重新进入椭圆模式时从上次的 θ 继续
	sys.Update(0.3, elliptical)
	if !scalar.EqualWithinAbs(ellipse.Theta, 1.0, tol) {
		t.Errorf("θ 应从 0.7 继续到 1.0, got %v", ellipse.Theta)
	}
}

func TestEllipticalOrbit_ThetaNotWrapped(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newEllipseEntity(em, 2, 1, 1)
	sys := NewEllipticalOrbitSystem(em)
	elliptical := snapshotWith(func(s *params.Snapshot) { s.EllipticalMode = true })

	for i := 0; i < 10; i++ {
		sys.Update(1, elliptical)
	}

	ellipse, _ := ecs.GetComponent[*components.EllipticalOrbitComponent](em, id)
	if !scalar.EqualWithinAbs(ellipse.Theta, 10, tol) {
		t.Errorf("θ = %v, want 10（不取模）", ellipse.Theta)
	}
	if got, want := ellipse.DisplayTheta(), 10-2*math.Pi; !scalar.EqualWithinAbs(got, want, tol) {
		t.Errorf("DisplayTheta() = %v, want %v", got, want)
	}
}

func TestEllipticalOrbit_ScaledByOrbitSpeed(t *testing.T) {
	em := ecs.NewEntityManager()
	id := newEllipseEntity(em, 2, 1, 0.5)

	snap := snapshotWith(func(s *params.Snapshot) {
		s.EllipticalMode = true
		s.OrbitSpeedScale = 3
	})
	NewEllipticalOrbitSystem(em).Update(2, snap)

	ellipse, _ := ecs.GetComponent[*components.EllipticalOrbitComponent](em, id)
	if !scalar.EqualWithinAbs(ellipse.Theta, 3, tol) {
		t.Errorf("θ = %v, want 3", ellipse.Theta)
	}

	snap.OrbitSpeedScale = 0
	NewEllipticalOrbitSystem(em).Update(2, snap)
	if !scalar.EqualWithinAbs(ellipse.Theta, 3, tol) {
		t.Errorf("倍率 0 时 θ 应保持, got %v", ellipse.Theta)
	}
}

func TestEllipticalOrbit_Theta(t *testing.T) {
	em, _, _ := newTestScene(t)
	sys := NewEllipticalOrbitSystem(em)
	if got := sys.Theta(); got != 0 {
		t.Errorf("冷启动 θ = %v, want 0", got)
	}

	if got := NewEllipticalOrbitSystem(ecs.NewEntityManager()).Theta(); got != 0 {
		t.Errorf("空场景 θ = %v, want 0", got)
	}
}

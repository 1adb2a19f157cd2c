package components

import "github.com/go-gl/mathgl/mgl64"

// 竖直轴（本地 Y 轴）
var axisY = mgl64.Vec3{0, 1, 0}

// TransformComponent 相对父实体的局部变换（平移 + 旋转，缩放恒为 1）
type TransformComponent struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// NewTransform 创建位于 translation、无旋转的局部变换
func NewTransform(translation mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		Translation: translation,
		Rotation:    mgl64.QuatIdent(),
	}
}

// RotateY 绕父坐标系的竖直轴旋转 angle 弧度
// 新旋转 = 增量 ∘ 旧旋转
func (t *TransformComponent) RotateY(angle float64) {
	if angle == 0 {
		return
	}
	t.Rotation = mgl64.QuatRotate(angle, axisY).Mul(t.Rotation).Normalize()
}

// RotateLocalY 绕自身（已倾斜的）竖直轴旋转 angle 弧度
// 新旋转 = 旧旋转 ∘ 增量
func (t *TransformComponent) RotateLocalY(angle float64) {
	if angle == 0 {
		return
	}
	t.Rotation = t.Rotation.Mul(mgl64.QuatRotate(angle, axisY)).Normalize()
}

// LocalMatrix 返回 平移 · 旋转 的 4x4 矩阵
func (t *TransformComponent) LocalMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(t.Rotation.Mat4())
}

// GlobalTransformComponent 由 TransformSystem 每帧写入的世界变换
type GlobalTransformComponent struct {
	Matrix mgl64.Mat4
}

// Position 世界坐标中的位置
func (g *GlobalTransformComponent) Position() mgl64.Vec3 {
	return g.Matrix.Col(3).Vec3()
}

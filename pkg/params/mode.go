package params

// Mode 环绕天体的运动模式
type Mode int

const (
	// ModeCircular 圆轨道：由枢轴旋转 + 固定半径偏移驱动
	ModeCircular Mode = iota
	// ModeElliptical 椭圆轨道：由参数角直接赋值位置
	ModeElliptical
)

// String 返回模式名
func (m Mode) String() string {
	switch m {
	case ModeCircular:
		return "circular"
	case ModeElliptical:
		return "elliptical"
	default:
		return "unknown"
	}
}

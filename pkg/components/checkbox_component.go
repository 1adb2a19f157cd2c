package components

// CheckboxComponent 复选框组件
// 用于开关选项（如椭圆轨道模式）
type CheckboxComponent struct {
	// 复选框边长
	Size float64

	// 当前状态
	IsChecked bool

	// 标签文字
	Label string

	// 回调函数
	OnToggle func(isChecked bool) // 状态切换时的回调

	// StateSource 数据源（可为 nil）；每帧用它刷新 IsChecked
	StateSource func() bool

	// 状态
	IsHovered bool
}

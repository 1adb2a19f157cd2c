package components

// SliderComponent 滑动条组件
// 用于倍率、半径等需要在区间内连续调整的参数
type SliderComponent struct {
	// 滑动条尺寸
	SlotWidth  float64 // 滑槽宽度
	SlotHeight float64 // 滑槽高度
	KnobWidth  float64 // 滑块宽度

	// 取值范围与当前值（实际单位，不是 0~1）
	Min   float64
	Max   float64
	Value float64

	// 标签文字
	Label string

	// 状态
	IsDragging bool // 是否正在拖动
	IsHovered  bool // 是否鼠标悬停

	// 回调函数
	OnValueChange func(value float64) // 值改变时的回调

	// ValueSource 数据源（可为 nil）；不拖动时每帧用它刷新 Value，
	// 让快捷键等其它途径写入的参数也能反映到滑动条上
	ValueSource func() float64
}

// Ratio 返回当前值在范围内的比例 0.0~1.0
func (s *SliderComponent) Ratio() float64 {
	if s.Max <= s.Min {
		return 0
	}
	r := (s.Value - s.Min) / (s.Max - s.Min)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ValueAt 把 0.0~1.0 的比例换算成范围内的值
func (s *SliderComponent) ValueAt(ratio float64) float64 {
	return s.Min + (s.Max-s.Min)*ratio
}

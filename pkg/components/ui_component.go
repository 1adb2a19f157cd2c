package components

import "image/color"

// PositionComponent 屏幕坐标位置（UI 元素左上角，像素）
type PositionComponent struct {
	X, Y float64
}

// LabelComponent 面板上的静态文字（分组标题、说明文字）
type LabelComponent struct {
	Text      string
	IsHeading bool
	Color     color.Color
}

// UIComponent 标记属于控制面板的实体，面板隐藏时这些实体不响应输入也不绘制
type UIComponent struct {
	Panel string
}

package config

// 布局配置常量
// 本文件定义了窗口尺寸和控制面板的摆放参数（屏幕坐标，像素）

const (
	// WindowWidth 逻辑屏幕宽度
	WindowWidth = 1024
	// WindowHeight 逻辑屏幕高度
	WindowHeight = 768

	// PanelX 控制面板左上角 X
	PanelX = 16.0
	// PanelY 控制面板左上角 Y
	PanelY = 16.0
	// PanelWidth 控制面板宽度
	PanelWidth = 300.0
	// PanelPadding 面板内边距
	PanelPadding = 12.0

	// SliderWidth 滑槽宽度
	SliderWidth = 180.0
	// SliderHeight 滑槽高度（也是可点击的高度）
	SliderHeight = 14.0
	// SliderRowHeight 每行滑动条占用的高度（含标签）
	SliderRowHeight = 34.0

	// CheckboxSize 复选框边长
	CheckboxSize = 16.0

	// HeadingHeight 分组标题行高
	HeadingHeight = 22.0
)

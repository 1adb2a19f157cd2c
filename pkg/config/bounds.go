package config

import "fmt"

// Range 控件的闭区间取值范围
type Range struct {
	Min float64 `mapstructure:"min" yaml:"min"`
	Max float64 `mapstructure:"max" yaml:"max"`
}

// Contains 判断 v 是否在 [Min, Max] 内
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp 把 v 限制到 [Min, Max]
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Lerp 把 0.0~1.0 的比例映射到区间内
func (r Range) Lerp(t float64) float64 {
	return r.Min + (r.Max-r.Min)*t
}

// Normalize 把区间内的值映射到 0.0~1.0（Min == Max 时返回 0）
func (r Range) Normalize(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// BoundsConfig 控制面板各滑动条的取值范围
type BoundsConfig struct {
	OrbitSpeedScale      Range `mapstructure:"orbitSpeedScale" yaml:"orbitSpeedScale,flow"`
	SpinSpeedScale       Range `mapstructure:"spinSpeedScale" yaml:"spinSpeedScale,flow"`
	PrimaryOrbitRadius   Range `mapstructure:"primaryOrbitRadius" yaml:"primaryOrbitRadius,flow"`
	SecondaryOrbitRadius Range `mapstructure:"secondaryOrbitRadius" yaml:"secondaryOrbitRadius,flow"`
}

// Validate 检查每个范围 min ≤ max 且不越出参数域
func (b BoundsConfig) Validate() error {
	ranges := []struct {
		name     string
		rng      Range
		positive bool // 半径必须严格为正
	}{
		{"orbitSpeedScale", b.OrbitSpeedScale, false},
		{"spinSpeedScale", b.SpinSpeedScale, false},
		{"primaryOrbitRadius", b.PrimaryOrbitRadius, true},
		{"secondaryOrbitRadius", b.SecondaryOrbitRadius, true},
	}
	for _, r := range ranges {
		if r.rng.Min > r.rng.Max {
			return fmt.Errorf("bounds %s invalid: min(%.3f) > max(%.3f)", r.name, r.rng.Min, r.rng.Max)
		}
		if r.positive && r.rng.Min <= 0 {
			return fmt.Errorf("bounds %s min must be > 0, got %.3f", r.name, r.rng.Min)
		}
		if r.rng.Min < 0 {
			return fmt.Errorf("bounds %s min must be >= 0, got %.3f", r.name, r.rng.Min)
		}
	}
	return nil
}

package config

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/decker502/orrery/pkg/embedded"
	"github.com/decker502/orrery/pkg/params"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量覆盖前缀，例如 ORRERY_ELLIPSE_SEMIMAJOR=4
const EnvPrefix = "ORRERY"

// SceneConfig 太阳-地球-月球场景配置
//
// 配置文件位置: pkg/embedded/data/orrery.yaml（内置），可用 --config 指定覆盖文件。
// 覆盖文件只需写出要修改的键，其余键沿用内置值。
type SceneConfig struct {
	Bodies   BodiesConfig   `mapstructure:"bodies" yaml:"bodies"`
	Orbits   OrbitsConfig   `mapstructure:"orbits" yaml:"orbits"`
	Ellipse  EllipseConfig  `mapstructure:"ellipse" yaml:"ellipse"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Bounds   BoundsConfig   `mapstructure:"bounds" yaml:"bounds"`
	Camera   CameraConfig   `mapstructure:"camera" yaml:"camera"`
}

// BodiesConfig 三个天体的外观与自转配置
type BodiesConfig struct {
	Central   BodyConfig `mapstructure:"central" yaml:"central"`
	Orbiting  BodyConfig `mapstructure:"orbiting" yaml:"orbiting"`
	Satellite BodyConfig `mapstructure:"satellite" yaml:"satellite"`
}

// BodyConfig 单个天体配置
type BodyConfig struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	Radius      float64 `mapstructure:"radius" yaml:"radius"`       // 显示半径
	Color       string  `mapstructure:"color" yaml:"color"`         // "#RRGGBB"
	SpinSpeed   float64 `mapstructure:"spinSpeed" yaml:"spinSpeed"` // 自转基础角速度 rad/s
	TiltDegrees float64 `mapstructure:"tiltDegrees" yaml:"tiltDegrees,omitempty"`
}

// OrbitsConfig 枢轴公转基础角速度（负值表示反向公转）
type OrbitsConfig struct {
	PrimaryPivotSpeed   float64 `mapstructure:"primaryPivotSpeed" yaml:"primaryPivotSpeed"`
	SecondaryPivotSpeed float64 `mapstructure:"secondaryPivotSpeed" yaml:"secondaryPivotSpeed"`
}

// EllipseConfig 环绕天体的参数椭圆
type EllipseConfig struct {
	SemiMajor    float64 `mapstructure:"semiMajor" yaml:"semiMajor"`
	SemiMinor    float64 `mapstructure:"semiMinor" yaml:"semiMinor"`
	AngularSpeed float64 `mapstructure:"angularSpeed" yaml:"angularSpeed"`
}

// DefaultsConfig 参数存储的启动值
type DefaultsConfig struct {
	OrbitSpeedScale      float64 `mapstructure:"orbitSpeedScale" yaml:"orbitSpeedScale"`
	SpinSpeedScale       float64 `mapstructure:"spinSpeedScale" yaml:"spinSpeedScale"`
	PrimaryOrbitRadius   float64 `mapstructure:"primaryOrbitRadius" yaml:"primaryOrbitRadius"`
	SecondaryOrbitRadius float64 `mapstructure:"secondaryOrbitRadius" yaml:"secondaryOrbitRadius"`
	EllipticalMode       bool    `mapstructure:"ellipticalMode" yaml:"ellipticalMode"`
}

// CameraConfig 透视相机
type CameraConfig struct {
	Eye        []float64 `mapstructure:"eye" yaml:"eye,flow"`
	Target     []float64 `mapstructure:"target" yaml:"target,flow"`
	FovDegrees float64   `mapstructure:"fovDegrees" yaml:"fovDegrees"`
}

// LoadSceneConfig 加载场景配置
//
// 参数:
//   - defaults: 内置 YAML 内容（必须完整）
//   - overridePath: 覆盖文件路径，为空则不覆盖
//
// 加载顺序：内置 YAML → 覆盖文件 → ORRERY_* 环境变量，最后统一校验。
func LoadSceneConfig(defaults []byte, overridePath string) (*SceneConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to parse built-in scene config: %w", err)
	}

	if overridePath != "" {
		v.SetConfigFile(overridePath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read scene config %s: %w", overridePath, err)
		}
	}

	var cfg SceneConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 天体显示半径为正，颜色可解析
//   - 椭圆半轴为正
//   - 控件范围 min ≤ max，且落在参数域内（倍率 ≥ 0，半径 > 0）
//   - 默认参数落在控件范围内
//   - 相机坐标为三维向量，视角在 (0, 180)
func (c *SceneConfig) Validate() error {
	bodies := map[string]BodyConfig{
		"central":   c.Bodies.Central,
		"orbiting":  c.Bodies.Orbiting,
		"satellite": c.Bodies.Satellite,
	}
	for role, b := range bodies {
		if b.Radius <= 0 {
			return fmt.Errorf("body %s radius must be > 0, got %.3f", role, b.Radius)
		}
		if _, err := ParseHexColor(b.Color); err != nil {
			return fmt.Errorf("body %s: %w", role, err)
		}
		if !finite(b.SpinSpeed) || !finite(b.TiltDegrees) {
			return fmt.Errorf("body %s has non-finite spin or tilt", role)
		}
	}

	if !finite(c.Orbits.PrimaryPivotSpeed) || !finite(c.Orbits.SecondaryPivotSpeed) {
		return fmt.Errorf("orbit pivot speeds must be finite")
	}

	if c.Ellipse.SemiMajor <= 0 || c.Ellipse.SemiMinor <= 0 {
		return fmt.Errorf("ellipse axes must be > 0, got a=%.3f b=%.3f",
			c.Ellipse.SemiMajor, c.Ellipse.SemiMinor)
	}
	if !finite(c.Ellipse.AngularSpeed) {
		return fmt.Errorf("ellipse angular speed must be finite")
	}

	if err := c.Bounds.Validate(); err != nil {
		return err
	}

	d := c.Defaults
	checks := []struct {
		name  string
		value float64
		rng   Range
	}{
		{"orbitSpeedScale", d.OrbitSpeedScale, c.Bounds.OrbitSpeedScale},
		{"spinSpeedScale", d.SpinSpeedScale, c.Bounds.SpinSpeedScale},
		{"primaryOrbitRadius", d.PrimaryOrbitRadius, c.Bounds.PrimaryOrbitRadius},
		{"secondaryOrbitRadius", d.SecondaryOrbitRadius, c.Bounds.SecondaryOrbitRadius},
	}
	for _, chk := range checks {
		if !chk.rng.Contains(chk.value) {
			return fmt.Errorf("default %s=%.3f outside [%.3f, %.3f]",
				chk.name, chk.value, chk.rng.Min, chk.rng.Max)
		}
	}

	if len(c.Camera.Eye) != 3 || len(c.Camera.Target) != 3 {
		return fmt.Errorf("camera eye/target must have 3 components")
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("camera fovDegrees must be in (0, 180), got %.1f", c.Camera.FovDegrees)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LoadBuiltinSceneConfig 以内置 data/orrery.yaml 为基础加载场景配置
func LoadBuiltinSceneConfig(overridePath string) (*SceneConfig, error) {
	data, err := embedded.ReadFile(embedded.DefaultSceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("读取内置场景配置失败: %w", err)
	}
	return LoadSceneConfig(data, overridePath)
}

// Snapshot 把启动值转换成参数快照
func (d DefaultsConfig) Snapshot() params.Snapshot {
	return params.Snapshot{
		OrbitSpeedScale:      d.OrbitSpeedScale,
		SpinSpeedScale:       d.SpinSpeedScale,
		PrimaryOrbitRadius:   d.PrimaryOrbitRadius,
		SecondaryOrbitRadius: d.SecondaryOrbitRadius,
		EllipticalMode:       d.EllipticalMode,
	}
}

// CameraVectors 返回相机位置和注视点
// 调用前应先通过 Validate
func (c CameraConfig) CameraVectors() (eye, target mgl64.Vec3) {
	copy(eye[:], c.Eye)
	copy(target[:], c.Target)
	return eye, target
}

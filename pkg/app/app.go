// Package app 提供应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/observability"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/scenes"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/quasilyte/gdata/v2"
)

// OrrerySceneName 场景名
const OrrerySceneName = "orrery"

// maxFrameDelta 单帧 dt 上限（秒）；拖动窗口等造成的长停顿不会让天体瞬移
const maxFrameDelta = 0.25

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置覆盖文件，为空则只用内置配置
	ConfigPath string
	// MetricsAddr 非空时在该地址提供 /metrics
	MetricsAddr string
	// Elliptical 以椭圆轨道模式启动（覆盖配置中的默认值）
	Elliptical bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	metricsServer            *observability.MetricsServer
	frameTimer               *utils.FrameTimer
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig, err := config.LoadBuiltinSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 场景配置加载完成 (override=%q)", cfg.ConfigPath)

	initial := sceneConfig.Defaults.Snapshot()
	if cfg.Elliptical {
		initial.EllipticalMode = true
	}
	store := params.NewStore(initial)

	// 显示设置持久化；存储不可用时降级为仅内存
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "orrery"}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
	} else {
		gdataManager = m
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}

	a := &App{
		settingsManager: settingsManager,
		frameTimer:      utils.NewFrameTimer(nil),
		verbose:         cfg.Verbose,
	}

	var collector *observability.FrameCollector
	if cfg.MetricsAddr != "" {
		collector, err = observability.NewFrameCollector(prometheus.NewRegistry())
		if err != nil {
			return nil, fmt.Errorf("metrics 初始化失败: %w", err)
		}
		a.metricsServer, err = observability.StartMetricsServer(cfg.MetricsAddr, collector)
		if err != nil {
			return nil, err
		}
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(name string) (game.Scene, error) {
		if name != OrrerySceneName {
			return nil, fmt.Errorf("unknown scene %q", name)
		}
		opts := scenes.OrrerySceneOptions{
			Config:             sceneConfig,
			Store:              store,
			Settings:           settingsManager,
			OnToggleFullscreen: a.toggleFullscreen,
		}
		// 未启用 metrics 时不传入 nil 指针，避免接口非 nil
		if collector != nil {
			opts.Metrics = collector
		}
		return scenes.NewOrreryScene(opts)
	})
	if !sceneManager.LoadScene(OrrerySceneName) {
		return nil, fmt.Errorf("无法创建场景 %s", OrrerySceneName)
	}
	a.sceneManager = sceneManager

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return a, nil
}

// toggleFullscreen 切换全屏并记录到显示设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settingsManager.SetFullscreen(true)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次），dt 取真实经过时间
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	deltaTime := a.frameTimer.Tick()
	if deltaTime > maxFrameDelta {
		deltaTime = maxFrameDelta
	}
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close 退出时保存显示设置并关闭 metrics 服务
func (a *App) Close() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: failed to save on exit")
	}
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			log.Printf("[App] metrics shutdown: %v", err)
		}
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

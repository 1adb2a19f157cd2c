// Package scenes 提供应用场景
package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/game"
	"github.com/decker502/orrery/pkg/modules"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// OrreryScene 太阳-地球-月球场景
//
// 每帧顺序：快捷键 → 面板控件（写参数存储）→ 控件回读 → 帧驱动（运动系统）。
// 控件写入发生在帧驱动取快照之前，因此拖动滑块当帧生效。
type OrreryScene struct {
	entityManager *ecs.EntityManager
	store         *params.Store
	settings      *game.SettingsManager

	solar *entities.SolarSystem
	panel *entities.ControlPanel

	driver         *systems.FrameDriver
	hotkeySystem   *systems.HotkeySystem
	sliderSystem   *systems.SliderSystem
	checkboxSystem *systems.CheckboxSystem
	uiSyncSystem   *systems.UISyncSystem
	orreryRender   *systems.OrreryRenderSystem
	panelRender    *systems.PanelRenderSystem
	help           *modules.HelpPanelModule

	onToggleFullscreen func()
	lastReport         systems.FrameReport
}

// OrrerySceneOptions 场景依赖
type OrrerySceneOptions struct {
	Config   *config.SceneConfig
	Store    *params.Store
	Settings *game.SettingsManager // 可为 nil，使用默认显示设置
	Metrics  systems.FrameMetrics  // 可为 nil

	// OnToggleFullscreen F11 时调用（窗口相关操作由 App 负责）
	OnToggleFullscreen func()
}

// NewOrreryScene 创建场景：天体层级、控制面板和全部系统
func NewOrreryScene(opts OrrerySceneOptions) (*OrreryScene, error) {
	if opts.Config == nil || opts.Store == nil {
		return nil, fmt.Errorf("orrery scene requires config and store")
	}
	if opts.Settings == nil {
		opts.Settings, _ = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	solar, err := entities.NewSolarSystem(em, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("创建天体层级失败: %w", err)
	}
	panel := entities.NewControlPanel(em, opts.Store, opts.Config)

	eye, target := opts.Config.Camera.CameraVectors()
	camera := utils.NewCamera(eye, target, opts.Config.Camera.FovDegrees, config.WindowWidth, config.WindowHeight)

	s := &OrreryScene{
		entityManager:      em,
		store:              opts.Store,
		settings:           opts.Settings,
		solar:              solar,
		panel:              panel,
		driver:             systems.NewFrameDriver(em, opts.Store, opts.Metrics),
		sliderSystem:       systems.NewSliderSystem(em),
		checkboxSystem:     systems.NewCheckboxSystem(em),
		uiSyncSystem:       systems.NewUISyncSystem(em),
		orreryRender:       systems.NewOrreryRenderSystem(em, camera),
		panelRender:        systems.NewPanelRenderSystem(em, panel.X, panel.Y, panel.Width, panel.Height),
		help:               modules.NewHelpPanelModule(systems.DefaultKeyBindings, config.WindowWidth, config.WindowHeight, nil),
		onToggleFullscreen: opts.OnToggleFullscreen,
	}
	s.hotkeySystem = systems.NewHotkeySystem(s.hotkeyHandlers())
	s.applyDisplaySettings()

	log.Printf("[OrreryScene] 场景创建完成: %d 个面板实体, 初始模式 %s",
		len(panel.Entities), opts.Store.Snapshot().Mode())
	return s, nil
}

func (s *OrreryScene) hotkeyHandlers() map[systems.HotkeyAction]func() {
	return map[systems.HotkeyAction]func(){
		systems.ActionTogglePause: func() {
			log.Printf("[OrreryScene] paused = %v", s.driver.TogglePaused())
		},
		systems.ActionToggleElliptical: func() {
			s.store.ToggleEllipticalMode()
		},
		systems.ActionForceReconcile: func() {
			s.store.MarkChanged()
		},
		systems.ActionTogglePanel: func() {
			s.settings.SetShowPanel(!s.settings.GetSettings().ShowPanel)
			s.applyDisplaySettings()
		},
		systems.ActionToggleGuides: func() {
			s.settings.SetShowGuides(!s.settings.GetSettings().ShowGuides)
			s.applyDisplaySettings()
		},
		systems.ActionToggleFullscreen: func() {
			if s.onToggleFullscreen != nil {
				s.onToggleFullscreen()
			}
		},
		systems.ActionToggleHelp: func() {
			s.help.Toggle()
		},
	}
}

// applyDisplaySettings 把显示设置同步到渲染和交互系统
func (s *OrreryScene) applyDisplaySettings() {
	ds := s.settings.GetSettings()
	s.panelRender.Visible = ds.ShowPanel
	s.sliderSystem.SetEnabled(ds.ShowPanel)
	s.checkboxSystem.SetEnabled(ds.ShowPanel)
	s.orreryRender.ShowGuides = ds.ShowGuides
}

// Update 推进一帧
func (s *OrreryScene) Update(deltaTime float64) {
	utils.UpdateLastTouchPosition()

	s.hotkeySystem.Update()
	if s.help.IsActive() {
		// 帮助面板显示时面板控件不响应鼠标
		if released, x, y := utils.IsPointerJustReleased(); released {
			s.help.HandleClick(x, y)
		}
	} else {
		s.sliderSystem.Update(deltaTime)
		s.checkboxSystem.Update(deltaTime)
	}
	s.uiSyncSystem.Update()

	s.lastReport = s.driver.Step(deltaTime)
}

// Draw 绘制场景和面板
func (s *OrreryScene) Draw(screen *ebiten.Image) {
	snap := s.lastReport.Snapshot
	if s.lastReport.Frame == 0 {
		snap = s.store.Snapshot()
	}
	s.orreryRender.Draw(screen, snap)
	s.panelRender.Draw(screen, systems.PanelStatus{
		Mode:   s.lastReport.Mode.String(),
		Theta:  s.displayTheta(),
		Paused: s.driver.IsPaused(),
		TPS:    ebiten.ActualTPS(),
	})
	s.help.Draw(screen)
}

func (s *OrreryScene) displayTheta() float64 {
	ellipse, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](s.entityManager, s.solar.Earth)
	if !ok {
		return 0
	}
	return ellipse.DisplayTheta()
}

// SaveOnExit 保存显示设置（模拟状态不持久化）
func (s *OrreryScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[OrreryScene] 保存显示设置失败: %v", err)
		return false
	}
	return true
}

// Driver 帧驱动
func (s *OrreryScene) Driver() *systems.FrameDriver {
	return s.driver
}

// LastReport 最近一帧的报告
func (s *OrreryScene) LastReport() systems.FrameReport {
	return s.lastReport
}

// EntityManager 实体管理器
func (s *OrreryScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Help 快捷键帮助面板
func (s *OrreryScene) Help() *modules.HelpPanelModule {
	return s.help
}

// SolarSystem 天体实体
func (s *OrreryScene) SolarSystem() *entities.SolarSystem {
	return s.solar
}

package scenes

import (
	"testing"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/systems"
)

func newTestScene(t *testing.T) (*OrreryScene, *params.Store) {
	t.Helper()
	cfg, err := config.LoadBuiltinSceneConfig("")
	if err != nil {
		t.Fatalf("加载内置配置失败: %v", err)
	}
	store := params.NewStore(cfg.Defaults.Snapshot())
	s, err := NewOrreryScene(OrrerySceneOptions{Config: cfg, Store: store})
	if err != nil {
		t.Fatalf("NewOrreryScene 返回错误: %v", err)
	}
	return s, store
}

func TestNewOrreryScene_RequiresConfigAndStore(t *testing.T) {
	if _, err := NewOrreryScene(OrrerySceneOptions{}); err == nil {
		t.Error("缺少配置和存储时应返回错误")
	}
}

func TestOrreryScene_HotkeyHandlers(t *testing.T) {
	s, store := newTestScene(t)
	handlers := s.hotkeyHandlers()

	handlers[systems.ActionToggleElliptical]()
	if !store.Snapshot().EllipticalMode {
		t.Error("E 应切换到椭圆模式")
	}

	store.BeginFrame()
	handlers[systems.ActionForceReconcile]()
	if !store.Changed() {
		t.Error("R 应标记参数存储为已修改")
	}

	handlers[systems.ActionTogglePause]()
	if !s.Driver().IsPaused() {
		t.Error("空格应暂停")
	}

	handlers[systems.ActionTogglePanel]()
	if s.panelRender.Visible || s.settings.GetSettings().ShowPanel {
		t.Error("H 应隐藏面板")
	}

	handlers[systems.ActionToggleGuides]()
	if s.orreryRender.ShowGuides {
		t.Error("G 应隐藏轨道辅助线")
	}

	// 没有设置回调时 F11 不应 panic
	handlers[systems.ActionToggleFullscreen]()

	handlers[systems.ActionToggleHelp]()
	if !s.Help().IsActive() {
		t.Error("F1 应显示帮助")
	}
	handlers[systems.ActionToggleHelp]()
	if s.Help().IsActive() {
		t.Error("再按 F1 应隐藏帮助")
	}
}

func TestOrreryScene_FullscreenCallback(t *testing.T) {
	cfg, err := config.LoadBuiltinSceneConfig("")
	if err != nil {
		t.Fatal(err)
	}
	called := 0
	s, err := NewOrreryScene(OrrerySceneOptions{
		Config:             cfg,
		Store:              params.NewStore(cfg.Defaults.Snapshot()),
		OnToggleFullscreen: func() { called++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	s.hotkeyHandlers()[systems.ActionToggleFullscreen]()
	if called != 1 {
		t.Errorf("全屏回调调用 %d 次, want 1", called)
	}
}

func TestOrreryScene_DriverSteps(t *testing.T) {
	s, store := newTestScene(t)
	store.SetPrimaryOrbitRadius(5)

	r := s.Driver().Step(1.0 / 60)
	if !r.Reconciled {
		t.Error("写入后的第一帧应执行半径校正")
	}
	if s.SolarSystem() == nil || s.EntityManager() == nil {
		t.Error("场景应暴露实体")
	}
}

func TestOrreryScene_SaveOnExit(t *testing.T) {
	s, _ := newTestScene(t)
	if !s.SaveOnExit() {
		t.Error("降级模式下 SaveOnExit 应返回 true")
	}
}

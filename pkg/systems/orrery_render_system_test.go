package systems

import (
	"strings"
	"testing"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/utils"
)

func newTestCamera(cfg *config.SceneConfig) *utils.Camera {
	eye, target := cfg.Camera.CameraVectors()
	return utils.NewCamera(eye, target, cfg.Camera.FovDegrees, config.WindowWidth, config.WindowHeight)
}

func TestOrreryRender_DrawListSortedByDepth(t *testing.T) {
	em, _, cfg := newTestScene(t)
	driver := NewFrameDriver(em, params.NewStore(cfg.Defaults.Snapshot()), nil)
	render := NewOrreryRenderSystem(em, newTestCamera(cfg))

	for i := 0; i < 200; i++ {
		driver.Step(1.0 / 30)

		list := render.DrawList()
		if len(list) != 3 {
			t.Fatalf("第 %d 帧 可见天体 %d 个, want 3", i, len(list))
		}
		for j := 1; j < len(list); j++ {
			if list[j-1].Depth < list[j].Depth {
				t.Fatalf("第 %d 帧 绘制顺序不是从远到近: %v", i, list)
			}
		}
		for _, d := range list {
			if d.Radius <= 0 {
				t.Fatalf("%s 像素半径 = %v", d.Name, d.Radius)
			}
		}
	}
}

func TestOrreryRender_SunAtScreenCenter(t *testing.T) {
	em, _, cfg := newTestScene(t)
	NewFrameDriver(em, params.NewStore(cfg.Defaults.Snapshot()), nil).Step(0)

	for _, d := range NewOrreryRenderSystem(em, newTestCamera(cfg)).DrawList() {
		if d.Role != components.RoleCentral {
			continue
		}
		if d.X < config.WindowWidth/2-1 || d.X > config.WindowWidth/2+1 ||
			d.Y < config.WindowHeight/2-1 || d.Y > config.WindowHeight/2+1 {
			t.Errorf("太阳屏幕坐标 = (%v, %v), want 屏幕中心", d.X, d.Y)
		}
		return
	}
	t.Error("DrawList 中没有中心天体")
}

func TestOrreryRender_GuidePoints(t *testing.T) {
	em, _, cfg := newTestScene(t)
	store := params.NewStore(cfg.Defaults.Snapshot())
	NewFrameDriver(em, store, nil).Step(0)
	render := NewOrreryRenderSystem(em, newTestCamera(cfg))

	paths := render.GuidePoints(store.Snapshot())
	if len(paths) != 2 {
		t.Fatalf("辅助线条数 = %d, want 2（地球轨道 + 月球轨道）", len(paths))
	}
	for i, p := range paths {
		if len(p) != guideSegments+1 {
			t.Errorf("第 %d 条辅助线点数 = %d, want %d", i, len(p), guideSegments+1)
		}
	}

	elliptical := store.Snapshot()
	elliptical.EllipticalMode = true
	if got := render.GuidePoints(elliptical); len(got) != 2 {
		t.Errorf("椭圆模式辅助线条数 = %d, want 2", len(got))
	}
}

func TestFormatStatus(t *testing.T) {
	s := FormatStatus(PanelStatus{Mode: "elliptical", Theta: 1.25, Paused: true, TPS: 60})
	for _, want := range []string{"elliptical", "1.25", "paused", "60"} {
		if !strings.Contains(s, want) {
			t.Errorf("FormatStatus() = %q, 缺少 %q", s, want)
		}
	}
	if got := FormatSliderValue(2.345); got != "2.35" && got != "2.34" {
		t.Errorf("FormatSliderValue(2.345) = %q", got)
	}
}

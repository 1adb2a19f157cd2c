// orrery-tui 在终端中以俯视图运行太阳-地球-月球场景
//
// 用法:
//
//	go run ./cmd/orrery-tui
//	go run ./cmd/orrery-tui --elliptical --metrics-addr :9090
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/observability"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/decker502/orrery/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// 帧间隔上限，终端被挂起后恢复时不会一次推进太多
const maxFrameDelta = 0.25

// session 一次终端运行所需的场景状态
type session struct {
	cfg      *config.SceneConfig
	em       *ecs.EntityManager
	solar    *entities.SolarSystem
	store    *params.Store
	driver   *systems.FrameDriver
	renderer *renderer
	timer    *utils.FrameTimer
	last     systems.FrameReport
}

func newSession(cfg *config.SceneConfig, elliptical bool, metrics systems.FrameMetrics, cols, rows int, clock utils.Clock) (*session, error) {
	em := ecs.NewEntityManager()
	solar, err := entities.NewSolarSystem(em, cfg)
	if err != nil {
		return nil, err
	}
	initial := cfg.Defaults.Snapshot()
	if elliptical {
		initial.EllipticalMode = true
	}
	store := params.NewStore(initial)
	driver := systems.NewFrameDriver(em, store, metrics)

	s := &session{
		cfg:    cfg,
		em:     em,
		solar:  solar,
		store:  store,
		driver: driver,
		timer:  utils.NewFrameTimer(clock),
	}
	s.renderer = &renderer{
		em:     em,
		solar:  solar,
		driver: driver,
		view:   newViewport(cols, rows, sceneExtent(cfg)),
	}
	return s, nil
}

// handleKey 处理一次按键，返回 false 表示退出
func (s *session) handleKey(ev *tcell.EventKey) bool {
	a := keyAction(ev)
	switch a {
	case actionNone:
		return true
	case actionQuit:
		return false
	case actionPause:
		paused := s.driver.TogglePaused()
		log.Printf("[orrery-tui] paused=%v", paused)
	case actionZoomIn:
		s.renderer.view.zoomBy(1.25)
	case actionZoomOut:
		s.renderer.view.zoomBy(0.8)
	default:
		applyParamAction(s.store, s.cfg.Bounds, a)
	}
	return true
}

// tick 推进一帧
func (s *session) tick() systems.FrameReport {
	dt := s.timer.Tick()
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.last = s.driver.Step(dt)
	if s.last.Transition != nil {
		log.Printf("[orrery-tui] mode %s -> %s at frame %d",
			s.last.Transition.From, s.last.Transition.To, s.last.Transition.Frame)
	}
	return s.last
}

func main() {
	configPath := flag.String("config", "", "场景配置覆盖文件 (YAML)")
	elliptical := flag.Bool("elliptical", false, "以椭圆轨道模式启动")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus 指标监听地址（为空则不启动）")
	fps := flag.Int("fps", 30, "刷新频率")
	logPath := flag.String("log", "", "日志文件（终端界面运行时不输出到屏幕）")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "打开日志文件失败: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.LoadBuiltinSceneConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	var metrics systems.FrameMetrics
	var server *observability.MetricsServer
	if *metricsAddr != "" {
		collector, err := observability.NewFrameCollector(prometheus.NewRegistry())
		if err != nil {
			fmt.Fprintf(os.Stderr, "metrics 初始化失败: %v\n", err)
			os.Exit(1)
		}
		metrics = collector
		server, err = observability.StartMetricsServer(*metricsAddr, collector)
		if err != nil {
			fmt.Fprintf(os.Stderr, "metrics 服务启动失败: %v\n", err)
			os.Exit(1)
		}
	}

	if err := runTerminal(cfg, *elliptical, metrics, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

func runTerminal(cfg *config.SceneConfig, elliptical bool, metrics systems.FrameMetrics, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	cols, rows := screen.Size()
	s, err := newSession(cfg, elliptical, metrics, cols, rows, nil)
	if err != nil {
		return err
	}

	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				cols, rows := ev.Size()
				s.renderer.view.resize(cols, rows, sceneExtent(cfg))
				screen.Sync()
			}
		case <-ticker.C:
			report := s.tick()
			s.renderer.draw(screen, report)
		}
	}
}

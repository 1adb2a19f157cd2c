// orrery-verify 无窗口运行帧驱动，检查圆轨道半径不变量和椭圆轨道位置
//
// 用法:
//
//	go run ./cmd/orrery-verify --frames 1000
//	go run ./cmd/orrery-verify --toggle-every 120 --metrics
//	go run ./cmd/orrery-verify --dump-config
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/orrery/pkg/components"
	"github.com/decker502/orrery/pkg/config"
	"github.com/decker502/orrery/pkg/ecs"
	"github.com/decker502/orrery/pkg/entities"
	"github.com/decker502/orrery/pkg/observability"
	"github.com/decker502/orrery/pkg/params"
	"github.com/decker502/orrery/pkg/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gopkg.in/yaml.v3"
)

// radiusTolerance 半径检查容差（场景单位）
const radiusTolerance = 1e-9

// Options 验证参数
type Options struct {
	Frames      int
	DeltaTime   float64
	Elliptical  bool
	ToggleEvery int // >0 时每 N 帧切换一次模式
	ResizeEvery int // >0 时每 N 帧修改一次主/次半径
}

// Summary 验证结果
type Summary struct {
	Frames           int
	CircularFrames   int
	EllipticalFrames int
	Reconciliations  int
	ModeSwitches     int
	Violations       []string
	MaxRadiusError   float64
	FinalTheta       float64
	Elapsed          float64
}

func main() {
	frames := flag.Int("frames", 1000, "运行帧数")
	dt := flag.Float64("dt", 1.0/60, "每帧时间（秒）")
	configPath := flag.String("config", "", "场景配置覆盖文件 (YAML)")
	elliptical := flag.Bool("elliptical", false, "以椭圆轨道模式启动")
	toggleEvery := flag.Int("toggle-every", 0, "每 N 帧切换一次圆/椭圆模式（0 表示不切换）")
	resizeEvery := flag.Int("resize-every", 0, "每 N 帧修改一次轨道半径（0 表示不修改）")
	dumpConfig := flag.Bool("dump-config", false, "打印生效的场景配置 (YAML) 后退出")
	showMetrics := flag.Bool("metrics", false, "结束时打印 Prometheus 指标")
	verbose := flag.Bool("verbose", false, "显示详细调试信息")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadBuiltinSceneConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	if *dumpConfig {
		if err := dumpSceneConfig(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "导出配置失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	reg := prometheus.NewRegistry()
	collector, err := observability.NewFrameCollector(reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "metrics 初始化失败: %v\n", err)
		os.Exit(1)
	}

	summary, err := run(cfg, Options{
		Frames:      *frames,
		DeltaTime:   *dt,
		Elliptical:  *elliptical,
		ToggleEvery: *toggleEvery,
		ResizeEvery: *resizeEvery,
	}, collector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, summary)
	if *showMetrics {
		printMetrics(os.Stdout, reg)
	}
	if len(summary.Violations) > 0 {
		os.Exit(2)
	}
}

// dumpSceneConfig 以 YAML 输出配置
func dumpSceneConfig(w io.Writer, cfg *config.SceneConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// run 创建场景并逐帧检查
func run(cfg *config.SceneConfig, opts Options, metrics systems.FrameMetrics) (*Summary, error) {
	if opts.Frames < 0 {
		return nil, fmt.Errorf("frames must be >= 0, got %d", opts.Frames)
	}

	em := ecs.NewEntityManager()
	solar, err := entities.NewSolarSystem(em, cfg)
	if err != nil {
		return nil, err
	}

	initial := cfg.Defaults.Snapshot()
	if opts.Elliptical {
		initial.EllipticalMode = true
	}
	store := params.NewStore(initial)
	driver := systems.NewFrameDriver(em, store, metrics)

	summary := &Summary{}
	var radiusErrors []float64
	radii := []config.Range{cfg.Bounds.PrimaryOrbitRadius, cfg.Bounds.SecondaryOrbitRadius}

	for i := 1; i <= opts.Frames; i++ {
		if opts.ToggleEvery > 0 && i%opts.ToggleEvery == 0 {
			store.ToggleEllipticalMode()
		}
		if opts.ResizeEvery > 0 && i%opts.ResizeEvery == 0 {
			// 在控件范围内来回变化
			t := float64((i/opts.ResizeEvery)%5) / 4
			store.SetPrimaryOrbitRadius(radii[0].Lerp(t))
			store.SetSecondaryOrbitRadius(radii[1].Lerp(1 - t))
		}

		report := driver.Step(opts.DeltaTime)
		summary.Frames++
		if report.Reconciled {
			summary.Reconciliations++
		}
		if report.Transition != nil {
			summary.ModeSwitches++
		}

		if report.Snapshot.EllipticalMode {
			summary.EllipticalFrames++
			if v := checkEllipse(em, solar); v != "" {
				summary.Violations = append(summary.Violations, fmt.Sprintf("frame %d: %s", report.Frame, v))
			}
			continue
		}

		summary.CircularFrames++
		errs, v := checkCircular(em, solar, report.Snapshot)
		radiusErrors = append(radiusErrors, errs...)
		if v != "" {
			summary.Violations = append(summary.Violations, fmt.Sprintf("frame %d: %s", report.Frame, v))
		}
	}

	if len(radiusErrors) > 0 {
		summary.MaxRadiusError = floats.Max(radiusErrors)
	}
	if ellipse, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](em, solar.Earth); ok {
		summary.FinalTheta = ellipse.Theta
	}
	summary.Elapsed = driver.Elapsed()
	return summary, nil
}

// checkCircular 检查地球/月球到各自父天体的世界距离等于配置半径
func checkCircular(em *ecs.EntityManager, solar *entities.SolarSystem, snap params.Snapshot) ([]float64, string) {
	sun, ok1 := worldPosition(em, solar.Sun)
	earth, ok2 := worldPosition(em, solar.Earth)
	moon, ok3 := worldPosition(em, solar.Moon)
	if !ok1 || !ok2 || !ok3 {
		return nil, "missing global transform"
	}

	dEarth := earth.Sub(sun).Len()
	dMoon := moon.Sub(earth).Len()
	errs := []float64{
		abs(dEarth - snap.PrimaryOrbitRadius),
		abs(dMoon - snap.SecondaryOrbitRadius),
	}
	if !scalar.EqualWithinAbs(dEarth, snap.PrimaryOrbitRadius, radiusTolerance) {
		return errs, fmt.Sprintf("primary distance %.12f != %.12f", dEarth, snap.PrimaryOrbitRadius)
	}
	if !scalar.EqualWithinAbs(dMoon, snap.SecondaryOrbitRadius, radiusTolerance) {
		return errs, fmt.Sprintf("secondary distance %.12f != %.12f", dMoon, snap.SecondaryOrbitRadius)
	}
	return errs, ""
}

// checkEllipse 检查地球局部平移位于参数椭圆上
func checkEllipse(em *ecs.EntityManager, solar *entities.SolarSystem) string {
	ellipse, ok := ecs.GetComponent[*components.EllipticalOrbitComponent](em, solar.Earth)
	if !ok {
		return "missing elliptical orbit"
	}
	tf, ok := ecs.GetComponent[*components.TransformComponent](em, solar.Earth)
	if !ok {
		return "missing transform"
	}
	x, y, z := ellipse.Point(ellipse.Theta)
	want := mgl64.Vec3{x, y, z}
	if !tf.Translation.ApproxEqualThreshold(want, radiusTolerance) {
		return fmt.Sprintf("ellipse position %v != %v (theta %.6f)", tf.Translation, want, ellipse.Theta)
	}
	return ""
}

func worldPosition(em *ecs.EntityManager, id ecs.EntityID) (mgl64.Vec3, bool) {
	g, ok := ecs.GetComponent[*components.GlobalTransformComponent](em, id)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return g.Position(), true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func printSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "frames:           %d (circular %d, elliptical %d)\n", s.Frames, s.CircularFrames, s.EllipticalFrames)
	fmt.Fprintf(w, "simulated time:   %.3fs\n", s.Elapsed)
	fmt.Fprintf(w, "reconciliations:  %d\n", s.Reconciliations)
	fmt.Fprintf(w, "mode switches:    %d\n", s.ModeSwitches)
	fmt.Fprintf(w, "final theta:      %.6f rad\n", s.FinalTheta)
	fmt.Fprintf(w, "max radius error: %.3e\n", s.MaxRadiusError)
	if len(s.Violations) == 0 {
		fmt.Fprintln(w, "result:           OK")
		return
	}
	fmt.Fprintf(w, "result:           %d violation(s)\n", len(s.Violations))
	for i, v := range s.Violations {
		if i == 10 {
			fmt.Fprintf(w, "  ... %d more\n", len(s.Violations)-10)
			break
		}
		fmt.Fprintf(w, "  %s\n", v)
	}
}

// printMetrics 打印注册表中的计数器和仪表值
func printMetrics(w io.Writer, reg prometheus.Gatherer) {
	mfs, err := reg.Gather()
	if err != nil {
		fmt.Fprintf(w, "gather metrics: %v\n", err)
		return
	}
	fmt.Fprintln(w, "metrics:")
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			label := ""
			for _, lp := range m.GetLabel() {
				label += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "  %s%s %g\n", mf.GetName(), label, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "  %s%s %g\n", mf.GetName(), label, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(w, "  %s%s count=%d sum=%g\n", mf.GetName(), label,
					m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum())
			}
		}
	}
}

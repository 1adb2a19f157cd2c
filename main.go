package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/orrery/pkg/app"
	"github.com/decker502/orrery/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "显示详细调试信息")
	configPath := flag.String("config", "", "场景配置覆盖文件 (YAML)")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus /metrics 监听地址，例如 127.0.0.1:9090")
	elliptical := flag.Bool("elliptical", false, "以椭圆轨道模式启动")
	flag.Parse()

	orrery, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		ConfigPath:  *configPath,
		MetricsAddr: *metricsAddr,
		Elliptical:  *elliptical,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Orrery - Sun / Earth / Moon")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(orrery)
	orrery.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", runErr)
		os.Exit(1)
	}
}

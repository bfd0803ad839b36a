package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/cardscroller/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	projectPath = flag.String("project", "", "项目文件路径（YAML）")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
	fullscreen  = flag.Bool("fullscreen", false, "启动时进入全屏")
)

func main() {
	flag.Parse()

	path := *projectPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "用法: cardscroller [-verbose] [-fullscreen] -project <项目文件.yaml>")
		os.Exit(2)
	}

	application, err := app.NewApp(app.Config{
		ProjectPath: path,
		Verbose:     *verbose,
		Fullscreen:  *fullscreen,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.DefaultWindowWidth, app.DefaultWindowHeight)
	ebiten.SetWindowTitle("CardScroller")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 自行处理关闭，以便退出前把设置写回持久化存储
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(application); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，组装状态树、事件总线、
// 持久化设置和场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/gonewx/cardscroller/internal/system"
	"github.com/gonewx/cardscroller/pkg/game"
	"github.com/gonewx/cardscroller/pkg/scenes"
	"github.com/gonewx/cardscroller/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 窗口默认逻辑尺寸
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// Config 定义应用启动配置
type Config struct {
	// ProjectPath 要加载的项目文件路径（YAML）
	ProjectPath string
	// Verbose 启用详细日志输出
	Verbose bool
	// Fullscreen 启动时直接进入全屏
	Fullscreen bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 硬件能力探测决定裁剪并行度和缩放质量
	caps := system.Probe()
	log.Printf("[App] System capabilities: %d crop workers, high quality scaling=%v",
		caps.CropWorkers, caps.HighQualityScaling)

	state := game.NewStateManager()
	events := game.NewEventBus()
	events.SetVerbose(cfg.Verbose)

	// 持久化存储不可用时降级为内存模式（settingsManager 容忍 nil）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "cardscroller"})
	if err != nil {
		log.Printf("[App] 持久化存储不可用，设置将不会保存: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, err
	}
	if err := settingsManager.Load(); err != nil {
		log.Printf("[App] 加载设置失败，使用默认值: %v", err)
	}

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	sceneManager := game.NewSceneManager()
	clock := systems.Clock(systems.SystemClock)
	sceneManager.SetSceneFactory(func(projectPath string) game.Scene {
		return scenes.NewLoadingScene(projectPath, sceneManager, state, events, settingsManager, caps, clock)
	})
	sceneManager.LoadProject(cfg.ProjectPath)

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭前给当前场景一次保存状态的机会
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[App] 退出保存失败")
			}
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(DefaultWindowWidth, DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", DefaultWindowWidth, DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
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
	return DefaultWindowWidth, DefaultWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在应用关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

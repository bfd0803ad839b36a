package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gonewx/cardscroller/internal/source"
	"github.com/gonewx/cardscroller/internal/system"
	"github.com/gonewx/cardscroller/pkg/config"
	"github.com/gonewx/cardscroller/pkg/game"
	"github.com/gonewx/cardscroller/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// loadResult 后台加载的结果（配置 + 解码后的源图）
type loadResult struct {
	cfg *config.ProjectConfig
	img *source.LongImage
	err error
}

// LoadingScene 项目加载场景
//
// 项目配置解析和源图解码（PDF 渲染可能耗时数秒）在后台 goroutine 进行，
// 游戏循环只轮询结果通道，画面保持响应。
// 加载成功后切换到查看器场景，失败则停留在本场景显示错误。
type LoadingScene struct {
	sceneManager *game.SceneManager
	state        *game.StateManager
	events       *game.EventBus
	settings     *game.SettingsManager
	caps         system.Capabilities
	clock        systems.Clock

	projectPath string
	results     chan loadResult
	loadErr     error

	elapsedTime float64
}

// NewLoadingScene 创建加载场景并立即开始后台加载
func NewLoadingScene(projectPath string, sm *game.SceneManager, state *game.StateManager, events *game.EventBus, settings *game.SettingsManager, caps system.Capabilities, clock systems.Clock) *LoadingScene {
	s := &LoadingScene{
		sceneManager: sm,
		state:        state,
		events:       events,
		settings:     settings,
		caps:         caps,
		clock:        clock,
		projectPath:  projectPath,
		results:      make(chan loadResult, 1),
	}

	go func() {
		cfg, err := config.LoadProjectConfig(projectPath)
		if err != nil {
			s.results <- loadResult{err: err}
			return
		}
		img, err := source.Load(cfg.Image, cfg.DPI)
		if err != nil {
			s.results <- loadResult{err: fmt.Errorf("加载源图失败: %w", err)}
			return
		}
		s.results <- loadResult{cfg: cfg, img: img}
	}()

	log.Printf("[LoadingScene] 开始加载项目: %s", projectPath)
	return s
}

// Update 轮询加载结果
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime
	if s.loadErr != nil {
		return
	}

	select {
	case result := <-s.results:
		if result.err != nil {
			s.loadErr = result.err
			log.Printf("[LoadingScene] 加载失败: %v", result.err)
			return
		}
		viewer := NewViewerScene(result.cfg, result.img, s.state, s.events, s.settings, s.caps, s.clock)
		s.sceneManager.SwitchTo(viewer)
	default:
	}
}

// Draw 渲染加载指示或错误信息
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1a, 0x1a, 0x2e, 0xff})

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	if s.loadErr != nil {
		ebitenutil.DebugPrintAt(screen, "failed to load project:", 8, h/2-16)
		ebitenutil.DebugPrintAt(screen, s.loadErr.Error(), 8, h/2)
		return
	}

	ebitenutil.DebugPrintAt(screen, "loading "+s.projectPath, 8, h/2-24)

	// 不确定进度：一段往返滑动的指示条
	barW := float64(w) * 0.4
	barX := (float64(w) - barW) / 2
	barY := float64(h) / 2
	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barW), 4,
		color.RGBA{0x3a, 0x3a, 0x55, 0xff}, false)

	sliderW := barW * 0.25
	t := (math.Sin(s.elapsedTime*3) + 1) / 2
	sliderX := barX + (barW-sliderW)*t
	vector.DrawFilledRect(screen, float32(sliderX), float32(barY), float32(sliderW), 4,
		color.RGBA{0xda, 0xa5, 0x20, 0xff}, false)
}

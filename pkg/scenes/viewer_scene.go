package scenes

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/gonewx/cardscroller/internal/source"
	"github.com/gonewx/cardscroller/internal/system"
	"github.com/gonewx/cardscroller/pkg/components"
	"github.com/gonewx/cardscroller/pkg/config"
	"github.com/gonewx/cardscroller/pkg/game"
	"github.com/gonewx/cardscroller/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 用户提示在画面上停留的时长
const noticeLifetime = 4 * time.Second

// 方向键一次拖动的距离占原图宽度的比例
const seekStepRatio = 0.05

// notice 一条限时显示的用户提示
type notice struct {
	text  string
	until time.Time
}

// ViewerScene 查看器场景：一张长图的完整播放界面
//
// 键位：
//
//	Space      播放 / 暂停
//	P          预演入场动画（不进入滚动）
//	S          停止（保持当前位置）
//	R          复位到起始边缘
//	← / →      拖动播放位置
//	Home / End 跳到两端
//	L          切换循环开关
type ViewerScene struct {
	cfg      *config.ProjectConfig
	state    *game.StateManager
	events   *game.EventBus
	settings *game.SettingsManager

	render      *systems.ViewportRenderSystem
	coordinator *systems.PlaybackCoordinator

	clock      systems.Clock
	background color.RGBA

	// HUD 数据，来自事件订阅
	lastProgress  game.ScrollProgressEvent
	lastCountdown game.IntervalCountdownEvent
	inCountdown   bool

	notices     []notice
	unsubscribe []func()
}

// NewViewerScene 创建查看器场景
//
// 源图已由加载场景解码完成，这里只构建 GPU 侧资源和播放系统。
func NewViewerScene(cfg *config.ProjectConfig, img *source.LongImage, state *game.StateManager, events *game.EventBus, settings *game.SettingsManager, caps system.Capabilities, clock systems.Clock) *ViewerScene {
	s := &ViewerScene{
		cfg:      cfg,
		state:    state,
		events:   events,
		settings: settings,
		clock:    clock,
	}

	// 项目配置先落入状态树，再让用户上次保存的偏好覆盖
	s.seedState()
	if settings != nil {
		settings.ApplyToState(state)
	}

	s.background = parseHexColor(state.GetString(game.StateCanvasBackground, cfg.Background))
	s.render = systems.NewViewportRenderSystem(img, caps)
	s.coordinator = systems.NewPlaybackCoordinator(clock, events, state, s.render, &cfg.Entry, &cfg.Scroll, s)

	s.unsubscribe = append(s.unsubscribe,
		events.Subscribe(game.EventScrollProgress, func(payload interface{}) {
			if ev, ok := payload.(game.ScrollProgressEvent); ok {
				s.lastProgress = ev
				s.inCountdown = false
			}
		}),
		events.Subscribe(game.EventScrollIntervalCountdown, func(payload interface{}) {
			if ev, ok := payload.(game.IntervalCountdownEvent); ok {
				s.lastCountdown = ev
				s.inCountdown = true
			}
		}),
		events.Subscribe(game.EventScrollCompleted, func(payload interface{}) {
			s.inCountdown = false
			s.Info("playback complete")
		}),
		events.Subscribe(game.EventScrollStopped, func(payload interface{}) {
			s.inCountdown = false
		}),
	)

	log.Printf("[ViewerScene] Ready: %s (%dx%d px)", cfg.Image, img.Width, img.Height)
	return s
}

// seedState 把项目配置写入状态树
func (s *ViewerScene) seedState() {
	s.state.Batch(func() {
		s.state.Set(game.StateScrollPosition, s.cfg.Scroll.StartPosition)
		s.state.Set(game.StateScrollStartPosition, s.cfg.Scroll.StartPosition)
		s.state.Set(game.StateScrollEndPosition, s.cfg.Scroll.EndPosition)
		s.state.Set(game.StateScrollReverse, s.cfg.Scroll.Reverse)
		s.state.Set(game.StateScrollDuration, s.cfg.Scroll.Duration)
		s.state.Set(game.StateLoopEnabled, s.cfg.Scroll.Loop.Enabled)
		s.state.Set(game.StateLoopCount, s.cfg.Scroll.Loop.Count)
		s.state.Set(game.StateLoopIntervalTime, s.cfg.Scroll.Loop.IntervalTime)
		s.state.Set(game.StateLoopVariableEnabled, s.cfg.Scroll.Loop.VariableEnabled)
		s.state.Set(game.StateLoopDurations, s.cfg.Scroll.Loop.Durations)
		s.state.Set(game.StateCanvasBackground, s.cfg.Background)
		s.state.Set(game.StateEntryEnabled, s.cfg.Entry.Enabled)
	})
}

// Update 处理输入并推进播放
func (s *ViewerScene) Update(deltaTime float64) {
	s.handleInput()
	s.coordinator.Update()
	s.expireNotices()
}

func (s *ViewerScene) handleInput() {
	session := s.coordinator.Session()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if session.Phase == components.PhaseIdle || session.Paused {
			s.coordinator.Play()
		} else {
			s.coordinator.Pause()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.coordinator.PlayPreview()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.coordinator.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.coordinator.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		enabled := !s.state.GetBool(game.StateLoopEnabled, s.cfg.Scroll.Loop.Enabled)
		s.state.Set(game.StateLoopEnabled, enabled)
		if enabled {
			s.Info("loop: on")
		} else {
			s.Info("loop: off")
		}
	}

	step := s.render.ImageWidth() * seekStepRatio
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		s.coordinator.SeekTo(s.coordinator.Position() - step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.coordinator.SeekTo(s.coordinator.Position() + step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.coordinator.SeekTo(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		s.coordinator.SeekTo(s.render.ImageWidth())
	}
}

// Draw 渲染画面与 HUD
func (s *ViewerScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.coordinator.Draw(screen)
	s.drawHUD(screen)
}

func (s *ViewerScene) drawHUD(screen *ebiten.Image) {
	session := s.coordinator.Session()

	status := fmt.Sprintf("phase: %s", session.Phase)
	if session.Paused {
		status += " (paused)"
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)

	position := fmt.Sprintf("position: %.0f / %.0f px", s.coordinator.Position(), s.render.ImageWidth())
	ebitenutil.DebugPrintAt(screen, position, 8, 24)

	if progress := s.coordinator.GlobalProgress(); progress > 0 {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("progress: %.1f%% (%.1fs / %.1fs)",
				progress*100, s.lastProgress.Elapsed, s.lastProgress.TotalDuration),
			8, 40)
	} else if session.Phase != components.PhaseIdle {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("loop: %d", session.CurrentLoopIndex+1), 8, 40)
	}

	if s.inCountdown {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("next loop in %.1fs", s.lastCountdown.Remaining), 8, 56)
	}

	y := screen.Bounds().Dy() - 16*len(s.notices) - 8
	for _, n := range s.notices {
		ebitenutil.DebugPrintAt(screen, n.text, 8, y)
		y += 16
	}
}

// expireNotices 丢弃超时的用户提示
func (s *ViewerScene) expireNotices() {
	now := s.clock()
	kept := s.notices[:0]
	for _, n := range s.notices {
		if now.Before(n.until) {
			kept = append(kept, n)
		}
	}
	s.notices = kept
}

// Info 实现 systems.Notifier
func (s *ViewerScene) Info(message string) {
	log.Printf("[ViewerScene] %s", message)
	s.notices = append(s.notices, notice{text: message, until: s.clock().Add(noticeLifetime)})
}

// Warn 实现 systems.Notifier
func (s *ViewerScene) Warn(message string) {
	log.Printf("[ViewerScene] 警告: %s", message)
	s.notices = append(s.notices, notice{text: "! " + message, until: s.clock().Add(noticeLifetime)})
}

// SaveOnExit 退出时把当前状态写回持久化存储，实现 game.Saveable
func (s *ViewerScene) SaveOnExit() bool {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	if s.settings == nil {
		return true
	}
	s.settings.CaptureFromState(s.state)
	if err := s.settings.Save(); err != nil {
		log.Printf("[ViewerScene] 保存设置失败: %v", err)
		return false
	}
	return true
}

// parseHexColor 解析 "#rrggbb" 形式的颜色，非法输入退回深蓝灰
func parseHexColor(s string) color.RGBA {
	fallback := color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{r, g, b, 0xff}
}

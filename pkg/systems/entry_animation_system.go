package systems

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gonewx/cardscroller/pkg/components"
	"github.com/gonewx/cardscroller/pkg/config"
	"github.com/gonewx/cardscroller/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// EntryAnimationSystem 入场动画引擎
//
// 一次 StartAnimation 的准备工作只做一遍：
//  1. 整张源图按 canvasHeight/sourceHeight 的比例缩放进一张离屏画布
//     （这是单次运行中唯一的整图缩放操作）
//  2. 每张卡片从预缩放画布裁出自己的专属位图
//     （这是单次运行中唯一的逐卡片裁剪操作）
//
// 之后的每帧只做"查策略 → 变换绘制缓存位图"，
// 多百万像素源图的缩放/裁剪成本不会出现在帧循环里。
type EntryAnimationSystem struct {
	clock  Clock
	events *game.EventBus

	active    bool
	paused    bool
	isPreview bool

	startTime      time.Time
	pendingElapsed time.Duration
	totalDuration  float64 // 秒

	cards      []*components.Card
	strategies []CardTransformStrategy
	prescaled  *ebiten.Image
	canvasW    int
	canvasH    int
	onComplete func()

	// 每帧在 Update 里计算、在 Draw 里消费
	frameStates []cardFrameState
}

// cardFrameState 单帧内一张卡片的绘制状态（栈上值，不做对象池复用）
type cardFrameState struct {
	visible   bool
	transform components.CardTransform
}

// NewEntryAnimationSystem 创建入场动画引擎
func NewEntryAnimationSystem(clock Clock, events *game.EventBus) *EntryAnimationSystem {
	return &EntryAnimationSystem{
		clock:  clock,
		events: events,
	}
}

// TotalEntryDuration 计算 n 张卡片的入场序列总时长（秒）
//
// totalDuration = (n−1) × (duration + staggerDelay) + duration
func TotalEntryDuration(cardCount int, duration, staggerDelay float64) float64 {
	if cardCount < 1 {
		return 0
	}
	return float64(cardCount-1)*(duration+staggerDelay) + duration
}

// entryWindow 计算第 index 张卡片的动画时间窗（秒）
//
// 反向滚动时错峰顺序取反：最右的卡片（序号最大）最先入场。
func entryWindow(index, cardCount int, duration, stagger float64, reverse bool) (start, end float64) {
	timeIndex := index
	if reverse {
		timeIndex = cardCount - 1 - index
	}
	start = float64(timeIndex) * (duration + stagger)
	return start, start + duration
}

// StartAnimation 启动入场动画
//
// 参数：
//   - cfg: 入场配置（卡片边界为 sourceImage 内的相对坐标）
//   - reverseScroll: 反向滚动时错峰顺序取反（最右的卡片最先入场）
//   - onComplete: 完成回调（恰好调用一次）
//   - canvas: 目标画布（用于确定逻辑尺寸，预览和全幅调用传入不同画布）
//   - sourceImage: 已裁剪到视口的源图切片
//   - isPreview: 是否预览模式（只影响日志与事件标记）
//
// 配置非法或源图未就绪时同步返回错误，不会调度任何帧。
func (s *EntryAnimationSystem) StartAnimation(cfg *config.EntryAnimationConfig, reverseScroll bool, onComplete func(), canvas, sourceImage *ebiten.Image, isPreview bool) error {
	if s.active {
		return fmt.Errorf("entry animation already running")
	}
	if canvas == nil || sourceImage == nil {
		return fmt.Errorf("entry animation requires a ready canvas and source image")
	}
	if result := config.ValidateEntryAnimationConfig(cfg); !result.IsValid {
		return fmt.Errorf("invalid entry animation config: %v", result.Errors)
	}

	cardCount := cfg.CardCount()
	if cardCount == 0 {
		return fmt.Errorf("entry animation config defines no cards")
	}

	// 策略ID必须全部已注册，未知ID直接拒绝启动
	strategies := make([]CardTransformStrategy, cardCount)
	for i := 0; i < cardCount; i++ {
		id := cfg.StrategyFor(i)
		strategy, ok := NewCardTransformStrategy(id)
		if !ok {
			return fmt.Errorf("unknown card transform strategy %q (known: %v)", id, KnownStrategyIDs())
		}
		strategies[i] = strategy
	}

	s.canvasW = canvas.Bounds().Dx()
	s.canvasH = canvas.Bounds().Dy()

	srcW := sourceImage.Bounds().Dx()
	srcH := sourceImage.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return fmt.Errorf("source image has zero size")
	}

	// 缩放比必须取自实际传入的画布/源图对：
	// 预览调用和全幅调用传入的裁剪不同，这里不读取任何共享状态
	scalingRatio := float64(s.canvasH) / float64(srcH)

	// 唯一一次整图缩放
	prescaledW := int(math.Ceil(float64(srcW) * scalingRatio))
	s.prescaled = ebiten.NewImage(prescaledW, s.canvasH)
	prescaleOpts := &ebiten.DrawImageOptions{}
	prescaleOpts.GeoM.Scale(scalingRatio, scalingRatio)
	prescaleOpts.Filter = ebiten.FilterLinear
	s.prescaled.DrawImage(sourceImage, prescaleOpts)

	// 唯一一次逐卡片裁剪 + 错峰时间窗计算
	duration := cfg.Duration
	stagger := cfg.StaggerDelay
	s.cards = make([]*components.Card, 0, cardCount)
	for i := 0; i < cardCount; i++ {
		left := cfg.CardBoundaries[2*i]
		right := cfg.CardBoundaries[2*i+1]

		scaledLeft := left * scalingRatio
		scaledWidth := int(math.Ceil((right - left) * scalingRatio))
		if scaledWidth < 1 {
			scaledWidth = 1
		}

		bitmap := ebiten.NewImage(scaledWidth, s.canvasH)
		cropOpts := &ebiten.DrawImageOptions{}
		cropOpts.GeoM.Translate(-scaledLeft, 0)
		bitmap.DrawImage(s.prescaled, cropOpts)

		startTime, endTime := entryWindow(i, cardCount, duration, stagger, reverseScroll)

		s.cards = append(s.cards, &components.Card{
			Index:         i,
			LeftBoundary:  left,
			RightBoundary: right,
			StrategyID:    cfg.StrategyFor(i),
			StartTime:     startTime,
			EndTime:       endTime,
			CachedBitmap:  bitmap,
			ScaledLeft:    scaledLeft,
			ScaledWidth:   scaledWidth,
		})
	}

	s.strategies = strategies
	s.totalDuration = TotalEntryDuration(cardCount, duration, stagger)
	s.frameStates = make([]cardFrameState, cardCount)
	s.onComplete = onComplete
	s.isPreview = isPreview
	s.startTime = s.clock()
	s.pendingElapsed = 0
	s.active = true
	s.paused = false

	log.Printf("[EntryAnimationSystem] Started: %d cards, total %.2fs (preview=%v)", cardCount, s.totalDuration, isPreview)
	s.events.Publish(game.EventEntryAnimationStarted, game.EntryProgressEvent{
		Progress:      0,
		Elapsed:       0,
		TotalDuration: s.totalDuration,
		Preview:       s.isPreview,
	})
	return nil
}

// Update 推进动画，由协调器在入场阶段每帧调用
func (s *EntryAnimationSystem) Update() {
	if !s.active || s.paused {
		return
	}

	elapsed := s.clock().Sub(s.startTime).Seconds()
	s.computeFrame(elapsed)
	s.publishProgress(elapsed)

	if elapsed >= s.totalDuration {
		finish := s.onComplete
		s.release()
		log.Printf("[EntryAnimationSystem] Completed")
		if finish != nil {
			finish()
		}
	}
}

// computeFrame 计算当前时刻所有已开窗卡片的变换
func (s *EntryAnimationSystem) computeFrame(elapsed float64) {
	for i, card := range s.cards {
		if elapsed < card.StartTime {
			s.frameStates[i] = cardFrameState{}
			continue
		}

		window := card.EndTime - card.StartTime
		progress := 1.0
		if window > 0 {
			progress = clampProgress((elapsed - card.StartTime) / window)
		}

		geom := CardGeometry{
			CardWidth:    float64(card.ScaledWidth),
			CardHeight:   float64(s.canvasH),
			CanvasWidth:  float64(s.canvasW),
			CanvasHeight: float64(s.canvasH),
		}
		s.frameStates[i] = cardFrameState{
			visible:   true,
			transform: s.strategies[i].Transform(progress, geom),
		}
	}
}

func (s *EntryAnimationSystem) publishProgress(elapsed float64) {
	progress := 1.0
	if s.totalDuration > 0 {
		progress = clampProgress(elapsed / s.totalDuration)
	}
	s.events.Publish(game.EventEntryAnimationProgress, game.EntryProgressEvent{
		Progress:      progress,
		Elapsed:       elapsed,
		TotalDuration: s.totalDuration,
		Preview:       s.isPreview,
	})
}

// Draw 合成当前帧：按序号绘制所有已开窗卡片的缓存位图
//
// 这里只发生"带变换的位图拷贝"，没有任何裁剪/缩放计算。
func (s *EntryAnimationSystem) Draw(target *ebiten.Image) {
	if !s.active {
		return
	}

	for i, card := range s.cards {
		state := s.frameStates[i]
		if !state.visible || card.CachedBitmap == nil {
			continue
		}
		s.drawCard(target, card, state.transform)
	}
}

// drawCard 按变换绘制单张卡片
//
// 模糊用多次小偏移叠绘近似（GPU 管线里没有现成的模糊滤镜）。
func (s *EntryAnimationSystem) drawCard(target *ebiten.Image, card *components.Card, tr components.CardTransform) {
	if tr.Opacity <= 0 {
		return
	}

	w := float64(card.ScaledWidth)
	h := float64(s.canvasH)
	centerX := card.ScaledLeft + w/2
	centerY := h / 2

	taps := [][2]float64{{0, 0}}
	alpha := tr.Opacity
	if tr.Blur > 0 {
		radius := tr.Blur * 6.0
		taps = [][2]float64{
			{0, 0},
			{radius, 0}, {-radius, 0},
			{0, radius}, {0, -radius},
		}
		alpha = tr.Opacity / float64(len(taps))
	}

	for _, tap := range taps {
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(-w/2, -h/2)
		if tr.Scale != 1 {
			opts.GeoM.Scale(tr.Scale, tr.Scale)
		}
		if tr.Rotation != 0 {
			opts.GeoM.Rotate(tr.Rotation)
		}
		opts.GeoM.Translate(centerX+tr.OffsetX+tap[0], centerY+tr.OffsetY+tap[1])
		opts.ColorScale.ScaleAlpha(float32(alpha))
		opts.Filter = ebiten.FilterLinear
		target.DrawImage(card.CachedBitmap, opts)
	}
}

// PauseAnimation 暂停动画，返回是否确实暂停了
//
// 没有可暂停的动画（未启动或已暂停）时返回 false。
// 只冻结墙钟记账，不丢弃任何渲染状态或缓存位图。
func (s *EntryAnimationSystem) PauseAnimation() bool {
	if !s.active || s.paused {
		return false
	}
	s.pendingElapsed = s.clock().Sub(s.startTime)
	s.paused = true
	log.Printf("[EntryAnimationSystem] Paused at %.2fs / %.2fs", s.pendingElapsed.Seconds(), s.totalDuration)
	return true
}

// ResumeAnimation 从暂停点恢复动画
//
// 立即补发一次精确的进度事件，UI 不会停留在暂停前的旧值。
// 没有挂起状态时恢复是编程错误，返回 error。
func (s *EntryAnimationSystem) ResumeAnimation() error {
	if !s.active || !s.paused {
		return fmt.Errorf("no suspended entry animation to resume")
	}
	s.startTime = s.clock().Add(-s.pendingElapsed)
	s.paused = false

	elapsed := s.pendingElapsed.Seconds()
	s.computeFrame(elapsed)
	s.publishProgress(elapsed)
	return nil
}

// StopAnimation 停止动画并释放全部缓存位图（幂等）
func (s *EntryAnimationSystem) StopAnimation() {
	if !s.active {
		return
	}
	s.release()
	log.Printf("[EntryAnimationSystem] Stopped")
}

// Elapsed 返回已用时间（秒，暂停中返回冻结值）
func (s *EntryAnimationSystem) Elapsed() float64 {
	if !s.active {
		return 0
	}
	if s.paused {
		return s.pendingElapsed.Seconds()
	}
	elapsed := s.clock().Sub(s.startTime).Seconds()
	if elapsed > s.totalDuration {
		return s.totalDuration
	}
	return elapsed
}

// TotalDuration 返回本次入场序列的总时长（秒）
func (s *EntryAnimationSystem) TotalDuration() float64 {
	return s.totalDuration
}

// IsActive 返回动画是否处于活动状态（含暂停）
func (s *EntryAnimationSystem) IsActive() bool {
	return s.active
}

// IsPaused 返回动画是否处于暂停状态
func (s *EntryAnimationSystem) IsPaused() bool {
	return s.active && s.paused
}

// release 释放缓存位图并清空运行状态
func (s *EntryAnimationSystem) release() {
	for _, card := range s.cards {
		if card.CachedBitmap != nil {
			card.CachedBitmap.Deallocate()
			card.CachedBitmap = nil
		}
	}
	if s.prescaled != nil {
		s.prescaled.Deallocate()
		s.prescaled = nil
	}
	s.cards = nil
	s.strategies = nil
	s.frameStates = nil
	s.onComplete = nil
	s.active = false
	s.paused = false
	s.isPreview = false
	s.pendingElapsed = 0
}

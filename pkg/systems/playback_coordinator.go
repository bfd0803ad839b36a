package systems

import (
	"log"
	"math"
	"time"

	"github.com/gonewx/cardscroller/pkg/components"
	"github.com/gonewx/cardscroller/pkg/config"
	"github.com/gonewx/cardscroller/pkg/game"
	"github.com/gonewx/cardscroller/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// loopCountdownTick 循环间隔倒计时事件的发布周期
const loopCountdownTick = 100 * time.Millisecond

// Notifier 面向用户的非致命提示通道
//
// 播放核心遇到可降级的故障（如视口裁剪失败）时通过它提示用户，
// 而不是中断整个播放流程。
type Notifier interface {
	Info(message string)
	Warn(message string)
}

// PlaybackCoordinator 播放协调器
//
// 持有播放阶段状态机，负责把入场动画、滚动动画和两类定时间隔
// 串成一条完整的播放序列，并在循环模式下反复驱动这条序列。
//
// 阶段流转：
//
//	Idle → Entry → IntervalBeforeScroll → Scroll ─┬→ Idle（播完/停止）
//	         ↑                                    │
//	         └──────── LoopInterval ←─────────────┘（还有剩余循环）
//
// 所有方法都只能在游戏循环 goroutine 内调用。
// 异步视口裁剪是唯一的并发点，通过代数计数器 + 阶段复查双重守卫：
// 启动裁剪前先把阶段置为 Entry（先表意图后异步），
// 结果送达时代数或阶段任一不匹配就丢弃。
type PlaybackCoordinator struct {
	clock    Clock
	events   *game.EventBus
	state    *game.StateManager
	notifier Notifier

	render    *ViewportRenderSystem
	entry     *EntryAnimationSystem
	scroll    *ScrollAnimationSystem
	sequencer *DurationSequencer

	preScrollWait *TimedSubPhase
	loopWait      *TimedSubPhase

	entryCfg  *config.EntryAnimationConfig
	scrollCfg *config.ScrollConfig

	session     *components.PlaybackSession
	cropResults <-chan CropResult

	// 预演模式：只跑入场阶段，结束后直接回到空闲
	previewing bool

	// 画布逻辑尺寸，由场景在每帧 Draw 时同步
	canvasW int
	canvasH int

	scrollPosition float64

	// 一次播放运行内的全局进度记账
	accumulatedLoopTime float64 // 已完成循环的时长之和（秒）
	completedIntervals  int     // 已完成的循环间隔数
	totalDuration       float64 // 全程总时长（秒，无限循环时为 0）
}

// NewPlaybackCoordinator 创建播放协调器
func NewPlaybackCoordinator(clock Clock, events *game.EventBus, state *game.StateManager, render *ViewportRenderSystem, entryCfg *config.EntryAnimationConfig, scrollCfg *config.ScrollConfig, notifier Notifier) *PlaybackCoordinator {
	return &PlaybackCoordinator{
		clock:         clock,
		events:        events,
		state:         state,
		notifier:      notifier,
		render:        render,
		entry:         NewEntryAnimationSystem(clock, events),
		scroll:        NewScrollAnimationSystem(clock),
		sequencer:     NewDurationSequencer(),
		preScrollWait: NewTimedSubPhase("intervalBeforeScroll", clock),
		loopWait:      NewTimedSubPhase("loopInterval", clock),
		entryCfg:      entryCfg,
		scrollCfg:     scrollCfg,
		session:       components.NewPlaybackSession(),
	}
}

// SetCanvasSize 同步画布逻辑尺寸（场景在尺寸变化时调用）
func (c *PlaybackCoordinator) SetCanvasSize(w, h int) {
	c.canvasW = w
	c.canvasH = h
}

// Session 返回当前播放会话（渲染层只读访问）
func (c *PlaybackCoordinator) Session() *components.PlaybackSession {
	return c.session
}

// Position 返回当前滚动位置（原图像素）
func (c *PlaybackCoordinator) Position() float64 {
	return c.scrollPosition
}

// Play 开始播放；暂停中调用等价于恢复，播放中调用是无操作
func (c *PlaybackCoordinator) Play() {
	if c.session.Phase != components.PhaseIdle {
		if c.session.Paused {
			c.resume()
		}
		return
	}

	base := c.state.GetFloat(game.StateScrollDuration, c.scrollCfg.Duration)
	loopEnabled := c.state.GetBool(game.StateLoopEnabled, c.scrollCfg.Loop.Enabled)
	loopCount := c.state.GetInt(game.StateLoopCount, c.scrollCfg.Loop.Count)
	interval := c.state.GetFloat(game.StateLoopIntervalTime, c.scrollCfg.Loop.IntervalTime)

	c.session.CurrentLoopIndex = 0
	c.session.Paused = false
	c.session.LoopDurationOverride = nil
	c.accumulatedLoopTime = 0
	c.completedIntervals = 0
	c.applyLoopDuration(1, base)
	c.totalDuration = c.computeTotalDuration(base, loopEnabled, loopCount, interval)
	c.scrollPosition = c.scrollOrigin()
	c.state.Set(game.StateScrollPosition, c.scrollPosition)

	log.Printf("[PlaybackCoordinator] Play: loop=%v count=%d interval=%.1fs total=%.1fs",
		loopEnabled, loopCount, interval, c.totalDuration)
	c.events.Publish(game.EventScrollPlayStarted, nil)
	c.beginEntryPhase()
}

// PlayPreview 预演当前视口的入场动画
//
// 只运行入场阶段，完成后直接回到空闲，不进入滚动序列。
// 预演期间发布的入场事件带 Preview 标记。播放进行中调用是无操作。
func (c *PlaybackCoordinator) PlayPreview() {
	if c.session.Phase != components.PhaseIdle {
		return
	}
	if !c.entryEnabled() {
		if c.notifier != nil {
			c.notifier.Info("entry animation is disabled")
		}
		return
	}

	c.session.Paused = false
	c.accumulatedLoopTime = 0
	c.completedIntervals = 0
	c.totalDuration = 0
	c.applyLoopDuration(1, c.state.GetFloat(game.StateScrollDuration, c.scrollCfg.Duration))
	c.previewing = true

	log.Printf("[PlaybackCoordinator] Preview entry animation")
	c.beginEntryPhase()
}

// Pause 暂停当前播放，返回是否确实暂停了
//
// 只冻结时间记账，阶段不变。裁剪仍在进行时暂停同样生效：
// 结果送达后入场动画会以暂停状态就位。
func (c *PlaybackCoordinator) Pause() bool {
	if c.session.Phase == components.PhaseIdle || c.session.Paused {
		return false
	}
	c.session.Paused = true
	c.pauseActivePhase()

	log.Printf("[PlaybackCoordinator] Paused in phase %s", c.session.Phase)
	c.events.Publish(game.EventScrollPaused, nil)
	return true
}

// pauseActivePhase 冻结当前阶段对应引擎的时间记账
func (c *PlaybackCoordinator) pauseActivePhase() {
	switch c.session.Phase {
	case components.PhaseEntry:
		c.entry.PauseAnimation()
	case components.PhaseIntervalBeforeScroll:
		c.preScrollWait.Pause()
	case components.PhaseScroll:
		c.scroll.Pause()
	case components.PhaseLoopInterval:
		c.loopWait.Pause()
	}
}

// resume 从暂停点恢复当前阶段
func (c *PlaybackCoordinator) resume() {
	c.session.Paused = false

	switch c.session.Phase {
	case components.PhaseEntry:
		if c.entry.IsPaused() {
			if err := c.entry.ResumeAnimation(); err != nil {
				log.Printf("[PlaybackCoordinator] %v", err)
			}
		}
	case components.PhaseIntervalBeforeScroll:
		c.preScrollWait.Resume()
	case components.PhaseScroll:
		if err := c.scroll.Resume(); err != nil {
			log.Printf("[PlaybackCoordinator] %v", err)
		}
	case components.PhaseLoopInterval:
		c.loopWait.Resume()
	}

	log.Printf("[PlaybackCoordinator] Resumed in phase %s", c.session.Phase)
	c.events.Publish(game.EventScrollPlayStarted, nil)
}

// Stop 停止播放并保持当前位置
func (c *PlaybackCoordinator) Stop() {
	if c.session.Phase == components.PhaseIdle {
		return
	}
	c.haltEngines()
	c.session.Reset()
	log.Printf("[PlaybackCoordinator] Stopped at position %.0f", c.scrollPosition)
	c.events.Publish(game.EventScrollStopped, game.PlaybackStoppedEvent{Completed: false})
}

// Reset 停止播放并把位置复位到方向对应的起始边缘
func (c *PlaybackCoordinator) Reset() {
	if c.session.Phase != components.PhaseIdle {
		c.haltEngines()
		c.session.Reset()
	}
	c.scrollPosition = c.scrollOrigin()
	c.state.Set(game.StateScrollPosition, c.scrollPosition)
	log.Printf("[PlaybackCoordinator] Reset to position %.0f", c.scrollPosition)
	c.events.Publish(game.EventScrollReset, nil)
}

// SeekTo 把播放位置拖动到指定处（原图像素）
//
// 空闲时只移动视口；滚动阶段中按剩余距离重排当前滚动，速度保持不变。
// 暂停中的滚动同样重排，重排后保持暂停，恢复时从拖动点继续。
// 入场/间隔阶段中只更新位置，不打断当前阶段。
func (c *PlaybackCoordinator) SeekTo(position float64) {
	position = utils.Clamp(position, 0, c.maxScrollPosition())
	c.scrollPosition = position
	c.state.Set(game.StateScrollPosition, position)

	if c.session.Phase != components.PhaseScroll {
		return
	}

	paused := c.session.Paused
	speed := c.scroll.Speed()
	target := c.scrollTarget()
	c.scroll.Stop()
	remaining := math.Abs(target-position) / math.Max(speed, 1e-9)
	if remaining <= 0 {
		c.onScrollComplete()
		if paused {
			c.pauseActivePhase()
		}
		return
	}
	if err := c.scroll.StartScroll(position, target, remaining, c.onScrollProgress, c.onScrollComplete); err != nil {
		log.Printf("[PlaybackCoordinator] Seek restart failed: %v", err)
		return
	}
	if paused {
		c.scroll.Pause()
	}
}

// Update 每帧推进当前阶段，并投递已完成的异步裁剪结果
func (c *PlaybackCoordinator) Update() {
	if c.cropResults != nil {
		select {
		case result := <-c.cropResults:
			c.cropResults = nil
			c.handleCropResult(result)
		default:
		}
	}

	if c.session.Paused {
		return
	}

	switch c.session.Phase {
	case components.PhaseEntry:
		c.entry.Update()
	case components.PhaseIntervalBeforeScroll:
		c.preScrollWait.Update()
	case components.PhaseScroll:
		c.scroll.Update()
	case components.PhaseLoopInterval:
		c.loopWait.Update()
	}
}

// Draw 按当前阶段合成画面
func (c *PlaybackCoordinator) Draw(target *ebiten.Image) {
	c.canvasW = target.Bounds().Dx()
	c.canvasH = target.Bounds().Dy()

	if c.session.Phase == components.PhaseEntry {
		// 裁剪尚未就绪时画布留给背景色
		c.entry.Draw(target)
		return
	}
	c.render.RenderViewport(target, c.scrollPosition)
}

// GlobalProgress 返回全程播放进度 [0, 1]；无限循环时恒为 0
func (c *PlaybackCoordinator) GlobalProgress() float64 {
	if c.totalDuration <= 0 {
		return 0
	}
	return clampProgress(c.globalElapsed() / c.totalDuration)
}

// globalElapsed 全局已用时间 = 已完成循环时长 + 已完成间隔时长 + 当前子阶段进度
func (c *PlaybackCoordinator) globalElapsed() float64 {
	interval := c.state.GetFloat(game.StateLoopIntervalTime, c.scrollCfg.Loop.IntervalTime)
	elapsed := c.accumulatedLoopTime + float64(c.completedIntervals)*interval

	switch c.session.Phase {
	case components.PhaseEntry:
		elapsed += c.entry.Elapsed()
	case components.PhaseIntervalBeforeScroll:
		elapsed += c.session.Durations.Entry + c.preScrollWait.Elapsed().Seconds()
	case components.PhaseScroll:
		elapsed += c.session.Durations.FixedOverhead + c.scroll.Elapsed()
	case components.PhaseLoopInterval:
		elapsed += c.loopWait.Elapsed().Seconds()
	}
	return elapsed
}

// --- 阶段流转 ---

// beginEntryPhase 进入入场阶段：先置阶段，再发起异步视口裁剪
func (c *PlaybackCoordinator) beginEntryPhase() {
	if !c.entryEnabled() {
		c.afterEntry()
		return
	}

	viewport := c.currentViewport()
	visible := FilterCardsForViewport(c.entryCfg.CardBoundaries, viewport.StartPosition, viewport.Width)
	if len(visible) == 0 {
		log.Printf("[PlaybackCoordinator] No cards in viewport, skipping entry animation")
		c.afterEntry()
		return
	}

	c.session.Phase = components.PhaseEntry
	c.session.CropGeneration++
	c.cropResults = c.render.CreateCroppedImageForViewport(
		viewport.StartPosition, viewport.Width, c.canvasHeight(), c.session.CropGeneration)
	log.Printf("[PlaybackCoordinator] Phase -> entry (crop generation %d, %d cards)",
		c.session.CropGeneration, len(visible))
}

// handleCropResult 投递异步裁剪结果
//
// 代数不匹配或阶段已离开 Entry 的迟到结果直接丢弃。
func (c *PlaybackCoordinator) handleCropResult(result CropResult) {
	if result.Generation != c.session.CropGeneration || c.session.Phase != components.PhaseEntry {
		log.Printf("[PlaybackCoordinator] Discarding stale crop result (generation %d, phase %s)",
			result.Generation, c.session.Phase)
		return
	}

	if result.Err != nil {
		log.Printf("[PlaybackCoordinator] Viewport crop failed: %v", result.Err)
		if c.notifier != nil {
			c.notifier.Warn("entry preparation failed")
		}
		c.afterEntry()
		return
	}

	sourceSlice := ebiten.NewImageFromImage(result.Pixels)
	canvas := ebiten.NewImage(c.canvasWidth(), c.canvasHeight())
	defer canvas.Deallocate()

	cfg := c.cropRelativeEntryConfig(result)
	err := c.entry.StartAnimation(cfg, c.reverseScroll(), c.onEntryComplete, canvas, sourceSlice, c.previewing)
	if err != nil {
		log.Printf("[PlaybackCoordinator] Entry animation start failed: %v", err)
		if c.notifier != nil {
			c.notifier.Warn("entry animation failed to start")
		}
		c.afterEntry()
		return
	}

	// 裁剪期间用户按了暂停：动画以暂停状态就位
	if c.session.Paused {
		c.entry.PauseAnimation()
	}
}

// cropRelativeEntryConfig 把卡片边界从原图坐标换算到裁剪切片坐标
//
// 裁剪切片已经缩放到画布高度，边界要按同一比例缩放后再减去视口起点。
func (c *PlaybackCoordinator) cropRelativeEntryConfig(result CropResult) *config.EntryAnimationConfig {
	viewport := c.currentViewport()
	ratio := 1.0
	if c.render.ImageHeight() > 0 {
		ratio = float64(c.canvasHeight()) / c.render.ImageHeight()
	}

	visible := FilterCardsForViewport(c.entryCfg.CardBoundaries, viewport.StartPosition, viewport.Width)
	boundaries := make([]float64, 0, len(visible)*2)
	strategies := make([]string, 0, len(visible))
	for _, card := range visible {
		boundaries = append(boundaries,
			(card.Left-viewport.StartPosition)*ratio,
			(card.Right-viewport.StartPosition)*ratio)
		strategies = append(strategies, c.entryCfg.StrategyFor(card.Index))
	}

	return &config.EntryAnimationConfig{
		Enabled:              true,
		CardBoundaries:       boundaries,
		CardAnimations:       strategies,
		Duration:             c.entryCfg.Duration,
		StaggerDelay:         c.entryCfg.StaggerDelay,
		IntervalBeforeScroll: c.entryCfg.IntervalBeforeScroll,
	}
}

func (c *PlaybackCoordinator) onEntryComplete() {
	c.afterEntry()
}

// afterEntry 入场阶段结束（或被跳过）后的去向：预演收尾，正常播放进入间隔
func (c *PlaybackCoordinator) afterEntry() {
	if c.previewing {
		c.finishPreview()
		return
	}
	c.beginIntervalBeforeScroll()
}

// finishPreview 预演收尾：回到空闲，位置保持不变
func (c *PlaybackCoordinator) finishPreview() {
	c.previewing = false
	c.session.Reset()
	log.Printf("[PlaybackCoordinator] Preview finished")
	c.events.Publish(game.EventScrollStopped, game.PlaybackStoppedEvent{Completed: false})
}

// beginIntervalBeforeScroll 进入入场后等待阶段；时长为零时立即进入滚动
func (c *PlaybackCoordinator) beginIntervalBeforeScroll() {
	c.session.Phase = components.PhaseIntervalBeforeScroll
	wait := time.Duration(c.session.Durations.IntervalBeforeScroll * float64(time.Second))
	log.Printf("[PlaybackCoordinator] Phase -> intervalBeforeScroll (%.1fs)", wait.Seconds())
	c.preScrollWait.Start(wait, c.beginScroll)
}

// beginScroll 进入滚动阶段
func (c *PlaybackCoordinator) beginScroll() {
	c.session.Phase = components.PhaseScroll
	from := c.scrollPosition
	to := c.scrollTarget()
	duration := c.session.Durations.Scroll

	log.Printf("[PlaybackCoordinator] Phase -> scroll (loop %d, %.1fs)",
		c.session.CurrentLoopIndex+1, duration)
	if err := c.scroll.StartScroll(from, to, duration, c.onScrollProgress, c.onScrollComplete); err != nil {
		log.Printf("[PlaybackCoordinator] Scroll start failed: %v", err)
		c.finishPlayback(false)
	}
}

func (c *PlaybackCoordinator) onScrollProgress(position, progress, elapsed float64) {
	c.scrollPosition = position
	c.state.Set(game.StateScrollPosition, position)

	c.events.Publish(game.EventScrollProgress, game.ScrollProgressEvent{
		Progress:      progress,
		Elapsed:       c.globalElapsed(),
		TotalDuration: c.totalDuration,
		Position:      position,
		Speed:         c.scroll.Speed(),
	})
}

// onScrollComplete 一次循环滚动结束：记账并决定继续循环还是收尾
func (c *PlaybackCoordinator) onScrollComplete() {
	c.session.CurrentLoopIndex++
	c.accumulatedLoopTime += c.session.Durations.SingleLoop

	loopEnabled := c.state.GetBool(game.StateLoopEnabled, c.scrollCfg.Loop.Enabled)
	loopCount := c.state.GetInt(game.StateLoopCount, c.scrollCfg.Loop.Count)
	if !loopEnabled || (loopCount > 0 && c.session.CurrentLoopIndex >= loopCount) {
		c.finishPlayback(true)
		return
	}
	c.beginLoopInterval()
}

// beginLoopInterval 进入循环间隔阶段，每 100ms 发布一次倒计时
func (c *PlaybackCoordinator) beginLoopInterval() {
	c.session.Phase = components.PhaseLoopInterval
	interval := time.Duration(c.state.GetFloat(game.StateLoopIntervalTime, c.scrollCfg.Loop.IntervalTime) * float64(time.Second))
	log.Printf("[PlaybackCoordinator] Phase -> loopInterval (%.1fs after loop %d)",
		interval.Seconds(), c.session.CurrentLoopIndex)

	c.loopWait.SetTick(loopCountdownTick, func(remaining, total time.Duration) {
		c.events.Publish(game.EventScrollIntervalCountdown, game.IntervalCountdownEvent{
			Remaining: remaining.Seconds(),
			Total:     total.Seconds(),
			LoopIndex: c.session.CurrentLoopIndex,
		})
	})
	c.loopWait.Start(interval, c.onLoopIntervalComplete)
}

// onLoopIntervalComplete 间隔结束：重排下一次循环并从起始边缘重新开始
func (c *PlaybackCoordinator) onLoopIntervalComplete() {
	c.completedIntervals++

	base := c.state.GetFloat(game.StateScrollDuration, c.scrollCfg.Duration)
	c.applyLoopDuration(c.session.CurrentLoopIndex+1, base)

	c.scrollPosition = c.scrollOrigin()
	c.state.Set(game.StateScrollPosition, c.scrollPosition)
	c.beginEntryPhase()
}

// finishPlayback 收尾：completed 区分自然播完与异常中止
func (c *PlaybackCoordinator) finishPlayback(completed bool) {
	c.haltEngines()
	c.session.Reset()
	if completed {
		log.Printf("[PlaybackCoordinator] Playback completed")
		c.events.Publish(game.EventScrollCompleted, game.PlaybackStoppedEvent{Completed: true})
	} else {
		c.events.Publish(game.EventScrollStopped, game.PlaybackStoppedEvent{Completed: false})
	}
}

// haltEngines 停掉所有引擎并作废在途的裁剪
func (c *PlaybackCoordinator) haltEngines() {
	c.entry.StopAnimation()
	c.scroll.Stop()
	c.preScrollWait.Cancel()
	c.loopWait.Cancel()
	c.session.CropGeneration++
	c.cropResults = nil
	c.previewing = false
}

// --- 时长与几何 ---

// applyLoopDuration 为第 loopNumber 次循环确定滚动时长并刷新时长快照
func (c *PlaybackCoordinator) applyLoopDuration(loopNumber int, baseDuration float64) {
	duration := baseDuration
	if c.state.GetBool(game.StateLoopVariableEnabled, c.scrollCfg.Loop.VariableEnabled) {
		overrides := c.state.GetFloatSlice(game.StateLoopDurations)
		duration = c.sequencer.NextDuration(loopNumber, baseDuration, overrides)
		if duration != baseDuration {
			c.session.LoopDurationOverride = &duration
		} else {
			c.session.LoopDurationOverride = nil
		}
	} else {
		c.session.LoopDurationOverride = nil
	}

	entryTotal := 0.0
	if c.entryEnabled() {
		entryTotal = TotalEntryDuration(c.entryCfg.CardCount(), c.entryCfg.Duration, c.entryCfg.StaggerDelay)
	}
	overhead := entryTotal + c.entryCfg.IntervalBeforeScroll
	c.session.Durations = components.SequenceDurations{
		Entry:                entryTotal,
		IntervalBeforeScroll: c.entryCfg.IntervalBeforeScroll,
		Scroll:               duration,
		FixedOverhead:        overhead,
		SingleLoop:           overhead + duration,
	}
}

// computeTotalDuration 预计算全程总时长；无限循环返回 0
func (c *PlaybackCoordinator) computeTotalDuration(base float64, loopEnabled bool, loopCount int, interval float64) float64 {
	if !loopEnabled {
		return c.session.Durations.SingleLoop
	}
	if loopCount <= 0 {
		return 0
	}

	overhead := c.session.Durations.FixedOverhead
	var overrides []float64
	variable := c.state.GetBool(game.StateLoopVariableEnabled, c.scrollCfg.Loop.VariableEnabled)
	if variable {
		overrides = c.state.GetFloatSlice(game.StateLoopDurations)
	}

	total := float64(loopCount-1) * interval
	for k := 1; k <= loopCount; k++ {
		scroll := base
		if variable {
			scroll = c.sequencer.NextDuration(k, base, overrides)
		}
		total += overhead + scroll
	}
	return total
}

func (c *PlaybackCoordinator) entryEnabled() bool {
	return c.entryCfg != nil && c.entryCfg.Enabled &&
		c.state.GetBool(game.StateEntryEnabled, true) && c.entryCfg.CardCount() > 0
}

func (c *PlaybackCoordinator) reverseScroll() bool {
	return c.state.GetBool(game.StateScrollReverse, c.scrollCfg.Reverse)
}

// scrollOrigin 方向对应的起始边缘位置
func (c *PlaybackCoordinator) scrollOrigin() float64 {
	if c.reverseScroll() {
		return c.configuredEndPosition()
	}
	return utils.Clamp(c.state.GetFloat(game.StateScrollStartPosition, c.scrollCfg.StartPosition), 0, c.maxScrollPosition())
}

// scrollTarget 方向对应的终点位置
func (c *PlaybackCoordinator) scrollTarget() float64 {
	if c.reverseScroll() {
		return utils.Clamp(c.state.GetFloat(game.StateScrollStartPosition, c.scrollCfg.StartPosition), 0, c.maxScrollPosition())
	}
	return c.configuredEndPosition()
}

// configuredEndPosition 终点位置；配置为 0 表示自动取最大可滚动位置
func (c *PlaybackCoordinator) configuredEndPosition() float64 {
	end := c.state.GetFloat(game.StateScrollEndPosition, c.scrollCfg.EndPosition)
	if end <= 0 {
		return c.maxScrollPosition()
	}
	return utils.Clamp(end, 0, c.maxScrollPosition())
}

// maxScrollPosition 最大可滚动位置 = 原图宽 − 窗口在原图坐标下的宽度
func (c *PlaybackCoordinator) maxScrollPosition() float64 {
	imageW := c.render.ImageWidth()
	imageH := c.render.ImageHeight()
	if imageH <= 0 || c.canvasHeight() <= 0 {
		return 0
	}
	scale := float64(c.canvasHeight()) / imageH
	visibleW := float64(c.canvasWidth()) / scale
	return math.Max(0, imageW-visibleW)
}

func (c *PlaybackCoordinator) currentViewport() components.Viewport {
	return c.render.ComputeViewport(c.scrollPosition, float64(c.canvasWidth()), float64(c.canvasHeight()))
}

func (c *PlaybackCoordinator) canvasWidth() int {
	if c.canvasW > 0 {
		return c.canvasW
	}
	return 1280
}

func (c *PlaybackCoordinator) canvasHeight() int {
	if c.canvasH > 0 {
		return c.canvasH
	}
	return 720
}

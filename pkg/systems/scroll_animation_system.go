package systems

import (
	"fmt"
	"log"
	"math"
	"time"
)

// ScrollAnimationSystem 滚动动画引擎
//
// 在给定时长内把视口起始位置从 startPosition 线性推进到 endPosition。
// 时间记账与入场引擎一致：基于墙钟，暂停冻结 pendingElapsed，
// 恢复时把 startTime 回拨使 elapsed 连续。
type ScrollAnimationSystem struct {
	clock Clock

	active bool
	paused bool

	startTime      time.Time
	pendingElapsed time.Duration

	startPosition float64
	endPosition   float64
	duration      float64 // 秒
	position      float64

	onProgress func(position, progress, elapsed float64)
	onComplete func()
}

// NewScrollAnimationSystem 创建滚动动画引擎
func NewScrollAnimationSystem(clock Clock) *ScrollAnimationSystem {
	return &ScrollAnimationSystem{clock: clock}
}

// StartScroll 启动一次滚动
//
// duration 非法（非正/NaN/Inf）时同步返回错误。
// startPosition == endPosition 是合法的：动画照常计时，位置保持不变。
// onProgress 每帧回调一次插值后的位置与归一化进度。
func (s *ScrollAnimationSystem) StartScroll(startPosition, endPosition, duration float64, onProgress func(position, progress, elapsed float64), onComplete func()) error {
	if s.active {
		return fmt.Errorf("scroll animation already running")
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("invalid scroll duration %v", duration)
	}

	s.startPosition = startPosition
	s.endPosition = endPosition
	s.duration = duration
	s.position = startPosition
	s.onProgress = onProgress
	s.onComplete = onComplete
	s.startTime = s.clock()
	s.pendingElapsed = 0
	s.active = true
	s.paused = false

	log.Printf("[ScrollAnimationSystem] Started: %.0f -> %.0f px over %.2fs (%.1f px/s)",
		startPosition, endPosition, duration, s.Speed())
	if onProgress != nil {
		onProgress(startPosition, 0, 0)
	}
	return nil
}

// Update 推进滚动，由协调器在滚动阶段每帧调用
func (s *ScrollAnimationSystem) Update() {
	if !s.active || s.paused {
		return
	}

	elapsed := s.clock().Sub(s.startTime).Seconds()
	progress := clampProgress(elapsed / s.duration)
	s.position = s.startPosition + (s.endPosition-s.startPosition)*progress

	if s.onProgress != nil {
		s.onProgress(s.position, progress, elapsed)
	}

	if progress >= 1 {
		finish := s.onComplete
		s.reset()
		log.Printf("[ScrollAnimationSystem] Completed at position %.0f", s.endPosition)
		if finish != nil {
			finish()
		}
	}
}

// Pause 暂停滚动，返回是否确实暂停了
func (s *ScrollAnimationSystem) Pause() bool {
	if !s.active || s.paused {
		return false
	}
	s.pendingElapsed = s.clock().Sub(s.startTime)
	s.paused = true
	log.Printf("[ScrollAnimationSystem] Paused at %.2fs / %.2fs", s.pendingElapsed.Seconds(), s.duration)
	return true
}

// Resume 从暂停点恢复滚动
//
// 立即补发一次进度回调。没有挂起状态时恢复是编程错误，返回 error。
func (s *ScrollAnimationSystem) Resume() error {
	if !s.active || !s.paused {
		return fmt.Errorf("no suspended scroll animation to resume")
	}
	s.startTime = s.clock().Add(-s.pendingElapsed)
	s.paused = false

	if s.onProgress != nil {
		elapsed := s.pendingElapsed.Seconds()
		s.onProgress(s.position, clampProgress(elapsed/s.duration), elapsed)
	}
	return nil
}

// Stop 停止滚动（幂等），不触发完成回调
func (s *ScrollAnimationSystem) Stop() {
	if !s.active {
		return
	}
	s.reset()
	log.Printf("[ScrollAnimationSystem] Stopped")
}

// Position 返回当前插值位置
func (s *ScrollAnimationSystem) Position() float64 {
	return s.position
}

// Elapsed 返回已用时间（秒，暂停中返回冻结值）
func (s *ScrollAnimationSystem) Elapsed() float64 {
	if !s.active {
		return 0
	}
	if s.paused {
		return s.pendingElapsed.Seconds()
	}
	elapsed := s.clock().Sub(s.startTime).Seconds()
	if elapsed > s.duration {
		return s.duration
	}
	return elapsed
}

// Duration 返回本次滚动的总时长（秒）
func (s *ScrollAnimationSystem) Duration() float64 {
	return s.duration
}

// Speed 返回滚动速度（px/s，绝对值）
func (s *ScrollAnimationSystem) Speed() float64 {
	if s.duration <= 0 {
		return 0
	}
	return math.Abs(s.endPosition-s.startPosition) / s.duration
}

// IsActive 返回滚动是否处于活动状态（含暂停）
func (s *ScrollAnimationSystem) IsActive() bool {
	return s.active
}

// IsPaused 返回滚动是否处于暂停状态
func (s *ScrollAnimationSystem) IsPaused() bool {
	return s.active && s.paused
}

func (s *ScrollAnimationSystem) reset() {
	s.active = false
	s.paused = false
	s.onProgress = nil
	s.onComplete = nil
	s.pendingElapsed = 0
}

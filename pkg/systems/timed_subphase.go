package systems

import (
	"log"
	"time"
)

// TimedSubPhase 可暂停的倒计时子阶段
//
// 播放流程中的两个定时等待（入场后的间隔、循环间隔）各持有一个实例。
// 暂停/恢复使用统一的墙钟记账方式：
//
//	启动:   startTimestamp = now, pendingElapsed = 0
//	暂停:   pendingElapsed = now − startTimestamp
//	恢复:   startTimestamp = now − pendingElapsed
//	完成:   elapsed >= totalDuration 时回调恰好触发一次
//
// 不变式：remaining = max(0, totalDuration − elapsed)，且暂停期间 elapsed 不前进。
// 每帧由所属协调器调用 Update() 驱动，回调全部在游戏循环 goroutine 内执行。
type TimedSubPhase struct {
	name  string
	clock Clock

	totalDuration  time.Duration
	startTimestamp time.Time
	pendingElapsed time.Duration

	running bool
	paused  bool

	onComplete func()

	// 可选的周期性通知（循环间隔的倒计时每 100ms 发布一次）
	tickInterval time.Duration
	onTick       func(remaining, total time.Duration)
	nextTickAt   time.Duration
}

// NewTimedSubPhase 创建命名的定时子阶段（名称仅用于日志）
func NewTimedSubPhase(name string, clock Clock) *TimedSubPhase {
	return &TimedSubPhase{
		name:  name,
		clock: clock,
	}
}

// SetTick 配置周期性通知；必须在 Start 之前调用
func (p *TimedSubPhase) SetTick(interval time.Duration, onTick func(remaining, total time.Duration)) {
	p.tickInterval = interval
	p.onTick = onTick
}

// Start 启动倒计时
//
// total <= 0 时立即触发完成回调（间隔为 0 表示跳过等待）。
func (p *TimedSubPhase) Start(total time.Duration, onComplete func()) {
	if total <= 0 {
		p.clear()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	p.totalDuration = total
	p.startTimestamp = p.clock()
	p.pendingElapsed = 0
	p.running = true
	p.paused = false
	p.onComplete = onComplete
	p.nextTickAt = p.tickInterval

	// 启动时先发一次完整的倒计时，UI 不必等第一个周期
	p.emitTick()
}

// Update 推进倒计时，由所属协调器每帧调用
//
// 到期时先清理自身状态再触发回调，允许回调中重新 Start。
func (p *TimedSubPhase) Update() {
	if !p.running || p.paused {
		return
	}

	elapsed := p.clock().Sub(p.startTimestamp)

	// 每个周期最多发一次通知；帧率低于周期时按当前值补发一次，不做追帧连发
	if p.onTick != nil && p.tickInterval > 0 && elapsed >= p.nextTickAt {
		p.emitTickAt(elapsed)
		p.nextTickAt = elapsed - elapsed%p.tickInterval + p.tickInterval
	}

	if elapsed >= p.totalDuration {
		cb := p.onComplete
		p.clear()
		if cb != nil {
			cb()
		}
	}
}

// Pause 冻结倒计时，返回是否确实暂停了（未运行或已暂停时返回 false）
//
// 只冻结墙钟记账，不丢弃任何配置。
func (p *TimedSubPhase) Pause() bool {
	if !p.running || p.paused {
		return false
	}
	p.pendingElapsed = p.clock().Sub(p.startTimestamp)
	p.paused = true
	log.Printf("[TimedSubPhase] %s paused at %.2fs / %.2fs",
		p.name, p.pendingElapsed.Seconds(), p.totalDuration.Seconds())
	return true
}

// Resume 从暂停点恢复倒计时
//
// 恢复后立即补发一次精确的倒计时通知，UI 不会停留在暂停前的旧值。
// 未处于暂停状态时恢复是编程错误，记录日志后不做任何事。
func (p *TimedSubPhase) Resume() {
	if !p.running || !p.paused {
		log.Printf("[TimedSubPhase] %s Resume called with no suspended state", p.name)
		return
	}
	p.startTimestamp = p.clock().Add(-p.pendingElapsed)
	p.paused = false
	if p.tickInterval > 0 {
		p.nextTickAt = p.pendingElapsed - p.pendingElapsed%p.tickInterval + p.tickInterval
	}
	p.emitTick()
}

// Cancel 取消倒计时（幂等：重复取消是 no-op）
func (p *TimedSubPhase) Cancel() {
	p.clear()
}

// Elapsed 返回已用时间（暂停中返回冻结值）
func (p *TimedSubPhase) Elapsed() time.Duration {
	if !p.running {
		return 0
	}
	if p.paused {
		return p.pendingElapsed
	}
	elapsed := p.clock().Sub(p.startTimestamp)
	if elapsed > p.totalDuration {
		return p.totalDuration
	}
	return elapsed
}

// Remaining 返回剩余时间 = max(0, total − elapsed)
func (p *TimedSubPhase) Remaining() time.Duration {
	if !p.running {
		return 0
	}
	remaining := p.totalDuration - p.Elapsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsRunning 返回是否处于活动状态（含暂停）
func (p *TimedSubPhase) IsRunning() bool {
	return p.running
}

// IsPaused 返回是否处于暂停状态
func (p *TimedSubPhase) IsPaused() bool {
	return p.running && p.paused
}

// TotalDuration 返回本次倒计时的总时长
func (p *TimedSubPhase) TotalDuration() time.Duration {
	return p.totalDuration
}

func (p *TimedSubPhase) clear() {
	p.running = false
	p.paused = false
	p.onComplete = nil
	p.pendingElapsed = 0
	p.nextTickAt = 0
}

func (p *TimedSubPhase) emitTick() {
	if p.onTick != nil {
		p.onTick(p.Remaining(), p.totalDuration)
	}
}

func (p *TimedSubPhase) emitTickAt(elapsed time.Duration) {
	remaining := p.totalDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	p.onTick(remaining, p.totalDuration)
}

package game

import "log"

// 播放核心对外发布的事件主题
//
// 事件是 fire-and-forget 的：发布方不关心是否有订阅者。
// 进度类事件的载荷是扁平的数值结构体，字段含义在一次播放运行内保持稳定，
// 便于 UI 侧做插值显示。
const (
	EventEntryAnimationStarted   = "entry-animation:started"
	EventEntryAnimationProgress  = "entry-animation:progress"
	EventScrollProgress          = "scroll:progress"
	EventScrollPlayStarted       = "scroll:play-started"
	EventScrollPaused            = "scroll:paused"
	EventScrollReset             = "scroll:reset"
	EventScrollStopped           = "scroll:stopped"
	EventScrollCompleted         = "scroll:completed"
	EventScrollIntervalCountdown = "scroll:interval-countdown"
)

// EntryProgressEvent 入场动画进度事件载荷
type EntryProgressEvent struct {
	Progress      float64 // 总体进度 [0, 1]
	Elapsed       float64 // 已用时间（秒）
	TotalDuration float64 // 入场动画总时长（秒）
	Preview       bool    // 是否来自预演运行
}

// ScrollProgressEvent 滚动进度事件载荷
type ScrollProgressEvent struct {
	Progress      float64 // 本次滚动进度 [0, 1]
	Elapsed       float64 // 全局已用时间（秒，含已完成的循环和间隔）
	TotalDuration float64 // 全局总时长（秒，无限循环时为 0）
	Position      float64 // 当前滚动位置（原图像素）
	Speed         float64 // 滚动速度（原图像素/秒）
}

// IntervalCountdownEvent 循环间隔倒计时事件载荷（每 100ms 发布一次）
type IntervalCountdownEvent struct {
	Remaining float64 // 剩余时间（秒）
	Total     float64 // 间隔总时长（秒）
	LoopIndex int     // 已完成的循环次数
}

// PlaybackStoppedEvent 播放停止/完成事件载荷
type PlaybackStoppedEvent struct {
	Completed bool // true 表示自然播完，false 表示被停止/重置
}

// EventHandler 事件处理函数
type EventHandler func(payload interface{})

// EventBus 类型化的同步发布订阅通道
//
// 核心组件通过构造函数注入本总线，只依赖 Publish/Subscribe 两个窄能力。
// 分发是同步的，所有回调在游戏循环 goroutine 内执行，不存在并发竞争。
type EventBus struct {
	handlers map[string][]EventHandler
	verbose  bool
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// SetVerbose 开启事件分发日志（调试用）
func (b *EventBus) SetVerbose(verbose bool) {
	b.verbose = verbose
}

// Subscribe 订阅指定主题，返回取消订阅函数
func (b *EventBus) Subscribe(topic string, handler EventHandler) func() {
	b.handlers[topic] = append(b.handlers[topic], handler)
	idx := len(b.handlers[topic]) - 1

	return func() {
		list := b.handlers[topic]
		if idx < len(list) && list[idx] != nil {
			// 置 nil 而不是收缩切片，保证其他取消函数持有的下标仍然有效
			list[idx] = nil
		}
	}
}

// Publish 同步发布事件到所有订阅者
func (b *EventBus) Publish(topic string, payload interface{}) {
	if b.verbose {
		log.Printf("[EventBus] Publish: %s", topic)
	}
	for _, h := range b.handlers[topic] {
		if h != nil {
			h(payload)
		}
	}
}

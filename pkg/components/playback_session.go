package components

// PlaybackPhase 播放阶段枚举
//
// 一次完整的播放流程按以下顺序经过各阶段：
// Idle → Entry → IntervalBeforeScroll → Scroll → [LoopInterval → Entry|Scroll ...] → Idle
//
// 任意时刻最多只有一个阶段处于活动状态，Idle 既是初始状态也是两次播放之间的终止状态。
type PlaybackPhase int

const (
	// PhaseIdle 空闲状态（未播放）
	PhaseIdle PlaybackPhase = iota

	// PhaseEntry 入场动画阶段（卡片逐个进入画面）
	PhaseEntry

	// PhaseIntervalBeforeScroll 入场动画与滚动之间的等待间隔
	PhaseIntervalBeforeScroll

	// PhaseScroll 连续滚动阶段
	PhaseScroll

	// PhaseLoopInterval 两次循环之间的等待间隔
	PhaseLoopInterval
)

// String 返回播放阶段的字符串表示（用于日志）
func (p PlaybackPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEntry:
		return "entry"
	case PhaseIntervalBeforeScroll:
		return "intervalBeforeScroll"
	case PhaseScroll:
		return "scroll"
	case PhaseLoopInterval:
		return "loopInterval"
	default:
		return "unknown"
	}
}

// SequenceDurations 单次循环内各阶段的时长分解（秒）
//
// 每次循环迭代开始时重新计算一次，本次迭代的进度计算全部基于这份快照，
// 避免可变时长模式下进度条在循环中途跳变。
type SequenceDurations struct {
	Entry                float64 // 入场动画总时长
	IntervalBeforeScroll float64 // 入场与滚动之间的间隔
	Scroll               float64 // 本次循环的滚动时长（可能被序列覆盖）
	SingleLoop           float64 // 单次循环总时长 = FixedOverhead + Scroll
	FixedOverhead        float64 // 固定开销 = Entry + IntervalBeforeScroll（每次循环恒定）
}

// PlaybackSession 一次播放运行的可变聚合状态
//
// 由 PlaybackCoordinator 独占写入，渲染系统只读。
// 在 Play() 时创建，贯穿整个播放过程（包括暂停/恢复），Reset() 时恢复默认值。
type PlaybackSession struct {
	// Phase 当前播放阶段
	Phase PlaybackPhase

	// Paused 是否处于暂停状态（不改变 Phase）
	Paused bool

	// CurrentLoopIndex 已完成的循环次数（从 0 开始）
	CurrentLoopIndex int

	// LoopDurationOverride 本次循环的滚动时长覆盖值（秒）
	// 可变时长模式下由 DurationSequencer 设置，nil 表示使用基础时长
	LoopDurationOverride *float64

	// Durations 本次循环迭代的时长分解快照
	Durations SequenceDurations

	// CropGeneration 异步裁剪的代数计数器
	// 每次启动新的入场准备时递增；迟到的裁剪结果如果代数不匹配则被丢弃
	CropGeneration uint64
}

// NewPlaybackSession 创建处于 Idle 状态的播放会话
func NewPlaybackSession() *PlaybackSession {
	return &PlaybackSession{
		Phase: PhaseIdle,
	}
}

// Reset 将会话恢复到默认值（保留代数计数器，使迟到的异步结果仍会被丢弃）
func (s *PlaybackSession) Reset() {
	s.Phase = PhaseIdle
	s.Paused = false
	s.CurrentLoopIndex = 0
	s.LoopDurationOverride = nil
	s.Durations = SequenceDurations{}
}

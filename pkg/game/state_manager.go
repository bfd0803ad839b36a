package game

import "log"

// 状态路径常量
//
// 路径采用 "分组.字段" 的点分形式，与配置文件结构保持一致。
const (
	StateScrollPosition      = "scroll.position"      // float64 当前滚动位置（原图像素）
	StateScrollStartPosition = "scroll.startPosition" // float64 滚动起点
	StateScrollEndPosition   = "scroll.endPosition"   // float64 滚动终点
	StateScrollReverse       = "scroll.reverse"       // bool 是否反向滚动
	StateScrollDuration      = "scroll.duration"      // float64 基础滚动时长（秒）
	StateLoopEnabled         = "loop.enabled"         // bool 是否循环播放
	StateLoopCount           = "loop.count"           // int 循环次数（0 表示无限）
	StateLoopIntervalTime    = "loop.intervalTime"    // float64 循环间隔（秒）
	StateLoopVariableEnabled = "loop.variableEnabled" // bool 是否启用可变时长序列
	StateLoopDurations       = "loop.durations"       // []float64 每次循环的时长覆盖序列
	StateCanvasBackground    = "canvas.background"    // string 画布背景色（如 "#1a1a2e"）
	StateEntryEnabled        = "entry.enabled"        // bool 是否启用入场动画
)

// StateSubscriber 状态变更订阅函数，参数为本次变更涉及的路径列表
type StateSubscriber func(changedPaths []string)

// StateManager 路径寻址的状态存储
//
// 对外只有 get/set-by-path 语义和"多次写入合并为一次通知"的 Batch 原语，
// 使用方不感知存储结构。
//
// 所有读写都发生在游戏循环 goroutine 内，无需加锁。
type StateManager struct {
	values      map[string]interface{}
	subscribers []StateSubscriber

	// Batch 进行中时累积变更路径，结束时一次性通知
	batching bool
	pending  []string
}

// NewStateManager 创建状态管理器
func NewStateManager() *StateManager {
	return &StateManager{
		values: make(map[string]interface{}),
	}
}

// Get 按路径读取状态值
func (sm *StateManager) Get(path string) (interface{}, bool) {
	v, ok := sm.values[path]
	return v, ok
}

// GetFloat 读取浮点状态值，不存在或类型不符时返回默认值
func (sm *StateManager) GetFloat(path string, def float64) float64 {
	if v, ok := sm.values[path]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// GetInt 读取整数状态值，不存在或类型不符时返回默认值
func (sm *StateManager) GetInt(path string, def int) int {
	if v, ok := sm.values[path]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return def
}

// GetBool 读取布尔状态值，不存在或类型不符时返回默认值
func (sm *StateManager) GetBool(path string, def bool) bool {
	if v, ok := sm.values[path].(bool); ok {
		return v
	}
	return def
}

// GetString 读取字符串状态值，不存在或类型不符时返回默认值
func (sm *StateManager) GetString(path string, def string) string {
	if v, ok := sm.values[path].(string); ok {
		return v
	}
	return def
}

// GetFloatSlice 读取浮点序列状态值（用于可变时长序列）
func (sm *StateManager) GetFloatSlice(path string) []float64 {
	if v, ok := sm.values[path].([]float64); ok {
		return v
	}
	return nil
}

// Set 按路径写入状态值并通知订阅者
//
// 值未发生变化时不通知，避免冗余的下游渲染。
func (sm *StateManager) Set(path string, value interface{}) {
	// 切片等不可比较类型不做短路（interface 相等比较会 panic）
	if _, isSlice := value.([]float64); !isSlice {
		if old, ok := sm.values[path]; ok && old == value {
			return
		}
	}
	sm.values[path] = value
	sm.markChanged(path)
}

// Batch 在一次批处理中执行多个写入，结束时只发出一次合并通知
//
// 用于协调器在一帧内更新多个关联字段（如重置位置 + 清除覆盖时长）。
func (sm *StateManager) Batch(fn func()) {
	if sm.batching {
		// 嵌套批处理直接并入外层
		fn()
		return
	}
	sm.batching = true
	fn()
	sm.batching = false

	if len(sm.pending) > 0 {
		changed := sm.pending
		sm.pending = nil
		sm.notify(changed)
	}
}

// Subscribe 订阅状态变更
func (sm *StateManager) Subscribe(fn StateSubscriber) {
	sm.subscribers = append(sm.subscribers, fn)
}

func (sm *StateManager) markChanged(path string) {
	if sm.batching {
		sm.pending = append(sm.pending, path)
		return
	}
	sm.notify([]string{path})
}

func (sm *StateManager) notify(paths []string) {
	for _, fn := range sm.subscribers {
		fn(paths)
	}
}

// DumpState 打印当前全部状态（调试用）
func (sm *StateManager) DumpState() {
	for k, v := range sm.values {
		log.Printf("[StateManager] %s = %v", k, v)
	}
}

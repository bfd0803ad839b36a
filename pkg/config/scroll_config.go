package config

// ScrollConfig 滚动播放配置
type ScrollConfig struct {
	Duration float64 `yaml:"duration"` // 基础滚动时长（秒），默认 10

	Reverse bool `yaml:"reverse"` // 反向滚动（从图像末端滚向起点），默认 false

	StartPosition float64 `yaml:"startPosition"` // 滚动起点（原图像素），默认 0
	EndPosition   float64 `yaml:"endPosition"`   // 滚动终点（原图像素），0 表示自动取最大可滚动位置

	Loop LoopConfig `yaml:"loop"` // 循环配置
}

// LoopConfig 循环播放配置
type LoopConfig struct {
	Enabled bool `yaml:"enabled"` // 是否循环播放，默认 false

	// Count 循环次数，0 表示无限循环
	Count int `yaml:"count"`

	// IntervalTime 两次循环之间的等待时间（秒），0 表示立即重新开始
	IntervalTime float64 `yaml:"intervalTime"`

	// VariableEnabled 启用可变时长模式：每次循环的滚动时长
	// 从 Durations 序列按迭代序号取值，取不到时回退到基础时长
	VariableEnabled bool `yaml:"variableEnabled"`

	// Durations 每次循环的滚动时长覆盖序列（秒）
	// 允许比循环次数短，也允许个别元素非法（逐元素回退到基础时长）
	Durations []float64 `yaml:"durations"`
}

// applyScrollDefaults 应用滚动配置默认值
func applyScrollDefaults(c *ScrollConfig) {
	if c.Duration == 0 {
		c.Duration = 10
	}
	if c.Loop.IntervalTime < 0 {
		c.Loop.IntervalTime = 0
	}
}

// ValidateScrollConfig 校验滚动配置
//
// 注意：可变时长序列中的单个非法元素不算配置错误，
// DurationSequencer 会逐元素回退到基础时长（序列长度不足同理）。
func ValidateScrollConfig(c *ScrollConfig) ValidationResult {
	result := validResult()

	if !isFinite(c.Duration) || c.Duration <= 0 {
		result.merge(invalidResult("scroll duration must be a positive finite number, got %v", c.Duration))
	}
	if !isFinite(c.StartPosition) || c.StartPosition < 0 {
		result.merge(invalidResult("startPosition must be a non-negative finite number, got %v", c.StartPosition))
	}
	if !isFinite(c.EndPosition) || c.EndPosition < 0 {
		result.merge(invalidResult("endPosition must be a non-negative finite number, got %v", c.EndPosition))
	}
	if c.EndPosition != 0 && c.EndPosition <= c.StartPosition {
		result.merge(invalidResult("endPosition %v must be greater than startPosition %v", c.EndPosition, c.StartPosition))
	}
	if c.Loop.Count < 0 {
		result.merge(invalidResult("loop count must be >= 0 (0 means infinite), got %d", c.Loop.Count))
	}
	if !isFinite(c.Loop.IntervalTime) || c.Loop.IntervalTime < 0 {
		result.merge(invalidResult("loop intervalTime must be a non-negative finite number, got %v", c.Loop.IntervalTime))
	}

	return result
}

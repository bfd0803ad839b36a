package config

import (
	"math"
)

// EntryAnimationConfig 入场动画配置
//
// 卡片边界用扁平数组表示：[x1,x2,x3,x4,...]，第 i 张卡片占用
// 下标 [2i, 2i+1] 的两个值，单位是原图像素。
type EntryAnimationConfig struct {
	Enabled bool `yaml:"enabled"` // 是否启用入场动画，默认 true

	CardBoundaries []float64 `yaml:"cardBoundaries"` // 扁平的卡片边界数组 [left1,right1,left2,right2,...]
	CardAnimations []string  `yaml:"cardAnimations"` // 每张卡片的效果策略ID，不足时用 "fade" 补齐

	Duration     float64 `yaml:"duration"`     // 单张卡片动画时长（秒），默认 0.5
	StaggerDelay float64 `yaml:"staggerDelay"` // 相邻卡片的错峰延迟（秒），默认 0.1

	IntervalBeforeScroll float64 `yaml:"intervalBeforeScroll"` // 入场结束到滚动开始的间隔（秒），默认 0
}

// DefaultStrategyID 卡片动画数组不足时的补齐策略
const DefaultStrategyID = "fade"

// CardCount 返回配置中定义的卡片数量
func (c *EntryAnimationConfig) CardCount() int {
	return len(c.CardBoundaries) / 2
}

// StrategyFor 返回第 i 张卡片的策略ID（数组不足时返回默认策略）
func (c *EntryAnimationConfig) StrategyFor(i int) string {
	if i < len(c.CardAnimations) && c.CardAnimations[i] != "" {
		return c.CardAnimations[i]
	}
	return DefaultStrategyID
}

// applyEntryDefaults 应用入场动画默认值
func applyEntryDefaults(c *EntryAnimationConfig) {
	if c.Duration == 0 {
		c.Duration = 0.5
	}
	if c.StaggerDelay == 0 {
		c.StaggerDelay = 0.1
	}
}

// ValidateEntryAnimationConfig 校验入场动画配置
//
// 检查项：
//   - 边界数组长度为偶数
//   - 每张卡片 left < right，数值有限
//   - 边界按升序排列（卡片不重叠、不乱序）
//   - 时长与错峰延迟为正的有限数
//
// 策略ID是否已注册由动画引擎在 StartAnimation 时检查（注册表在那一层）。
func ValidateEntryAnimationConfig(c *EntryAnimationConfig) ValidationResult {
	result := validResult()

	if len(c.CardBoundaries)%2 != 0 {
		result.merge(invalidResult("cardBoundaries length must be even, got %d", len(c.CardBoundaries)))
		return result
	}

	if c.Enabled && len(c.CardBoundaries) == 0 {
		result.merge(invalidResult("entry animation enabled but cardBoundaries is empty"))
	}

	prev := math.Inf(-1)
	for i := 0; i < len(c.CardBoundaries); i += 2 {
		left, right := c.CardBoundaries[i], c.CardBoundaries[i+1]
		if !isFinite(left) || !isFinite(right) {
			result.merge(invalidResult("card %d has non-finite boundary [%v, %v]", i/2, left, right))
			continue
		}
		if left >= right {
			result.merge(invalidResult("card %d boundary must satisfy left < right, got [%v, %v]", i/2, left, right))
		}
		if left < prev {
			result.merge(invalidResult("card %d boundary %v is not sorted (previous right = %v)", i/2, left, prev))
		}
		prev = right
	}

	if !isFinite(c.Duration) || c.Duration <= 0 {
		result.merge(invalidResult("duration must be a positive finite number, got %v", c.Duration))
	}
	if !isFinite(c.StaggerDelay) || c.StaggerDelay < 0 {
		result.merge(invalidResult("staggerDelay must be a non-negative finite number, got %v", c.StaggerDelay))
	}
	if !isFinite(c.IntervalBeforeScroll) || c.IntervalBeforeScroll < 0 {
		result.merge(invalidResult("intervalBeforeScroll must be a non-negative finite number, got %v", c.IntervalBeforeScroll))
	}

	return result
}

// isFinite 判断浮点数是否为有限值
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

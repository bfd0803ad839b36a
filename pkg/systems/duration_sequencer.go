package systems

import (
	"log"
	"math"
)

// DurationSequencer 决定每次循环迭代使用的滚动时长
//
// 可变时长模式下，第 n 次循环优先使用覆盖序列的第 n 个元素；
// 序列长度不足或单个元素非法时逐元素回退到基础时长——
// 这类情况按"使用基础值"处理而不是报错，序列的格式校验属于 UI 层的职责。
type DurationSequencer struct{}

// NewDurationSequencer 创建时长序列器
func NewDurationSequencer() *DurationSequencer {
	return &DurationSequencer{}
}

// NextDuration 返回第 loopNumber 次循环（从 1 开始计数）应使用的时长（秒）
//
// 返回 overrides[loopNumber-1]，当且仅当：
//   - 1 <= loopNumber <= len(overrides)
//   - 对应元素是正的有限数
//
// 否则返回 baseDuration。
func (ds *DurationSequencer) NextDuration(loopNumber int, baseDuration float64, overrides []float64) float64 {
	if loopNumber < 1 || loopNumber > len(overrides) {
		return baseDuration
	}

	d := overrides[loopNumber-1]
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		log.Printf("[DurationSequencer] Invalid override %v for loop %d, using base %v", d, loopNumber, baseDuration)
		return baseDuration
	}

	return d
}

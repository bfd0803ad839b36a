package systems

import (
	"github.com/gonewx/cardscroller/pkg/components"
)

// ==================================================================
// 卡片入场效果策略 (Card Transform Strategy)
// ==================================================================
//
// 每种入场效果实现各自的策略类，通过策略模式实现多态计算。
// 策略是纯函数式的：progress × geometry → CardTransform，
// 不持有任何跨帧状态，同一输入永远得到同一输出。
//
// ==================================================================

// CardGeometry 策略计算所需的几何信息
type CardGeometry struct {
	CardWidth    float64 // 卡片宽度（画布逻辑像素）
	CardHeight   float64 // 卡片高度（画布逻辑像素）
	CanvasWidth  float64 // 画布宽度
	CanvasHeight float64 // 画布高度
}

// CardTransformStrategy 定义卡片入场效果策略接口
type CardTransformStrategy interface {
	// Transform 计算进度 progress ∈ [0,1] 对应的卡片变换
	Transform(progress float64, geom CardGeometry) components.CardTransform
}

// 内置策略ID
const (
	StrategyFade       = "fade"
	StrategySlideUp    = "slideUp"
	StrategySlideDown  = "slideDown"
	StrategySlideLeft  = "slideLeft"
	StrategySlideRight = "slideRight"
	StrategyZoomIn     = "zoomIn"
	StrategyZoomOut    = "zoomOut"
	StrategyRotateIn   = "rotateIn"
	StrategyBlurIn     = "blurIn"
	StrategyBounceIn   = "bounceIn"
)

// NewCardTransformStrategy 按ID创建策略实例
//
// 未知ID返回 (nil, false)，由入场动画引擎在 StartAnimation 时 fail-fast。
func NewCardTransformStrategy(id string) (CardTransformStrategy, bool) {
	switch id {
	case StrategyFade:
		return &FadeStrategy{}, true
	case StrategySlideUp:
		return &SlideStrategy{DirX: 0, DirY: 1}, true
	case StrategySlideDown:
		return &SlideStrategy{DirX: 0, DirY: -1}, true
	case StrategySlideLeft:
		return &SlideStrategy{DirX: 1, DirY: 0}, true
	case StrategySlideRight:
		return &SlideStrategy{DirX: -1, DirY: 0}, true
	case StrategyZoomIn:
		return &ZoomStrategy{From: 0.6}, true
	case StrategyZoomOut:
		return &ZoomStrategy{From: 1.4}, true
	case StrategyRotateIn:
		return &RotateInStrategy{}, true
	case StrategyBlurIn:
		return &BlurInStrategy{}, true
	case StrategyBounceIn:
		return &BounceInStrategy{}, true
	default:
		return nil, false
	}
}

// KnownStrategyIDs 返回全部内置策略ID（用于校验错误信息）
func KnownStrategyIDs() []string {
	return []string{
		StrategyFade, StrategySlideUp, StrategySlideDown,
		StrategySlideLeft, StrategySlideRight,
		StrategyZoomIn, StrategyZoomOut,
		StrategyRotateIn, StrategyBlurIn, StrategyBounceIn,
	}
}

// clampProgress 将进度限制在 [0, 1]
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

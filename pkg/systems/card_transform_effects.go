package systems

import (
	"math"

	"github.com/gonewx/cardscroller/pkg/components"
	"github.com/gonewx/cardscroller/pkg/utils"
)

// FadeStrategy 淡入效果：不透明度从 0 到 1
type FadeStrategy struct{}

// Transform 计算淡入变换
func (s *FadeStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)
	t := components.IdentityTransform()
	t.Opacity = utils.EaseOutQuad(p)
	return t
}

// SlideStrategy 滑入效果：卡片带着淡入从指定方向滑到目标位置
//
// DirX/DirY 为进入方向的单位分量：DirY=1 表示从下往上（slideUp）。
// 滑动距离取画布对应边长的 25%。
type SlideStrategy struct {
	DirX float64
	DirY float64
}

// 滑动距离占画布边长的比例
const slideDistanceRatio = 0.25

// Transform 计算滑入变换
func (s *SlideStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)
	eased := utils.EaseOutCubic(p)

	t := components.IdentityTransform()
	t.Opacity = p
	t.OffsetX = s.DirX * (1 - eased) * geom.CanvasWidth * slideDistanceRatio
	t.OffsetY = s.DirY * (1 - eased) * geom.CanvasHeight * slideDistanceRatio
	return t
}

// ZoomStrategy 缩放进入效果：从 From 倍缩放渐变到原始大小
//
// From < 1 为放大进入（zoomIn），From > 1 为缩小进入（zoomOut）。
type ZoomStrategy struct {
	From float64
}

// Transform 计算缩放变换
func (s *ZoomStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)
	eased := utils.EaseOutCubic(p)

	t := components.IdentityTransform()
	t.Opacity = p
	t.Scale = utils.Lerp(s.From, 1.0, eased)
	return t
}

// RotateInStrategy 旋转进入效果：从 -12° 旋转回正，同时淡入
type RotateInStrategy struct{}

// 旋转进入的初始角度（弧度）
var rotateInStartAngle = -12.0 * math.Pi / 180.0

// Transform 计算旋转变换
func (s *RotateInStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)
	eased := utils.EaseOutCubic(p)

	t := components.IdentityTransform()
	t.Opacity = utils.EaseOutQuad(p)
	t.Rotation = rotateInStartAngle * (1 - eased)
	return t
}

// BlurInStrategy 模糊进入效果：从完全模糊渐变到清晰，同时淡入
type BlurInStrategy struct{}

// Transform 计算模糊变换
func (s *BlurInStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)

	t := components.IdentityTransform()
	t.Opacity = utils.EaseOutQuad(p)
	t.Blur = 1 - utils.EaseOutCubic(p)
	return t
}

// BounceInStrategy 弹跳进入效果：从下方弹入并在目标位置回弹
type BounceInStrategy struct{}

// Transform 计算弹跳变换
func (s *BounceInStrategy) Transform(progress float64, geom CardGeometry) components.CardTransform {
	p := clampProgress(progress)
	eased := utils.EaseOutBounce(p)

	t := components.IdentityTransform()
	t.Opacity = clampProgress(p * 2) // 前半段完成淡入
	t.OffsetY = (1 - eased) * geom.CanvasHeight * slideDistanceRatio
	return t
}

package components

import "github.com/hajimehoshi/ebiten/v2"

// Card 入场动画中的单张卡片
//
// 在每次 StartAnimation() 时从配置的边界数组派生一次，
// 单次动画运行期间不可变。边界使用原图像素坐标。
type Card struct {
	// Index 卡片序号（按边界数组顺序，从 0 开始）
	Index int

	// LeftBoundary 卡片左边界（原图像素）
	LeftBoundary float64

	// RightBoundary 卡片右边界（原图像素），必须大于 LeftBoundary
	RightBoundary float64

	// StrategyID 入场效果策略标识，如 "fade", "slideUp", "zoomIn"
	StrategyID string

	// StartTime 卡片动画窗口开始时刻（秒，相对入场序列起点）
	StartTime float64

	// EndTime 卡片动画窗口结束时刻（秒）
	EndTime float64

	// CachedBitmap 预裁剪的卡片位图（入场准备阶段生成，结束时释放）
	CachedBitmap *ebiten.Image

	// ScaledLeft 预缩放画布上的左边界（像素，入场准备阶段计算）
	ScaledLeft float64

	// ScaledWidth 预缩放画布上的宽度（像素，向上取整）
	ScaledWidth int
}

// CardTransform 策略函数计算出的单帧卡片变换
//
// 每帧为每张活动卡片计算一次，直接用栈上值传递，不做对象池复用。
type CardTransform struct {
	Opacity  float64 // 不透明度 [0, 1]
	OffsetX  float64 // X 方向偏移（逻辑像素）
	OffsetY  float64 // Y 方向偏移（逻辑像素）
	Rotation float64 // 旋转角度（弧度，绕卡片中心）
	Scale    float64 // 缩放比（1 表示原始大小，绕卡片中心）
	Blur     float64 // 模糊强度 [0, 1]（0 表示不模糊）
}

// IdentityTransform 返回完全可见、无位移的变换
func IdentityTransform() CardTransform {
	return CardTransform{Opacity: 1, Scale: 1}
}

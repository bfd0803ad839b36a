package components

// Viewport 当前可见的源图子矩形
//
// 使用原图坐标系描述。滚动位置、窗口尺寸或源图变化时重新计算。
type Viewport struct {
	// StartPosition 可见区域左边界（原图像素）
	StartPosition float64

	// Width 可见区域宽度（原图像素）
	// 不变式：Width = min(windowWidth/Scale, imageWidth − StartPosition)
	Width float64

	// Scale 输出缩放比 = windowHeight / imageHeight
	Scale float64
}

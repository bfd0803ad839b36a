package systems

import (
	"image"
	"log"
	"math"

	"github.com/gonewx/cardscroller/internal/source"
	"github.com/gonewx/cardscroller/internal/system"
	"github.com/gonewx/cardscroller/pkg/components"
	"github.com/gonewx/cardscroller/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 单块 GPU 纹理的最大宽度（像素）
//
// 长图整体宽度常常超过显卡纹理上限（很多设备是 16384），
// 因此源图被切成固定宽度的纹理条带，渲染视口时只取命中的 1~2 块。
const sourceTileWidth = 8192

// ViewportRenderSystem 负责"虚拟滚动"：
// 只把源图当前可见的子矩形绘制到画布上，屏幕侧画布永远不超过视口分辨率，
// 即使源图宽达数万像素，画布显存占用也是有界的。
type ViewportRenderSystem struct {
	tiles       []*ebiten.Image // 源图的 GPU 纹理条带
	pixels      *image.RGBA     // 源图的 CPU 侧像素（异步裁剪用）
	imageWidth  float64
	imageHeight float64
	caps        system.Capabilities
}

// NewViewportRenderSystem 创建视口渲染系统
//
// 源图在这里一次性切条上传 GPU；之后的每帧渲染只做裁剪绘制，
// 不再发生整图缩放或整图上传。
func NewViewportRenderSystem(img *source.LongImage, caps system.Capabilities) *ViewportRenderSystem {
	vrs := &ViewportRenderSystem{
		pixels:      img.Pixels,
		imageWidth:  float64(img.Width),
		imageHeight: float64(img.Height),
		caps:        caps,
	}

	for x := 0; x < img.Width; x += sourceTileWidth {
		w := img.Width - x
		if w > sourceTileWidth {
			w = sourceTileWidth
		}
		sub := img.Pixels.SubImage(image.Rect(x, 0, x+w, img.Height)).(*image.RGBA)
		vrs.tiles = append(vrs.tiles, ebiten.NewImageFromImage(sub))
	}
	log.Printf("[ViewportRenderSystem] Source uploaded as %d tile(s) of <=%dpx", len(vrs.tiles), sourceTileWidth)

	return vrs
}

// ImageWidth 返回源图宽度（原图像素）
func (vrs *ViewportRenderSystem) ImageWidth() float64 {
	return vrs.imageWidth
}

// ImageHeight 返回源图高度（原图像素）
func (vrs *ViewportRenderSystem) ImageHeight() float64 {
	return vrs.imageHeight
}

// CalculateViewportWidth 计算视口在原图坐标系下的宽度
//
// viewportWidth = min(windowW/scale, imageW − startPosition)，
// 其中 scale = windowH/imageH。
func CalculateViewportWidth(startPosition, imageW, imageH, windowW, windowH float64) float64 {
	if imageH <= 0 || windowH <= 0 {
		return 0
	}
	scale := windowH / imageH
	width := windowW / scale
	if remaining := imageW - startPosition; remaining < width {
		width = remaining
	}
	if width < 0 {
		width = 0
	}
	return width
}

// ComputeViewport 计算给定滚动位置和窗口尺寸下的视口
func (vrs *ViewportRenderSystem) ComputeViewport(scrollPosition, windowW, windowH float64) components.Viewport {
	return components.Viewport{
		StartPosition: utils.Clamp(scrollPosition, 0, vrs.imageWidth),
		Width:         CalculateViewportWidth(scrollPosition, vrs.imageWidth, vrs.imageHeight, windowW, windowH),
		Scale:         windowH / vrs.imageHeight,
	}
}

// RenderViewport 把当前可见区域绘制到目标画布
//
// 每帧只做一次裁剪绘制（命中的纹理条带各一次 DrawImage），
// 没有逐帧的整图缩放或整图裁剪。
func (vrs *ViewportRenderSystem) RenderViewport(target *ebiten.Image, scrollPosition float64) {
	canvasW := float64(target.Bounds().Dx())
	canvasH := float64(target.Bounds().Dy())

	scale := canvasH / vrs.imageHeight
	sourceX := utils.Clamp(scrollPosition, 0, vrs.imageWidth)
	sourceWidth := canvasW / scale

	// 可见区域可能横跨相邻的两块纹理条带
	firstTile := int(sourceX) / sourceTileWidth
	lastTile := int(math.Ceil(sourceX+sourceWidth)) / sourceTileWidth
	for t := firstTile; t <= lastTile && t < len(vrs.tiles); t++ {
		tile := vrs.tiles[t]
		tileOriginX := float64(t * sourceTileWidth)

		rect, ok := tileStrip(tileOriginX, tile.Bounds().Dx(), tile.Bounds().Dy(), sourceX, sourceWidth)
		if !ok {
			continue
		}
		sub := tile.SubImage(rect).(*ebiten.Image)

		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(scale, scale)
		opts.GeoM.Translate((tileOriginX+float64(rect.Min.X)-sourceX)*scale, 0)
		opts.Filter = ebiten.FilterLinear
		target.DrawImage(sub, opts)
	}
}

// tileStrip 计算条带内可见子区间的整像素采样矩形
//
// 左边界向下取整到整像素；绘制锚点必须取 rect.Min.X 这个整数值，
// 否则接缝处画面会相对采样矩形偏移不到一个源像素。
func tileStrip(tileOriginX float64, tileW, tileH int, sourceX, sourceWidth float64) (image.Rectangle, bool) {
	localX := math.Max(0, sourceX-tileOriginX)
	localRight := math.Min(float64(tileW), sourceX+sourceWidth-tileOriginX)
	if localRight <= localX {
		return image.Rectangle{}, false
	}
	return image.Rect(int(math.Floor(localX)), 0, int(math.Ceil(localRight)), tileH), true
}

// VisibleCard 视口裁剪后的可见卡片边界
type VisibleCard struct {
	Index int     // 原始卡片序号
	Left  float64 // 裁剪后的左边界（原图像素，已夹取到视口内）
	Right float64 // 裁剪后的右边界
}

// FilterCardsForViewport 过滤并夹取与视口相交的卡片
//
// boundaries 是扁平的 [left1,right1,left2,right2,...] 数组（原图像素）。
// 与视口 [viewportStart, viewportStart+viewportWidth] 无交集的卡片被剔除，
// 有交集的卡片边界被夹取到视口范围内。
func FilterCardsForViewport(boundaries []float64, viewportStart, viewportWidth float64) []VisibleCard {
	viewportEnd := viewportStart + viewportWidth

	var visible []VisibleCard
	for i := 0; i+1 < len(boundaries); i += 2 {
		left, right := boundaries[i], boundaries[i+1]
		if right <= viewportStart || left >= viewportEnd {
			continue
		}
		visible = append(visible, VisibleCard{
			Index: i / 2,
			Left:  math.Max(left, viewportStart),
			Right: math.Min(right, viewportEnd),
		})
	}
	return visible
}

// Package source 负责把项目配置指向的文件解码为一张长横图。
//
// 支持两类来源：
//   - 普通位图（PNG/JPEG）：直接解码
//   - PDF 文档：各页按 DPI 渲染后横向拼接为一张长图（长卷类内容常以 PDF 分发）
package source

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"path/filepath"
	"strings"
	"time"
)

// LongImage 已解码的长图源
//
// 同时保留 CPU 侧的解码像素（供异步裁剪/缩放使用）和基本几何信息。
// GPU 侧的 ebiten.Image 由调用方按需创建，本包不依赖渲染后端。
type LongImage struct {
	// Pixels 解码后的像素数据（RGBA）
	Pixels *image.RGBA

	// Width 原图宽度（像素）
	Width int

	// Height 原图高度（像素）
	Height int

	// Path 来源文件路径（用于日志）
	Path string
}

// Load 按扩展名分派加载长图
//
// dpi 仅对 PDF 来源生效。
func Load(path string, dpi int) (*LongImage, error) {
	start := time.Now()

	var (
		img *LongImage
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		img, err = loadPDF(path, dpi)
	case ".png", ".jpg", ".jpeg":
		img, err = loadBitmap(path)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", path)
	}

	if err != nil {
		return nil, err
	}

	log.Printf("[Source] Loaded %s: %dx%d px in %.2fs",
		filepath.Base(path), img.Width, img.Height, time.Since(start).Seconds())
	return img, nil
}

// toRGBA 将任意解码结果转换为左上角对齐的 RGBA
func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min.X == 0 && b.Min.Y == 0 {
			return rgba
		}
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

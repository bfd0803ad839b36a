package source

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/gen2brain/go-fitz"
)

// loadPDF 将 PDF 的所有页面渲染后横向拼接为一张长图
//
// 各页按统一 DPI 渲染，高度取各页渲染结果的最大值，
// 矮于最大高度的页面垂直居中放置。
func loadPDF(path string, dpi int) (*LongImage, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF %s contains no pages", path)
	}

	// 第一遍：渲染所有页面并统计拼接后的总尺寸
	pages := make([]image.Image, 0, pageCount)
	totalWidth := 0
	maxHeight := 0
	for i := 0; i < pageCount; i++ {
		page, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("failed to render PDF page %d: %w", i, err)
		}
		pages = append(pages, page)
		totalWidth += page.Bounds().Dx()
		if h := page.Bounds().Dy(); h > maxHeight {
			maxHeight = h
		}
	}

	log.Printf("[Source] Stitching %d PDF pages into %dx%d px", pageCount, totalWidth, maxHeight)

	// 第二遍：横向拼接
	stitched := image.NewRGBA(image.Rect(0, 0, totalWidth, maxHeight))
	offsetX := 0
	for _, page := range pages {
		b := page.Bounds()
		offsetY := (maxHeight - b.Dy()) / 2
		dstRect := image.Rect(offsetX, offsetY, offsetX+b.Dx(), offsetY+b.Dy())
		draw.Draw(stitched, dstRect, page, b.Min, draw.Src)
		offsetX += b.Dx()
	}

	return &LongImage{
		Pixels: stitched,
		Width:  totalWidth,
		Height: maxHeight,
		Path:   path,
	}, nil
}

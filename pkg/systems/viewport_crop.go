package systems

import (
	"fmt"
	"image"
	"log"
	"math"
	"time"

	"github.com/gonewx/cardscroller/pkg/utils"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// CropResult 异步视口裁剪的结果
//
// Err 非 nil 时 Pixels 为 nil。Generation 回传发起裁剪时的代数，
// 供协调器丢弃迟到的结果（裁剪期间可能发生了暂停/重置）。
type CropResult struct {
	Pixels     *image.RGBA
	Generation uint64
	Err        error
}

// CreateCroppedImageForViewport 异步产出仅包含可见切片的独立图像
//
// 切片从 CPU 侧像素裁出并缩放到 targetHeight（画布逻辑高度），
// 这样入场动画引擎拿到的就是一张"尺寸刚好"的源图，
// 预缩放一步的缩放比接近 1，不再搬运整张原图。
//
// 缩放按垂直条带切分，通过 errgroup 并行执行；
// 条带数量由硬件探测结果决定。插值器按可用内存选择
// CatmullRom（高质量）或 ApproxBiLinear（低内存降级）。
func (vrs *ViewportRenderSystem) CreateCroppedImageForViewport(startPosition, viewportWidth float64, targetHeight int, generation uint64) <-chan CropResult {
	ch := make(chan CropResult, 1)

	go func() {
		start := time.Now()
		pixels, err := vrs.cropAndScale(startPosition, viewportWidth, targetHeight)
		if err == nil {
			log.Printf("[ViewportRenderSystem] Viewport crop [%.0f, %.0f] -> %dx%d in %.0fms",
				startPosition, startPosition+viewportWidth,
				pixels.Bounds().Dx(), pixels.Bounds().Dy(),
				float64(time.Since(start).Microseconds())/1000)
		}
		ch <- CropResult{Pixels: pixels, Generation: generation, Err: err}
	}()

	return ch
}

func (vrs *ViewportRenderSystem) cropAndScale(startPosition, viewportWidth float64, targetHeight int) (*image.RGBA, error) {
	if targetHeight <= 0 {
		return nil, fmt.Errorf("invalid target height %d", targetHeight)
	}

	srcX0 := int(utils.Clamp(startPosition, 0, vrs.imageWidth))
	srcX1 := int(math.Ceil(utils.Clamp(startPosition+viewportWidth, 0, vrs.imageWidth)))
	if srcX1 <= srcX0 {
		return nil, fmt.Errorf("empty viewport crop [%d, %d]", srcX0, srcX1)
	}

	srcRect := image.Rect(srcX0, 0, srcX1, vrs.pixels.Bounds().Dy())
	ratio := float64(targetHeight) / float64(srcRect.Dy())
	dstW := int(math.Ceil(float64(srcRect.Dx()) * ratio))
	dst := image.NewRGBA(image.Rect(0, 0, dstW, targetHeight))

	var scaler xdraw.Scaler = xdraw.ApproxBiLinear
	if vrs.caps.HighQualityScaling {
		scaler = xdraw.CatmullRom
	}

	workers := vrs.caps.CropWorkers
	if workers < 1 {
		workers = 1
	}

	// 按目标图的垂直条带切分；每个条带独立映射回源图区间。
	// 条带边界上的亚像素差异远小于一个源像素，不产生可见接缝。
	var g errgroup.Group
	stripW := (dstW + workers - 1) / workers
	for w := 0; w < workers; w++ {
		x0 := w * stripW
		x1 := x0 + stripW
		if x1 > dstW {
			x1 = dstW
		}
		if x0 >= x1 {
			break
		}

		g.Go(func() error {
			dstStrip := image.Rect(x0, 0, x1, targetHeight)
			srcStrip := image.Rect(
				srcRect.Min.X+int(float64(x0)/ratio),
				srcRect.Min.Y,
				srcRect.Min.X+int(math.Ceil(float64(x1)/ratio)),
				srcRect.Max.Y,
			)
			if srcStrip.Max.X > srcRect.Max.X {
				srcStrip.Max.X = srcRect.Max.X
			}
			scaler.Scale(dst, dstStrip, vrs.pixels, srcStrip, xdraw.Src, nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

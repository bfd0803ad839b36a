package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// loadBitmap 解码 PNG/JPEG 长图
func loadBitmap(path string) (*LongImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rgba := toRGBA(img)
	return &LongImage{
		Pixels: rgba,
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
		Path:   path,
	}, nil
}

package systems

import (
	"math"
	"testing"
)

// TestCalculateViewportWidth tests the viewport width formula.
func TestCalculateViewportWidth(t *testing.T) {
	tests := []struct {
		name          string
		startPosition float64
		imageW        float64
		imageH        float64
		windowW       float64
		windowH       float64
		want          float64
	}{
		{
			name:          "窗口窄于图像",
			startPosition: 0,
			imageW:        21224, imageH: 2355,
			windowW: 1920, windowH: 1080,
			// scale = 1080/2355 ≈ 0.4586，1920/scale ≈ 4187.1
			want: 1920.0 * 2355 / 1080,
		},
		{
			name:          "靠近末端时被图像剩余宽度截断",
			startPosition: 21000,
			imageW:        21224, imageH: 2355,
			windowW: 1920, windowH: 1080,
			want: 224,
		},
		{
			name:          "等比例窗口",
			startPosition: 0,
			imageW:        4000, imageH: 400,
			windowW: 800, windowH: 400,
			want: 800,
		},
		{
			name:          "起点在图像末端",
			startPosition: 4000,
			imageW:        4000, imageH: 400,
			windowW: 800, windowH: 400,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportWidth(tt.startPosition, tt.imageW, tt.imageH, tt.windowW, tt.windowH)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CalculateViewportWidth(%v, %v, %v, %v, %v) = %v, want %v",
					tt.startPosition, tt.imageW, tt.imageH, tt.windowW, tt.windowH, got, tt.want)
			}
		})
	}
}

// TestTileStrip tests the per-tile sampling rect for fractional scroll positions.
func TestTileStrip(t *testing.T) {
	tests := []struct {
		name        string
		tileOriginX float64
		tileW       int
		sourceX     float64
		sourceWidth float64
		wantX0      int
		wantX1      int
		wantOK      bool
	}{
		{
			name:        "小数起点向下取整",
			tileOriginX: 0, tileW: 8192,
			sourceX: 100.7, sourceWidth: 800,
			wantX0: 100, wantX1: 901, wantOK: true,
		},
		{
			name:        "跨条带时第二块从条带起点开始",
			tileOriginX: 8192, tileW: 8192,
			sourceX: 7900.3, sourceWidth: 800,
			wantX0: 0, wantX1: 509, wantOK: true,
		},
		{
			name:        "条带完全不可见",
			tileOriginX: 8192, tileW: 8192,
			sourceX: 0, sourceWidth: 800,
			wantOK: false,
		},
		{
			name:        "整数起点保持原样",
			tileOriginX: 0, tileW: 8192,
			sourceX: 200, sourceWidth: 400,
			wantX0: 200, wantX1: 600, wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, ok := tileStrip(tt.tileOriginX, tt.tileW, 400, tt.sourceX, tt.sourceWidth)
			if ok != tt.wantOK {
				t.Fatalf("tileStrip ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rect.Min.X != tt.wantX0 || rect.Max.X != tt.wantX1 {
				t.Errorf("tileStrip rect = [%d, %d), want [%d, %d)", rect.Min.X, rect.Max.X, tt.wantX0, tt.wantX1)
			}
			// 采样矩形必须覆盖整个可见子区间
			localX := tt.sourceX - tt.tileOriginX
			if localX < 0 {
				localX = 0
			}
			if float64(rect.Min.X) > localX {
				t.Errorf("Expected rect to start at or before %.1f, got %d", localX, rect.Min.X)
			}
		})
	}
}

// TestFilterCardsForViewport tests card visibility filtering and clamping.
func TestFilterCardsForViewport(t *testing.T) {
	// 三张卡片：[0,4187] 视口下第三张完全在外
	boundaries := []float64{0, 1500, 3000, 4500, 5000, 6000}
	visible := FilterCardsForViewport(boundaries, 0, 4187)

	if len(visible) != 2 {
		t.Fatalf("Expected 2 visible cards, got %d", len(visible))
	}

	if visible[0].Index != 0 || visible[0].Left != 0 || visible[0].Right != 1500 {
		t.Errorf("Card 0 = %+v, want {0 0 1500}", visible[0])
	}

	// 第二张右边界被视口截断
	if visible[1].Index != 1 || visible[1].Left != 3000 || visible[1].Right != 4187 {
		t.Errorf("Card 1 = %+v, want {1 3000 4187}", visible[1])
	}
}

// TestFilterCardsForViewportOffset tests filtering with a scrolled viewport.
func TestFilterCardsForViewportOffset(t *testing.T) {
	boundaries := []float64{0, 1000, 2000, 3000}
	visible := FilterCardsForViewport(boundaries, 2500, 1000)

	if len(visible) != 1 {
		t.Fatalf("Expected 1 visible card, got %d", len(visible))
	}
	// 左边界被视口起点截断
	if visible[0].Index != 1 || visible[0].Left != 2500 || visible[0].Right != 3000 {
		t.Errorf("Card = %+v, want {1 2500 3000}", visible[0])
	}
}

// TestFilterCardsForViewportEmpty tests edge cases.
func TestFilterCardsForViewportEmpty(t *testing.T) {
	if got := FilterCardsForViewport(nil, 0, 1000); len(got) != 0 {
		t.Errorf("Expected no cards for nil boundaries, got %v", got)
	}
	// 只与边线相切不算可见
	if got := FilterCardsForViewport([]float64{1000, 2000}, 0, 1000); len(got) != 0 {
		t.Errorf("Expected touching card to be excluded, got %v", got)
	}
}

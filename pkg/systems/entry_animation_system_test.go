package systems

import (
	"math"
	"testing"
)

// TestTotalEntryDuration tests the staggered sequence total duration formula.
func TestTotalEntryDuration(t *testing.T) {
	tests := []struct {
		name      string
		cardCount int
		duration  float64
		stagger   float64
		want      float64
	}{
		{
			name:      "四张卡片标准参数",
			cardCount: 4, duration: 0.5, stagger: 0.1,
			want: 2.3, // (4-1)×(0.5+0.1)+0.5
		},
		{
			name:      "单张卡片无错峰",
			cardCount: 1, duration: 0.5, stagger: 0.1,
			want: 0.5,
		},
		{
			name:      "零张卡片",
			cardCount: 0, duration: 0.5, stagger: 0.1,
			want: 0,
		},
		{
			name:      "零错峰等于并行入场",
			cardCount: 3, duration: 1.0, stagger: 0,
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalEntryDuration(tt.cardCount, tt.duration, tt.stagger)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TotalEntryDuration(%d, %v, %v) = %v, want %v",
					tt.cardCount, tt.duration, tt.stagger, got, tt.want)
			}
		})
	}
}

// TestEntryWindow tests per-card animation time windows.
func TestEntryWindow(t *testing.T) {
	const (
		cardCount = 4
		duration  = 0.5
		stagger   = 0.1
	)

	// 正向：第 i 张卡片在 i×0.6s 开窗
	for i := 0; i < cardCount; i++ {
		start, end := entryWindow(i, cardCount, duration, stagger, false)
		wantStart := float64(i) * 0.6
		if math.Abs(start-wantStart) > 1e-9 {
			t.Errorf("Card %d forward start = %v, want %v", i, start, wantStart)
		}
		if math.Abs(end-(wantStart+duration)) > 1e-9 {
			t.Errorf("Card %d forward end = %v, want %v", i, end, wantStart+duration)
		}
	}

	// 反向：最右的卡片最先开窗
	start, _ := entryWindow(cardCount-1, cardCount, duration, stagger, true)
	if start != 0 {
		t.Errorf("Rightmost card reverse start = %v, want 0", start)
	}
	start, _ = entryWindow(0, cardCount, duration, stagger, true)
	if math.Abs(start-1.8) > 1e-9 {
		t.Errorf("Leftmost card reverse start = %v, want 1.8", start)
	}

	// 最后一张卡片的窗口尾部等于序列总时长
	_, end := entryWindow(cardCount-1, cardCount, duration, stagger, false)
	if total := TotalEntryDuration(cardCount, duration, stagger); math.Abs(end-total) > 1e-9 {
		t.Errorf("Last card end %v should equal total duration %v", end, total)
	}
}

package systems

import (
	"math"
	"testing"
)

// TestNextDuration tests per-loop duration override resolution.
func TestNextDuration(t *testing.T) {
	ds := NewDurationSequencer()

	tests := []struct {
		name       string
		loopNumber int
		base       float64
		overrides  []float64
		want       float64
	}{
		{
			name:       "取序列第一个元素",
			loopNumber: 1,
			base:       10,
			overrides:  []float64{2, 5, 8},
			want:       2,
		},
		{
			name:       "取序列最后一个元素",
			loopNumber: 3,
			base:       10,
			overrides:  []float64{2, 5, 8},
			want:       8,
		},
		{
			name:       "序列长度不足回退基础值",
			loopNumber: 4,
			base:       10,
			overrides:  []float64{2, 5, 8},
			want:       10,
		},
		{
			name:       "空序列回退基础值",
			loopNumber: 1,
			base:       10,
			overrides:  nil,
			want:       10,
		},
		{
			name:       "零元素回退基础值",
			loopNumber: 2,
			base:       10,
			overrides:  []float64{2, 0, 8},
			want:       10,
		},
		{
			name:       "负数元素回退基础值",
			loopNumber: 1,
			base:       10,
			overrides:  []float64{-3},
			want:       10,
		},
		{
			name:       "NaN元素回退基础值",
			loopNumber: 1,
			base:       10,
			overrides:  []float64{math.NaN()},
			want:       10,
		},
		{
			name:       "Inf元素回退基础值",
			loopNumber: 1,
			base:       10,
			overrides:  []float64{math.Inf(1)},
			want:       10,
		},
		{
			name:       "非法元素不影响其他元素",
			loopNumber: 3,
			base:       10,
			overrides:  []float64{math.NaN(), -1, 7},
			want:       7,
		},
		{
			name:       "循环序号从1开始",
			loopNumber: 0,
			base:       10,
			overrides:  []float64{2, 5},
			want:       10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.NextDuration(tt.loopNumber, tt.base, tt.overrides)
			if got != tt.want {
				t.Errorf("NextDuration(%d, %v, %v) = %v, want %v",
					tt.loopNumber, tt.base, tt.overrides, got, tt.want)
			}
		})
	}
}

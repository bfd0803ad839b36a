package config

import (
	"math"
	"testing"
)

// TestValidateScrollConfig tests scroll and loop parameter validation.
func TestValidateScrollConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ScrollConfig)
		valid  bool
	}{
		{
			name:   "默认配置合法",
			mutate: func(c *ScrollConfig) {},
			valid:  true,
		},
		{
			name:   "零时长",
			mutate: func(c *ScrollConfig) { c.Duration = 0 },
			valid:  false,
		},
		{
			name:   "NaN时长",
			mutate: func(c *ScrollConfig) { c.Duration = math.NaN() },
			valid:  false,
		},
		{
			name:   "负起点",
			mutate: func(c *ScrollConfig) { c.StartPosition = -100 },
			valid:  false,
		},
		{
			name:   "终点为0表示自动",
			mutate: func(c *ScrollConfig) { c.StartPosition = 500; c.EndPosition = 0 },
			valid:  true,
		},
		{
			name:   "终点不大于起点",
			mutate: func(c *ScrollConfig) { c.StartPosition = 500; c.EndPosition = 500 },
			valid:  false,
		},
		{
			name:   "负循环次数",
			mutate: func(c *ScrollConfig) { c.Loop.Count = -1 },
			valid:  false,
		},
		{
			name:   "零循环次数表示无限",
			mutate: func(c *ScrollConfig) { c.Loop.Enabled = true; c.Loop.Count = 0 },
			valid:  true,
		},
		{
			name:   "负循环间隔",
			mutate: func(c *ScrollConfig) { c.Loop.IntervalTime = math.Inf(1) },
			valid:  false,
		},
		{
			// 序列里的非法元素由 DurationSequencer 逐元素回退，不算配置错误
			name: "可变时长序列含非法元素",
			mutate: func(c *ScrollConfig) {
				c.Loop.VariableEnabled = true
				c.Loop.Durations = []float64{2, -1, math.NaN()}
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ScrollConfig{Duration: 10}
			tt.mutate(cfg)
			result := ValidateScrollConfig(cfg)
			if result.IsValid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (errors: %v)", tt.valid, result.IsValid, result.Errors)
			}
		})
	}
}

// TestApplyScrollDefaults tests default value application.
func TestApplyScrollDefaults(t *testing.T) {
	cfg := &ScrollConfig{Loop: LoopConfig{IntervalTime: -2}}
	applyScrollDefaults(cfg)

	if cfg.Duration != 10 {
		t.Errorf("Expected default duration 10, got %v", cfg.Duration)
	}
	if cfg.Loop.IntervalTime != 0 {
		t.Errorf("Expected negative interval clamped to 0, got %v", cfg.Loop.IntervalTime)
	}

	// 已设置的值不被覆盖
	cfg2 := &ScrollConfig{Duration: 3.5}
	applyScrollDefaults(cfg2)
	if cfg2.Duration != 3.5 {
		t.Errorf("Expected duration 3.5 preserved, got %v", cfg2.Duration)
	}
}

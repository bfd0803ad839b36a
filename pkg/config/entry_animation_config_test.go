package config

import (
	"math"
	"testing"
)

func validEntryConfig() *EntryAnimationConfig {
	return &EntryAnimationConfig{
		Enabled:        true,
		CardBoundaries: []float64{0, 1200, 1200, 2600, 2600, 4100},
		CardAnimations: []string{"fade", "slideUp", "zoomIn"},
		Duration:       0.5,
		StaggerDelay:   0.1,
	}
}

// TestValidateEntryAnimationConfig tests boundary and duration validation.
func TestValidateEntryAnimationConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *EntryAnimationConfig)
		valid  bool
	}{
		{
			name:   "合法配置",
			mutate: func(c *EntryAnimationConfig) {},
			valid:  true,
		},
		{
			name:   "边界数组长度为奇数",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = []float64{0, 100, 200} },
			valid:  false,
		},
		{
			name:   "启用但没有卡片",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = nil },
			valid:  false,
		},
		{
			name:   "左边界大于等于右边界",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = []float64{100, 100} },
			valid:  false,
		},
		{
			name:   "边界乱序",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = []float64{500, 800, 100, 400} },
			valid:  false,
		},
		{
			name:   "边界重叠",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = []float64{0, 500, 400, 900} },
			valid:  false,
		},
		{
			name:   "非有限边界",
			mutate: func(c *EntryAnimationConfig) { c.CardBoundaries = []float64{0, math.NaN()} },
			valid:  false,
		},
		{
			name:   "零时长",
			mutate: func(c *EntryAnimationConfig) { c.Duration = 0 },
			valid:  false,
		},
		{
			name:   "负错峰延迟",
			mutate: func(c *EntryAnimationConfig) { c.StaggerDelay = -0.1 },
			valid:  false,
		},
		{
			name:   "零错峰延迟合法",
			mutate: func(c *EntryAnimationConfig) { c.StaggerDelay = 0 },
			valid:  true,
		},
		{
			name:   "负的入场后间隔",
			mutate: func(c *EntryAnimationConfig) { c.IntervalBeforeScroll = -1 },
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validEntryConfig()
			tt.mutate(cfg)
			result := ValidateEntryAnimationConfig(cfg)
			if result.IsValid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (errors: %v)", tt.valid, result.IsValid, result.Errors)
			}
			if !tt.valid && len(result.Errors) == 0 {
				t.Error("Expected error messages for invalid config")
			}
		})
	}
}

// TestEntryConfigCardCount tests card count derivation.
func TestEntryConfigCardCount(t *testing.T) {
	cfg := validEntryConfig()
	if got := cfg.CardCount(); got != 3 {
		t.Errorf("Expected 3 cards, got %d", got)
	}

	empty := &EntryAnimationConfig{}
	if got := empty.CardCount(); got != 0 {
		t.Errorf("Expected 0 cards, got %d", got)
	}
}

// TestEntryConfigStrategyFor tests per-card strategy lookup with fallback.
func TestEntryConfigStrategyFor(t *testing.T) {
	cfg := &EntryAnimationConfig{
		CardBoundaries: []float64{0, 100, 100, 200, 200, 300},
		CardAnimations: []string{"slideUp", ""},
	}

	if got := cfg.StrategyFor(0); got != "slideUp" {
		t.Errorf("Expected slideUp, got %q", got)
	}
	// 空字符串和数组越界都回退默认策略
	if got := cfg.StrategyFor(1); got != DefaultStrategyID {
		t.Errorf("Expected default strategy for empty entry, got %q", got)
	}
	if got := cfg.StrategyFor(2); got != DefaultStrategyID {
		t.Errorf("Expected default strategy beyond array, got %q", got)
	}
}

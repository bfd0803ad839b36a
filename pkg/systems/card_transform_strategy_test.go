package systems

import (
	"math"
	"testing"

	"github.com/gonewx/cardscroller/pkg/components"
)

var testGeom = CardGeometry{
	CardWidth:    400,
	CardHeight:   720,
	CanvasWidth:  1280,
	CanvasHeight: 720,
}

// TestNewCardTransformStrategy tests the strategy factory.
func TestNewCardTransformStrategy(t *testing.T) {
	for _, id := range KnownStrategyIDs() {
		strategy, ok := NewCardTransformStrategy(id)
		if !ok || strategy == nil {
			t.Errorf("Expected known strategy %q to resolve", id)
		}
	}

	if _, ok := NewCardTransformStrategy("spiral"); ok {
		t.Error("Expected unknown strategy ID to return ok=false")
	}
	if _, ok := NewCardTransformStrategy(""); ok {
		t.Error("Expected empty strategy ID to return ok=false")
	}
}

// TestStrategiesReachIdentity tests that every strategy lands on the identity
// transform at progress 1 (cards must end exactly in place).
func TestStrategiesReachIdentity(t *testing.T) {
	identity := components.IdentityTransform()

	for _, id := range KnownStrategyIDs() {
		strategy, _ := NewCardTransformStrategy(id)
		got := strategy.Transform(1.0, testGeom)

		if math.Abs(got.Opacity-identity.Opacity) > 1e-9 {
			t.Errorf("%s: opacity at progress 1 = %v, want 1", id, got.Opacity)
		}
		if math.Abs(got.OffsetX) > 1e-9 || math.Abs(got.OffsetY) > 1e-9 {
			t.Errorf("%s: offset at progress 1 = (%v, %v), want (0, 0)", id, got.OffsetX, got.OffsetY)
		}
		if math.Abs(got.Rotation) > 1e-9 {
			t.Errorf("%s: rotation at progress 1 = %v, want 0", id, got.Rotation)
		}
		if math.Abs(got.Scale-1) > 1e-9 {
			t.Errorf("%s: scale at progress 1 = %v, want 1", id, got.Scale)
		}
		if math.Abs(got.Blur) > 1e-9 {
			t.Errorf("%s: blur at progress 1 = %v, want 0", id, got.Blur)
		}
	}
}

// TestStrategiesStartInvisibleOrDisplaced tests initial transform per effect.
func TestStrategiesStartInvisibleOrDisplaced(t *testing.T) {
	tests := []struct {
		id    string
		check func(tr components.CardTransform) bool
		desc  string
	}{
		{StrategyFade, func(tr components.CardTransform) bool { return tr.Opacity == 0 }, "opacity 0"},
		{StrategySlideUp, func(tr components.CardTransform) bool { return tr.OffsetY == testGeom.CanvasHeight*slideDistanceRatio }, "offset from below"},
		{StrategySlideDown, func(tr components.CardTransform) bool { return tr.OffsetY == -testGeom.CanvasHeight*slideDistanceRatio }, "offset from above"},
		{StrategySlideLeft, func(tr components.CardTransform) bool { return tr.OffsetX == testGeom.CanvasWidth*slideDistanceRatio }, "offset from right"},
		{StrategySlideRight, func(tr components.CardTransform) bool { return tr.OffsetX == -testGeom.CanvasWidth*slideDistanceRatio }, "offset from left"},
		{StrategyZoomIn, func(tr components.CardTransform) bool { return tr.Scale == 0.6 }, "scale 0.6"},
		{StrategyZoomOut, func(tr components.CardTransform) bool { return tr.Scale == 1.4 }, "scale 1.4"},
		{StrategyRotateIn, func(tr components.CardTransform) bool { return math.Abs(tr.Rotation-(-12*math.Pi/180)) < 1e-9 }, "rotation -12°"},
		{StrategyBlurIn, func(tr components.CardTransform) bool { return tr.Blur == 1 }, "full blur"},
		{StrategyBounceIn, func(tr components.CardTransform) bool { return tr.OffsetY > 0 && tr.Opacity == 0 }, "below and invisible"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			strategy, _ := NewCardTransformStrategy(tt.id)
			got := strategy.Transform(0, testGeom)
			if !tt.check(got) {
				t.Errorf("%s at progress 0: expected %s, got %+v", tt.id, tt.desc, got)
			}
		})
	}
}

// TestStrategyProgressClamping tests that out-of-range progress is clamped.
func TestStrategyProgressClamping(t *testing.T) {
	for _, id := range KnownStrategyIDs() {
		strategy, _ := NewCardTransformStrategy(id)

		before := strategy.Transform(-0.5, testGeom)
		at0 := strategy.Transform(0, testGeom)
		if before != at0 {
			t.Errorf("%s: progress -0.5 should equal progress 0, got %+v vs %+v", id, before, at0)
		}

		after := strategy.Transform(1.7, testGeom)
		at1 := strategy.Transform(1, testGeom)
		if after != at1 {
			t.Errorf("%s: progress 1.7 should equal progress 1, got %+v vs %+v", id, after, at1)
		}
	}
}

// TestBounceInFadesInFirstHalf tests that bounce opacity saturates by mid-animation.
func TestBounceInFadesInFirstHalf(t *testing.T) {
	strategy, _ := NewCardTransformStrategy(StrategyBounceIn)

	if got := strategy.Transform(0.25, testGeom).Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected opacity 0.5 at progress 0.25, got %v", got)
	}
	if got := strategy.Transform(0.5, testGeom).Opacity; got != 1 {
		t.Errorf("Expected full opacity at progress 0.5, got %v", got)
	}
	if got := strategy.Transform(0.75, testGeom).Opacity; got != 1 {
		t.Errorf("Expected full opacity at progress 0.75, got %v", got)
	}
}

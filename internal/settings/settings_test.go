// internal/settings/settings_test.go
package settings

import "testing"

// TestDefaultIsFullyPopulated verifies the default record has no zero-value
// holes apart from the intentionally empty model.
func TestDefaultIsFullyPopulated(t *testing.T) {
	s := Default()
	if s.Model != "" {
		t.Fatalf("default model should be empty until bootstrapped, got %q", s.Model)
	}
	if s.Temperature <= 0 || s.Temperature > MaxTemperature {
		t.Fatalf("default temperature out of range: %v", s.Temperature)
	}
	if s.TopP <= 0 || s.TopP > MaxTopP {
		t.Fatalf("default topP out of range: %v", s.TopP)
	}
	if s.NumCtx <= 0 {
		t.Fatalf("default numCtx must be positive, got %d", s.NumCtx)
	}
	if s.Ready() {
		t.Fatal("record without a model must not be ready")
	}
	if !s.WithModel("llama3").Ready() {
		t.Fatal("record with a model must be ready")
	}
}

// TestWithersReplaceExactlyOneField checks that each field constructor
// returns a new record with only its field changed.
func TestWithersReplaceExactlyOneField(t *testing.T) {
	base := Default().WithModel("llama3")

	got := base.WithTemperature(1.2)
	if got.Temperature != 1.2 {
		t.Fatalf("temperature not applied: %v", got.Temperature)
	}
	if got.WithTemperature(base.Temperature) != base {
		t.Fatal("WithTemperature changed more than one field")
	}

	got = base.WithTopP(0.5)
	if got.TopP != 0.5 {
		t.Fatalf("topP not applied: %v", got.TopP)
	}
	if got.WithTopP(base.TopP) != base {
		t.Fatal("WithTopP changed more than one field")
	}

	got = base.WithSeed(7)
	if got.Seed != 7 || got.WithSeed(base.Seed) != base {
		t.Fatalf("WithSeed mismatch: %+v", got)
	}

	got = base.WithNumCtx(8192)
	if got.NumCtx != 8192 || got.WithNumCtx(base.NumCtx) != base {
		t.Fatalf("WithNumCtx mismatch: %+v", got)
	}

	got = base.WithUseFixedSeed(true)
	if !got.UseFixedSeed || got.Seed != base.Seed {
		t.Fatalf("WithUseFixedSeed must not touch the seed: %+v", got)
	}
}

// TestClamping covers the temperature and topP domains plus numCtx fallback.
func TestClamping(t *testing.T) {
	s := Default()
	if got := s.WithTemperature(5).Temperature; got != MaxTemperature {
		t.Fatalf("temperature not clamped high: %v", got)
	}
	if got := s.WithTemperature(-1).Temperature; got != MinTemperature {
		t.Fatalf("temperature not clamped low: %v", got)
	}
	if got := s.WithTopP(2).TopP; got != MaxTopP {
		t.Fatalf("topP not clamped high: %v", got)
	}
	if got := s.WithTopP(-0.1).TopP; got != MinTopP {
		t.Fatalf("topP not clamped low: %v", got)
	}
	if got := s.WithNumCtx(-4).NumCtx; got != defaultNumCtx {
		t.Fatalf("non-positive numCtx should fall back, got %d", got)
	}

	dirty := Settings{Model: "m", Temperature: 9, TopP: -2, Seed: 1}
	clean := dirty.Clamped()
	if clean.Temperature != MaxTemperature || clean.TopP != MinTopP || clean.NumCtx != defaultNumCtx {
		t.Fatalf("Clamped did not normalize: %+v", clean)
	}
	if clean.Model != "m" || clean.Seed != 1 {
		t.Fatalf("Clamped touched non-numeric fields: %+v", clean)
	}
}

// TestOptionsSeedGating verifies seed appears in the request payload only
// while the fixed-seed flag is on, yet stays in the record either way.
func TestOptionsSeedGating(t *testing.T) {
	s := Default().WithModel("llama3").WithSeed(1234)

	opts := s.Options()
	if _, ok := opts["seed"]; ok {
		t.Fatal("seed must be omitted while useFixedSeed is false")
	}
	if s.Seed != 1234 {
		t.Fatalf("seed must be preserved in the record, got %d", s.Seed)
	}

	opts = s.WithUseFixedSeed(true).Options()
	if got, ok := opts["seed"]; !ok || got != 1234 {
		t.Fatalf("expected seed 1234 in options, got %v (present=%v)", got, ok)
	}
	if opts["temperature"] != s.Temperature || opts["top_p"] != s.TopP || opts["num_ctx"] != s.NumCtx {
		t.Fatalf("options payload mismatch: %+v", opts)
	}
}

// TestParsers exercises the text-input coercion helpers.
func TestParsers(t *testing.T) {
	if v, err := ParseTemperature(" 1.5 "); err != nil || v != 1.5 {
		t.Fatalf("ParseTemperature: v=%v err=%v", v, err)
	}
	if v, err := ParseTemperature("99"); err != nil || v != MaxTemperature {
		t.Fatalf("ParseTemperature should clamp: v=%v err=%v", v, err)
	}
	if _, err := ParseTemperature("warm"); err == nil {
		t.Fatal("ParseTemperature should reject non-numeric input")
	}
	if v, err := ParseTopP("0.25"); err != nil || v != 0.25 {
		t.Fatalf("ParseTopP: v=%v err=%v", v, err)
	}
	if _, err := ParseTopP(""); err == nil {
		t.Fatal("ParseTopP should reject empty input")
	}
	if v, err := ParseInt("4096"); err != nil || v != 4096 {
		t.Fatalf("ParseInt: v=%v err=%v", v, err)
	}
	if _, err := ParseInt("4k"); err == nil {
		t.Fatal("ParseInt should reject non-numeric input")
	}
}

// internal/settings/settings.go
// Package settings defines the generation-parameter record edited by the
// settings panel and pushed to its owner.
package settings

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinTemperature and MaxTemperature bound the sampling temperature.
	MinTemperature = 0.0
	MaxTemperature = 2.0
	// MinTopP and MaxTopP bound nucleus sampling.
	MinTopP = 0.0
	MaxTopP = 1.0
	// defaultNumCtx is the context window applied when none is configured.
	defaultNumCtx = 2048
)

// Settings is the full generation-parameter record. It is a plain value:
// every edit produces a whole new record, observers never see a partial
// update, and two records compare with ==.
type Settings struct {
	Model        string  `json:"model"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"topP"`
	UseFixedSeed bool    `json:"useFixedSeed"`
	Seed         int     `json:"seed"`
	NumCtx       int     `json:"numCtx"`
}

// Default returns the record used when no initial settings are supplied.
// Model stays empty until the panel bootstraps it from the host's model list.
func Default() Settings {
	return Settings{
		Model:        "",
		Temperature:  0.8,
		TopP:         0.9,
		UseFixedSeed: false,
		Seed:         42,
		NumCtx:       defaultNumCtx,
	}
}

// Ready reports whether the record can be used for generation.
func (s Settings) Ready() bool {
	return strings.TrimSpace(s.Model) != ""
}

// WithModel returns a copy of the record with the model replaced.
func (s Settings) WithModel(model string) Settings {
	s.Model = model
	return s
}

// WithTemperature returns a copy with the temperature replaced, clamped to
// its valid domain.
func (s Settings) WithTemperature(t float64) Settings {
	s.Temperature = clampFloat(t, MinTemperature, MaxTemperature)
	return s
}

// WithTopP returns a copy with topP replaced, clamped to its valid domain.
func (s Settings) WithTopP(p float64) Settings {
	s.TopP = clampFloat(p, MinTopP, MaxTopP)
	return s
}

// WithUseFixedSeed returns a copy with the fixed-seed flag replaced. The
// stored seed is untouched either way.
func (s Settings) WithUseFixedSeed(enabled bool) Settings {
	s.UseFixedSeed = enabled
	return s
}

// WithSeed returns a copy with the seed replaced.
func (s Settings) WithSeed(seed int) Settings {
	s.Seed = seed
	return s
}

// WithNumCtx returns a copy with the context window replaced. Non-positive
// values fall back to the default window.
func (s Settings) WithNumCtx(n int) Settings {
	if n <= 0 {
		n = defaultNumCtx
	}
	s.NumCtx = n
	return s
}

// Clamped returns a fully populated copy of the record with every numeric
// field forced into its valid domain. Used to normalize records read from
// configuration files.
func (s Settings) Clamped() Settings {
	out := s
	out.Temperature = clampFloat(s.Temperature, MinTemperature, MaxTemperature)
	out.TopP = clampFloat(s.TopP, MinTopP, MaxTopP)
	if out.NumCtx <= 0 {
		out.NumCtx = defaultNumCtx
	}
	return out
}

// Options returns the record as an Ollama "options" request payload. Seed
// is included only while the fixed-seed flag is on; the stored value is
// still preserved in the record itself.
func (s Settings) Options() map[string]any {
	options := map[string]any{
		"temperature": s.Temperature,
		"top_p":       s.TopP,
		"num_ctx":     s.NumCtx,
	}
	if s.UseFixedSeed {
		options["seed"] = s.Seed
	}
	return options
}

// ParseTemperature coerces text-input content into a clamped temperature.
func ParseTemperature(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid temperature %q", text)
	}
	return clampFloat(v, MinTemperature, MaxTemperature), nil
}

// ParseTopP coerces text-input content into a clamped topP.
func ParseTopP(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid top_p %q", text)
	}
	return clampFloat(v, MinTopP, MaxTopP), nil
}

// ParseInt coerces text-input content for seed and numCtx fields.
func ParseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", text)
	}
	return v, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package ramp

import (
	"fmt"
	"math"

	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/config"
)

// Ramp holds the nine tints and shades of a base color, lightest first
type Ramp [Count]color.Color

// At returns the color at step s; s must be valid
func (r Ramp) At(s Step) color.Color {
	return r[s.Index()]
}

// Curve parameterises the lightness ramp
type Curve struct {
	Lightest float64
	Darkest  float64
	Headroom float64
	Gamma    float64
}

// DefaultCurve returns the built-in curve parameters
func DefaultCurve() Curve {
	return Curve{
		Lightest: config.Lightest,
		Darkest:  config.Darkest,
		Headroom: config.Headroom,
		Gamma:    config.Gamma,
	}
}

// CurveFromConfig reads curve parameters from the ramp config section
func CurveFromConfig(cfg *config.Config) Curve {
	return Curve{
		Lightest: cfg.Ramp.Lightest,
		Darkest:  cfg.Ramp.Darkest,
		Headroom: cfg.Ramp.Headroom,
		Gamma:    cfg.Ramp.Gamma,
	}
}

// Lightness returns the HSL lightness of every step for a base lightness l0 placed at index base.
// The value at base is l0 and the sequence is strictly decreasing unless l0 sits at 0 or 1.
func (c Curve) Lightness(l0 float64, base int) [Count]float64 {
	var out [Count]float64

	top := math.Max(c.Lightest, l0+(1-l0)*c.Headroom)
	bottom := math.Min(c.Darkest, l0*(1-c.Headroom))

	for i := range out {
		switch {
		case i < base:
			t := float64(base-i) / float64(base)
			out[i] = l0 + (top-l0)*c.ease(t)
		case i > base:
			t := float64(i-base) / float64(Count-1-base)
			out[i] = l0 - (l0-bottom)*c.ease(t)
		default:
			out[i] = l0
		}
	}

	return out
}

func (c Curve) ease(t float64) float64 {
	if c.Gamma == 1 {
		return t
	}

	return math.Pow(t, c.Gamma)
}

// Generator derives a ramp from a base color anchored at a step
type Generator interface {
	Generate(base color.Color, step Step) (Ramp, error)
}

type generator struct {
	curve Curve
}

// NewGenerator creates a generator using the configured curve
func NewGenerator(cfg *config.Config) Generator {
	return NewGeneratorWithCurve(CurveFromConfig(cfg))
}

// NewGeneratorWithCurve creates a generator with explicit curve parameters
func NewGeneratorWithCurve(curve Curve) Generator {
	return &generator{curve: curve}
}

// Generate holds hue and saturation constant and moves HSL lightness along the curve.
// The base step carries the input color unchanged; alpha is copied to every step.
func (g *generator) Generate(base color.Color, step Step) (Ramp, error) {
	var r Ramp

	if !step.Valid() {
		return r, fmt.Errorf("%w: %d (must be one of 100, 200, ..., 900)", errors.ErrInvalidStep, int(step))
	}

	h, s, l0 := base.HSL()
	anchor := step.Index()
	lightness := g.curve.Lightness(l0, anchor)

	for i := range r {
		if i == anchor {
			r[i] = base
			continue
		}

		r[i] = color.FromHSL(h, s, lightness[i], base.A)
	}

	return r, nil
}

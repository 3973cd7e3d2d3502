package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"lunatint/internal/app/errors"
)

// Opaque is the alpha value of a fully opaque color
const Opaque uint8 = 255

// Color is an 8-bit RGBA value. Hex output is always uppercase.
type Color struct {
	R, G, B, A uint8
}

// New returns an opaque color from its channels
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: Opaque}
}

// Parse parses #RGB, #RRGGBB, #RRGGBBAA (the # is optional), rgb(r, g, b) and rgba(r, g, b, a)
func Parse(s string) (Color, error) {
	value := strings.ToLower(strings.TrimSpace(s))

	var (
		c   Color
		err error
	)

	switch {
	case value == "":
		err = fmt.Errorf("empty value")
	case strings.HasPrefix(value, "rgb"):
		c, err = parseFunctional(value)
	default:
		c, err = parseHex(value)
	}

	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %s", errors.ErrInvalidColor, s, err)
	}

	return c, nil
}

// MustParse is like Parse but panics on error; intended for constants and tests
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

func parseHex(value string) (Color, error) {
	digits := strings.TrimPrefix(value, "#")

	switch len(digits) {
	case 3:
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("expected 3, 6 or 8 hex digits, got %d", len(digits))
	}

	channels := make([]uint8, 0, 4)

	for i := 0; i < len(digits); i += 2 {
		v, err := strconv.ParseUint(digits[i:i+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("bad hex digits %q", digits[i:i+2])
		}

		channels = append(channels, uint8(v))
	}

	c := New(channels[0], channels[1], channels[2])
	if len(channels) == 4 {
		c.A = channels[3]
	}

	return c, nil
}

func parseFunctional(value string) (Color, error) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return Color{}, fmt.Errorf("malformed function")
	}

	fn := strings.TrimSpace(value[:open])
	args := strings.Split(value[open+1:len(value)-1], ",")

	var want int

	switch fn {
	case "rgb":
		want = 3
	case "rgba":
		want = 4
	default:
		return Color{}, fmt.Errorf("unknown function %s()", fn)
	}

	if len(args) != want {
		return Color{}, fmt.Errorf("%s() takes %d arguments, got %d", fn, want, len(args))
	}

	channels := make([]uint8, 3)

	for i := range channels {
		v, err := strconv.Atoi(strings.TrimSpace(args[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %q out of range [0, 255]", strings.TrimSpace(args[i]))
		}

		channels[i] = uint8(v)
	}

	c := New(channels[0], channels[1], channels[2])

	if len(args) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(args[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("alpha %q out of range [0, 1]", strings.TrimSpace(args[3]))
		}

		c.A = uint8(math.Round(a * 255))
	}

	return c, nil
}

// Hex returns #RRGGBB, or #RRGGBBAA when the color is not opaque
func (c Color) Hex() string {
	return "#" + c.HexBare()
}

// HexBare returns the hex form without the leading #
func (c Color) HexBare() string {
	if c.A == Opaque {
		return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
	}

	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// HSL returns hue in [0, 360) and saturation and lightness in [0, 1]
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// Lightness returns the HSL lightness in [0, 1]
func (c Color) Lightness() float64 {
	_, _, l := c.HSL()
	return l
}

// FromHSL builds a color from HSL components, clamping out of gamut values
func FromHSL(h, s, l float64, alpha uint8) Color {
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: alpha}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.NRGBA{
	"white":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":       {A: 0xff},
	"red":         {R: 0xff, A: 0xff},
	"green":       {G: 0x80, A: 0xff},
	"blue":        {B: 0xff, A: 0xff},
	"gray":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":        {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"purple":      {R: 0x80, B: 0x80, A: 0xff},
	"transparent": {},
}

// ParseColor understands the CSS color forms the wheel and overlay styles use:
// #rgb, #rrggbb, rgb(r,g,b), rgba(r,g,b,a) and a few names.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	for _, fn := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, fn) && strings.HasSuffix(s, ")") {
			return parseRGBFunc(s[len(fn):len(s)-1], fn == "rgba(")
		}
	}
	return color.NRGBA{}, fmt.Errorf("parse color %q: unsupported form", s)
}

func parseRGBFunc(args string, withAlpha bool) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, fmt.Errorf("parse color: want %d components, got %d", want, len(parts))
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color component %q: %w", parts[i], err)
		}
		ch[i] = math.Max(0, math.Min(255, v)) / 255
	}
	alpha := 1.0
	if withAlpha {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parse alpha %q: %w", parts[3], err)
		}
		alpha = math.Max(0, math.Min(1, v))
	}
	r, g, b := colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}, nil
}

// MustParseColor is ParseColor for constant style values.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithOpacity scales the alpha of c by opacity in [0, 1].
func WithOpacity(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	opacity = math.Max(0, math.Min(1, opacity))
	n.A = uint8(math.Round(float64(n.A) * opacity))
	return n
}

// colorCache memoizes parsed style colors; unknown colors fall back to black.
type colorCache struct {
	colors map[string]color.NRGBA
	onBad  func(s string, err error)
}

func (c *colorCache) get(s string) color.NRGBA {
	if v, ok := c.colors[s]; ok {
		return v
	}
	if c.colors == nil {
		c.colors = make(map[string]color.NRGBA)
	}
	v, err := ParseColor(s)
	if err != nil {
		v = color.NRGBA{A: 0xff}
		if c.onBad != nil {
			c.onBad(s, err)
		}
	}
	c.colors[s] = v
	return v
}

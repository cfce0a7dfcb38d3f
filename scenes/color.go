package scenes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ParseColor accepts #rrggbb, #rrggbbaa (the # is optional) or an SVG
// colour name such as "lightsteelblue".
func ParseColor(s string) (color.NRGBA, error) {
	raw := strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(raw)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}

	hex := strings.TrimPrefix(raw, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		return uint8(v), nil
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(hex) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// FormatColor renders c as #rrggbb, or #rrggbbaa when not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: color must be a string (line %d)", ErrMalformedColor, value.Line)
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return FormatColor(c.NRGBA), nil
}

package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/gravityballs/common"
	"gopkg.in/yaml.v3"
)

// ParseVector reads text like "(200 , 200)": two numbers split by a comma,
// optionally wrapped in parentheses. Exponents such as 1.5e3 are accepted.
// Anything else left over is an error, never silently dropped.
func ParseVector(text string) (common.Vector2, error) {
	s := strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(s, "("); ok {
		before, ok := strings.CutSuffix(after, ")")
		if !ok {
			return common.Vector2{}, fmt.Errorf("%w: %q", ErrMalformedVector, text)
		}
		s = before
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return common.Vector2{}, fmt.Errorf("%w: %q", ErrMalformedVector, text)
	}

	var xy [2]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !common.IsFinite(v) {
			return common.Vector2{}, fmt.Errorf("%w: %q", ErrMalformedVector, text)
		}
		xy[i] = v
	}
	return common.Vec(xy[0], xy[1]), nil
}

// FormatVector is the inverse of ParseVector.
func FormatVector(v common.Vector2) string {
	return fmt.Sprintf("(%s , %s)", formatFloat(v.X), formatFloat(v.Y))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// YAMLVector decodes from [x, y], {x: .., y: ..} or "(x , y)".
type YAMLVector struct {
	common.Vector2
}

func (v *YAMLVector) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedVector, value.Line, err)
		}
		if len(xy) != 2 {
			return fmt.Errorf("%w: line %d has %d components", ErrMalformedVector, value.Line, len(xy))
		}
		v.Vector2 = common.Vec(xy[0], xy[1])
	case yaml.MappingNode:
		var xy common.Vector2
		if err := value.Decode(&xy); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrMalformedVector, value.Line, err)
		}
		v.Vector2 = xy
	case yaml.ScalarNode:
		parsed, err := ParseVector(value.Value)
		if err != nil {
			return err
		}
		v.Vector2 = parsed
	default:
		return fmt.Errorf("%w: line %d", ErrMalformedVector, value.Line)
	}
	return nil
}

func (v YAMLVector) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: formatFloat(v.X)},
			{Kind: yaml.ScalarNode, Value: formatFloat(v.Y)},
		},
	}, nil
}

package scenes

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gravityballs/physics"
	"gopkg.in/yaml.v3"
)

// GeneratorSpec names a tengo script that appends bodies to a scene. The
// script sees `params`, `g` and `dt` and must leave an array of body maps in
// `bodies`, using the same keys as a scene file.
type GeneratorSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params,omitempty"`
}

func RunGenerator(g GeneratorSpec, cfg physics.Config) ([]BodySpec, error) {
	src, err := LoadScript(g.Script)
	if err != nil {
		return nil, fmt.Errorf("generator %s: %w", g.Script, err)
	}

	script, err := newGeneratorScript(src, g.Params, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator %s: %w", g.Script, err)
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("generator %s: %w", g.Script, err)
	}

	raw := compiled.Get("bodies").Array()
	out := make([]BodySpec, 0, len(raw))
	for i, item := range raw {
		spec, err := decodeBodySpec(item)
		if err != nil {
			return nil, fmt.Errorf("generator %s: body %d: %w", g.Script, i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

func newGeneratorScript(src []byte, params map[string]any, cfg physics.Config) (*tengo.Script, error) {
	if params == nil {
		params = map[string]any{}
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("params", params); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	_ = script.Add("g", cfg.G)
	_ = script.Add("dt", cfg.DeltaTime())
	_ = script.Add("bodies", []any{})
	return script, nil
}

// decodeBodySpec round-trips a loosely typed value through YAML so script
// output gets the same decoding as scene files.
func decodeBodySpec(raw any) (BodySpec, error) {
	var out BodySpec
	if raw == nil {
		return out, fmt.Errorf("nil body")
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return out, err
	}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return out, err
	}
	return out, nil
}

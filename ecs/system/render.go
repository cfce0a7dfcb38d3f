package system

import (
	"image/color"
	"sort"

	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/ecs/component"
	"github.com/milk9111/gravityballs/physics"
)

// Canvas is a physics.Surface that can also draw lines and text.
type Canvas interface {
	physics.Surface
	StrokeLine(from, to common.Vector2, width float64, clr color.Color)
	DrawText(s string, at common.Vector2, clr color.Color)
}

type RenderSystem struct {
	ShowTrails bool
	ShowLabels bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowLabels: true}
}

type drawItem struct {
	entity ecs.Entity
	layer  int
	body   *component.Body
}

// Draw clears the canvas and paints every body once.
func (r *RenderSystem) Draw(w *ecs.World, c Canvas) {
	if r == nil || w == nil || c == nil {
		return
	}
	c.Clear()

	var items []drawItem
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		layer := 0
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		items = append(items, drawItem{entity: e, layer: layer, body: b})
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].layer < items[j].layer
	})

	if r.ShowTrails {
		for _, it := range items {
			if tr, ok := ecs.Get(w, it.entity, component.TrailComponent.Kind()); ok {
				drawTrail(c, tr.Points, it.body.Color)
			}
		}
	}

	for _, it := range items {
		it.body.Draw(c)
	}

	if r.ShowLabels {
		for _, it := range items {
			at := it.body.Position.Add(common.Vec(it.body.Radius+2, -it.body.Radius-2))
			c.DrawText(it.body.Name, at, it.body.NameColor)
		}
	}
}

func drawTrail(c Canvas, points []common.Vector2, base color.NRGBA) {
	n := len(points)
	for i := 1; i < n; i++ {
		fade := common.Lerp(0, float32(base.A), float32(i)/float32(n))
		clr := base
		clr.A = uint8(fade)
		c.StrokeLine(points[i-1], points[i], 1, clr)
	}
}

package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/ecs/component"
)

const defaultPickSlop = 4.0

// Picker answers "which body is under this point" by mirroring bodies as
// circle shapes in a Chipmunk space. The space is never stepped.
type Picker struct {
	Slop float64

	space  *cp.Space
	shapes int
}

func NewPicker() *Picker {
	return &Picker{Slop: defaultPickSlop, space: cp.NewSpace()}
}

// Sync rebuilds the shape index from the current body positions.
func (p *Picker) Sync(w *ecs.World) {
	if p == nil {
		return
	}
	p.space = cp.NewSpace()
	p.shapes = 0
	ecs.ForEach(w, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		shape := cp.NewCircle(p.space.StaticBody, b.Radius, cp.Vector{X: b.Position.X, Y: b.Position.Y})
		shape.UserData = e
		p.space.AddShape(shape)
		p.shapes++
	})
}

func (p *Picker) Len() int {
	if p == nil {
		return 0
	}
	return p.shapes
}

// Pick returns the body nearest to at within Slop of its edge.
func (p *Picker) Pick(at common.Vector2) (ecs.Entity, bool) {
	if p == nil || p.space == nil || p.shapes == 0 {
		return 0, false
	}
	info := p.space.PointQueryNearest(cp.Vector{X: at.X, Y: at.Y}, p.Slop, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	e, ok := info.Shape.UserData.(ecs.Entity)
	return e, ok
}

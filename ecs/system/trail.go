package system

import (
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/ecs/component"
)

// TrailSystem records each body's position after the gravity step.
type TrailSystem struct {
	Enabled bool
}

func NewTrailSystem() *TrailSystem {
	return &TrailSystem{}
}

func (ts *TrailSystem) Update(w *ecs.World) {
	if ts == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.BodyComponent.Kind(), component.TrailComponent.Kind(), func(_ ecs.Entity, b *component.Body, tr *component.Trail) {
		if !ts.Enabled {
			if len(tr.Points) > 0 {
				tr.Reset()
			}
			return
		}
		tr.Push(b.Position)
	})
}

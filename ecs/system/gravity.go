package system

import (
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/ecs/component"
	"github.com/milk9111/gravityballs/physics"
)

// GravitySystem advances every body by one tick.
type GravitySystem struct {
	Config physics.Config

	// LastPairs is the number of pairwise attractions in the latest tick.
	LastPairs int

	scratch []*physics.Body
}

func NewGravitySystem(cfg physics.Config) *GravitySystem {
	return &GravitySystem{Config: cfg}
}

func (g *GravitySystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	g.scratch = g.scratch[:0]
	ecs.ForEach(w, component.BodyComponent.Kind(), func(_ ecs.Entity, b *component.Body) {
		g.scratch = append(g.scratch, b)
	})
	g.LastPairs = physics.Step(g.scratch, g.Config)
	clear(g.scratch)
}

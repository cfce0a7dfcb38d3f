package sim

import (
	"fmt"
	"sync"

	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/ecs/component"
	"github.com/milk9111/gravityballs/ecs/system"
	"github.com/milk9111/gravityballs/physics"
	"github.com/milk9111/gravityballs/scenes"
)

// Simulation owns the body collection. Its methods are the only way to
// mutate it and are safe to call from multiple goroutines.
type Simulation struct {
	mu sync.Mutex

	name  string
	cfg   physics.Config
	world *ecs.World
	sched *ecs.Scheduler
	ticks uint64

	gravity *system.GravitySystem
	trails  *system.TrailSystem
	render  *system.RenderSystem
	picker  *system.Picker
}

// StepStats describes one completed tick.
type StepStats struct {
	Tick   uint64
	Bodies int
	Pairs  int
}

func New(cfg physics.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:     cfg,
		world:   ecs.NewWorld(),
		gravity: system.NewGravitySystem(cfg),
		trails:  system.NewTrailSystem(),
		render:  system.NewRenderSystem(),
		picker:  system.NewPicker(),
	}
	s.sched = ecs.NewScheduler(s.gravity, s.trails)
	return s, nil
}

// FromScene builds a simulation holding the bodies of scene.
func FromScene(scene scenes.Scene) (*Simulation, error) {
	cfg, spawns, err := scene.Build()
	if err != nil {
		return nil, err
	}
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	s.name = scene.Name
	for _, sp := range spawns {
		s.addLocked(*sp.Body, sp.Layer)
	}
	s.world.Events().Drain()
	return s, nil
}

// Load replaces config and bodies with those of scene. On error the
// simulation is left untouched.
func (s *Simulation) Load(scene scenes.Scene) error {
	cfg, spawns, err := scene.Build()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = scene.Name
	s.cfg = cfg
	s.gravity.Config = cfg
	ecs.Clear(s.world)
	for _, sp := range spawns {
		s.addLocked(*sp.Body, sp.Layer)
	}
	s.ticks = 0
	s.world.Events().Push(ecs.Event{Type: ecs.EventReloaded, Data: scene.Name})
	return nil
}

// AddBody validates b and appends a copy of it to the simulation.
func (s *Simulation) AddBody(b physics.Body) (ecs.Entity, error) {
	return s.AddBodyOnLayer(b, 0)
}

func (s *Simulation) AddBodyOnLayer(b physics.Body, layer int) (ecs.Entity, error) {
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("sim: add body: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(b, layer), nil
}

func (s *Simulation) addLocked(b physics.Body, layer int) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	body := b
	// Kinds are package-level and e was just created, so Add cannot fail.
	_ = ecs.Add(s.world, e, component.BodyComponent.Kind(), &body)
	_ = ecs.Add(s.world, e, component.TrailComponent.Kind(), &component.Trail{})
	if layer != 0 {
		_ = ecs.Add(s.world, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
	}
	s.world.Events().Push(ecs.Event{Type: ecs.EventBodyAdded, Data: body.Name})
	return e
}

// Clear removes every body and returns how many there were.
func (s *Simulation) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := ecs.Clear(s.world)
	s.world.Events().Push(ecs.Event{Type: ecs.EventCleared, Data: n})
	return n
}

// Step runs one tick: all pairwise attractions, then all positions.
func (s *Simulation) Step() StepStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Update(s.world)
	s.ticks++
	return StepStats{Tick: s.ticks, Bodies: s.lenLocked(), Pairs: s.gravity.LastPairs}
}

// Bodies returns copies of every body in insertion order.
func (s *Simulation) Bodies() []physics.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]physics.Body, 0, s.lenLocked())
	ecs.ForEach(s.world, component.BodyComponent.Kind(), func(_ ecs.Entity, b *component.Body) {
		out = append(out, *b)
	})
	return out
}

func (s *Simulation) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lenLocked()
}

func (s *Simulation) lenLocked() int {
	return len(ecs.Entities(s.world))
}

func (s *Simulation) Config() physics.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Simulation) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *Simulation) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulation) SetTrails(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trails.Enabled = on
	s.render.ShowTrails = on
}

func (s *Simulation) Trails() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trails.Enabled
}

func (s *Simulation) SetLabels(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render.ShowLabels = on
}

// Draw repaints every body onto c.
func (s *Simulation) Draw(c system.Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.render.Draw(s.world, c)
}

// BodyAt returns a copy of the body under p, if any.
func (s *Simulation) BodyAt(p common.Vector2) (physics.Body, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picker.Sync(s.world)
	e, ok := s.picker.Pick(p)
	if !ok {
		return physics.Body{}, false
	}
	b, ok := ecs.Get(s.world, e, component.BodyComponent.Kind())
	if !ok {
		return physics.Body{}, false
	}
	return *b, true
}

// DrainEvents returns the add/clear/reload events since the last call.
func (s *Simulation) DrainEvents() []ecs.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Events().Drain()
}

// Snapshot encodes the current state as a scene file. Bodies, layers, name
// and config are read under one lock so they always belong together.
func (s *Simulation) Snapshot() ([]byte, error) {
	s.mu.Lock()
	spawns := make([]scenes.Spawn, 0, s.lenLocked())
	ecs.ForEach(s.world, component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Body) {
		body := *b
		layer := 0
		if l, ok := ecs.Get(s.world, e, component.RenderLayerComponent.Kind()); ok {
			layer = l.Index
		}
		spawns = append(spawns, scenes.Spawn{Body: &body, Layer: layer})
	})
	scene := scenes.FromBodies(s.name, s.cfg, spawns)
	s.mu.Unlock()
	return scene.Marshal()
}

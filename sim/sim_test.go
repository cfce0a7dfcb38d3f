package sim

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/physics"
	"github.com/milk9111/gravityballs/scenes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(physics.DefaultConfig())
	require.NoError(t, err)
	return s
}

func body(pos, vel common.Vector2, mass, radius float64) physics.Body {
	return physics.Body{
		Position: pos,
		Velocity: vel,
		Mass:     mass,
		Radius:   radius,
		Name:     physics.DefaultName,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// lineScene places n unit bodies 10 apart along the x axis.
func lineScene(name string, ups, n int) scenes.Scene {
	scene := scenes.Scene{Name: name, Config: &scenes.ConfigSpec{UpdatesPerSecond: intPtr(ups)}}
	for i := 0; i < n; i++ {
		scene.Bodies = append(scene.Bodies, scenes.BodySpec{
			Position: scenes.YAMLVector{Vector2: common.Vec(float64(i)*10, 0)},
			Mass:     1,
			Radius:   1,
			Layer:    i,
		})
	}
	return scene
}

type countingCanvas struct {
	clears, circles, lines, texts int
}

func (c *countingCanvas) Clear()                                                   { c.clears++ }
func (c *countingCanvas) FillCircle(common.Vector2, float64, color.Color)          { c.circles++ }
func (c *countingCanvas) StrokeLine(_, _ common.Vector2, _ float64, _ color.Color) { c.lines++ }
func (c *countingCanvas) DrawText(string, common.Vector2, color.Color)             { c.texts++ }

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := physics.DefaultConfig()
	cfg.UpdatesPerSecond = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, physics.ErrInvalidConfig)
}

func TestAddBodyValidation(t *testing.T) {
	cases := []struct {
		name string
		b    physics.Body
		err  error
	}{
		{"zero mass", body(common.Zero(), common.Zero(), 0, 1), physics.ErrInvalidMass},
		{"negative mass", body(common.Zero(), common.Zero(), -5, 1), physics.ErrInvalidMass},
		{"negative radius", body(common.Zero(), common.Zero(), 1, -1), physics.ErrInvalidRadius},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newSim(t)
			_, err := s.AddBody(c.b)
			assert.ErrorIs(t, err, c.err)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestSingleBodyAdvancesByVelocity(t *testing.T) {
	s := newSim(t)
	_, err := s.AddBody(body(common.Vec(10, 10), common.Vec(1, 2), 1, 1))
	require.NoError(t, err)

	stats := s.Step()
	assert.Equal(t, 0, stats.Pairs)
	assert.Equal(t, 1, stats.Bodies)
	assert.Equal(t, uint64(1), stats.Tick)

	bodies := s.Bodies()
	require.Len(t, bodies, 1)
	assert.Equal(t, common.Vec(11, 12), bodies[0].Position)
}

func TestStepCountsPairs(t *testing.T) {
	s := newSim(t)
	for i := 0; i < 4; i++ {
		_, err := s.AddBody(body(common.Vec(float64(i)*100, 0), common.Zero(), 1e10, 1))
		require.NoError(t, err)
	}
	assert.Equal(t, 6, s.Step().Pairs)
}

func TestClear(t *testing.T) {
	scene, err := scenes.LoadScene("default")
	require.NoError(t, err)
	s, err := FromScene(scene)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	assert.Empty(t, s.DrainEvents())

	assert.Equal(t, 4, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Step().Pairs)
	assert.Empty(t, s.Bodies())

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventCleared, events[0].Type)
	assert.Equal(t, 4, events[0].Data)
}

func TestBodiesReturnsCopies(t *testing.T) {
	s := newSim(t)
	_, err := s.AddBody(body(common.Vec(1, 1), common.Zero(), 1, 1))
	require.NoError(t, err)

	got := s.Bodies()
	got[0].Position = common.Vec(99, 99)
	assert.Equal(t, common.Vec(1, 1), s.Bodies()[0].Position)
}

func TestAddBodyCopiesInput(t *testing.T) {
	s := newSim(t)
	b := body(common.Vec(1, 1), common.Zero(), 1, 1)
	_, err := s.AddBody(b)
	require.NoError(t, err)
	b.Position = common.Vec(50, 50)
	assert.Equal(t, common.Vec(1, 1), s.Bodies()[0].Position)

	events := s.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventBodyAdded, events[0].Type)
}

func TestLoad(t *testing.T) {
	s := newSim(t)
	_, err := s.AddBody(body(common.Zero(), common.Zero(), 1, 1))
	require.NoError(t, err)
	s.Step()

	scene := scenes.Scene{
		Name:   "pair",
		Config: &scenes.ConfigSpec{UpdatesPerSecond: intPtr(30)},
		Bodies: []scenes.BodySpec{
			{Name: "a", Position: scenes.YAMLVector{Vector2: common.Vec(0, 0)}, Mass: 1, Radius: 1},
			{Name: "b", Position: scenes.YAMLVector{Vector2: common.Vec(10, 0)}, Mass: 1, Radius: 1, Layer: 2},
		},
	}
	require.NoError(t, s.Load(scene))
	assert.Equal(t, "pair", s.Name())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 30, s.Config().UpdatesPerSecond)
	assert.Equal(t, uint64(0), s.Ticks())

	bad := scene
	bad.Bodies = []scenes.BodySpec{{Mass: 0, Radius: 1}}
	assert.ErrorIs(t, s.Load(bad), physics.ErrInvalidMass)
	assert.Equal(t, "pair", s.Name())
	assert.Equal(t, 2, s.Len())
}

func TestSnapshot(t *testing.T) {
	scene, err := scenes.LoadScene("default")
	require.NoError(t, err)
	s, err := FromScene(scene)
	require.NoError(t, err)
	s.Step()

	data, err := s.Snapshot()
	require.NoError(t, err)
	restored, err := scenes.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "default", restored.Name)

	s2, err := FromScene(restored)
	require.NoError(t, err)
	assert.Equal(t, s.Config(), s2.Config())
	want, got := s.Bodies(), s2.Bodies()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].Position.X, got[i].Position.X, 1e-6)
		assert.InDelta(t, want[i].Position.Y, got[i].Position.Y, 1e-6)
		assert.InDelta(t, want[i].Velocity.X, got[i].Velocity.X, 1e-6)
		assert.InDelta(t, want[i].Velocity.Y, got[i].Velocity.Y, 1e-6)
		assert.Equal(t, want[i].Mass, got[i].Mass)
		assert.Equal(t, want[i].Color, got[i].Color)
	}
}

func TestSnapshotKeepsLayersAndZeroConfig(t *testing.T) {
	scene := lineScene("layered", 60, 3)
	scene.Config.ForceMultiplier = floatPtr(0)
	scene.Config.MinSeparation = floatPtr(0)
	s, err := FromScene(scene)
	require.NoError(t, err)

	data, err := s.Snapshot()
	require.NoError(t, err)
	restored, err := scenes.Parse(data)
	require.NoError(t, err)

	require.Len(t, restored.Bodies, 3)
	for i, b := range restored.Bodies {
		assert.Equal(t, i, b.Layer)
	}
	cfg, err := restored.ResolveConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.ForceMultiplier)
	assert.Equal(t, 0.0, cfg.MinSeparation)
	assert.Equal(t, s.Config(), cfg)
}

func TestSnapshotDuringLoad(t *testing.T) {
	one, two := lineScene("one", 30, 1), lineScene("two", 120, 2)
	s, err := FromScene(one)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			next := one
			if i%2 == 0 {
				next = two
			}
			assert.NoError(t, s.Load(next))
		}
	}()

	for i := 0; i < 200; i++ {
		data, err := s.Snapshot()
		require.NoError(t, err)
		snap, err := scenes.Parse(data)
		require.NoError(t, err)
		cfg, err := snap.ResolveConfig()
		require.NoError(t, err)
		switch snap.Name {
		case "one":
			assert.Len(t, snap.Bodies, 1)
			assert.Equal(t, 30, cfg.UpdatesPerSecond)
		case "two":
			assert.Len(t, snap.Bodies, 2)
			assert.Equal(t, 120, cfg.UpdatesPerSecond)
		default:
			assert.Failf(t, "unexpected scene", "got %q", snap.Name)
		}
	}
	<-done
}

func TestBodyAt(t *testing.T) {
	s := newSim(t)
	b := body(common.Vec(100, 100), common.Zero(), 1, 10)
	b.Name = "target"
	_, err := s.AddBody(b)
	require.NoError(t, err)

	got, ok := s.BodyAt(common.Vec(105, 100))
	require.True(t, ok)
	assert.Equal(t, "target", got.Name)

	_, ok = s.BodyAt(common.Vec(500, 500))
	assert.False(t, ok)
}

func TestDrawTrails(t *testing.T) {
	s := newSim(t)
	_, err := s.AddBody(body(common.Zero(), common.Vec(1, 0), 1, 1))
	require.NoError(t, err)

	s.SetTrails(true)
	assert.True(t, s.Trails())
	for i := 0; i < 3; i++ {
		s.Step()
	}
	c := &countingCanvas{}
	s.Draw(c)
	assert.Equal(t, 1, c.clears)
	assert.Equal(t, 1, c.circles)
	assert.Equal(t, 1, c.texts)
	assert.Equal(t, 2, c.lines)

	s.SetTrails(false)
	s.SetLabels(false)
	s.Step()
	c = &countingCanvas{}
	s.Draw(c)
	assert.Equal(t, 0, c.lines)
	assert.Equal(t, 0, c.texts)
}

func TestLoopTicksUntilStopped(t *testing.T) {
	s := newSim(t)
	_, err := s.AddBody(body(common.Zero(), common.Vec(1, 0), 1, 1))
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []uint64
	l := NewLoop(s, func(st StepStats) {
		mu.Lock()
		seen = append(seen, st.Tick)
		mu.Unlock()
	})
	assert.Equal(t, s.Config().Interval(), l.Interval())

	require.NoError(t, l.Start(context.Background()))
	assert.True(t, l.Running())
	assert.ErrorIs(t, l.Start(context.Background()), ErrLoopRunning)

	require.Eventually(t, func() bool { return s.Ticks() >= 3 }, 2*time.Second, 5*time.Millisecond)
	l.Stop()
	assert.False(t, l.Running())

	stopped := s.Ticks()
	time.Sleep(5 * l.Interval())
	assert.Equal(t, stopped, s.Ticks())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, int(stopped))
	for i, tick := range seen {
		assert.Equal(t, uint64(i+1), tick)
	}
}

func TestLoopFollowsLoadedRate(t *testing.T) {
	s, err := FromScene(lineScene("slow", 2, 1))
	require.NoError(t, err)
	l := NewLoop(s, nil)
	assert.Equal(t, 500*time.Millisecond, l.Interval())

	require.NoError(t, l.Start(context.Background()))
	defer l.Stop()

	require.NoError(t, s.Load(lineScene("fast", 200, 1)))
	assert.Equal(t, 5*time.Millisecond, l.Interval())

	// At the old rate this would take ten seconds.
	require.Eventually(t, func() bool { return s.Ticks() >= 20 }, 3*time.Second, 10*time.Millisecond)
}

func TestLoopRestart(t *testing.T) {
	s := newSim(t)
	l := NewLoop(s, nil)
	l.Stop()

	require.NoError(t, l.Start(context.Background()))
	l.Stop()
	require.NoError(t, l.Start(context.Background()))
	require.Eventually(t, func() bool { return s.Ticks() >= 1 }, 2*time.Second, 5*time.Millisecond)
	l.Stop()
}

func TestLoopContextCancel(t *testing.T) {
	s := newSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(s, nil)
	require.NoError(t, l.Start(ctx))
	cancel()
	l.Wait()
	assert.False(t, l.Running())
}

func TestConcurrentAccess(t *testing.T) {
	s := newSim(t)
	l := NewLoop(s, nil)
	require.NoError(t, l.Start(context.Background()))
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := s.AddBody(body(common.Vec(float64(i*100), float64(j*10)), common.Zero(), 1e8, 1))
				assert.NoError(t, err)
				_ = s.Bodies()
				_, _ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 80, s.Len())
	assert.Equal(t, 80, s.Clear())
}

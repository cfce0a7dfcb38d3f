package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/milk9111/gravityballs/physics"
	"github.com/milk9111/gravityballs/scenes"
	"github.com/milk9111/gravityballs/sim"
)

func main() {
	sceneName := flag.String("scene", "default", "scene name in scenes/ (basename, .yaml optional)")
	ticks := flag.Uint64("ticks", 600, "number of ticks to simulate")
	realtime := flag.Bool("realtime", false, "tick at the scene's update rate instead of as fast as possible")
	out := flag.String("out", "", "write the final snapshot here instead of stdout")
	verbose := flag.Bool("v", false, "log every tick")
	list := flag.Bool("list", false, "print the embedded scene names and exit")
	flag.Parse()

	if *list {
		for _, name := range scenes.Names() {
			fmt.Println(name)
		}
		return
	}

	scene, err := scenes.LoadScene(*sceneName)
	if err != nil {
		log.Fatal(err)
	}
	s, err := sim.FromScene(scene)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("sim: %s: %d bodies, %d ticks", scene.Name, s.Len(), *ticks)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *realtime {
		runRealtime(ctx, s, *ticks, *verbose)
	} else {
		for s.Ticks() < *ticks && ctx.Err() == nil {
			logTick(s.Step(), *verbose)
		}
	}

	px, py := momentum(s.Bodies())
	log.Printf("sim: stopped after %d ticks, momentum (%g, %g)", s.Ticks(), px, py)

	data, err := s.Snapshot()
	if err != nil {
		log.Fatal(err)
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(*out, data, 0o644)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runRealtime(ctx context.Context, s *sim.Simulation, ticks uint64, verbose bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sim.NewLoop(s, func(st sim.StepStats) {
		logTick(st, verbose)
		if st.Tick >= ticks {
			cancel()
		}
	})
	if ticks == 0 {
		return
	}
	if err := loop.Start(ctx); err != nil {
		log.Fatal(err)
	}
	loop.Wait()
}

func logTick(st sim.StepStats, verbose bool) {
	if verbose {
		log.Printf("sim: tick %d: %d bodies, %d pairs", st.Tick, st.Bodies, st.Pairs)
	}
}

func momentum(bodies []physics.Body) (float64, float64) {
	ptrs := make([]*physics.Body, len(bodies))
	for i := range bodies {
		ptrs[i] = &bodies[i]
	}
	return physics.TotalMomentum(ptrs)
}

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/ecs"
	"github.com/milk9111/gravityballs/physics"
	"github.com/milk9111/gravityballs/scenes"
	"github.com/milk9111/gravityballs/sim"
)

const statusFrames = 180

type Game struct {
	frames int

	sceneName string
	debug     bool
	paused    bool
	stepOnce  bool

	sim     *sim.Simulation
	canvas  *screenCanvas
	ui      *ebitenui.UI
	dialog  *addBodyDialog
	watcher *scenes.Watcher

	last         sim.StepStats
	status       string
	statusTTL    int
	hovered      physics.Body
	hoveredValid bool
}

func NewGame(sceneName string, debug bool) (*Game, error) {
	scene, err := scenes.LoadScene(sceneName)
	if err != nil {
		return nil, err
	}
	s, err := sim.FromScene(scene)
	if err != nil {
		return nil, err
	}
	log.Printf("scenes: loaded %s with %d bodies", scene.Name, s.Len())

	g := &Game{
		sceneName: sceneName,
		debug:     debug,
		sim:       s,
		canvas:    newScreenCanvas(),
	}
	g.ui, g.dialog = NewGameUI(g)
	return g, nil
}

// Watch reloads the current scene whenever a scene or script file in dir
// changes.
func (g *Game) Watch(dir string) error {
	dirs := []string{dir}
	if st, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && st.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "scripts"))
	}
	w, err := scenes.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	if mod, ok := scenes.ModTime(g.sceneName); ok {
		log.Printf("scenes: watching %s (modified %s)", g.sceneName, mod.Format(time.Kitchen))
	} else {
		log.Printf("scenes: %s is embedded only, copy it to %s to edit it live", g.sceneName, dir)
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("scenes: close watcher: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	g.frames++

	g.ui.Update()
	g.pollWatcher()

	if !g.typing() {
		g.handleKeys()
	}

	if !g.paused || g.stepOnce {
		g.last = g.sim.Step()
		g.stepOnce = false
	}

	for _, ev := range g.sim.DrainEvents() {
		g.onEvent(ev)
	}

	if g.debug {
		mx, my := ebiten.CursorPosition()
		g.hovered, g.hoveredValid = g.sim.BodyAt(common.Vec(float64(mx), float64(my)))
	}

	if g.statusTTL > 0 {
		g.statusTTL--
	}
	return nil
}

// typing reports whether a dialog text field owns the keyboard.
func (g *Game) typing() bool {
	if g.dialog.IsOpen() {
		return true
	}
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.sim.SetTrails(!g.sim.Trails())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		form := scenes.DefaultBodyForm()
		mx, my := ebiten.CursorPosition()
		form.Position = scenes.FormatVector(common.Vec(float64(mx), float64(my)))
		g.dialog.Open(form)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveSnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
		g.hoveredValid = false
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if scenes.Affects(path, g.sceneName) {
				log.Printf("scenes: %s changed", path)
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("scenes: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload() {
	scene, err := scenes.LoadScene(g.sceneName)
	if err == nil {
		err = g.sim.Load(scene)
	}
	if err != nil {
		log.Printf("scenes: reload %s: %v", g.sceneName, err)
		g.setStatus("reload failed: " + err.Error())
		return
	}
	ebiten.SetTPS(g.sim.Config().UpdatesPerSecond)
}

func (g *Game) clear() {
	g.sim.Clear()
}

func (g *Game) addFromForm(f scenes.BodyForm) error {
	b, err := f.Body()
	if err == nil {
		_, err = g.sim.AddBody(*b)
	}
	if err != nil {
		log.Printf("ui: rejected body: %v", err)
	}
	return err
}

func (g *Game) saveSnapshot() {
	data, err := g.sim.Snapshot()
	if err != nil {
		log.Printf("sim: snapshot: %v", err)
		return
	}
	name := strings.TrimSuffix(filepath.Base(g.sceneName), filepath.Ext(g.sceneName)) + "-snapshot.yaml"
	if err := os.WriteFile(name, data, 0o644); err != nil {
		log.Printf("sim: snapshot: %v", err)
		return
	}
	g.setStatus("saved " + name)
}

func (g *Game) onEvent(ev ecs.Event) {
	switch ev.Type {
	case ecs.EventBodyAdded:
		g.setStatus(fmt.Sprintf("added %v", ev.Data))
	case ecs.EventCleared:
		g.setStatus(fmt.Sprintf("cleared %v bodies", ev.Data))
	case ecs.EventReloaded:
		g.setStatus(fmt.Sprintf("reloaded %v", ev.Data))
	}
	if g.debug {
		log.Printf("sim: %s %v", ev.Type, ev.Data)
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTTL = statusFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.Draw(g.canvas.target(screen))
	g.ui.Draw(screen)

	line := fmt.Sprintf("Bodies: %d    Pairs: %d    Tick: %d    FPS: %.2f", g.last.Bodies, g.last.Pairs, g.last.Tick, ebiten.ActualFPS())
	if g.paused {
		line += "    [paused]"
	}
	ebitenutil.DebugPrintAt(screen, line, 8, common.BaseHeight-20)
	if g.statusTTL > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 8, common.BaseHeight-36)
	}
	if g.debug && g.hoveredValid {
		b := g.hovered
		info := fmt.Sprintf("%s\npos %v\nvel %v\nmass %g  radius %g", b.Name, b.Position, b.Velocity, b.Mass, b.Radius)
		mx, my := ebiten.CursorPosition()
		ebitenutil.DebugPrintAt(screen, info, mx+12, my+12)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Command sandfall-term runs the simulation in a terminal. Each character
// cell shows two grid rows using the half-block glyph, with true-color
// foreground/background taken from the material palette.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/sims/sand"
)

type viewer struct {
	screen tcell.Screen
	world  *sand.World
	timer  *core.FixedStep
	seed   int64
	paused bool
}

func main() {
	cfg := sand.DefaultConfig()
	tps := 30
	flag.IntVar(&cfg.Width, "w", cfg.Width, "grid width in cells")
	flag.IntVar(&cfg.Height, "h", cfg.Height, "grid height in cells")
	flag.IntVar(&cfg.ChunkSize, "chunk", cfg.ChunkSize, "chunk size in cells")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&tps, "tps", tps, "simulation ticks per second")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		world:  sand.NewWithConfig(cfg),
		timer:  core.NewFixedStep(tps),
		seed:   cfg.Seed,
	}
	v.run()
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused && v.timer.ShouldStep() {
				v.world.Step()
			}
			v.draw()
		}
	}
}

func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			v.world.MovePlayer(-4, 0)
		case tcell.KeyRight:
			v.world.MovePlayer(4, 0)
		case tcell.KeyUp:
			v.world.MovePlayer(0, -4)
		case tcell.KeyDown:
			v.world.MovePlayer(0, 4)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				v.world.MovePlayer(-4, 0)
			case 'l':
				v.world.MovePlayer(4, 0)
			case 'k':
				v.world.MovePlayer(0, -4)
			case 'j':
				v.world.MovePlayer(0, 4)
			case ' ':
				v.paused = !v.paused
			case 'r':
				v.world.Reset(v.seed)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	g := v.world.Grid()
	palette := v.world.Palette()
	tw, th := v.screen.Size()
	if tw <= 0 || th <= 1 {
		return
	}
	rows := th - 1 // bottom row is the status line
	px, py := v.world.PlayerPos()
	ox := clamp(px-tw/2, 0, max(0, g.W-tw))
	oy := clamp(py-rows, 0, max(0, g.H-rows*2))

	for ty := 0; ty < rows; ty++ {
		yTop := oy + ty*2
		if yTop >= g.H {
			break
		}
		for tx := 0; tx < tw; tx++ {
			x := ox + tx
			if x >= g.W {
				break
			}
			top := palette[g.GetXY(x, yTop).Material()]
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if yTop+1 < g.H {
				bot := palette[g.GetXY(x, yTop+1).Material()]
				style = style.Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			}
			v.screen.SetContent(tx, ty, '▀', nil, style)
		}
	}

	if px >= ox && px < ox+tw && py >= oy && py < oy+rows*2 {
		style := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(255, 240, 120)).
			Background(tcell.ColorBlack)
		v.screen.SetContent(px-ox, (py-oy)/2, '@', nil, style)
	}

	v.drawStatus(tw, th-1)
	v.screen.Show()
}

func (v *viewer) drawStatus(tw, row int) {
	mgr := v.world.Manager()
	px, py := v.world.PlayerPos()
	ox, oy := mgr.WorldOrigin()
	wcx, wcy := mgr.GridPosToWorldChunk(px, py)
	biome := "?"
	if b := mgr.BiomeAtWorldChunk(wcx, wcy); b != nil {
		biome = b.Name
	}
	state := "running"
	if v.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" world (%d,%d)  chunk (%d,%d)  biome %s  %s  [q quit, space pause, r reset]",
		px+ox, py+oy, wcx, wcy, biome, state)

	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(220, 220, 230)).
		Background(tcell.NewRGBColor(26, 27, 38))
	for x := 0; x < tw; x++ {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

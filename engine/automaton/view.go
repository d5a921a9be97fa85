package automaton

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/telepair/ca-core/pkg/ui"
)

var _ ui.StepEngine = (*View)(nil)

// View drives any Automaton — QuickLife or LargerThanLife — as a
// pkg/ui.StepEngine: a fixed-size window onto the automaton's coordinate
// space, centred on the origin, reseeded with a random soup on start and
// on a reset.
type View struct {
	ruleString string
	cfg        Config
	eng        Automaton

	rows, cols int
	generation int

	screen    *ui.Screen
	buf       [][]rune
	decayRamp []rune
}

// NewView compiles ruleString and returns a viewer for it, seeded with a
// random soup across a rows x cols window centred on the origin.
func NewView(ruleString string, rows, cols int, cfg Config) (*View, error) {
	cfg.Init()
	eng, err := New(ruleString, cfg)
	if err != nil {
		return nil, err
	}
	v := &View{
		ruleString: ruleString,
		cfg:        cfg,
		eng:        eng,
		rows:       rows,
		cols:       cols,
		decayRamp:  []rune{'▓', '▒', '░'},
	}
	v.seed()
	return v, nil
}

// View returns the rendered window.
func (v *View) View() string { return v.screen.View() }

// Step advances the automaton by one generation and re-renders the window.
func (v *View) Step() (int, bool) {
	v.eng.Step(nil)
	v.generation++
	v.render()
	return v.generation, true
}

// Header returns the header text for the UI. QuickLife (2-state Moore)
// and LargerThanLife rules get distinct titles; HyperCapable is true only
// for the former, so it doubles as the cheapest available discriminator.
func (v *View) Header(lang ui.Language) string {
	if v.eng.HyperCapable() {
		if lang == ui.Chinese {
			return "🚀 生命类元胞自动机 🚀"
		}
		return "🚀 Life-family Automaton 🚀"
	}
	if lang == ui.Chinese {
		return "🚀 类生命元胞自动机 🚀"
	}
	return "🚀 Larger-Than-Life 🚀"
}

// tileDensityReporter is satisfied by engines that can report the
// live-cell fraction of their origin tile without scanning the whole
// grid; only QuickLife's hashed-quadtree representation has tiles.
type tileDensityReporter interface {
	TileDensity() float64
}

// Status returns the status text for the UI.
func (v *View) Status(lang ui.Language) []ui.Status {
	var status []ui.Status
	if lang == ui.Chinese {
		status = []ui.Status{
			{Label: "规则", Value: v.eng.CanonicalRule()},
			{Label: "代数", Value: strconv.Itoa(v.generation)},
			{Label: "数量", Value: strconv.FormatInt(v.eng.Population(), 10)},
		}
	} else {
		status = []ui.Status{
			{Label: "Rule", Value: v.eng.CanonicalRule()},
			{Label: "Generation", Value: strconv.Itoa(v.generation)},
			{Label: "Population", Value: strconv.FormatInt(v.eng.Population(), 10)},
		}
	}
	if d, ok := v.eng.(tileDensityReporter); ok {
		densityLabel := "Density"
		if lang == ui.Chinese {
			densityLabel = "密度"
		}
		status = append(status, ui.Status{Label: densityLabel, Value: fmt.Sprintf("%.0f%%", d.TileDensity()*100)})
	}
	return status
}

// HandleKeys returns the available keyboard controls.
func (v *View) HandleKeys(lang ui.Language) []ui.Control {
	if lang == ui.Chinese {
		return []ui.Control{{Keys: []string{"N"}, Label: "重新播种"}}
	}
	return []ui.Control{{Keys: []string{"N"}, Label: "Reseed"}}
}

// Handle handles a key press: "n" reseeds a fresh random soup.
func (v *View) Handle(key string) (bool, error) {
	if key != "n" {
		return false, nil
	}
	eng, err := New(v.ruleString, v.cfg)
	if err != nil {
		return false, fmt.Errorf("automaton view: reseed: %w", err)
	}
	v.eng = eng
	v.generation = 0
	v.seed()
	return true, nil
}

// Reset resizes the viewing window and reseeds.
func (v *View) Reset(height, width int) error {
	v.rows = height
	v.cols = width
	eng, err := New(v.ruleString, v.cfg)
	if err != nil {
		return fmt.Errorf("automaton view: reset: %w", err)
	}
	v.eng = eng
	v.generation = 0
	v.seed()
	return nil
}

// IsFinished reports whether the automaton has run out of live cells.
func (v *View) IsFinished() bool {
	_, _, _, _, empty := v.eng.FindEdges()
	return empty
}

// Stop is a no-op; the automaton holds no external resources.
func (v *View) Stop() {}

// seed (re)builds the screen and scatters a 30% random soup of live
// cells across the window.
func (v *View) seed() {
	if v.screen == nil {
		v.screen = ui.NewScreen(v.rows, v.cols)
	} else {
		v.screen.SetSize(v.cols, v.rows)
	}
	v.aliveColor()
	v.buf = make([][]rune, v.rows)
	for i := range v.buf {
		v.buf[i] = make([]rune, v.cols)
	}

	seed := uint64(time.Now().UnixNano()) //nolint:gosec
	rng := rand.New(rand.NewPCG(seed, seed))
	left, top := -v.cols/2, -v.rows/2
	for y := range v.rows {
		for x := range v.cols {
			if rng.Uint32()%10 < 3 {
				if err := v.eng.SetCell(left+x, top+y, 1); err != nil {
					slog.Warn("automaton view seed: SetCell failed", "error", err)
				}
			}
		}
	}
	v.render()
}

func (v *View) aliveColor() {
	v.screen.SetCharColor(v.cfg.Appearance.AliveChar, lipgloss.Color(v.cfg.Appearance.AliveColor))
	v.screen.SetCharColor(v.cfg.Appearance.DeadChar, lipgloss.Color(v.cfg.Appearance.DeadColor))
	states := v.eng.MaxStates()
	for i, r := range v.decayRamp {
		if i+2 >= states {
			break
		}
		v.screen.SetCharColor(r, shade(i, len(v.decayRamp)))
	}
}

// shade returns an ANSI256 greyscale colour (the 232-255 ramp) fading
// darker as a history cell ages further past its last live generation.
func shade(step, of int) lipgloss.Color {
	idx := 253 - (step*17)/max(of-1, 1)
	return lipgloss.Color(strconv.Itoa(idx))
}

func (v *View) render() {
	left, top := -v.cols/2, -v.rows/2
	for y := range v.rows {
		for x := range v.cols {
			v.buf[y][x] = v.charFor(v.eng.GetCell(left+x, top+y))
		}
	}
	v.screen.SetData(v.buf)
}

func (v *View) charFor(state int) rune {
	switch {
	case state == 0:
		return v.cfg.Appearance.DeadChar
	case state == 1:
		return v.cfg.Appearance.AliveChar
	default:
		idx := (state - 2) % len(v.decayRamp)
		return v.decayRamp[idx]
	}
}

// Package crash is the ascending multiplier game. Once launched the
// multiplier grows every tick until a hidden crash tick; cashing out before
// then pays the multiplier shown at that moment.
package crash

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gambler/arcade/games"
)

const (
	// GrowthPercent is the per-tick growth of the multiplier
	GrowthPercent = 110
	// CrashChance is the chance in CrashChanceOf that any given tick crashes
	CrashChance   = 1
	CrashChanceOf = 12
	// MaxTicks caps the flight so a session always ends before it expires
	MaxTicks = 60
)

// State of a flight. The multiplier is kept in hundredths.
type State struct {
	Launched   bool
	Tick       int
	Hundredths int64
	CrashTick  int
	CashedOut  bool
	Crashed    bool
}

// Multiplier returns the current multiplier
func (s State) Multiplier() float64 {
	return float64(s.Hundredths) / 100
}

// Game implements games.Rules for crash
type Game struct {
	tick time.Duration
}

// New creates the game. A zero tick interval uses the engine default.
func New(tick time.Duration) Game {
	return Game{tick: tick}
}

func (Game) Name() string { return "crash" }

// TickInterval is how often the multiplier grows
func (g Game) TickInterval() time.Duration {
	return g.tick
}

func (Game) Actions() []games.Action {
	return []games.Action{
		{ID: "launch", Label: "Launch", Emoji: "🚀", Style: games.StyleSuccess},
		{ID: "cashout", Label: "Cash Out", Emoji: "💰", Style: games.StylePrimary, Repeatable: true},
		{ID: "cancel", Label: "Cancel", Style: games.StyleDanger},
	}
}

// Only the lucky charm applies to a flight
func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers(games.ModifierCharm)
}

// Open draws the crash tick, which is never shown before the crash
func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	crashTick := 1
	for crashTick < MaxTicks && rng.IntN(CrashChanceOf) >= CrashChance {
		crashTick++
	}
	return State{Hundredths: 100, CrashTick: crashTick}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind == games.EventTick {
		if !s.Launched {
			return s, games.Stay(games.PhasePrompt)
		}
		s.Tick++
		if s.Tick >= s.CrashTick {
			s.Crashed = true
			s.Hundredths = Peak(s.CrashTick)
			return s, games.Lose()
		}
		s.Hundredths = grow(s.Hundredths)
		return s, games.Ticking()
	}

	switch ev.Action {
	case "launch":
		if s.Launched {
			return s, games.Reject("Already in the air.")
		}
		s.Launched = true
		return s, games.Ticking()
	case "cashout":
		if !s.Launched {
			return s, games.Reject("Launch first.")
		}
		s.CashedOut = true
		return s, games.Finish(s.Multiplier())
	case "cancel":
		if s.Launched {
			return s, games.Reject("You can't cancel mid-flight.")
		}
		return s, games.Cancel()
	default:
		return s, games.Reject("Unknown action.")
	}
}

func (Game) View(s State, phase games.Phase) games.View {
	view := games.View{Title: "🚀 Crash"}
	multiplier := games.Field{Name: "Multiplier", Value: fmt.Sprintf("%.2fx", s.Multiplier()), Inline: true}

	switch {
	case phase == games.PhasePrompt:
		view.Description = "Launch the rocket and cash out before it crashes."
		view.Enabled = []string{"launch", "cancel"}
	case phase == games.PhaseActive:
		view.Description = "Climbing..."
		view.Fields = []games.Field{multiplier}
		view.Enabled = []string{"cashout"}
	case s.Crashed:
		view.Description = fmt.Sprintf("💥 Crashed at **%.2fx**", s.Multiplier())
	case s.CashedOut:
		view.Description = fmt.Sprintf("Cashed out at **%.2fx**", s.Multiplier())
		view.Fields = []games.Field{multiplier}
	case phase == games.PhaseExpired:
		view.Description = "The rocket never left the pad."
	default:
		view.Description = "Flight cancelled."
	}
	return view
}

// Peak is the multiplier shown when the rocket crashes on the given tick.
// It is the value the previous tick reached, so the display never runs past
// the crash.
func Peak(crashTick int) int64 {
	h := int64(100)
	for i := 1; i < crashTick; i++ {
		h = grow(h)
	}
	return h
}

func grow(hundredths int64) int64 {
	return hundredths * GrowthPercent / 100
}

// Package horserace is a five-horse race. The player backs one horse and
// the race runs on ticks until a horse crosses the line.
package horserace

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"gambler/arcade/games"
)

const (
	// Horses is the size of the field
	Horses = 5
	// TrackLength is the distance to the finish line
	TrackLength = 20
	// MaxStride is the furthest a horse moves in one tick
	MaxStride = 3
	// WinMultiplier is paid when the backed horse wins
	WinMultiplier = 4.5
)

var names = [Horses]string{"Thunder", "Biscuit", "Comet", "Lady Luck", "Old Faithful"}

// State of a race. Horses are numbered from 1.
type State struct {
	Pick      int
	Positions [Horses]int
	Winner    int
	Ticks     int
	rng       *rand.Rand
}

// Game implements games.Rules for the race
type Game struct {
	tick time.Duration
}

// New creates the race. A zero tick interval uses the engine default.
func New(tick time.Duration) Game {
	return Game{tick: tick}
}

func (Game) Name() string { return "horserace" }

// TickInterval is how often the horses move
func (g Game) TickInterval() time.Duration {
	return g.tick
}

func (Game) Actions() []games.Action {
	options := make([]games.Option, Horses)
	for i := range options {
		options[i] = games.Option{Value: strconv.Itoa(i + 1), Label: fmt.Sprintf("%d. %s", i+1, names[i])}
	}
	return []games.Action{
		{ID: "pick", Label: "Back a horse", Options: options},
		{ID: "cancel", Label: "Cancel", Style: games.StyleDanger},
	}
}

func (Game) Modifiers() []games.Modifier {
	return games.StandardModifiers(games.ModifierCharm)
}

func (Game) Open(rng *rand.Rand) (State, games.Effects) {
	return State{rng: rng}, games.Stay(games.PhasePrompt)
}

func (Game) Transition(s State, ev games.Event) (State, games.Effects) {
	if ev.Kind == games.EventTick {
		if s.Pick == 0 {
			return s, games.Stay(games.PhasePrompt)
		}
		return s.advance()
	}

	switch ev.Action {
	case "pick":
		if s.Pick != 0 {
			return s, games.Reject("The race is already running.")
		}
		if len(ev.Values) != 1 {
			return s, games.Reject("Pick one horse.")
		}
		pick, err := strconv.Atoi(ev.Values[0])
		if err != nil || pick < 1 || pick > Horses {
			return s, games.Reject("That horse isn't running.")
		}
		s.Pick = pick
		return s, games.Ticking()
	case "cancel":
		if s.Pick != 0 {
			return s, games.Reject("The race is already running.")
		}
		return s, games.Cancel()
	}
	return s, games.Reject("Unknown action.")
}

// advance moves every horse one stride. A photo finish between horses
// crossing on the same tick is drawn at random.
func (s State) advance() (State, games.Effects) {
	s.Ticks++
	var finished []int
	for i := range s.Positions {
		s.Positions[i] = min(s.Positions[i]+1+s.rng.IntN(MaxStride), TrackLength)
		if s.Positions[i] == TrackLength {
			finished = append(finished, i+1)
		}
	}
	if len(finished) == 0 {
		return s, games.Ticking()
	}

	s.Winner = finished[s.rng.IntN(len(finished))]
	if s.Winner == s.Pick {
		return s, games.Win(WinMultiplier)
	}
	return s, games.Lose()
}

func (Game) View(s State, phase games.Phase) games.View {
	view := games.View{Title: "🏇 Horse Race"}
	switch phase {
	case games.PhasePrompt:
		view.Description = "Back a horse to win."
		view.Enabled = []string{"pick", "cancel"}
		return view
	case games.PhaseCancelled:
		view.Description = "You tore up your ticket."
		return view
	case games.PhaseExpired:
		view.Description = "The gates closed without your bet."
		return view
	}

	view.Description = track(s)
	if s.Winner != 0 {
		view.Fields = []games.Field{
			{Name: "Winner", Value: fmt.Sprintf("#%d %s", s.Winner, names[s.Winner-1]), Inline: true},
			{Name: "Your horse", Value: fmt.Sprintf("#%d %s", s.Pick, names[s.Pick-1]), Inline: true},
		}
	}
	return view
}

func track(s State) string {
	var b strings.Builder
	for i, pos := range s.Positions {
		marker := "  "
		if i+1 == s.Pick {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s%d |%s🏇%s|\n", marker, i+1, strings.Repeat("·", pos), strings.Repeat(" ", TrackLength-pos))
	}
	return "```\n" + b.String() + "```"
}

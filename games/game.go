// Package games implements the session engine shared by every arcade game:
// bet validation and escrow, callback registration, timers, and exactly-once
// settlement against the ledger. Each game supplies only a transition table.
package games

import (
	"math"
	"math/rand/v2"

	"gambler/arcade/domain/entities"
)

// Phase is the lifecycle position of a session
type Phase int

const (
	PhasePrompt Phase = iota
	PhaseActive
	PhaseResolved
	PhaseExpired
	PhaseCancelled
)

// Terminal reports whether the phase ends the session
func (p Phase) Terminal() bool {
	return p == PhaseResolved || p == PhaseExpired || p == PhaseCancelled
}

func (p Phase) String() string {
	switch p {
	case PhasePrompt:
		return "prompt"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	case PhaseExpired:
		return "expired"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EventKind identifies what drove a transition
type EventKind int

const (
	// EventAction is a player pressing a control
	EventAction EventKind = iota
	// EventTick is the animation timer firing
	EventTick
	// EventExpire is the session deadline passing
	EventExpire
	// EventCancel is an out-of-band cancellation such as shutdown
	EventCancel
)

// Event is fed into a game's transition function
type Event struct {
	Kind   EventKind
	Action string
	Values []string
}

// Outcome is how a round ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomePush
	OutcomeCancel
	OutcomeExpire
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	case OutcomeCancel:
		return "cancel"
	case OutcomeExpire:
		return "expire"
	default:
		return "none"
	}
}

// Phase returns the terminal phase an outcome settles into
func (o Outcome) Phase() Phase {
	switch o {
	case OutcomeCancel:
		return PhaseCancelled
	case OutcomeExpire:
		return PhaseExpired
	default:
		return PhaseResolved
	}
}

// Result is a terminal round result produced by a game
type Result struct {
	Outcome Outcome
	// Multiplier applies to the stake on a win
	Multiplier float64
}

// Payout returns what the house pays back for the result on the given stake
func (r Result) Payout(stake int64) int64 {
	if stake <= 0 {
		return 0
	}
	switch r.Outcome {
	case OutcomeWin:
		return PayoutFor(stake, r.Multiplier)
	case OutcomePush, OutcomeCancel, OutcomeExpire:
		return stake
	default:
		return 0
	}
}

// PayoutFor returns floor(stake × multiplier), tolerant of binary float error
// so that 100 × 1.17 pays 117
func PayoutFor(stake int64, multiplier float64) int64 {
	if stake <= 0 || multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(stake)*multiplier + 1e-6))
}

// Effects is what a transition asks the controller to do
type Effects struct {
	// Phase is the non-terminal phase after the transition
	Phase Phase
	// Result ends the round when set
	Result *Result
	// Raise debits the original bet again and adds it to the stake
	Raise bool
	// Tick schedules the next animation tick
	Tick bool
	// Reject refuses the event with a user-facing reason and changes nothing
	Reject string
}

// Stay keeps the session in the given phase
func Stay(p Phase) Effects {
	return Effects{Phase: p}
}

// Ticking keeps the session active and schedules the next tick
func Ticking() Effects {
	return Effects{Phase: PhaseActive, Tick: true}
}

// Win ends the round paying stake × multiplier
func Win(multiplier float64) Effects {
	return Effects{Result: &Result{Outcome: OutcomeWin, Multiplier: multiplier}}
}

// Lose ends the round forfeiting the stake
func Lose() Effects {
	return Effects{Result: &Result{Outcome: OutcomeLoss}}
}

// Push ends the round refunding the stake
func Push() Effects {
	return Effects{Result: &Result{Outcome: OutcomePush}}
}

// Cancel ends the round as a player cancellation
func Cancel() Effects {
	return Effects{Result: &Result{Outcome: OutcomeCancel}}
}

// Reject refuses the event
func Reject(reason string) Effects {
	return Effects{Reject: reason}
}

// Finish converts a multiplier into the matching terminal effect: 0 loses,
// 1 pushes, anything else wins
func Finish(multiplier float64) Effects {
	switch {
	case multiplier <= 0:
		return Lose()
	case multiplier == 1:
		return Push()
	default:
		return Win(multiplier)
	}
}

// ActionStyle hints how a control should look
type ActionStyle int

const (
	StylePrimary ActionStyle = iota
	StyleSecondary
	StyleSuccess
	StyleDanger
)

// Option is a choice offered by a select-menu action
type Option struct {
	Value string
	Label string
}

// Action is a player control offered by a game
type Action struct {
	ID    string
	Label string
	Emoji string
	Style ActionStyle
	// Options turns the control into a select menu
	Options []Option
	// Repeatable actions keep their callback after use
	Repeatable bool
}

// Field is a labelled value in a rendered view
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// View is a game's description of its current state
type View struct {
	Title       string
	Description string
	Fields      []Field
	// Enabled lists the action IDs that can be used right now
	Enabled []string
}

// Rules is a game's transition table. Transition must not perform I/O; all
// randomness comes from the generator handed to Open, which the state keeps.
type Rules[S any] interface {
	// Name identifies the game
	Name() string

	// Actions lists every control the game can offer
	Actions() []Action

	// Open creates the initial state. A terminal result settles the session
	// before any control is registered.
	Open(rng *rand.Rand) (S, Effects)

	// Transition applies an action or tick to the state
	Transition(state S, ev Event) (S, Effects)

	// View describes the state for presentation
	View(state S, phase Phase) View
}

// ModifierKind is the effect of a consumable item
type ModifierKind int

const (
	// ModifierReroll replays a losing round
	ModifierReroll ModifierKind = iota
	// ModifierShield turns a loss into a push
	ModifierShield
	// ModifierCharm adds a bonus to a win
	ModifierCharm
)

// Modifier binds an inventory item to its effect
type Modifier struct {
	Item  string
	Kind  ModifierKind
	Bonus float64
}

// Modified is implemented by games that honour consumable items. Modifiers
// are applied in the returned order.
type Modified interface {
	Modifiers() []Modifier
}

// Rerollable is implemented by games whose losing result can be replayed
type Rerollable[S any] interface {
	Reroll(state S) (S, Result)
}

// Item identifiers for the consumables sold in the shop
const (
	ItemRerollToken = entities.ItemRerollToken
	ItemShield      = entities.ItemShield
	ItemLuckyCharm  = entities.ItemLuckyCharm
)

// StandardModifiers is the order every game applies items in
func StandardModifiers(kinds ...ModifierKind) []Modifier {
	all := []Modifier{
		{Item: ItemRerollToken, Kind: ModifierReroll},
		{Item: ItemShield, Kind: ModifierShield},
		{Item: ItemLuckyCharm, Kind: ModifierCharm, Bonus: 0.10},
	}
	if len(kinds) == 0 {
		return all
	}

	var selected []Modifier
	for _, m := range all {
		for _, k := range kinds {
			if m.Kind == k {
				selected = append(selected, m)
				break
			}
		}
	}
	return selected
}

// NewRand returns a deterministic generator for a seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

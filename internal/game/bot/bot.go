package bot

import (
	"errors"
	"fmt"

	"Kouppi/internal/game/engine"
)

// Mode selects whether a profile plays its policy raw or with seeded
// noise on top.
type Mode int

const (
	Deterministic Mode = iota
	Stochastic
)

func (m Mode) String() string {
	if m == Stochastic {
		return "stochastic"
	}
	return "deterministic"
}

// Difficulty picks the tuning row.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Normal: "normal",
	Hard:   "hard",
}

func (d Difficulty) String() string {
	if s, ok := difficultyNames[d]; ok {
		return s
	}
	return "unknown"
}

// ParseDifficulty maps a config string to a Difficulty. The empty
// string means normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "normal", "":
		return Normal, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("bot: unknown difficulty %q", s)
	}
}

// Profile is a bot seat's fixed personality. KOUPPI is only considered
// while the pot stays under max(KouppiPotCapBase,
// KouppiPotCapRatio * bankroll).
type Profile struct {
	Mode              Mode
	Difficulty        Difficulty
	KouppiPotCapBase  int
	KouppiPotCapRatio float64
}

// NewProfile fills the default pot caps.
func NewProfile(mode Mode, diff Difficulty) Profile {
	return Profile{
		Mode:              mode,
		Difficulty:        diff,
		KouppiPotCapBase:  20,
		KouppiPotCapRatio: 0.25,
	}
}

type tuning struct {
	k          float64 // bet sizing fraction
	kouppiMinP float64 // win probability needed to call KOUPPI
	passMinP   float64 // below this the bot passes
}

var tuningTable = map[Difficulty]tuning{
	Easy:   {k: 0.40, kouppiMinP: 0.78, passMinP: 0.55},
	Normal: {k: 0.55, kouppiMinP: 0.70, passMinP: 0.52},
	Hard:   {k: 0.75, kouppiMinP: 0.62, passMinP: 0.48},
}

// noiseSalt keeps the forked noise stream independent from the card
// stream it is derived from.
const noiseSalt = 0x9e3779b97f4a7c15

const (
	probJitter = 0.05
	betJitter  = 0.20
)

// Decide returns the action the profile takes on the current live
// turn. It never mutates the state: stochastic noise is drawn from a
// salted fork of the state's stream, so a seeded game with bot seats
// replays bit for bit.
func Decide(g engine.GameState, p Profile) (engine.Action, error) {
	if g.Phase != engine.PhaseRound || g.Turn == nil || g.AwaitNext {
		return engine.Action{}, errors.New("bot: no actionable turn")
	}
	me, ok := g.CurrentPlayer()
	if !ok {
		return engine.Action{}, errors.New("bot: no seat at the current index")
	}

	up := g.Turn.Upcards
	if engine.IsPair(up) || engine.IsConsecutive(up) {
		return engine.Pass(me.ID), nil
	}
	winners := engine.GapSize(up)
	if winners <= 0 {
		return engine.Pass(me.ID), nil
	}

	pWin := float64(winners) / 13
	noise := g.Rand.Fork(noiseSalt)
	if p.Mode == Stochastic {
		var f float64
		f, noise = noise.Float64()
		pWin += (f*2 - 1) * probJitter
		if pWin < 0 {
			pWin = 0
		}
		if pWin > 1 {
			pWin = 1
		}
	}

	t, ok := tuningTable[p.Difficulty]
	if !ok {
		t = tuningTable[Normal]
	}
	pot := g.Round.Pot
	cfg := g.Config

	// a single winning rank is the SHISTRI spot
	if cfg.Shistri.Enabled && winners == 1 && engine.CanShistri(up) {
		amt := engine.ShistriBet(pot, cfg.Shistri.Percent, cfg.Shistri.MinChip)
		if amt <= pot && amt <= me.Bankroll {
			return engine.Shistri(me.ID), nil
		}
	}

	// confident and affordable: go for the whole pot
	potCap := p.KouppiPotCapBase
	if r := int(p.KouppiPotCapRatio * float64(me.Bankroll)); r > potCap {
		potCap = r
	}
	if me.Bankroll >= pot && pot > 0 && pWin >= t.kouppiMinP && pot <= potCap {
		return engine.Kouppi(me.ID), nil
	}

	if pWin < t.passMinP {
		return engine.Pass(me.ID), nil
	}

	// a stack below the table minimum can only push all-in
	effMin := engine.EffectiveMinBet(cfg.MinBet, pot)
	if me.Bankroll > 0 && me.Bankroll < effMin {
		if me.Bankroll <= pot {
			return engine.Bet(me.ID, me.Bankroll), nil
		}
		return engine.Pass(me.ID), nil
	}

	amount := int(pWin * float64(pot) * t.k)
	if p.Mode == Stochastic {
		var f float64
		f, _ = noise.Float64()
		amount = int(float64(amount) * (1 + (f*2-1)*betJitter))
	}
	lo, hi := engine.LegalBetRange(me.Bankroll, pot, cfg.MinBet)
	if amount < lo {
		amount = lo
	}
	if amount > hi {
		amount = hi
	}
	if amount <= 0 {
		return engine.Pass(me.ID), nil
	}
	return engine.Bet(me.ID, amount), nil
}

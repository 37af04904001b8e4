package engine

import "Kouppi/internal/game/deck"

// ---------------------
//       REDUCER
// ---------------------

// Apply folds one action over the state and returns the successor
// state. It is a pure function: on any rejection the input state is
// returned untouched, and identical (state, action) pairs always
// produce identical successors. All chip movement happens here.
func Apply(g GameState, a Action) (GameState, error) {
	switch a.Kind {
	case ActStartRound:
		return applyStartRound(g)
	case ActAnte:
		return applyAnte(g)
	case ActDetermineStarter:
		return applyDetermineStarter(g)
	case ActStartTurn:
		return applyStartTurn(g)
	case ActPass:
		return applyPass(g, a)
	case ActBet:
		return applyBet(g, a)
	case ActKouppi:
		return applyKouppi(g, a)
	case ActShistri:
		return applyShistri(g, a)
	case ActNextPlayer:
		return applyNextPlayer(g)
	default:
		return g, ErrUnknownAction
	}
}

// ---------------------
//  ROUND SCHEDULING
// ---------------------

func applyStartRound(g GameState) (GameState, error) {
	if g.Phase == PhaseRound {
		return g, ErrIllegalPhase
	}

	players := append([]Player(nil), g.Players...)
	for i := range players {
		players[i].Active = players[i].Bankroll > 0
	}

	ng := g
	ng.Phase = PhaseRound
	ng.Players = players
	ng.Round = RoundInfo{StarterIndex: -1}
	ng.RoundNum = g.RoundNum + 1
	ng.Turn = nil
	ng.LastResolution = nil
	ng.AwaitNext = true
	return ng, nil
}

func applyAnte(g GameState) (GameState, error) {
	if g.Phase != PhaseRound || g.Turn != nil || g.Round.Pot != 0 {
		return g, ErrIllegalPhase
	}

	payers := 0
	for _, p := range g.Players {
		if p.Active && p.Bankroll >= g.Config.Ante {
			payers++
		}
	}
	if payers < 2 {
		return g, ErrNotEnoughPlayers
	}

	ng := g
	players := append([]Player(nil), g.Players...)
	log := g.Log
	for i := range players {
		if !players[i].Active {
			continue
		}
		if players[i].Bankroll < g.Config.Ante {
			players[i].Active = false
			log = appendLog(log, g.Config.Lang, msgSitOut, players[i].Name)
			continue
		}
		players[i].Bankroll -= g.Config.Ante
		ng.Round.Pot += g.Config.Ante
	}
	ng.Players = players
	ng.Log = appendLog(log, g.Config.Lang, msgRoundStart, g.RoundNum, g.Config.Ante, ng.Round.Pot)
	return ng, nil
}

func applyDetermineStarter(g GameState) (GameState, error) {
	if g.Phase != PhaseRound || g.Turn != nil || g.Round.Pot == 0 || g.Round.StarterIndex != -1 {
		return g, ErrIllegalPhase
	}

	ng := g
	var starter int
	if g.LastStarter == -1 {
		// first round of the session: seeded random pick
		actives := make([]int, 0, len(g.Players))
		for i, p := range g.Players {
			if p.Active {
				actives = append(actives, i)
			}
		}
		if len(actives) == 0 {
			return g, ErrNotEnoughPlayers
		}
		var pick int
		pick, ng.Rand = g.Rand.Intn(len(actives))
		starter = actives[pick]
	} else {
		// later rounds rotate to the next active seat
		starter = g.nextActiveIndex(g.LastStarter)
		if starter == -1 {
			return g, ErrNotEnoughPlayers
		}
	}

	ng.Round.StarterIndex = starter
	ng.CurrentIndex = starter
	ng.LastStarter = starter
	return ng, nil
}

func applyStartTurn(g GameState) (GameState, error) {
	if g.Phase != PhaseRound || g.Round.StarterIndex == -1 || !g.AwaitNext {
		return g, ErrIllegalPhase
	}

	c1, d, s, err := g.Deck.Draw(g.Rand, g.Config.DeckPolicy, g.Config.DeckLowThreshold)
	if err != nil {
		return g, err
	}
	c2, d, s, err := d.Draw(s, g.Config.DeckPolicy, g.Config.DeckLowThreshold)
	if err != nil {
		return g, err
	}

	cur := g.Players[g.CurrentIndex]
	ng := g
	ng.Deck = d
	ng.Rand = s
	ng.Turn = &TurnInfo{PlayerID: cur.ID, Upcards: [2]deck.Card{c1, c2}}
	ng.AwaitNext = false
	ng.LastResolution = nil
	ng.Log = appendLog(g.Log, g.Config.Lang, msgTurnStart, cur.Name, c1.String(), c2.String())
	return ng, nil
}

func applyNextPlayer(g GameState) (GameState, error) {
	if g.Phase != PhaseRound || g.Turn == nil || !g.AwaitNext {
		return g, ErrIllegalPhase
	}
	next := g.nextActiveIndex(g.CurrentIndex)
	if next == -1 {
		return g, ErrNotEnoughPlayers
	}
	ng := g
	ng.CurrentIndex = next
	ng.Turn = nil
	return ng, nil
}

// ---------------------
//    TURN ACTIONS
// ---------------------

// validateTurnAction checks the shared preconditions of the four player
// actions and returns the acting seat index.
func validateTurnAction(g GameState, a Action) (int, error) {
	if g.Phase != PhaseRound || g.Turn == nil || g.AwaitNext {
		return 0, ErrIllegalPhase
	}
	if g.Players[g.CurrentIndex].ID != a.Player {
		return 0, ErrNotPlayersTurn
	}
	return g.CurrentIndex, nil
}

func applyPass(g GameState, a Action) (GameState, error) {
	idx, err := validateTurnAction(g, a)
	if err != nil {
		return g, err
	}

	turn := *g.Turn
	ng := g
	ng.LastResolution = &Resolution{
		Kind:     ResolutionPass,
		PlayerID: turn.PlayerID,
		Upcards:  turn.Upcards,
	}
	ng.AwaitNext = true
	ng.Deck = g.Deck.Muck(turn.Upcards[0], turn.Upcards[1])
	ng.Log = appendLog(g.Log, g.Config.Lang, msgPass, g.Players[idx].Name)
	return ng, nil
}

func applyBet(g GameState, a Action) (GameState, error) {
	idx, err := validateTurnAction(g, a)
	if err != nil {
		return g, err
	}
	p := g.Players[idx]
	if !legalBet(a.Amount, p.Bankroll, g.Round.Pot, g.Config.MinBet) {
		return g, ErrIllegalBetAmount
	}
	return settle(g, idx, ResolutionBet, a.Amount)
}

func applyKouppi(g GameState, a Action) (GameState, error) {
	idx, err := validateTurnAction(g, a)
	if err != nil {
		return g, err
	}
	p := g.Players[idx]
	if g.Round.Pot <= 0 || p.Bankroll < g.Round.Pot {
		return g, ErrIneligibleSpecial
	}
	return settle(g, idx, ResolutionKouppi, g.Round.Pot)
}

func applyShistri(g GameState, a Action) (GameState, error) {
	idx, err := validateTurnAction(g, a)
	if err != nil {
		return g, err
	}
	if !g.Config.Shistri.Enabled || !CanShistri(g.Turn.Upcards) {
		return g, ErrIneligibleSpecial
	}
	amount := ShistriBet(g.Round.Pot, g.Config.Shistri.Percent, g.Config.Shistri.MinChip)
	if amount > g.Round.Pot || amount > g.Players[idx].Bankroll {
		return g, ErrIneligibleSpecial
	}
	return settle(g, idx, ResolutionShistri, amount)
}

// settle draws the third card and moves amount between the acting
// player and the pot. A win drains the pot by amount, a loss feeds it;
// a KOUPPI wager of the full pot therefore empties it or doubles it.
func settle(g GameState, idx int, kind ResolutionKind, amount int) (GameState, error) {
	card, d, s, err := g.Deck.Draw(g.Rand, g.Config.DeckPolicy, g.Config.DeckLowThreshold)
	if err != nil {
		return g, err
	}
	win := winsAgainst(g.Turn.Upcards, card)

	ng := g
	ng.Deck = d
	ng.Rand = s

	players := append([]Player(nil), g.Players...)
	if win {
		players[idx].Bankroll += amount
		ng.Round.Pot -= amount
	} else {
		players[idx].Bankroll -= amount
		ng.Round.Pot += amount
	}
	if players[idx].Bankroll == 0 {
		players[idx].Active = false
	}
	ng.Players = players

	rev := card
	turn := *g.Turn
	turn.Bet = amount
	turn.Revealed = &rev
	ng.Turn = &turn
	ng.LastResolution = &Resolution{
		Kind:     kind,
		PlayerID: turn.PlayerID,
		Upcards:  turn.Upcards,
		Revealed: &rev,
		Amount:   amount,
		Win:      win,
	}
	ng.AwaitNext = true
	ng.Deck = ng.Deck.Muck(turn.Upcards[0], turn.Upcards[1], rev)

	lang := g.Config.Lang
	name := players[idx].Name
	ng.Log = appendLog(g.Log, lang, settleMsg(kind, win), name, amount, rev.String())
	if players[idx].Bankroll == 0 {
		ng.Log = appendLog(ng.Log, lang, msgBankrupt, name)
	}
	if ng.Round.Pot == 0 {
		ng.Phase = PhaseRoundEnd
		ng.Log = appendLog(ng.Log, lang, msgRoundEnd, ng.RoundNum)
	}
	return ng, nil
}

func settleMsg(kind ResolutionKind, win bool) msgKey {
	switch kind {
	case ResolutionKouppi:
		if win {
			return msgKouppiWin
		}
		return msgKouppiLose
	case ResolutionShistri:
		if win {
			return msgShistriWin
		}
		return msgShistriLose
	default:
		if win {
			return msgBetWin
		}
		return msgBetLose
	}
}

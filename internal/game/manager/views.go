package manager

import (
	"Kouppi/internal/game/deck"
	"Kouppi/internal/game/engine"
)

// The views strip the deck and the RNG stream from everything pushed to
// clients. Knowing the draw order is knowing the future.

func playersView(g engine.GameState) []map[string]any {
	out := make([]map[string]any, len(g.Players))
	for i, p := range g.Players {
		out[i] = map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"bankroll": p.Bankroll,
			"isBot":    p.IsBot,
			"active":   p.Active,
		}
	}
	return out
}

func cardsView(cards [2]deck.Card) []string {
	return []string{cards[0].String(), cards[1].String()}
}

func stateView(roomID string, g engine.GameState) map[string]any {
	v := map[string]any{
		"roomId":  roomID,
		"phase":   g.Phase.String(),
		"round":   g.RoundNum,
		"pot":     g.Round.Pot,
		"ante":    g.Config.Ante,
		"minBet":  g.Config.MinBet,
		"players": playersView(g),
	}
	if g.Turn != nil {
		v["turn"] = turnInfoView(g.Turn)
	}
	return v
}

func turnInfoView(t *engine.TurnInfo) map[string]any {
	v := map[string]any{
		"player":  t.PlayerID,
		"upcards": cardsView(t.Upcards),
	}
	if t.Bet > 0 {
		v["bet"] = t.Bet
	}
	if t.Revealed != nil {
		v["revealed"] = t.Revealed.String()
	}
	return v
}

func roundView(roomID string, g engine.GameState) map[string]any {
	starter := ""
	if g.Round.StarterIndex >= 0 && g.Round.StarterIndex < len(g.Players) {
		starter = g.Players[g.Round.StarterIndex].ID
	}
	return map[string]any{
		"roomId":  roomID,
		"round":   g.RoundNum,
		"pot":     g.Round.Pot,
		"minBet":  g.Config.MinBet,
		"starter": starter,
		"players": playersView(g),
	}
}

func turnView(roomID string, g engine.GameState) map[string]any {
	v := map[string]any{
		"roomId": roomID,
		"round":  g.RoundNum,
		"pot":    g.Round.Pot,
	}
	if g.Turn != nil {
		v["player"] = g.Turn.PlayerID
		v["upcards"] = cardsView(g.Turn.Upcards)
	}
	return v
}

func resolutionView(roomID string, g engine.GameState) map[string]any {
	v := map[string]any{
		"roomId":  roomID,
		"round":   g.RoundNum,
		"pot":     g.Round.Pot,
		"players": playersView(g),
	}
	if r := g.LastResolution; r != nil {
		res := map[string]any{
			"kind":    r.Kind.String(),
			"player":  r.PlayerID,
			"upcards": cardsView(r.Upcards),
			"amount":  r.Amount,
			"win":     r.Win,
		}
		if r.Revealed != nil {
			res["revealed"] = r.Revealed.String()
		}
		v["resolution"] = res
	}
	if n := len(g.Log); n > 0 {
		v["log"] = g.Log[n-1]
	}
	return v
}

func roundEndView(roomID string, g engine.GameState) map[string]any {
	return map[string]any{
		"roomId":  roomID,
		"round":   g.RoundNum,
		"pot":     g.Round.Pot,
		"players": playersView(g),
	}
}

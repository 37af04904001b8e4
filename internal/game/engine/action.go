package engine

// ActionKind tags the actions understood by Apply.
type ActionKind int

const (
	ActStartRound ActionKind = iota
	ActAnte
	ActDetermineStarter
	ActStartTurn
	ActPass
	ActBet
	ActKouppi
	ActShistri
	ActNextPlayer
)

var actionNames = map[ActionKind]string{
	ActStartRound:       "startRound",
	ActAnte:             "ante",
	ActDetermineStarter: "determineStarter",
	ActStartTurn:        "startTurn",
	ActPass:             "pass",
	ActBet:              "bet",
	ActKouppi:           "kouppi",
	ActShistri:          "shistri",
	ActNextPlayer:       "nextPlayer",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is the only input the reducer accepts. Player carries the
// acting player's id for the four turn actions and is ignored for the
// scheduling actions; Amount is meaningful for bets only.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Player string     `json:"player,omitempty"`
	Amount int        `json:"amount,omitempty"`
}

func StartRound() Action       { return Action{Kind: ActStartRound} }
func Ante() Action             { return Action{Kind: ActAnte} }
func DetermineStarter() Action { return Action{Kind: ActDetermineStarter} }
func StartTurn() Action        { return Action{Kind: ActStartTurn} }
func NextPlayer() Action       { return Action{Kind: ActNextPlayer} }

func Pass(player string) Action { return Action{Kind: ActPass, Player: player} }

func Bet(player string, amount int) Action {
	return Action{Kind: ActBet, Player: player, Amount: amount}
}

func Kouppi(player string) Action { return Action{Kind: ActKouppi, Player: player} }

func Shistri(player string) Action { return Action{Kind: ActShistri, Player: player} }

package engine

import "fmt"

// The append-only event log is rendered in the table language. Greek
// tables get the Cypriot table talk, everything else falls back to
// English.

type msgKey int

const (
	msgRoundStart msgKey = iota
	msgSitOut
	msgTurnStart
	msgPass
	msgBetWin
	msgBetLose
	msgKouppiWin
	msgKouppiLose
	msgShistriWin
	msgShistriLose
	msgBankrupt
	msgRoundEnd
)

var messages = map[string]map[msgKey]string{
	"en": {
		msgRoundStart:  "round %d: ante %d per player, pot %d",
		msgSitOut:      "%s cannot cover the ante and sits out",
		msgTurnStart:   "%s draws %s and %s",
		msgPass:        "%s passes",
		msgBetWin:      "%s bets %d and wins (%s)",
		msgBetLose:     "%s bets %d and loses (%s)",
		msgKouppiWin:   "%s calls KOUPPI for %d and takes the whole pot (%s)",
		msgKouppiLose:  "%s calls KOUPPI for %d and loses (%s)",
		msgShistriWin:  "%s plays SHISTRI for %d and wins (%s)",
		msgShistriLose: "%s plays SHISTRI for %d and loses (%s)",
		msgBankrupt:    "%s is out of chips",
		msgRoundEnd:    "round %d is over: the pot is empty",
	},
	"el": {
		msgRoundStart:  "γύρος %d: μίζα %d ανά παίκτη, κούππα %d",
		msgSitOut:      "%s δεν καλύπτει τη μίζα και κάθεται εκτός",
		msgTurnStart:   "%s τραβά %s και %s",
		msgPass:        "%s πάει πάσο",
		msgBetWin:      "%s ποντάρει %d και κερδίζει (%s)",
		msgBetLose:     "%s ποντάρει %d και χάνει (%s)",
		msgKouppiWin:   "%s φωνάζει ΚΟΥΠΠΙ για %d και παίρνει όλη την κούππα (%s)",
		msgKouppiLose:  "%s φωνάζει ΚΟΥΠΠΙ για %d και χάνει (%s)",
		msgShistriWin:  "%s παίζει ΣΙΣΤΡΙ για %d και κερδίζει (%s)",
		msgShistriLose: "%s παίζει ΣΙΣΤΡΙ για %d και χάνει (%s)",
		msgBankrupt:    "%s έμεινε χωρίς μάρκες",
		msgRoundEnd:    "ο γύρος %d τελείωσε: η κούππα άδειασε",
	},
}

func tr(lang string, k msgKey) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[k]; ok {
			return s
		}
	}
	return messages["en"][k]
}

// appendLog copies the log before appending so older states never share
// a backing array with newer ones.
func appendLog(log []string, lang string, k msgKey, args ...any) []string {
	out := make([]string, 0, len(log)+1)
	out = append(out, log...)
	return append(out, fmt.Sprintf(tr(lang, k), args...))
}

package websocket

// Events pushed to clients: matched, state, round_started, turn_started,
// turn_resolved, round_ended, match_end, chat, error.
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Events accepted from clients: player_action, chat. From and Name are
// stamped by the reading client, not taken from the wire.
type IncomingMessage struct {
	From  string      `json:"from"`
	Name  string      `json:"name,omitempty"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

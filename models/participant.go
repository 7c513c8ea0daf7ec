package models

// Role claims carried by reconnect requests.
const (
	RoleHost   = "host"
	RolePlayer = "player"
)

// Participant is the wire view of one player in a room. ID is the
// persistent identity that survives reconnects; the transient connection
// reference lives on the game side.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cards     []Card `json:"cards"`
	Marked    []int  `json:"markedNumbers"`
	Result    []int  `json:"result"`
	Connected bool   `json:"connected"`
}

// Winner is one entry of a session's winners list, in discovery order.
type Winner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

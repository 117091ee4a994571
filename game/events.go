package game

// EventType tags a single observable effect of a turn.
type EventType string

const (
	EventLevelUp     EventType = "level-up"     // token completed a lap
	EventRuns        EventType = "runs"         // score credited from a square
	EventWicket      EventType = "wicket"       // mover landed on a wicket square
	EventCapture     EventType = "capture"      // enemy token sent home
	EventLevelSteal  EventType = "level-steal"  // attacker inherited a higher victim level
	EventKillBonus   EventType = "kill-bonus"   // runs-square capture bonus
	EventExtraTurn   EventType = "extra-turn"   // mover rolls again
	EventTurnSkipped EventType = "turn-skipped" // current player could not act
	EventAllOut      EventType = "all-out"      // tenth wicket fell
	EventGameOver    EventType = "game-over"    // result latched
)

// NoSquare marks events that are not tied to a board square.
const NoSquare = -1

// Event is one effect that occurred while resolving a turn. The core never
// renders or prints anything; callers animate or log events as they see
// fit. Which fields are meaningful depends on Type: a capture names the
// victim's color, token and return path; a runs event carries the credited
// value; square is the ring index the effect happened on, or NoSquare.
type Event struct {
	Type    EventType `json:"type"`
	Color   Color     `json:"color,omitempty"`
	TokenID int       `json:"tokenId,omitempty"`
	Square  int       `json:"square"`
	Value   int       `json:"value,omitempty"`
	Path    []int     `json:"path,omitempty"`
}

// TurnReport is everything that happened during one PlayTurn call, in
// resolution order.
type TurnReport struct {
	Color     Color    `json:"color"` // acting player
	TokenID   int      `json:"tokenId"`
	Roll      DiceRoll `json:"roll"`
	Path      []int    `json:"path,omitempty"`
	Captured  bool     `json:"captured"`
	ExtraTurn bool     `json:"extraTurn"`
	Events    []Event  `json:"events,omitempty"`
}

func (r *TurnReport) add(e Event) {
	r.Events = append(r.Events, e)
}

// Runs sums the score credited to the acting player during the turn.
func (r *TurnReport) Runs() int {
	total := 0
	for _, e := range r.Events {
		if e.Type == EventRuns || e.Type == EventKillBonus {
			total += e.Value
		}
	}
	return total
}

// Captures counts enemy tokens sent home during the turn.
func (r *TurnReport) Captures() int {
	n := 0
	for _, e := range r.Events {
		if e.Type == EventCapture {
			n++
		}
	}
	return n
}

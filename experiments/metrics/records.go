package metrics

import "time"

// VariantConfig describes one rule variant under study.
type VariantConfig struct {
	ID                 int
	Mode               string
	Seats              int
	KillRule           string
	StealLevelOnKill   bool
	KillBonusLevel     int
	AllowAntiClockwise bool
}

// GameMetric captures the outcome of one match.
type GameMetric struct {
	StartingColor string
	Winner        string // empty when the match was cut off
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	Turns         int
	Captures      int
	Wickets       int
}

// TurnMetric captures one resolved turn.
type TurnMetric struct {
	Turn      int
	Color     string
	TokenID   int
	Steps     int
	Direction string
	Runs      int
	Captured  bool
	ExtraTurn bool
}

// GameRecord ties a game metric to its variant for the CSV output.
type GameRecord struct {
	ID      int
	Variant int // VariantConfig.ID
	GameMetric
}

// TurnRecord ties a turn metric to its game.
type TurnRecord struct {
	Game int // GameRecord.ID
	TurnMetric
}

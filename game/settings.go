package game

import "fmt"

// Mode fixes each player's turn budget, named after cricket formats.
type Mode string

const (
	ModeT20        Mode = "T20"        // 20 turns per player
	ModeFiftyFifty Mode = "FiftyFifty" // 50 turns per player
	ModeTest       Mode = "Test"       // unlimited, play to all out
)

// TurnBudget returns the per-player turn allowance for the mode, or
// UnlimitedTurns for Test.
func (m Mode) TurnBudget() int {
	switch m {
	case ModeT20:
		return 20
	case ModeFiftyFifty:
		return 50
	case ModeTest:
		return UnlimitedTurns
	default:
		panic(fmt.Sprintf("unknown mode %q", string(m)))
	}
}

func validMode(m Mode) bool {
	return m == ModeT20 || m == ModeFiftyFifty || m == ModeTest
}

// KillRule selects how stacked defenders are treated on a capture.
type KillRule string

const (
	// Jackpot: every enemy token on the landing square is captured,
	// stacks included.
	Jackpot KillRule = "jackpot"
	// Fortress: a defender with both tokens stacked on the landing
	// square keeps both; lone tokens are captured as usual.
	Fortress KillRule = "fortress"
)

func validKillRule(r KillRule) bool {
	return r == Jackpot || r == Fortress
}

// Settings are the tunable rule variants of a game. The zero value is not
// valid; use DefaultSettings and adjust.
type Settings struct {
	AllowAntiClockwise bool     `json:"allowAntiClockwise"`
	KillRule           KillRule `json:"killRule"`
	StealLevelOnKill   bool     `json:"stealLevelOnKill"`
	KillBonusLevel     int      `json:"killBonusLevel"` // 1 or 2, multiplies the runs-square capture bonus
}

// DefaultSettings is the canonical rule set: clockwise-only dice, jackpot
// captures, no level stealing, flat capture bonus.
func DefaultSettings() Settings {
	return Settings{
		AllowAntiClockwise: false,
		KillRule:           Jackpot,
		StealLevelOnKill:   false,
		KillBonusLevel:     1,
	}
}

// normalized fills defaults for omitted fields: a zero KillBonusLevel
// means the flat bonus.
func (s Settings) normalized() Settings {
	if s.KillBonusLevel == 0 {
		s.KillBonusLevel = 1
	}
	return s
}

func (s Settings) validate() error {
	if !validKillRule(s.KillRule) {
		return fmt.Errorf("unknown kill rule %q", string(s.KillRule))
	}
	if s.KillBonusLevel != 1 && s.KillBonusLevel != 2 {
		return fmt.Errorf("kill bonus level must be 1 or 2, got %d", s.KillBonusLevel)
	}
	return nil
}

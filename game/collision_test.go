package game

// Capture rules under test: landing on enemy tokens outside a safe zone
// sends each of them home for a wicket. Jackpot takes whole stacks,
// fortress spares a defender with both tokens on the square. Optional
// variants let the attacker inherit a higher victim level and double the
// runs-square capture bonus.

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureSendsVictimHome(t *testing.T) {
	g := mustGame(t, ModeTest, twoSeats(), DefaultSettings())
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9 // runs-6 square

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)
	require.True(t, rep.Captured)

	yellow := ng.PlayerByColor(Yellow)
	require.Equal(t, 1, yellow.Wickets)
	require.Equal(t, yellow.HomeBase, yellow.Tokens[0].Position)
	require.Equal(t, 1, yellow.Tokens[0].Level)

	blue := ng.PlayerByColor(Blue)
	require.Equal(t, 12, blue.Score, "6 kill bonus plus 6 from the square")

	captures := eventsOfType(rep, EventCapture)
	require.Len(t, captures, 1)
	require.Equal(t, Yellow, captures[0].Color)
	require.Len(t, captures[0].Path, 45, "the victim rewinds from 9 back to 12")
	require.Equal(t, yellow.HomeBase, captures[0].Path[len(captures[0].Path)-1])

	bonuses := eventsOfType(rep, EventKillBonus)
	require.Len(t, bonuses, 1)
	require.Equal(t, 6, bonuses[0].Value)
}

func TestSafeZoneBlocksCapture(t *testing.T) {
	g := mustGame(t, ModeTest, twoSeats(), DefaultSettings())
	g.Players[0].Tokens[0].Position = 20
	g.Players[1].Tokens[0].Position = 24 // unowned corner, still a safe zone

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.False(t, rep.Captured, "safe zones shelter every token")
	require.Zero(t, ng.PlayerByColor(Yellow).Wickets)
	require.Equal(t, 24, ng.PlayerByColor(Yellow).Tokens[0].Position)
	require.Equal(t, 24, ng.PlayerByColor(Blue).Tokens[0].Position, "attacker and defender share the square")
}

func TestJackpotCapturesWholeStack(t *testing.T) {
	g := mustGame(t, ModeTest, twoSeats(), DefaultSettings())
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9
	g.Players[1].Tokens[1].Position = 9

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	yellow := ng.PlayerByColor(Yellow)
	require.Equal(t, 2, yellow.Wickets, "a stacked pair falls together under jackpot")
	require.Equal(t, yellow.HomeBase, yellow.Tokens[0].Position)
	require.Equal(t, yellow.HomeBase, yellow.Tokens[1].Position)
	require.Equal(t, 2, rep.Captures())
	require.Equal(t, 18, ng.PlayerByColor(Blue).Score, "two kill bonuses plus the square")
}

func TestFortressProtectsStack(t *testing.T) {
	s := DefaultSettings()
	s.KillRule = Fortress
	g := mustGame(t, ModeTest, twoSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9
	g.Players[1].Tokens[1].Position = 9

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.False(t, rep.Captured)
	yellow := ng.PlayerByColor(Yellow)
	require.Zero(t, yellow.Wickets)
	require.Equal(t, 9, yellow.Tokens[0].Position, "the fortress stands")
	require.Equal(t, 9, yellow.Tokens[1].Position)
	require.Equal(t, 6, ng.PlayerByColor(Blue).Score, "the square still scores for the mover")
}

func TestFortressSparesOnlyFullStacks(t *testing.T) {
	s := DefaultSettings()
	s.KillRule = Fortress
	g := mustGame(t, ModeTest, fourSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[2].Tokens[0].Position = 9 // green fortress
	g.Players[2].Tokens[1].Position = 9
	g.Players[3].Tokens[0].Position = 9 // purple lone token

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.True(t, rep.Captured)
	require.Zero(t, ng.PlayerByColor(Green).Wickets, "the stacked defender is spared")
	require.Equal(t, 1, ng.PlayerByColor(Purple).Wickets, "the lone token is not")
	require.Equal(t, HomeBase(Purple), ng.PlayerByColor(Purple).Tokens[0].Position)
}

func TestCaptureAcrossDefenders(t *testing.T) {
	g := mustGame(t, ModeTest, fourSeats(), DefaultSettings())
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9
	g.Players[2].Tokens[1].Position = 9

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.Equal(t, 2, rep.Captures())
	require.Equal(t, 1, ng.PlayerByColor(Yellow).Wickets)
	require.Equal(t, 1, ng.PlayerByColor(Green).Wickets)
}

func TestStealLevelOnKill(t *testing.T) {
	s := DefaultSettings()
	s.StealLevelOnKill = true
	g := mustGame(t, ModeTest, twoSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9
	g.Players[1].Tokens[0].Level = 4

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	blue := ng.PlayerByColor(Blue)
	require.Equal(t, 4, blue.Tokens[0].Level, "the attacker inherits the higher level")
	require.Equal(t, 1, ng.PlayerByColor(Yellow).Tokens[0].Level, "the victim restarts at level 1")

	steals := eventsOfType(rep, EventLevelSteal)
	require.Len(t, steals, 1)
	require.Equal(t, 4, steals[0].Value)

	// 6 kill bonus, then the square scores with the stolen level.
	require.Equal(t, 6+6*4, blue.Score)
}

func TestNoStealFromWeakerVictim(t *testing.T) {
	s := DefaultSettings()
	s.StealLevelOnKill = true
	g := mustGame(t, ModeTest, twoSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[0].Tokens[0].Level = 3
	g.Players[1].Tokens[0].Position = 9
	g.Players[1].Tokens[0].Level = 2

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.Equal(t, 3, ng.PlayerByColor(Blue).Tokens[0].Level, "equal or lower levels are not stolen")
	require.Empty(t, eventsOfType(rep, EventLevelSteal))
}

func TestStealCompoundsAcrossVictims(t *testing.T) {
	s := DefaultSettings()
	s.StealLevelOnKill = true
	g := mustGame(t, ModeTest, twoSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9
	g.Players[1].Tokens[0].Level = 3
	g.Players[1].Tokens[1].Position = 9
	g.Players[1].Tokens[1].Level = 5

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	require.Equal(t, 5, ng.PlayerByColor(Blue).Tokens[0].Level, "each steal raises the bar for the next")
	require.Len(t, eventsOfType(rep, EventLevelSteal), 2)
}

func TestKillBonusDoubledVariant(t *testing.T) {
	s := DefaultSettings()
	s.KillBonusLevel = 2
	g := mustGame(t, ModeTest, twoSeats(), s)
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Tokens[0].Position = 9

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	bonuses := eventsOfType(rep, EventKillBonus)
	require.Len(t, bonuses, 1)
	require.Equal(t, 12, bonuses[0].Value, "doubled variant pays 2x the square value")
	require.Equal(t, 12+6, ng.PlayerByColor(Blue).Score)
}

func TestNoKillBonusOffRunsSquares(t *testing.T) {
	g := mustGame(t, ModeTest, twoSeats(), DefaultSettings())
	g.Players[1].Tokens[0].Position = 3 // dot ball

	ng, rep, err := g.PlayTurn(1, cw(3))
	require.NoError(t, err)

	require.True(t, rep.Captured)
	require.Empty(t, eventsOfType(rep, EventKillBonus), "only runs squares pay a capture bonus")
	require.Zero(t, ng.PlayerByColor(Blue).Score)
}

func TestCaptureTakesTenthWicket(t *testing.T) {
	g := mustGame(t, ModeTest, twoSeats(), DefaultSettings())
	g.Players[0].Tokens[0].Position = 5
	g.Players[1].Wickets = MaxWickets - 1
	g.Players[1].Tokens[0].Position = 9

	ng, rep, err := g.PlayTurn(1, cw(4))
	require.NoError(t, err)

	yellow := ng.PlayerByColor(Yellow)
	require.True(t, yellow.AllOut)
	require.Equal(t, MaxWickets, yellow.Wickets)
	require.Len(t, eventsOfType(rep, EventAllOut), 1)
}

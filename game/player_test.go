package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTakeWicketLatchesAllOut(t *testing.T) {
	p := Player{Color: Blue}
	for i := 1; i < MaxWickets; i++ {
		require.False(t, p.takeWicket(), "wicket %d must not put the player all out", i)
	}
	require.True(t, p.takeWicket(), "the tenth wicket puts the player all out")
	require.True(t, p.AllOut)
	require.Equal(t, MaxWickets, p.Wickets)

	// Further wickets neither raise the count nor re-report the fall.
	require.False(t, p.takeWicket())
	require.Equal(t, MaxWickets, p.Wickets, "wicket count saturates at %d", MaxWickets)
	require.True(t, p.AllOut, "all out never reverses")
}

func TestConsumeTurn(t *testing.T) {
	p := Player{TurnsRemaining: 2}
	p.consumeTurn()
	require.Equal(t, 1, p.TurnsRemaining)
	p.consumeTurn()
	require.Equal(t, 0, p.TurnsRemaining)
	p.consumeTurn()
	require.Equal(t, 0, p.TurnsRemaining, "an empty budget stays empty")

	unlimited := Player{TurnsRemaining: UnlimitedTurns}
	for i := 0; i < 5; i++ {
		unlimited.consumeTurn()
	}
	require.Equal(t, UnlimitedTurns, unlimited.TurnsRemaining)
}

func TestCanAct(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   bool
	}{
		{"turns left", Player{TurnsRemaining: 3}, true},
		{"unlimited", Player{TurnsRemaining: UnlimitedTurns}, true},
		{"no turns left", Player{TurnsRemaining: 0}, false},
		{"all out", Player{TurnsRemaining: 3, AllOut: true}, false},
		{"all out and unlimited", Player{TurnsRemaining: UnlimitedTurns, AllOut: true}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.player.CanAct())
		})
	}
}

func TestPlayerToken(t *testing.T) {
	p := Player{Tokens: [TokensPerPlayer]Token{{ID: 1, Position: 3}, {ID: 2, Position: 9}}}
	require.Equal(t, 3, p.Token(1).Position)
	require.Equal(t, 9, p.Token(2).Position)
	require.Nil(t, p.Token(3))
}

package server

// Boundary contract under test: the server owns the dice and the state,
// every update carries a validating snapshot plus the pending roll, the
// revision check admits exactly one turn per revision, and session tokens
// gate who may move. Clients only ever see JSON.

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gully/game"
)

func testSeats() []game.Seat {
	return []game.Seat{
		{Name: "Asha", Color: game.Blue},
		{Name: "Ravi", Color: game.Yellow},
	}
}

func newTestMatch(t *testing.T, mode game.Mode) (*Client, *CreatedMatch) {
	t.Helper()
	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)

	client := NewClient(ts.URL)
	created, err := client.CreateMatch(CreateMatchRequest{
		Mode:     mode,
		Seats:    testSeats(),
		Settings: game.DefaultSettings(),
		Seed:     11,
	})
	require.NoError(t, err)
	return client, created
}

func TestCreateMatch(t *testing.T) {
	_, created := newTestMatch(t, game.ModeT20)

	require.Len(t, created.Code, codeLength)
	require.Len(t, created.Sessions, 2, "one session token per seat")
	require.NotEqual(t, created.Sessions[game.Blue], created.Sessions[game.Yellow])

	require.Equal(t, 1, created.Rev)
	require.Nil(t, created.Report, "nothing has been played yet")
	require.NotNil(t, created.PendingRoll, "the first roll is drawn up front")
	require.GreaterOrEqual(t, created.PendingRoll.Steps, 1)
	require.LessOrEqual(t, created.PendingRoll.Steps, 6)

	g, err := game.FromSnapshot(created.Snapshot)
	require.NoError(t, err, "served snapshots must pass the validating decode")
	require.Equal(t, game.Blue, g.CurrentPlayer().Color)
	require.Equal(t, g.Hash(), created.Hash)
}

func TestCreateMatchRejectsBadConfigs(t *testing.T) {
	ts := httptest.NewServer(New().Handler())
	t.Cleanup(ts.Close)
	client := NewClient(ts.URL)

	_, err := client.CreateMatch(CreateMatchRequest{
		Mode:     "ODI",
		Seats:    testSeats(),
		Settings: game.DefaultSettings(),
	})
	require.Error(t, err)

	_, err = client.CreateMatch(CreateMatchRequest{
		Mode:     game.ModeT20,
		Seats:    testSeats()[:1],
		Settings: game.DefaultSettings(),
	})
	require.Error(t, err)
}

func TestStateMatchesCreateResponse(t *testing.T) {
	client, created := newTestMatch(t, game.ModeT20)

	u, err := client.State(created.Code)
	require.NoError(t, err)
	require.Equal(t, created.Update, *u)
}

func TestStateUnknownMatch(t *testing.T) {
	client, _ := newTestMatch(t, game.ModeT20)

	_, err := client.State("NOSUCH")
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestPlayGatekeeping(t *testing.T) {
	client, created := newTestMatch(t, game.ModeT20)
	blue := created.Sessions[game.Blue]
	yellow := created.Sessions[game.Yellow]

	t.Run("unknown session", func(t *testing.T) {
		_, err := client.Play(created.Code, "not-a-token", 1, created.Rev)
		require.ErrorIs(t, err, ErrUnknownSession)
	})
	t.Run("stale revision", func(t *testing.T) {
		_, err := client.Play(created.Code, blue, 1, created.Rev+5)
		require.ErrorIs(t, err, ErrStaleRevision)
	})
	t.Run("not your turn", func(t *testing.T) {
		_, err := client.Play(created.Code, yellow, 1, created.Rev)
		require.ErrorIs(t, err, ErrNotYourTurn)
	})
	t.Run("unknown match", func(t *testing.T) {
		_, err := client.Play("NOSUCH", blue, 1, created.Rev)
		require.ErrorIs(t, err, ErrMatchNotFound)
	})
	t.Run("bad token id", func(t *testing.T) {
		_, err := client.Play(created.Code, blue, 3, created.Rev)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotYourTurn)
	})

	// None of the rejections may have advanced the match.
	u, err := client.State(created.Code)
	require.NoError(t, err)
	require.Equal(t, created.Rev, u.Rev)
	require.Equal(t, created.Hash, u.Hash)
}

func TestPlayAppliesPendingRoll(t *testing.T) {
	client, created := newTestMatch(t, game.ModeT20)
	roll := *created.PendingRoll

	u, err := client.Play(created.Code, created.Sessions[game.Blue], 1, created.Rev)
	require.NoError(t, err)

	require.Equal(t, created.Rev+1, u.Rev)
	require.NotNil(t, u.Report)
	require.Equal(t, game.Blue, u.Report.Color)
	require.Equal(t, roll, u.Report.Roll, "the stored pending roll is the one applied")
	require.NotEqual(t, created.Hash, u.Hash)

	// The snapshot reflects the move: blue's token walked the report's path.
	g, err := game.FromSnapshot(u.Snapshot)
	require.NoError(t, err)
	last := u.Report.Path[len(u.Report.Path)-1]
	require.Equal(t, last, g.PlayerByColor(game.Blue).Token(1).Position)

	if !u.Snapshot.IsGameOver {
		require.NotNil(t, u.PendingRoll, "a live match always exposes the next roll")
	}
}

func TestWebsocketBroadcast(t *testing.T) {
	client, created := newTestMatch(t, game.ModeT20)

	sub, err := client.Subscribe(created.Code)
	require.NoError(t, err)
	defer sub.Close()

	hello, err := sub.Next()
	require.NoError(t, err)
	require.Equal(t, created.Update, *hello, "subscribing replays the current revision")

	played, err := client.Play(created.Code, created.Sessions[game.Blue], 2, created.Rev)
	require.NoError(t, err)

	pushed, err := sub.Next()
	require.NoError(t, err)
	require.Equal(t, *played, *pushed, "subscribers see exactly what the mover saw")
}

func TestSubscribeUnknownMatch(t *testing.T) {
	client, _ := newTestMatch(t, game.ModeT20)
	_, err := client.Subscribe("NOSUCH")
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestPlayToCompletion(t *testing.T) {
	client, created := newTestMatch(t, game.ModeT20)
	u := &created.Update

	for turns := 0; !u.Snapshot.IsGameOver; turns++ {
		require.Less(t, turns, 1000, "seeded T20 match must finish")
		require.NotNil(t, u.PendingRoll)

		// Every served snapshot must survive the validating decode and
		// hash back to the server's own digest.
		g, err := game.FromSnapshot(u.Snapshot)
		require.NoError(t, err)
		require.Equal(t, u.Hash, g.Hash())

		cur := g.CurrentPlayer().Color
		u, err = client.Play(created.Code, created.Sessions[cur], 1+u.Rev%2, u.Rev)
		require.NoError(t, err)
	}

	require.Nil(t, u.PendingRoll, "a finished match rolls no more dice")
	require.NotEqual(t, game.ColorNone, u.Snapshot.Winner)

	_, err := client.Play(created.Code, created.Sessions[game.Blue], 1, u.Rev)
	require.ErrorIs(t, err, ErrMatchOver)
}

package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gully/agent"
	"gully/game"
	"gully/server"
)

// RemoteSeat plays one color of a hosted match over the wire. The server
// stays authoritative: it holds the dice and the state, and the seat only
// ever sees snapshots. Each update is decoded through the validating
// path, handed to the agent with the pending roll, and the chosen token
// is submitted against the revision the decision was based on.
type RemoteSeat struct {
	Client  *server.Client
	Code    string
	Session string
	Color   game.Color
	Agent   agent.Agent
}

// Run subscribes to the match stream and plays this seat's turns until
// the match ends, returning the winner. Stale-revision and match-over
// rejections are races against the other seats and are ignored; any
// other failure stops the seat.
func (rs *RemoteSeat) Run() (game.Color, error) {
	if rs.Agent == nil {
		return game.ColorNone, errors.New("remote seat needs an agent")
	}
	sub, err := rs.Client.Subscribe(rs.Code)
	if err != nil {
		return game.ColorNone, fmt.Errorf("subscribe to match %s: %w", rs.Code, err)
	}
	defer sub.Close()

	// The handshake replays the current revision, so the seat can join a
	// match that is already underway.
	u, err := sub.Next()
	if err != nil {
		return game.ColorNone, fmt.Errorf("match %s stream: %w", rs.Code, err)
	}
	for {
		if u.Snapshot.IsGameOver {
			log.Debug().Msgf("%s seat: match %s finished, %s won", rs.Color, rs.Code, u.Snapshot.Winner)
			return u.Snapshot.Winner, nil
		}
		if err := rs.tryMove(u); err != nil {
			return game.ColorNone, err
		}
		if u, err = sub.Next(); err != nil {
			return game.ColorNone, fmt.Errorf("match %s stream: %w", rs.Code, err)
		}
	}
}

// tryMove submits a token choice when the update shows this seat to act.
// Updates for other seats' turns are ignored.
func (rs *RemoteSeat) tryMove(u *server.Update) error {
	if u.PendingRoll == nil {
		return nil
	}
	state, err := game.FromSnapshot(u.Snapshot)
	if err != nil {
		return fmt.Errorf("rejecting server state: %w", err)
	}
	cur := state.CurrentPlayer()
	if cur.Color != rs.Color {
		return nil
	}

	tokenID := rs.Agent.ChooseToken(state, *u.PendingRoll)
	if cur.Token(tokenID) == nil {
		log.Warn().Msgf("%s's agent chose token %d, falling back to token 1", rs.Color, tokenID)
		tokenID = 1
	}
	_, err = rs.Client.Play(rs.Code, rs.Session, tokenID, u.Rev)
	if errors.Is(err, server.ErrStaleRevision) || errors.Is(err, server.ErrMatchOver) {
		// Another update won the race; the stream carries the truth.
		log.Debug().Msgf("%s seat: move on rev %d superseded", rs.Color, u.Rev)
		return nil
	}
	return err
}

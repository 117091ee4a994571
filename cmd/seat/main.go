package main

import (
	"flag"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gully/agent"
	"gully/engine"
	"gully/game"
	"gully/server"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "match server base URL")
	code := flag.String("code", "", "match code")
	session := flag.String("session", "", "session token for this seat")
	color := flag.String("color", "", "seat color: blue, yellow, green or purple")
	kind := flag.String("agent", "greedy", "agent: random, greedy or rollouts")
	seed := flag.Uint64("seed", 0, "agent seed; 0 draws from the clock")
	debug := flag.Bool("debug", false, "log every move")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *code == "" || *session == "" {
		log.Fatal().Msg("need -code and -session from the match creator")
	}
	seatColor := game.Color(*color)
	if !slices.Contains(game.SeatOrder, seatColor) {
		log.Fatal().Msgf("unknown color %q", *color)
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	var a agent.Agent
	switch *kind {
	case "random":
		a = agent.Random(*seed)
	case "greedy":
		a = agent.Greedy(*seed)
	case "rollouts":
		a = agent.Rollouts(*seed)
	default:
		log.Fatal().Msgf("unknown agent %q", *kind)
	}

	seat := &engine.RemoteSeat{
		Client:  server.NewClient(*url),
		Code:    *code,
		Session: *session,
		Color:   seatColor,
		Agent:   a,
	}
	log.Info().Msgf("joining match %s as %s with the %s agent", *code, seatColor, *kind)

	winner, err := seat.Run()
	if err != nil {
		log.Fatal().Err(err).Msgf("%s seat stopped", seatColor)
	}
	if winner == game.ColorNone {
		log.Info().Msg("match over with no result")
	} else {
		log.Info().Msgf("match over: %s wins", winner)
	}
}

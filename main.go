package main

import (
	"flag"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gully/experiments"
	"gully/game"
)

func main() {
	experiment := flag.String("experiment", "balance", "experiment to run: balance or throughput")
	games := flag.Int("games", 30, "games per variant")
	seats := flag.Int("seats", 2, "players per game (2-4)")
	mode := flag.String("mode", "T20", "game mode: T20, FiftyFifty or Test")
	workers := flag.Int("workers", 8, "concurrent matches")
	seed := flag.Uint64("seed", 1, "master seed")
	out := flag.String("out", "results", "output directory for CSV records")
	debug := flag.Bool("debug", false, "log every turn")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var gameMode game.Mode
	switch *mode {
	case "T20":
		gameMode = game.ModeT20
	case "FiftyFifty":
		gameMode = game.ModeFiftyFifty
	case "Test":
		gameMode = game.ModeTest
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}

	cfg := experiments.Config{
		Games:   *games,
		Seats:   *seats,
		Mode:    gameMode,
		Workers: *workers,
		Seed:    *seed,
		OutDir:  *out,
	}

	switch *experiment {
	case "balance":
		if err := experiments.RunBalanceExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("balance experiment failed")
		}
	case "throughput":
		experiments.RunThroughputExperiment(cfg)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
}

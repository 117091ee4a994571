package experiments

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gully/agent"
	"gully/engine"
	"gully/experiments/metrics"
	"gully/game"
)

// Config sizes an experiment run. Zero fields take defaults.
type Config struct {
	Games   int // per variant
	Seats   int // players per game
	Mode    game.Mode
	Workers int    // concurrent matches
	Seed    uint64 // master seed; every game seed derives from it
	OutDir  string // root for CSV output
}

func (c Config) withDefaults() Config {
	if c.Games == 0 {
		c.Games = 30
	}
	if c.Seats == 0 {
		c.Seats = 2
	}
	if c.Mode == "" {
		c.Mode = game.ModeT20
	}
	if c.Workers == 0 {
		c.Workers = 8
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.OutDir == "" {
		c.OutDir = "results"
	}
	return c
}

// balanceVariants spans the capture-rule space: both kill rules, with and
// without level stealing, flat and doubled capture bonus. Dice stay
// clockwise-only so the axes under study are isolated.
func balanceVariants(cfg Config) ([]metrics.VariantConfig, []game.Settings) {
	var configs []metrics.VariantConfig
	var variants []game.Settings
	id := 0
	for _, rule := range []game.KillRule{game.Fortress, game.Jackpot} {
		for _, steal := range []bool{false, true} {
			for _, bonus := range []int{1, 2} {
				id++
				s := game.DefaultSettings()
				s.KillRule = rule
				s.StealLevelOnKill = steal
				s.KillBonusLevel = bonus
				configs = append(configs, metrics.VariantConfig{
					ID:                 id,
					Mode:               string(cfg.Mode),
					Seats:              cfg.Seats,
					KillRule:           string(rule),
					StealLevelOnKill:   steal,
					KillBonusLevel:     bonus,
					AllowAntiClockwise: s.AllowAntiClockwise,
				})
				variants = append(variants, s)
			}
		}
	}
	return configs, variants
}

// RunBalanceExperiment plays every capture-rule variant for the
// configured number of games and writes variant, game and turn records as
// CSV. Seeds are drawn up front and results land in indexed slots, so the
// output is identical for any worker count.
func RunBalanceExperiment(cfg Config) error {
	cfg = cfg.withDefaults()
	if cfg.Seats < 2 || cfg.Seats > len(game.SeatOrder) {
		return fmt.Errorf("seats must be between 2 and %d, got %d", len(game.SeatOrder), cfg.Seats)
	}

	configs, variants := balanceVariants(cfg)
	total := len(variants) * cfg.Games

	collector := metrics.NewCollector()
	collector.Start(len(variants))
	log.Info().Msgf("starting balance experiment: %d variants, %d games each, %d workers",
		len(variants), cfg.Games, cfg.Workers)

	rng := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]uint64, total)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	gameRecords := make([]metrics.GameRecord, total)
	turnsByGame := make([][]metrics.TurnMetric, total)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				vi := i / cfg.Games
				winner, gm, tms := runGame(cfg, variants[vi], seeds[i])
				gameRecords[i] = metrics.GameRecord{
					ID:         i + 1,
					Variant:    configs[vi].ID,
					GameMetric: gm,
				}
				turnsByGame[i] = tms
				collector.AddGame()
				collector.AddTurns(gm.Turns)
				collector.AddCaptures(gm.Captures)
				collector.AddWickets(gm.Wickets)
				log.Debug().Msgf("variant %d game %d finished, winner %s",
					configs[vi].ID, i%cfg.Games+1, winner)
			}
		}()
	}
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var turnRecords []metrics.TurnRecord
	for i, tms := range turnsByGame {
		for _, tm := range tms {
			turnRecords = append(turnRecords, metrics.TurnRecord{Game: i + 1, TurnMetric: tm})
		}
	}

	run := collector.Complete()
	log.Info().Msgf("completed balance experiment: %d games, %d turns, %d captures, %d wickets in %s",
		run.Games, run.Turns, run.Captures, run.Wickets, run.Duration)

	writer, err := metrics.NewWriter(cfg.OutDir, "balance")
	if err != nil {
		return fmt.Errorf("create experiment writer: %w", err)
	}
	if err := writer.WriteVariantConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored records under %s", writer.Dir())
	return nil
}

// runGame plays one seeded match under the given rule variant. Agent and
// dice seeds both derive from the game seed, so the same seed replays the
// same game.
func runGame(cfg Config, settings game.Settings, seed uint64) (game.Color, metrics.GameMetric, []metrics.TurnMetric) {
	seats := make([]game.Seat, cfg.Seats)
	for i := range seats {
		seats[i] = game.Seat{Name: fmt.Sprintf("Bot %d", i+1), Color: game.SeatOrder[i], IsAI: true}
	}
	g, err := game.NewGame(cfg.Mode, seats, settings)
	if err != nil {
		panic(fmt.Sprintf("experiment game config is invalid: %v", err))
	}

	rng := rand.New(rand.NewSource(seed))
	agents := make(map[game.Color]agent.Agent, len(seats))
	for _, seat := range seats {
		agents[seat.Color] = agent.Greedy(rng.Uint64())
	}
	m := engine.NewMatch(g, agents, game.NewRoller(rng.Uint64(), settings))
	return m.Run()
}

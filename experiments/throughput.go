package experiments

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gully/game"
)

var workerSweep = []int{1, 2, 4, 8, 16}

// ThroughputResult reports how fast one pool size played the block.
type ThroughputResult struct {
	Workers        int
	Games          int
	Duration       time.Duration
	GamesPerSecond float64
}

// RunThroughputExperiment replays the same seeded block of games at each
// pool size and reports the throughput. Results go to the log only; the
// point is sizing Workers for RunBalanceExperiment.
func RunThroughputExperiment(cfg Config) []ThroughputResult {
	cfg = cfg.withDefaults()
	settings := game.DefaultSettings()

	rng := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]uint64, cfg.Games)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	log.Info().Msgf("starting throughput experiment: %d games per pool size", cfg.Games)

	results := make([]ThroughputResult, 0, len(workerSweep))
	for _, workers := range workerSweep {
		start := time.Now()

		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					runGame(cfg, settings, seeds[i])
				}
			}()
		}
		for i := range seeds {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		elapsed := time.Since(start)
		r := ThroughputResult{
			Workers:        workers,
			Games:          cfg.Games,
			Duration:       elapsed,
			GamesPerSecond: float64(cfg.Games) / elapsed.Seconds(),
		}
		results = append(results, r)
		log.Info().Msgf("%3d workers: %d games in %s (%.1f games/s)",
			r.Workers, r.Games, r.Duration, r.GamesPerSecond)
	}
	return results
}

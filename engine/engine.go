package engine

import (
	"gully/experiments/metrics"
	"gully/game"
)

// Engine drives one match to completion, wherever the seats happen to
// live.
type Engine interface {
	// Run plays until the game ends or a turn cap is reached.
	Run() (winner game.Color, gameMetric metrics.GameMetric, turnMetrics []metrics.TurnMetric)
}

package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped output directory under root/name and
// returns a writer bound to it.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// Dir returns the directory the writer's files land in.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteVariantConfigs(configs []VariantConfig) error {
	path := filepath.Join(w.baseDir, "variant_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create variant configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "mode", "seats", "kill_rule", "steal_level_on_kill", "kill_bonus_level", "allow_anticlockwise"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write variant configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Mode,
			strconv.Itoa(config.Seats),
			config.KillRule,
			strconv.FormatBool(config.StealLevelOnKill),
			strconv.Itoa(config.KillBonusLevel),
			strconv.FormatBool(config.AllowAntiClockwise),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write variant config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "variant", "starting_color", "winner", "start_time", "end_time", "duration", "turns", "captures", "wickets"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Variant),
			record.StartingColor,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Captures),
			strconv.Itoa(record.Wickets),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteTurnRecords(records []TurnRecord) error {
	path := filepath.Join(w.baseDir, "turn_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create turn records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "turn", "color", "token", "steps", "direction", "runs", "captured", "extra_turn"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write turn records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Color,
			strconv.Itoa(record.TokenID),
			strconv.Itoa(record.Steps),
			record.Direction,
			strconv.Itoa(record.Runs),
			strconv.FormatBool(record.Captured),
			strconv.FormatBool(record.ExtraTurn),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write turn record row: %w", err)
		}
	}

	return nil
}

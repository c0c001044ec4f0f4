package sweep

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"spell-cooldowns/internal/character"
	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/engine"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/modifiers"
	"spell-cooldowns/internal/spells"
)

// Config describes a haste sweep in percent.
type Config struct {
	Start       float64
	Stop        float64
	Step        float64
	Concurrency int
}

// Point is the outcome of replaying the timeline at one haste value.
type Point struct {
	Haste          float64
	Casts          int
	Desyncs        int
	Diagnostics    int
	TimeOnCooldown time.Duration
}

// Validate fills defaults and rejects empty ranges.
func (c *Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("step must be > 0 (got %.2f)", c.Step)
	}
	if c.Stop < c.Start {
		return fmt.Errorf("stop must be >= start (start=%.2f, stop=%.2f)", c.Start, c.Stop)
	}
	if c.Start <= -100 {
		return fmt.Errorf("start must be > -100 (got %.2f)", c.Start)
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return nil
}

// Values lists every haste value of the sweep, stop included.
func (c Config) Values() []float64 {
	var values []float64
	for i := 0; ; i++ {
		v := c.Start + float64(i)*c.Step
		if v > c.Stop+1e-9 {
			break
		}
		values = append(values, v)
	}
	return values
}

// Run replays tl once per haste value. Points come back in sweep order.
func Run(ctx context.Context, cfg *config.Config, tl *events.Timeline, sc Config) ([]Point, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	values := sc.Values()
	if len(values) == 0 {
		return nil, fmt.Errorf("no sweep points generated")
	}

	points := make([]Point, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sc.Concurrency)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := replayAt(cfg, tl, v)
			if err != nil {
				return fmt.Errorf("haste %.2f%%: %w", v, err)
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func replayAt(cfg *config.Config, tl *events.Timeline, haste float64) (Point, error) {
	player := cfg.Replay.Player
	char := character.NewCharacter(player.Character.ID, player.Character.Name, character.Stats{HastePct: haste})
	catalog, err := spells.NewCatalog(cfg, char)
	if err != nil {
		return Point{}, err
	}
	mods := modifiers.NewSet(modifiers.FromConfig(cfg.Replay.Modifiers), nil)

	result := engine.NewReplayer(catalog, char, mods, nil, false, nil).Run(tl)

	p := Point{
		Haste:       haste,
		Casts:       result.Casts,
		Diagnostics: len(result.Diagnostics),
	}
	for _, d := range result.Diagnostics {
		if d.Kind == cooldowns.KindDesync {
			p.Desyncs++
		}
	}
	for _, a := range result.Abilities {
		p.TimeOnCooldown += a.TimeOnCooldown
	}
	return p, nil
}

// Best returns the lowest haste value with the fewest desyncs.
func Best(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Desyncs < best.Desyncs || (p.Desyncs == best.Desyncs && p.Haste < best.Haste) {
			best = p
		}
	}
	return best, true
}

// WriteCSV writes one row per point.
func WriteCSV(w io.Writer, points []Point) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"haste_percent", "casts", "desyncs", "diagnostics", "time_on_cooldown_seconds"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Haste, 'f', 2, 64),
			strconv.Itoa(p.Casts),
			strconv.Itoa(p.Desyncs),
			strconv.Itoa(p.Diagnostics),
			strconv.FormatFloat(p.TimeOnCooldown.Seconds(), 'f', 3, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

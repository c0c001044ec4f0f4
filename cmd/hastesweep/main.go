package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/logging"
	"spell-cooldowns/internal/sweep"
)

func main() {
	configDir := flag.String("config-dir", "./configs", "Path to config directory")
	timelinePath := flag.String("timeline", "configs/timelines/example.yaml", "Path to timeline YAML/JSON")
	start := flag.Float64("start", 0, "Sweep start (haste percent)")
	stop := flag.Float64("stop", 40, "Sweep stop (haste percent)")
	step := flag.Float64("step", 0.5, "Sweep step (haste percent)")
	concurrency := flag.Int("concurrency", 0, "Concurrent replays (0 = num CPU)")
	outputDir := flag.String("output-dir", "output/haste_sweep", "Directory for sweep CSV output")
	flag.Parse()

	logging.InitLogger("info")
	logger := logging.GetLogger()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *configDir).Msg("Failed to load config")
	}
	logging.InitLogger(cfg.Replay.Logging.Level)

	cleaned := filepath.Clean(*timelinePath)
	timeline, err := events.LoadTimeline(filepath.Dir(cleaned), filepath.Base(cleaned))
	if err != nil {
		logger.Fatal().Err(err).Str("timeline", cleaned).Msg("Failed to load timeline")
	}

	sc := sweep.Config{Start: *start, Stop: *stop, Step: *step, Concurrency: *concurrency}
	logger.Info().
		Float64("start", sc.Start).
		Float64("stop", sc.Stop).
		Float64("step", sc.Step).
		Int("events", len(timeline.Events)).
		Msg("Running haste sweep")
	points, err := sweep.Run(context.Background(), cfg, timeline, sc)
	if err != nil {
		logger.Fatal().Err(err).Msg("Sweep failed")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		logger.Fatal().Err(err).Str("dir", *outputDir).Msg("Failed to create output dir")
	}
	outPath := filepath.Join(*outputDir, "haste.csv")
	file, err := os.Create(outPath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", outPath).Msg("Failed to create file")
	}
	defer file.Close()
	if err := sweep.WriteCSV(file, points); err != nil {
		logger.Fatal().Err(err).Str("file", outPath).Msg("Failed to write sweep CSV")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Haste\tCasts\tDesyncs\tOn Cooldown\n")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f%%\t%d\t%d\t%.1fs\n", p.Haste, p.Casts, p.Desyncs, p.TimeOnCooldown.Seconds())
	}
	w.Flush()

	if best, ok := sweep.Best(points); ok {
		fmt.Printf("\nFewest desyncs: %d at %.2f%% haste\n", best.Desyncs, best.Haste)
	}
	fmt.Printf("Sweep written to %s\n", outPath)
}

package main

import (
	"flag"
	"os"
	"path/filepath"

	"spell-cooldowns/internal/character"
	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/engine"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/logging"
	"spell-cooldowns/internal/modifiers"
	"spell-cooldowns/internal/spells"
)

func main() {
	configDir := flag.String("config-dir", "./configs", "Path to config directory")
	timelinePath := flag.String("timeline", "configs/timelines/example.yaml", "Path to timeline YAML/JSON")
	trace := flag.Bool("trace", false, "Print every cooldown transition")
	logLevel := flag.String("log-level", "", "Log level (defaults to replay.yaml value)")
	flag.Parse()

	logging.InitLogger("info")
	logger := logging.GetLogger()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *configDir).Msg("Failed to load config")
	}
	level := cfg.Replay.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logging.InitLogger(level)
	logger = logging.GetLogger()

	player := cfg.Replay.Player
	char := character.NewCharacter(player.Character.ID, player.Character.Name, character.Stats{
		HastePct: player.Stats.HastePercent,
	})
	catalog, err := spells.NewCatalog(cfg, char)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build ability catalog")
	}
	mods := modifiers.NewSet(modifiers.FromConfig(cfg.Replay.Modifiers), logger)

	cleaned := filepath.Clean(*timelinePath)
	timeline, err := events.LoadTimeline(filepath.Dir(cleaned), filepath.Base(cleaned))
	if err != nil {
		logger.Fatal().Err(err).Str("timeline", cleaned).Msg("Failed to load timeline")
	}
	logger.Info().
		Int("events", len(timeline.Events)).
		Int("skipped", timeline.Skipped).
		Int("abilities", len(catalog.All())).
		Int("modifiers", mods.Len()).
		Msg("Replaying timeline")

	replayer := engine.NewReplayer(catalog, char, mods, logger, *trace, os.Stdout)
	result := replayer.Run(timeline)
	result.PrintResults(os.Stdout)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"spell-cooldowns/internal/character"
	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/logging"
	"spell-cooldowns/internal/spells"
)

func main() {
	var configDir string
	flag.StringVar(&configDir, "config-dir", "./configs", "Path to config directory")
	flag.Parse()

	logging.InitLogger("info")
	logger := logging.GetLogger()

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", configDir).Msg("Config invalid")
	}
	logging.InitLogger(cfg.Replay.Logging.Level)

	player := cfg.Replay.Player
	char := character.NewCharacter(player.Character.ID, player.Character.Name, character.Stats{
		HastePct: player.Stats.HastePercent,
	})
	catalog, err := spells.NewCatalog(cfg, char)
	if err != nil {
		logger.Fatal().Err(err).Msg("Catalog invalid")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tCooldown\tCharges\n")
	for _, a := range catalog.All() {
		cd := "-"
		if d, ok := catalog.ExpectedCooldownDuration(a.ID); ok {
			cd = d.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", a.ID, a.Name, cd, catalog.MaxCharges(a.ID))
	}
	w.Flush()

	fmt.Printf("Configuration in '%s' validated successfully (%d abilities, %d modifiers)\n",
		configDir, len(catalog.All()), len(cfg.Replay.Modifiers))
}

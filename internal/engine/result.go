package engine

import (
	"fmt"
	"io"
	"time"

	"spell-cooldowns/internal/clock"
	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/stats"
)

// Result holds the outcome of one replay
type Result struct {
	Start         time.Duration
	End           time.Duration
	FightDuration time.Duration

	Events           int // events processed, fight end included
	Casts            int // actor casts with an ability
	Malformed        int // actor casts without an ability
	Skipped          int // timeline entries dropped while loading
	Ignored          int // events after the fight ended
	ModifiersApplied int

	Diagnostics []cooldowns.Diagnostic
	Abilities   []stats.AbilityStats
}

// PrintResults writes a text summary of the replay
func (r *Result) PrintResults(w io.Writer) {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Cooldown Replay Results")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Fight Duration: %s\n", clock.FormatDuration(r.FightDuration))
	fmt.Fprintf(w, "Events: %d (casts %d, malformed %d, skipped %d, after end %d)\n",
		r.Events, r.Casts, r.Malformed, r.Skipped, r.Ignored)
	fmt.Fprintf(w, "Modifiers Applied: %d\n", r.ModifiersApplied)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Cooldown Breakdown:")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")
	fmt.Fprintf(w, "%-22s | %7s | %7s | %7s | %7s | %10s | %6s\n",
		"Ability", "Casts", "Peak", "Refresh", "Finish", "On CD", "Share")
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")
	for _, row := range r.Abilities {
		share := 0.0
		if r.FightDuration > 0 {
			share = float64(row.TimeOnCooldown) / float64(r.FightDuration) * 100.0
		}
		fmt.Fprintf(w, "%-22s | %7d | %7d | %7d | %7d | %10s | %5.1f%%\n",
			truncate(row.Name, 22), row.Casts(), row.PeakCharges, row.Refreshes, row.Finishes,
			clock.FormatDuration(row.TimeOnCooldown), share)
	}
	fmt.Fprintln(w, "--------------------------------------------------------------------------------")

	if len(r.Diagnostics) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Diagnostics (%d):\n", len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  [%s] %s %s\n", clock.FormatDuration(d.Timestamp-r.Start), d.Kind, d.Message)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "~"
}

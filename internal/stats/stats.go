package stats

import (
	"sort"
	"time"

	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/spells"
)

// AbilityStats keeps per-ability cooldown usage
type AbilityStats struct {
	Ability        spells.AbilityID
	Name           string
	Cooldowns      int // casts that started a cooldown from free
	ExtraCharges   int // casts that consumed a further charge
	Refreshes      int
	Finishes       int
	TimeOnCooldown time.Duration // at least one charge on cooldown
	PeakCharges    int           // most charges seen on cooldown at once

	onCooldown bool
	since      time.Duration
}

// Casts returns every cast that consumed a charge.
func (s *AbilityStats) Casts() int {
	return s.Cooldowns + s.ExtraCharges
}

type namer interface {
	Name(id spells.AbilityID) string
}

// Tracker consumes cooldown notifications and aggregates them per ability.
type Tracker struct {
	names     namer
	abilities map[spells.AbilityID]*AbilityStats
}

// NewTracker creates a tracker. names may be nil.
func NewTracker(names namer) *Tracker {
	return &Tracker{
		names:     names,
		abilities: make(map[spells.AbilityID]*AbilityStats),
	}
}

// Notify implements cooldowns.Notifier.
func (t *Tracker) Notify(n cooldowns.Notification) {
	s := t.get(n.Ability)
	if n.Charges > s.PeakCharges {
		s.PeakCharges = n.Charges
	}
	switch n.Signal {
	case cooldowns.SignalStartCooldown:
		s.Cooldowns++
		s.open(n.Timestamp)
	case cooldowns.SignalStartCooldownCharge:
		s.ExtraCharges++
		s.open(n.Timestamp)
	case cooldowns.SignalRefreshCooldown:
		s.Refreshes++
	case cooldowns.SignalFinishCooldown:
		s.Finishes++
		if n.Charges == 0 {
			s.close(n.Timestamp)
		}
	}
}

// Finalize closes every open cooldown period at now.
func (t *Tracker) Finalize(now time.Duration) {
	for _, s := range t.abilities {
		s.close(now)
	}
}

// Get returns the stats of one ability.
func (t *Tracker) Get(id spells.AbilityID) (AbilityStats, bool) {
	s, ok := t.abilities[id]
	if !ok {
		return AbilityStats{}, false
	}
	return *s, true
}

// Summary returns per-ability stats sorted by time on cooldown, longest first.
func (t *Tracker) Summary() []AbilityStats {
	rows := make([]AbilityStats, 0, len(t.abilities))
	for _, s := range t.abilities {
		rows = append(rows, *s)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TimeOnCooldown == rows[j].TimeOnCooldown {
			return rows[i].Ability < rows[j].Ability
		}
		return rows[i].TimeOnCooldown > rows[j].TimeOnCooldown
	})
	return rows
}

func (t *Tracker) get(id spells.AbilityID) *AbilityStats {
	s, ok := t.abilities[id]
	if ok {
		return s
	}
	s = &AbilityStats{Ability: id}
	if t.names != nil {
		s.Name = t.names.Name(id)
	}
	t.abilities[id] = s
	return s
}

func (s *AbilityStats) open(now time.Duration) {
	if s.onCooldown {
		return
	}
	s.onCooldown = true
	s.since = now
}

func (s *AbilityStats) close(now time.Duration) {
	if !s.onCooldown {
		return
	}
	s.onCooldown = false
	if now > s.since {
		s.TimeOnCooldown += now - s.since
	}
}

package config

import (
	"fmt"
	"strings"
)

var knownEventTypes = map[string]struct{}{
	"cast":       {},
	"begincast":  {},
	"damage":     {},
	"heal":       {},
	"applybuff":  {},
	"removebuff": {},
	"energize":   {},
}

func (cfg *Config) validate() error {
	known, err := cfg.Abilities.validate()
	if err != nil {
		return err
	}
	if err := cfg.Replay.validate(known); err != nil {
		return err
	}
	return nil
}

func (a *Abilities) validate() (map[int]struct{}, error) {
	seen := make(map[int]struct{}, len(a.Abilities))
	for i := range a.Abilities {
		entry := &a.Abilities[i]
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.ID <= 0 {
			return nil, fmt.Errorf("abilities: entry %d has invalid id %d", i, entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("abilities: id %d listed more than once", entry.ID)
		}
		if entry.CooldownSeconds < 0 {
			return nil, fmt.Errorf("abilities: %d has negative cooldown %.3f", entry.ID, entry.CooldownSeconds)
		}
		if entry.Charges == 0 {
			entry.Charges = 1
		}
		if entry.Charges < 1 {
			return nil, fmt.Errorf("abilities: %d has invalid charge count %d", entry.ID, entry.Charges)
		}
		seen[entry.ID] = struct{}{}
	}
	return seen, nil
}

func (r *Replay) validate(known map[int]struct{}) error {
	if r.Player.Stats.HastePercent <= -100 {
		return fmt.Errorf("player: haste_percent must be above -100, got %.2f", r.Player.Stats.HastePercent)
	}
	for i := range r.Modifiers {
		if err := r.Modifiers[i].validate(known); err != nil {
			label := r.Modifiers[i].Name
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("modifiers: rule %s: %w", label, err)
		}
	}
	return nil
}

func (m *ModifierRule) validate(known map[int]struct{}) error {
	m.On = strings.ToLower(strings.TrimSpace(m.On))
	if m.On == "" {
		m.On = "cast"
	}
	if _, ok := knownEventTypes[m.On]; !ok {
		return fmt.Errorf("unknown event type '%s'", m.On)
	}
	if _, ok := known[m.Trigger]; !ok {
		return fmt.Errorf("unknown trigger ability %d", m.Trigger)
	}
	if _, ok := known[m.Target]; !ok {
		return fmt.Errorf("unknown target ability %d", m.Target)
	}
	m.Action = ModifierAction(strings.ToLower(strings.TrimSpace(string(m.Action))))
	switch m.Action {
	case ActionReduce:
		if m.AmountSeconds <= 0 {
			return fmt.Errorf("reduce needs a positive amount_seconds")
		}
	case ActionReset:
	case ActionRefresh:
		if m.DurationSeconds < 0 {
			return fmt.Errorf("refresh duration_seconds cannot be negative")
		}
	default:
		return fmt.Errorf("unknown action '%s'", m.Action)
	}
	return nil
}

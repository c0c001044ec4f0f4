package modifiers

import (
	"time"

	"github.com/rs/zerolog"

	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/spells"
)

// Rule changes the cooldown of Target whenever the actor performs an event
// of type On with the Trigger ability.
type Rule struct {
	Name     string
	On       events.Type
	Trigger  spells.AbilityID
	Target   spells.AbilityID
	Action   config.ModifierAction
	Amount   time.Duration // reduce
	Duration time.Duration // refresh override, zero uses the catalog
}

// Outcome records one rule that fired.
type Outcome struct {
	Rule     Rule
	Consumed time.Duration // reduce only
}

type key struct {
	on      events.Type
	trigger spells.AbilityID
}

// Set holds the configured rules indexed by trigger.
type Set struct {
	rules  map[key][]Rule
	logger *zerolog.Logger
}

// FromConfig converts validated config rules.
func FromConfig(rules []config.ModifierRule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		on := events.Type(r.On)
		if on == "" {
			on = events.TypeCast
		}
		out = append(out, Rule{
			Name:     r.Name,
			On:       on,
			Trigger:  spells.AbilityID(r.Trigger),
			Target:   spells.AbilityID(r.Target),
			Action:   r.Action,
			Amount:   time.Duration(r.AmountSeconds * float64(time.Second)),
			Duration: time.Duration(r.DurationSeconds * float64(time.Second)),
		})
	}
	return out
}

// NewSet indexes rules. logger may be nil.
func NewSet(rules []Rule, logger *zerolog.Logger) *Set {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	s := &Set{
		rules:  make(map[key][]Rule, len(rules)),
		logger: logger,
	}
	for _, r := range rules {
		k := key{on: r.On, trigger: r.Trigger}
		s.rules[k] = append(s.rules[k], r)
	}
	return s
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, rs := range s.rules {
		n += len(rs)
	}
	return n
}

// Apply runs every rule triggered by ev against the engine, in configuration
// order. Rules whose target is not on cooldown do nothing.
func (s *Set) Apply(engine *cooldowns.Engine, ev *events.Event) []Outcome {
	if s == nil || ev == nil {
		return nil
	}
	id, ok := ev.AbilityID()
	if !ok {
		return nil
	}
	var out []Outcome
	for _, rule := range s.rules[key{on: ev.Type, trigger: id}] {
		if !engine.IsOnCooldown(rule.Target) {
			continue
		}
		outcome := Outcome{Rule: rule}
		var err error
		switch rule.Action {
		case config.ActionReduce:
			outcome.Consumed, _ = engine.ReduceCooldown(rule.Target, ev.Timestamp, rule.Amount)
		case config.ActionReset:
			err = engine.FinishCooldown(rule.Target, ev.Timestamp, true)
		case config.ActionRefresh:
			err = engine.RefreshCooldown(rule.Target, ev.Timestamp, rule.Duration)
		default:
			continue
		}
		if err != nil {
			s.logger.Error().Err(err).Str("rule", rule.Name).Msg("modifier failed")
			continue
		}
		s.logger.Debug().
			Str("rule", rule.Name).
			Str("action", string(rule.Action)).
			Int("target", int(rule.Target)).
			Dur("consumed", outcome.Consumed).
			Msg("modifier applied")
		out = append(out, outcome)
	}
	return out
}

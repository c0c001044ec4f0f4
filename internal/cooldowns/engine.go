package cooldowns

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/spells"
)

// ErrNotOnCooldown is returned when finishing or refreshing an ability that
// has no running cooldown. Callers are expected to check IsOnCooldown first.
var ErrNotOnCooldown = errors.New("ability is not on cooldown")

// Catalog is the read-only ability data the engine needs.
type Catalog interface {
	MaxCharges(id spells.AbilityID) int
	ExpectedCooldownDuration(id spells.AbilityID) (time.Duration, bool)
	Name(id spells.AbilityID) string
}

// Clock is used for diagnostic output only. Engine logic always uses the
// timestamp passed to each call.
type Clock interface {
	Format(ts time.Duration) string
	FightDuration() time.Duration
}

// Engine tracks cooldowns and charges of a single actor. It is driven by
// one chronologically ordered event stream and is not safe for concurrent
// use.
type Engine struct {
	catalog  Catalog
	clock    Clock
	notifier Notifier
	logger   *zerolog.Logger

	store       *store
	diagnostics []Diagnostic
}

// NewEngine creates an engine. clock, notifier and logger may be nil.
func NewEngine(catalog Catalog, clock Clock, notifier Notifier, logger *zerolog.Logger) *Engine {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Engine{
		catalog:  catalog,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
		store:    newStore(),
	}
}

// IsAvailable reports whether at least one charge can be used right now.
// An ability can be on cooldown and available at the same time.
func (e *Engine) IsAvailable(id spells.AbilityID) bool {
	r, ok := e.store.get(id)
	if !ok {
		return true
	}
	return e.catalog.MaxCharges(id) > r.Charges
}

// IsOnCooldown reports whether any charge of the ability is on cooldown.
func (e *Engine) IsOnCooldown(id spells.AbilityID) bool {
	_, ok := e.store.get(id)
	return ok
}

// CooldownRemaining returns the time until the next charge comes back.
// ok is false when the ability is not on cooldown. The value may be zero or
// negative between the expected end and the next sweep.
func (e *Engine) CooldownRemaining(id spells.AbilityID, now time.Duration) (time.Duration, bool) {
	r, ok := e.store.get(id)
	if !ok {
		return 0, false
	}
	return r.Remaining(now), true
}

// ChargesOnCooldown returns how many charges are currently consumed.
func (e *Engine) ChargesOnCooldown(id spells.AbilityID) int {
	r, ok := e.store.get(id)
	if !ok {
		return 0
	}
	return r.Charges
}

// ChargesAvailable returns how many charges can be used right now.
func (e *Engine) ChargesAvailable(id spells.AbilityID) int {
	n := e.catalog.MaxCharges(id) - e.ChargesOnCooldown(id)
	if n < 0 {
		return 0
	}
	return n
}

// Record returns a copy of the live record.
func (e *Engine) Record(id spells.AbilityID) (Record, bool) {
	r, ok := e.store.get(id)
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Tracked returns the abilities currently on cooldown in ascending order.
func (e *Engine) Tracked() []spells.AbilityID {
	return e.store.ids()
}

// Diagnostics returns the inconsistencies recovered from so far.
func (e *Engine) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diagnostics))
	copy(out, e.diagnostics)
	return out
}

// StartCooldown consumes a charge of the ability at now. override replaces
// the catalog duration when positive. Abilities without a cooldown are
// ignored. A cast while every charge is already on cooldown is treated as a
// desync: the running cooldown is dropped and the cast starts a fresh one.
func (e *Engine) StartCooldown(id spells.AbilityID, now time.Duration, override time.Duration) {
	duration, ok := e.resolveDuration(id, override)
	if !ok {
		e.logger.Debug().
			Int("ability", int(id)).
			Str("name", e.catalog.Name(id)).
			Msg("ability has no cooldown, ignoring")
		return
	}

	r, onCooldown := e.store.get(id)
	if !onCooldown {
		r = &Record{
			Start:       now,
			ExpectedEnd: now + duration,
			Charges:     1,
		}
		e.store.put(id, r)
		e.notify(SignalStartCooldown, id, now)
		return
	}

	if e.IsAvailable(id) {
		r.Charges++
		e.notify(SignalStartCooldownCharge, id, now)
		return
	}

	e.reportDesync(id, now, r)
	if err := e.FinishCooldown(id, now, true); err != nil {
		e.logger.Error().Err(err).Int("ability", int(id)).Msg("failed to reset cooldown after desync")
		return
	}
	e.StartCooldown(id, now, override)
}

// FinishCooldown ends the cooldown of the tracked charge. With more charges
// on cooldown the next one starts recharging from now, unless
// resetAllCharges drops the whole record.
func (e *Engine) FinishCooldown(id spells.AbilityID, now time.Duration, resetAllCharges bool) error {
	r, ok := e.store.get(id)
	if !ok {
		return fmt.Errorf("finish cooldown of %s (%d): %w", e.catalog.Name(id), id, ErrNotOnCooldown)
	}

	if resetAllCharges || r.Charges <= 1 {
		e.store.remove(id)
	} else {
		r.Charges--
		if err := e.RefreshCooldown(id, now, 0); err != nil {
			return err
		}
	}
	e.notify(SignalFinishCooldown, id, now)
	return nil
}

// RefreshCooldown restarts the timer of the tracked charge from now.
// override replaces the catalog duration when positive.
func (e *Engine) RefreshCooldown(id spells.AbilityID, now time.Duration, override time.Duration) error {
	r, ok := e.store.get(id)
	if !ok {
		return fmt.Errorf("refresh cooldown of %s (%d): %w", e.catalog.Name(id), id, ErrNotOnCooldown)
	}
	duration, ok := e.resolveDuration(id, override)
	if !ok {
		return nil
	}
	r.ExpectedEnd = now + duration
	e.notify(SignalRefreshCooldown, id, now)
	return nil
}

// ReduceCooldown pulls the expected end of the tracked charge back by
// amount and returns how much was actually consumed. When amount covers the
// remaining time the charge finishes and only the remaining time is
// consumed. ok is false when the ability is not on cooldown.
func (e *Engine) ReduceCooldown(id spells.AbilityID, now time.Duration, amount time.Duration) (time.Duration, bool) {
	r, ok := e.store.get(id)
	if !ok {
		return 0, false
	}
	remaining := r.Remaining(now)
	if remaining <= amount {
		if err := e.FinishCooldown(id, now, false); err != nil {
			e.logger.Error().Err(err).Int("ability", int(id)).Msg("failed to finish reduced cooldown")
			return 0, false
		}
		if remaining < 0 {
			remaining = 0
		}
		return remaining, true
	}
	r.ExpectedEnd -= amount
	return amount, true
}

// OnCast starts the cooldown of the cast ability. Events without an
// ability are ignored.
func (e *Engine) OnCast(ev *events.Event) {
	id, ok := ev.AbilityID()
	if !ok {
		return
	}
	e.StartCooldown(id, ev.Timestamp, 0)
}

// OnEvent finishes one charge of every ability whose expected end lies
// strictly before the event. An ability is still on cooldown at the exact
// instant it is due.
func (e *Engine) OnEvent(ev *events.Event) {
	if ev == nil {
		return
	}
	for _, id := range e.store.expiredBefore(ev.Timestamp) {
		if err := e.FinishCooldown(id, ev.Timestamp, false); err != nil {
			e.logger.Error().Err(err).Int("ability", int(id)).Msg("sweep failed to finish cooldown")
		}
	}
}

// OnFightEnd finishes every running cooldown, all charges at once.
func (e *Engine) OnFightEnd(now time.Duration) {
	for _, id := range e.store.ids() {
		if err := e.FinishCooldown(id, now, true); err != nil {
			e.logger.Error().Err(err).Int("ability", int(id)).Msg("failed to finish cooldown at fight end")
		}
	}
}

func (e *Engine) resolveDuration(id spells.AbilityID, override time.Duration) (time.Duration, bool) {
	if override > 0 {
		return override, true
	}
	d, ok := e.catalog.ExpectedCooldownDuration(id)
	if !ok || d <= 0 {
		return 0, false
	}
	return d, true
}

func (e *Engine) notify(sig Signal, id spells.AbilityID, now time.Duration) {
	if e.notifier == nil {
		return
	}
	n := Notification{
		Signal:    sig,
		Ability:   id,
		Timestamp: now,
	}
	if r, ok := e.store.get(id); ok {
		n.Charges = r.Charges
		n.ExpectedEnd = r.ExpectedEnd
	}
	e.notifier.Notify(n)
}

func (e *Engine) reportDesync(id spells.AbilityID, now time.Duration, r *Record) {
	name := e.catalog.Name(id)
	msg := fmt.Sprintf("%s (%d) was cast while all %d charges were on cooldown; expected back in %s",
		name, id, r.Charges, r.Remaining(now))

	ev := e.logger.Warn().
		Int("ability", int(id)).
		Str("name", name).
		Int("charges", r.Charges).
		Dur("remaining", r.Remaining(now))
	if e.clock != nil {
		ev = ev.Str("timestamp", e.clock.Format(now)).
			Dur("fight", e.clock.FightDuration())
	}
	ev.Msg("cast while on cooldown, resetting cooldown")

	e.diagnostics = append(e.diagnostics, Diagnostic{
		Kind:      KindDesync,
		Ability:   id,
		Timestamp: now,
		Message:   msg,
	})
}

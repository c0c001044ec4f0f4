package engine

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"spell-cooldowns/internal/character"
	"spell-cooldowns/internal/clock"
	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/modifiers"
	"spell-cooldowns/internal/spells"
	"spell-cooldowns/internal/stats"
)

// Observer is called after each event has been processed, with the engine
// in its post-event state. It must not modify the engine.
type Observer func(ev *events.Event, e *cooldowns.Engine)

// Replayer feeds a timeline through a cooldown engine
type Replayer struct {
	Catalog    *spells.Catalog
	Character  *character.Character
	Modifiers  *modifiers.Set
	Observer   Observer
	Logger     *zerolog.Logger
	LogEnabled bool
	LogWriter  io.Writer

	clock *clock.Replay
}

// NewReplayer creates a new replayer. mods and logger may be nil.
func NewReplayer(catalog *spells.Catalog, char *character.Character, mods *modifiers.Set, logger *zerolog.Logger, logEnabled bool, logWriter io.Writer) *Replayer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Replayer{
		Catalog:    catalog,
		Character:  char,
		Modifiers:  mods,
		Logger:     logger,
		LogEnabled: logEnabled,
		LogWriter:  logWriter,
	}
}

// Run replays the timeline from start to fight end. Individual events never
// stop the replay; problems are recorded as diagnostics on the result.
func (r *Replayer) Run(tl *events.Timeline) *Result {
	if tl == nil {
		tl = &events.Timeline{}
	}
	r.clock = clock.NewReplay(tl.Start, tl.End)
	result := &Result{
		Start:   tl.Start,
		Skipped: tl.Skipped,
	}

	tracker := stats.NewTracker(r.Catalog)
	var fanout cooldowns.Fanout
	fanout.Subscribe(tracker)
	if r.LogEnabled {
		fanout.Subscribe(cooldowns.NotifierFunc(r.logNotification))
	}
	engine := cooldowns.NewEngine(r.Catalog, r.clock, &fanout, r.Logger)

	var queue eventQueue
	for i := range tl.Events {
		queue.add(&tl.Events[i])
	}

	if r.LogEnabled {
		r.logStaticf("=== Replay Start (%d events, actor %s) ===", queue.len(), r.actorName())
	}

	ended := false
	var fightEnd time.Duration
	for ev := queue.pop(); ev != nil; ev = queue.pop() {
		if ended {
			result.Ignored++
			continue
		}
		r.clock.Advance(ev.Timestamp)
		result.Events++
		if ev.Type == events.TypeFightEnd {
			r.finish(engine, ev.Timestamp)
			r.clock.EndAt(ev.Timestamp)
			fightEnd = ev.Timestamp
			ended = true
			continue
		}
		if err := r.processEvent(engine, ev, result); err != nil {
			r.Logger.Error().Err(err).Str("type", string(ev.Type)).Msg("event dropped")
			result.Diagnostics = append(result.Diagnostics, cooldowns.Diagnostic{
				Kind:      cooldowns.KindEventError,
				Timestamp: ev.Timestamp,
				Message:   err.Error(),
			})
		}
		if r.Observer != nil {
			r.Observer(ev, engine)
		}
	}

	end := fightEnd
	if !ended {
		end = r.clock.Now()
		if tl.End > end {
			end = tl.End
		}
		r.clock.Advance(end)
		r.finish(engine, end)
	}
	tracker.Finalize(end)

	result.End = end
	result.FightDuration = r.clock.FightDuration()
	result.Diagnostics = mergeDiagnostics(engine.Diagnostics(), result.Diagnostics)
	result.Abilities = tracker.Summary()

	r.Logger.Info().
		Int("events", result.Events).
		Int("casts", result.Casts).
		Int("diagnostics", len(result.Diagnostics)).
		Msg("replay complete")
	return result
}

// processEvent runs the expiry sweep first so a cast that arrives after its
// cooldown ran out is not mistaken for a desync.
func (r *Replayer) processEvent(engine *cooldowns.Engine, ev *events.Event, result *Result) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("processing %s at %s: %v", ev.Type, r.clock.Format(ev.Timestamp), p)
		}
	}()

	engine.OnEvent(ev)
	if !r.byPlayer(ev.SourceID) {
		return nil
	}
	if ev.IsCast() {
		if _, ok := ev.AbilityID(); !ok {
			result.Malformed++
			return nil
		}
		result.Casts++
		engine.OnCast(ev)
	}
	result.ModifiersApplied += len(r.Modifiers.Apply(engine, ev))
	return nil
}

// mergeDiagnostics combines engine and driver diagnostics in timeline order.
func mergeDiagnostics(engineDiags, driverDiags []cooldowns.Diagnostic) []cooldowns.Diagnostic {
	out := append(engineDiags, driverDiags...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func (r *Replayer) finish(engine *cooldowns.Engine, at time.Duration) {
	engine.OnEvent(&events.Event{Timestamp: at, Type: events.TypeFightEnd})
	engine.OnFightEnd(at)
	if r.LogEnabled {
		r.logAt(at, "FIGHT_END")
	}
}

func (r *Replayer) byPlayer(sourceID int) bool {
	if r.Character == nil {
		return true
	}
	return r.Character.ByPlayer(sourceID)
}

func (r *Replayer) actorName() string {
	if r.Character == nil || r.Character.Name == "" {
		return "any"
	}
	return r.Character.Name
}

func (r *Replayer) logNotification(n cooldowns.Notification) {
	name := r.Catalog.Name(n.Ability)
	switch n.Signal {
	case cooldowns.SignalStartCooldown, cooldowns.SignalStartCooldownCharge, cooldowns.SignalRefreshCooldown:
		r.logAt(n.Timestamp, "%s %s charges=%d ready=%.2fs", signalTag(n.Signal), name, n.Charges, r.clock.Elapsed(n.ExpectedEnd).Seconds())
	default:
		r.logAt(n.Timestamp, "%s %s charges=%d", signalTag(n.Signal), name, n.Charges)
	}
}

func signalTag(sig cooldowns.Signal) string {
	switch sig {
	case cooldowns.SignalStartCooldown:
		return "CD_START"
	case cooldowns.SignalStartCooldownCharge:
		return "CD_CHARGE"
	case cooldowns.SignalRefreshCooldown:
		return "CD_REFRESH"
	case cooldowns.SignalFinishCooldown:
		return "CD_FINISH"
	}
	return string(sig)
}

func (r *Replayer) logAt(timeStamp time.Duration, format string, args ...interface{}) {
	if !r.LogEnabled || r.LogWriter == nil {
		return
	}
	ts := r.clock.Elapsed(timeStamp).Round(time.Millisecond).Seconds()
	prefix := fmt.Sprintf("[%6.2fs] ", ts)
	fmt.Fprintf(r.LogWriter, prefix+format+"\n", args...)
}

func (r *Replayer) logStaticf(format string, args ...interface{}) {
	if !r.LogEnabled || r.LogWriter == nil {
		return
	}
	fmt.Fprintf(r.LogWriter, format+"\n", args...)
}

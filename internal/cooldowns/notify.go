package cooldowns

import (
	"time"

	"spell-cooldowns/internal/spells"
)

// Signal names a cooldown transition announced to subscribers.
type Signal string

const (
	SignalStartCooldown       Signal = "startcooldown"
	SignalStartCooldownCharge Signal = "startcooldowncharge"
	SignalRefreshCooldown     Signal = "refreshcooldown"
	SignalFinishCooldown      Signal = "finishcooldown"
)

// Notification describes one transition. Charges and ExpectedEnd reflect
// the record after the transition; both are zero once the record is gone.
type Notification struct {
	Signal      Signal
	Ability     spells.AbilityID
	Timestamp   time.Duration
	Charges     int
	ExpectedEnd time.Duration
}

// Notifier receives cooldown transitions. Implementations must not block
// and must not call back into the engine.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// Fanout delivers each notification to its subscribers in subscription order.
type Fanout struct {
	subscribers []Notifier
}

// Subscribe adds a subscriber. Nil subscribers are ignored.
func (f *Fanout) Subscribe(n Notifier) {
	if n == nil {
		return
	}
	f.subscribers = append(f.subscribers, n)
}

// Notify implements Notifier.
func (f *Fanout) Notify(n Notification) {
	for _, sub := range f.subscribers {
		sub.Notify(n)
	}
}

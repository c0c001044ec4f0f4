package cooldowns

import (
	"time"

	"spell-cooldowns/internal/spells"
)

// DiagnosticKind classifies a recorded inconsistency.
type DiagnosticKind string

const (
	// KindDesync: a cast was seen while every charge was on cooldown.
	KindDesync DiagnosticKind = "desync"
	// KindEventError: processing an event failed and the event was dropped.
	KindEventError DiagnosticKind = "event_error"
)

// Diagnostic is an inconsistency that was recovered from without stopping
// the replay.
type Diagnostic struct {
	Kind      DiagnosticKind
	Ability   spells.AbilityID
	Timestamp time.Duration
	Message   string
}

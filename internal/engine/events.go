package engine

import (
	"time"

	"spell-cooldowns/internal/events"
)

type queuedEvent struct {
	at    time.Duration
	event *events.Event
}

// eventQueue keeps events ordered by timestamp; events with equal
// timestamps keep their insertion order.
type eventQueue []queuedEvent

func (eq *eventQueue) add(ev *events.Event) {
	if ev == nil {
		return
	}
	item := queuedEvent{at: ev.Timestamp, event: ev}
	// Timelines arrive mostly sorted, so search from the back.
	i := len(*eq)
	for i > 0 && (*eq)[i-1].at > item.at {
		i--
	}
	*eq = append(*eq, queuedEvent{})
	copy((*eq)[i+1:], (*eq)[i:])
	(*eq)[i] = item
}

func (eq *eventQueue) pop() *events.Event {
	if len(*eq) == 0 {
		return nil
	}
	ev := (*eq)[0].event
	*eq = (*eq)[1:]
	return ev
}

func (eq *eventQueue) len() int {
	return len(*eq)
}

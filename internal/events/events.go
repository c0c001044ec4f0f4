package events

import (
	"time"

	"spell-cooldowns/internal/spells"
)

// Type is the combat log event type.
type Type string

const (
	TypeCast       Type = "cast"
	TypeBeginCast  Type = "begincast"
	TypeDamage     Type = "damage"
	TypeHeal       Type = "heal"
	TypeApplyBuff  Type = "applybuff"
	TypeRemoveBuff Type = "removebuff"
	TypeEnergize   Type = "energize"
	TypeFightEnd   Type = "fightend"
)

// AbilityRef is the ability an event refers to.
type AbilityRef struct {
	GUID spells.AbilityID `yaml:"guid" json:"guid"`
	Name string           `yaml:"name" json:"name"`
}

// Event is one timestamped entry of a replayed timeline.
type Event struct {
	Timestamp time.Duration
	Type      Type
	SourceID  int
	Ability   *AbilityRef
}

// AbilityID returns the ability the event refers to, if any.
func (e *Event) AbilityID() (spells.AbilityID, bool) {
	if e == nil || e.Ability == nil || e.Ability.GUID <= 0 {
		return 0, false
	}
	return e.Ability.GUID, true
}

// IsCast reports whether the event is a completed cast.
func (e *Event) IsCast() bool {
	return e != nil && e.Type == TypeCast
}

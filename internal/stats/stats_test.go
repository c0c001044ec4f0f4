package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spell-cooldowns/internal/cooldowns"
	"spell-cooldowns/internal/spells"
)

type names map[spells.AbilityID]string

func (n names) Name(id spells.AbilityID) string {
	return n[id]
}

func TestTracker_Notify(t *testing.T) {
	tr := NewTracker(names{1: "Conflagrate"})

	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalStartCooldown, Ability: 1, Timestamp: 0, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalStartCooldownCharge, Ability: 1, Timestamp: 100 * time.Millisecond, Charges: 2})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalRefreshCooldown, Ability: 1, Timestamp: time.Second, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalFinishCooldown, Ability: 1, Timestamp: time.Second, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalFinishCooldown, Ability: 1, Timestamp: 2 * time.Second})

	s, ok := tr.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Conflagrate", s.Name)
	assert.Equal(t, 1, s.Cooldowns)
	assert.Equal(t, 1, s.ExtraCharges)
	assert.Equal(t, 2, s.Casts())
	assert.Equal(t, 1, s.Refreshes)
	assert.Equal(t, 2, s.Finishes)
	assert.Equal(t, 2, s.PeakCharges)
	assert.Equal(t, 2*time.Second, s.TimeOnCooldown)
}

func TestTracker_FinalizeAndSummary(t *testing.T) {
	tr := NewTracker(nil)

	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalStartCooldown, Ability: 2, Timestamp: 0, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalStartCooldown, Ability: 1, Timestamp: time.Second, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalStartCooldown, Ability: 3, Timestamp: 0, Charges: 1})
	tr.Notify(cooldowns.Notification{Signal: cooldowns.SignalFinishCooldown, Ability: 3, Timestamp: time.Second})

	tr.Finalize(5 * time.Second)
	tr.Finalize(9 * time.Second)

	rows := tr.Summary()
	require.Len(t, rows, 3)
	assert.Equal(t, spells.AbilityID(2), rows[0].Ability)
	assert.Equal(t, 5*time.Second, rows[0].TimeOnCooldown)
	assert.Equal(t, spells.AbilityID(1), rows[1].Ability)
	assert.Equal(t, 4*time.Second, rows[1].TimeOnCooldown)
	assert.Equal(t, spells.AbilityID(3), rows[2].Ability)
	assert.Equal(t, time.Second, rows[2].TimeOnCooldown)

	_, ok := tr.Get(42)
	assert.False(t, ok)
}

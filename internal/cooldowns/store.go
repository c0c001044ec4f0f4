package cooldowns

import (
	"sort"
	"time"

	"spell-cooldowns/internal/spells"
)

// Record is the live cooldown state of one ability. Only the charge that
// will come back next has a timer; further charges recharge one after the
// other once it finishes.
type Record struct {
	Start       time.Duration
	ExpectedEnd time.Duration
	Charges     int // charges currently on cooldown, at least 1
}

// Remaining returns the time until the tracked charge is expected back.
// It can be zero or negative when the sweep has not run yet.
func (r Record) Remaining(now time.Duration) time.Duration {
	return r.ExpectedEnd - now
}

// store holds a record for an ability only while at least one of its
// charges is on cooldown.
type store struct {
	records map[spells.AbilityID]*Record
}

func newStore() *store {
	return &store{records: make(map[spells.AbilityID]*Record)}
}

func (s *store) get(id spells.AbilityID) (*Record, bool) {
	r, ok := s.records[id]
	return r, ok
}

func (s *store) put(id spells.AbilityID, r *Record) {
	s.records[id] = r
}

func (s *store) remove(id spells.AbilityID) {
	delete(s.records, id)
}

func (s *store) len() int {
	return len(s.records)
}

// ids returns tracked abilities in ascending order.
func (s *store) ids() []spells.AbilityID {
	out := make([]spells.AbilityID, 0, len(s.records))
	for id := range s.records {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// expiredBefore returns tracked abilities whose expected end is strictly
// before ts, in ascending id order.
func (s *store) expiredBefore(ts time.Duration) []spells.AbilityID {
	var out []spells.AbilityID
	for _, id := range s.ids() {
		if s.records[id].ExpectedEnd < ts {
			out = append(out, id)
		}
	}
	return out
}

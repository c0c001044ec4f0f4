package character

// Stats represents the character statistics that affect cooldowns
type Stats struct {
	HastePct float64 // Percentage (e.g., 25.5 for 25.5%)
}

// Character is the single actor whose cooldowns are tracked
type Character struct {
	ID    int
	Name  string
	Stats Stats
}

// NewCharacter creates a new character with given identity and stats
func NewCharacter(id int, name string, stats Stats) *Character {
	return &Character{
		ID:    id,
		Name:  name,
		Stats: stats,
	}
}

// ByPlayer reports whether an event with the given source was performed by
// this character. A character without an id accepts every source.
func (c *Character) ByPlayer(sourceID int) bool {
	if c == nil {
		return false
	}
	if c.ID == 0 {
		return true
	}
	return c.ID == sourceID
}

// HasteMultiplier returns the divisor applied to haste-scaled cooldowns.
func (c *Character) HasteMultiplier() float64 {
	if c == nil {
		return 1
	}
	mult := 1.0 + (c.Stats.HastePct / 100.0)
	if mult <= 0 {
		return 1
	}
	return mult
}

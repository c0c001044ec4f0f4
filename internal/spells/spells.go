package spells

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"spell-cooldowns/internal/character"
	"spell-cooldowns/internal/config"
)

// AbilityID identifies an ability the way the combat log does.
type AbilityID int

// Ability is one configured ability.
type Ability struct {
	ID          AbilityID
	Name        string
	Cooldown    time.Duration
	Charges     int
	HasteScaled bool
}

// Catalog maps ability ids to their configured cooldown and charges.
// Read-only once built.
type Catalog struct {
	abilities map[AbilityID]Ability
	char      *character.Character
}

// NewCatalog builds a catalog from the loaded configuration. The character
// supplies the haste used for haste-scaled cooldowns and may be nil.
func NewCatalog(cfg *config.Config, char *character.Character) (*Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("catalog: config is nil")
	}
	return NewCatalogFromEntries(cfg.Abilities.Abilities, char)
}

// NewCatalogFromEntries builds a catalog from raw entries.
func NewCatalogFromEntries(entries []config.AbilityEntry, char *character.Character) (*Catalog, error) {
	c := &Catalog{
		abilities: make(map[AbilityID]Ability, len(entries)),
		char:      char,
	}
	for _, entry := range entries {
		id := AbilityID(entry.ID)
		if _, dup := c.abilities[id]; dup {
			return nil, fmt.Errorf("catalog: ability %d listed more than once", entry.ID)
		}
		charges := entry.Charges
		if charges < 1 {
			charges = 1
		}
		c.abilities[id] = Ability{
			ID:          id,
			Name:        strings.TrimSpace(entry.Name),
			Cooldown:    time.Duration(entry.CooldownSeconds * float64(time.Second)),
			Charges:     charges,
			HasteScaled: entry.HasteScaled,
		}
	}
	return c, nil
}

// Lookup returns the configured ability.
func (c *Catalog) Lookup(id AbilityID) (Ability, bool) {
	if c == nil {
		return Ability{}, false
	}
	a, ok := c.abilities[id]
	return a, ok
}

// MaxCharges returns the configured charge count, 1 for unknown abilities.
func (c *Catalog) MaxCharges(id AbilityID) int {
	a, ok := c.Lookup(id)
	if !ok || a.Charges < 1 {
		return 1
	}
	return a.Charges
}

// ExpectedCooldownDuration returns the cooldown the ability is expected to
// have right now. ok is false when the ability has no cooldown.
func (c *Catalog) ExpectedCooldownDuration(id AbilityID) (time.Duration, bool) {
	a, ok := c.Lookup(id)
	if !ok || a.Cooldown <= 0 {
		return 0, false
	}
	if !a.HasteScaled {
		return a.Cooldown, true
	}
	scaled := time.Duration(float64(a.Cooldown) / c.char.HasteMultiplier())
	return scaled.Round(time.Millisecond), true
}

// Name returns the display name of an ability.
func (c *Catalog) Name(id AbilityID) string {
	if a, ok := c.Lookup(id); ok && a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("ability %d", id)
}

// All returns every configured ability ordered by id.
func (c *Catalog) All() []Ability {
	if c == nil {
		return nil
	}
	out := make([]Ability, 0, len(c.abilities))
	for _, a := range c.abilities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

package events

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spell-cooldowns/internal/spells"
)

func TestEvent_AbilityID(t *testing.T) {
	ev := Event{Type: TypeCast, Ability: &AbilityRef{GUID: 17962}}
	id, ok := ev.AbilityID()
	require.True(t, ok)
	assert.Equal(t, spells.AbilityID(17962), id)
	assert.True(t, ev.IsCast())

	bare := Event{Type: TypeDamage}
	_, ok = bare.AbilityID()
	assert.False(t, ok)
	assert.False(t, bare.IsCast())

	var missing *Event
	_, ok = missing.AbilityID()
	assert.False(t, ok)
}

func TestParseTimeline_YAML(t *testing.T) {
	doc := `
start: 1000
end: 5000
events:
  - timestamp: 1200
    type: Cast
    sourceID: 7
    ability: {guid: 17962, name: Conflagrate}
  - timestamp: 1100
    type: damage
  - type: cast
    ability: {guid: 1}
  - timestamp: 1300
`
	tl, err := ParseTimeline([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, time.Second, tl.Start)
	assert.Equal(t, 5*time.Second, tl.End)
	assert.Equal(t, 2, tl.Skipped)
	require.Len(t, tl.Events, 2)

	assert.Equal(t, TypeDamage, tl.Events[0].Type, "events are sorted by timestamp")
	cast := tl.Events[1]
	assert.Equal(t, TypeCast, cast.Type)
	assert.Equal(t, 1200*time.Millisecond, cast.Timestamp)
	assert.Equal(t, 7, cast.SourceID)
	require.NotNil(t, cast.Ability)
	assert.Equal(t, "Conflagrate", cast.Ability.Name)
}

func TestParseTimeline_JSON(t *testing.T) {
	doc := `{"start": 0, "events": [{"timestamp": 5, "type": "cast", "sourceID": 1, "ability": {"guid": 2, "name": "x"}}]}`
	tl, err := ParseTimeline([]byte(doc))
	require.NoError(t, err)
	require.Len(t, tl.Events, 1)
	assert.Equal(t, 5*time.Millisecond, tl.Events[0].Timestamp)
}

func TestParseTimeline_RejectsImports(t *testing.T) {
	_, err := ParseTimeline([]byte("imports: [a.yaml]\n"))
	assert.Error(t, err)
}

func TestLoadTimeline_Imports(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("opener.yaml", `
start: 500
end: 2000
events:
  - {timestamp: 600, type: cast, ability: {guid: 1}}
`)
	write("fight.yaml", `
imports: [opener.yaml]
end: 9000
events:
  - {timestamp: 550, type: damage}
  - {timestamp: 3000, type: cast, ability: {guid: 2}}
`)

	tl, err := LoadTimeline(dir, "fight.yaml")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, tl.Start)
	assert.Equal(t, 9*time.Second, tl.End)
	require.Len(t, tl.Events, 3)
	assert.Equal(t, 550*time.Millisecond, tl.Events[0].Timestamp)
	assert.Equal(t, 600*time.Millisecond, tl.Events[1].Timestamp)
	assert.Equal(t, 3*time.Second, tl.Events[2].Timestamp)
}

func TestLoadTimeline_ExplicitZeroStart(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pull.yaml"), []byte(`
start: 500
end: 2000
events:
  - {timestamp: 600, type: cast, ability: {guid: 1}}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fight.yaml"), []byte(`
imports: [pull.yaml]
start: 0
events:
  - {timestamp: 100, type: damage}
`), 0o644))

	tl, err := LoadTimeline(dir, "fight.yaml")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), tl.Start)
	assert.Equal(t, 2*time.Second, tl.End, "end not set locally, imported end kept")
}

func TestLoadTimeline_ImportCycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("imports: [b.yaml]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("imports: [a.yaml]\n"), 0o644))

	_, err := LoadTimeline(dir, "a.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadTimeline_Shipped(t *testing.T) {
	tl, err := LoadTimeline(filepath.Join("..", "..", "configs", "timelines"), "example.yaml")
	require.NoError(t, err)
	assert.Len(t, tl.Events, 21)
	assert.Equal(t, 1, tl.Skipped)
	assert.Equal(t, time.Duration(0), tl.Start)
	assert.Equal(t, 30*time.Second, tl.End)
	for i := 1; i < len(tl.Events); i++ {
		assert.LessOrEqual(t, tl.Events[i-1].Timestamp, tl.Events[i].Timestamp)
	}
}

package sweep

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spell-cooldowns/internal/config"
	"spell-cooldowns/internal/events"
	"spell-cooldowns/internal/spells"
)

const conflagrate spells.AbilityID = 17962

func sweepConfig() *config.Config {
	cfg := &config.Config{
		Abilities: config.Abilities{Abilities: []config.AbilityEntry{
			{ID: int(conflagrate), Name: "Conflagrate", CooldownSeconds: 10, HasteScaled: true},
		}},
		Replay: config.DefaultReplay(),
	}
	cfg.Replay.Player.Character.ID = 1
	return cfg
}

func cast(at int) events.Event {
	return events.Event{
		Timestamp: time.Duration(at) * time.Millisecond,
		Type:      events.TypeCast,
		SourceID:  1,
		Ability:   &events.AbilityRef{GUID: conflagrate},
	}
}

func TestConfig_Values(t *testing.T) {
	sc := Config{Start: 0, Stop: 1, Step: 0.25}
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, sc.Values())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero step", Config{Start: 0, Stop: 10}, "step must be > 0"},
		{"reversed", Config{Start: 10, Stop: 0, Step: 1}, "stop must be >= start"},
		{"haste floor", Config{Start: -100, Stop: 0, Step: 1}, "start must be > -100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	sc := Config{Start: 0, Stop: 1, Step: 1}
	require.NoError(t, sc.Validate())
	assert.Positive(t, sc.Concurrency)
}

func TestRun_DesyncsDropWithHaste(t *testing.T) {
	// Casts 8s apart only fit a 10s cooldown above 25% haste.
	tl := &events.Timeline{Events: []events.Event{cast(0), cast(8000), cast(16_000)}}

	points, err := Run(context.Background(), sweepConfig(), tl, Config{Start: 0, Stop: 30, Step: 10, Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.Equal(t, []float64{0, 10, 20, 30}, []float64{points[0].Haste, points[1].Haste, points[2].Haste, points[3].Haste})
	assert.Equal(t, 2, points[0].Desyncs)
	assert.Equal(t, 2, points[2].Desyncs)
	assert.Equal(t, 0, points[3].Desyncs)
	for _, p := range points {
		assert.Equal(t, 3, p.Casts)
	}

	best, ok := Best(points)
	require.True(t, ok)
	assert.Equal(t, 30.0, best.Haste)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, sweepConfig(), &events.Timeline{}, Config{Start: 0, Stop: 1, Step: 1, Concurrency: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Point{{Haste: 12.5, Casts: 3, Desyncs: 1, Diagnostics: 1, TimeOnCooldown: 1500 * time.Millisecond}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "haste_percent,casts,desyncs,diagnostics,time_on_cooldown_seconds", lines[0])
	assert.Equal(t, "12.50,3,1,1,1.500", lines[1])
}

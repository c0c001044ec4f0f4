package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReplay_Advance(t *testing.T) {
	c := NewReplay(10*time.Second, 0)
	assert.Equal(t, 10*time.Second, c.Now())

	c.Advance(12 * time.Second)
	assert.Equal(t, 12*time.Second, c.Now())

	c.Advance(11 * time.Second)
	assert.Equal(t, 12*time.Second, c.Now(), "clock never moves backwards")
	assert.Equal(t, 2*time.Second, c.Elapsed(c.Now()))
}

func TestReplay_FightDuration(t *testing.T) {
	known := NewReplay(time.Second, 301*time.Second)
	assert.Equal(t, 300*time.Second, known.FightDuration())

	cut := NewReplay(time.Second, 301*time.Second)
	cut.EndAt(5 * time.Second)
	assert.Equal(t, 4*time.Second, cut.FightDuration())

	open := NewReplay(time.Second, 0)
	open.Advance(4 * time.Second)
	assert.Equal(t, 3*time.Second, open.FightDuration())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00.000"},
		{1001 * time.Millisecond, "0:01.001"},
		{83*time.Second + 456*time.Millisecond, "1:23.456"},
		{-1500 * time.Millisecond, "-0:01.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in))
	}

	c := NewReplay(time.Minute, 0)
	assert.Equal(t, "0:02.000", c.Format(62*time.Second))
}

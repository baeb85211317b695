package regioncache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTime_TickAccumulator(t *testing.T) {
	start := time.Unix(0, 0)
	tests := []struct {
		name    string
		elapsed []time.Duration
		tick    uint64
		partial float32
	}{
		{"no time", nil, 0, 0},
		{"half a tick", []time.Duration{25 * time.Millisecond}, 0, 0.5},
		{"one tick", []time.Duration{50 * time.Millisecond}, 1, 0},
		{"split frames", []time.Duration{30 * time.Millisecond, 30 * time.Millisecond}, 1, 0.2},
		{"long frame", []time.Duration{175 * time.Millisecond}, 3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewTime(start, 20)
			now := start
			for _, d := range tt.elapsed {
				now = now.Add(d)
				clock.Advance(now)
			}
			assert.Equal(t, tt.tick, clock.Tick)
			assert.InDelta(t, tt.partial, clock.PartialTick, 1e-4)
		})
	}
}

func TestTime_BackwardsClockIsIgnored(t *testing.T) {
	start := time.Unix(10, 0)
	clock := NewTime(start, 0)
	clock.Advance(start.Add(-time.Second))
	assert.Zero(t, clock.Dt)
	assert.Zero(t, clock.Tick)
}

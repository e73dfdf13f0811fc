package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToPosition(t *testing.T) {
	cfg := DefaultConfig(time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"window start", time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC), 0},
		{"nine am", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 320},
		{"half past nine", time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), 360},
		{"window end", time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC), 1440},
		{"before window", time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC), -80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, cfg.TimeToPosition(tc.at), 0.001)
		})
	}
}

func TestPositionToTime(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// 320px is 09:00.
	got := cfg.PositionToTime(320, day)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))

	// 323px snaps to the nearest 5 minutes: 09:00.
	got = cfg.PositionToTime(323, day)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))

	// 327px snaps up to 09:05.
	got = cfg.PositionToTime(327, day)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)))

	// Clamped at the window edges.
	got = cfg.PositionToTime(-50, day)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)))
	got = cfg.PositionToTime(99999, day)
	assert.True(t, got.Equal(time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)))
}

func TestPositionTimeRoundTrip(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	snap := time.Duration(cfg.SnapMinutes) * time.Minute

	// Every instant inside the window round-trips to within one snap unit.
	for at := cfg.WindowStart(day); at.Before(cfg.WindowEnd(day)); at = at.Add(7 * time.Minute) {
		back := cfg.PositionToTime(cfg.TimeToPosition(at), day)
		diff := back.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, snap, "instant %v came back as %v", at, back)
	}
}

func TestPositionMappingRespectsTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)
	cfg := DefaultConfig(loc)

	// 09:00 Auckland time lands at the 09:00 slot regardless of the UTC
	// value of the instant.
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	assert.InDelta(t, 320, cfg.TimeToPosition(at.UTC()), 0.001)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	back := cfg.PositionToTime(320, day)
	assert.True(t, back.Equal(at))
}

func TestHitTest(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	blocks := []Block{
		{
			ID:    "a",
			Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:    "b",
			Start: time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		},
	}

	hit := cfg.HitTest(350, blocks) // inside a
	require.NotNil(t, hit)
	assert.Equal(t, "a", hit.ID)

	hit = cfg.HitTest(500, blocks) // inside b
	require.NotNil(t, hit)
	assert.Equal(t, "b", hit.ID)

	assert.Nil(t, cfg.HitTest(410, blocks)) // in the gap
	assert.Nil(t, cfg.HitTest(1400, blocks))
}

func TestBlockOverlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC) }
	a := Block{Start: at(9, 0), End: at(10, 0)}

	assert.True(t, a.Overlaps(Block{Start: at(9, 30), End: at(10, 30)}))
	assert.True(t, a.Overlaps(Block{Start: at(8, 0), End: at(11, 0)}))
	// Half-open intervals: touching endpoints do not overlap.
	assert.False(t, a.Overlaps(Block{Start: at(10, 0), End: at(11, 0)}))
	assert.False(t, a.Overlaps(Block{Start: at(8, 0), End: at(9, 0)}))
}

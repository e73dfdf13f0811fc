// Package timeline maps time entries onto a one-dimensional day track and
// supports hit-testing and collision avoidance for interactive edits. All
// positions are measured in pixels from the left edge of the visible window.
package timeline

import (
	"math"
	"time"
)

// Config describes the visible day window and its scale. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	StartHour     int // first visible hour, inclusive
	EndHour       int // last visible hour, exclusive
	PixelsPerHour int
	SnapMinutes   int
	Loc           *time.Location
}

// DefaultConfig returns the standard 05:00-23:00 window at 80px per hour
// with 5-minute snapping. Positions are interpreted in loc; pass nil for
// the local timezone.
func DefaultConfig(loc *time.Location) Config {
	if loc == nil {
		loc = time.Local
	}
	return Config{
		StartHour:     5,
		EndHour:       23,
		PixelsPerHour: 80,
		SnapMinutes:   5,
		Loc:           loc,
	}
}

func (c Config) location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

// Width returns the pixel width of the visible window.
func (c Config) Width() float64 {
	return float64(c.EndHour-c.StartHour) * float64(c.PixelsPerHour)
}

// WindowStart returns the instant the visible window opens on the calendar
// day containing day, resolved in the configured timezone.
func (c Config) WindowStart(day time.Time) time.Time {
	y, m, d := day.In(c.location()).Date()
	return time.Date(y, m, d, c.StartHour, 0, 0, 0, c.location())
}

// WindowEnd returns the instant the visible window closes on day.
func (c Config) WindowEnd(day time.Time) time.Time {
	y, m, d := day.In(c.location()).Date()
	return time.Date(y, m, d, c.EndHour, 0, 0, 0, c.location())
}

// TimeToPosition maps an instant's time of day to a pixel offset. Instants
// before the window map to negative positions, after it to positions beyond
// Width; callers decide whether to clip.
func (c Config) TimeToPosition(t time.Time) float64 {
	lt := t.In(c.location())
	hours := float64(lt.Hour()) + float64(lt.Minute())/60 + float64(lt.Second())/3600
	return (hours - float64(c.StartHour)) * float64(c.PixelsPerHour)
}

// PositionToTime is the inverse mapping: a pixel offset on day becomes a UTC
// instant, quantized to the nearest snap unit and clamped to the visible
// window. Both directions use the same timezone, so they round-trip to
// within one snap unit.
func (c Config) PositionToTime(px float64, day time.Time) time.Time {
	px = math.Max(0, math.Min(px, c.Width()))
	minutes := px / float64(c.PixelsPerHour) * 60
	snap := float64(c.SnapMinutes)
	if snap > 0 {
		minutes = math.Round(minutes/snap) * snap
	}
	return c.WindowStart(day).Add(time.Duration(minutes * float64(time.Minute))).UTC()
}

// Block is an entry's footprint on the track: its id plus a half-open
// [Start, End) interval.
type Block struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Duration returns the block's length.
func (b Block) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// Overlaps reports whether two half-open intervals intersect.
func (b Block) Overlaps(other Block) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// HitTest returns the block whose pixel span contains px, or nil. When
// blocks overlap, the first match in slice order wins, matching paint
// order on the track.
func (c Config) HitTest(px float64, blocks []Block) *Block {
	for i := range blocks {
		from := c.TimeToPosition(blocks[i].Start)
		to := c.TimeToPosition(blocks[i].End)
		if px >= from && px <= to {
			return &blocks[i]
		}
	}
	return nil
}

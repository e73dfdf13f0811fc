// Package editor turns pointer gestures into validated, persisted interval
// edits. A gesture is a small state machine: it snapshots the entry on
// pointer-down, tracks a snapped candidate interval on every movement tick
// without touching the store, and issues exactly one persist call on
// pointer-up when the candidate differs from the snapshot.
package editor

import (
	"context"
	"errors"
	"time"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/lbarrett/tempo/internal/timeline"
)

// Kind names the four drag gestures the track supports.
type Kind int

const (
	ResizeStart Kind = iota
	ResizeEnd
	Move
	Create
)

func (k Kind) String() string {
	switch k {
	case ResizeStart:
		return "resize-start"
	case ResizeEnd:
		return "resize-end"
	case Move:
		return "move"
	case Create:
		return "create"
	default:
		return "unknown"
	}
}

// State is the gesture lifecycle phase.
type State int

const (
	Idle State = iota
	Dragging
	Committing
)

var (
	ErrNotDragging     = errors.New("no gesture in progress")
	ErrAlreadyDragging = errors.New("gesture already in progress")
)

// Snapshot is the entry's interval before the gesture began. On commit
// failure the view reverts to it.
type Snapshot struct {
	EntryID string
	TaskID  string
	Start   time.Time
	End     time.Time
}

// Interval returns the snapshot as start/end instants.
func (s Snapshot) Interval() (time.Time, time.Time) {
	return s.Start, s.End
}

// Gesture drives one drag from pointer-down to pointer-up. Not safe for
// concurrent use; a track owns exactly one.
type Gesture struct {
	cfg     timeline.Config
	entries service.EntryService

	state    State
	kind     Kind
	day      time.Time
	snapshot Snapshot

	// last valid candidate; invalid ticks leave it untouched
	candStart time.Time
	candEnd   time.Time

	// pointer origin for move gestures, so the entry tracks the pointer
	// by delta rather than jumping its start under the cursor
	grabOffset time.Duration

	// Create gestures need a task to attach the new entry to.
	createTaskID string
}

// NewGesture builds an idle gesture bound to a track configuration and the
// entry store it commits through.
func NewGesture(cfg timeline.Config, entries service.EntryService) *Gesture {
	return &Gesture{cfg: cfg, entries: entries}
}

func (g *Gesture) State() State { return g.state }
func (g *Gesture) Kind() Kind   { return g.kind }

// Candidate returns the current candidate interval. Meaningful only while
// dragging.
func (g *Gesture) Candidate() (time.Time, time.Time) {
	return g.candStart, g.candEnd
}

// Begin starts a resize or move gesture on an existing entry. px is the
// pointer-down position on the track; day anchors position-to-time mapping.
func (g *Gesture) Begin(kind Kind, entry *domain.TimeEntry, day time.Time, px float64) error {
	if g.state != Idle {
		return ErrAlreadyDragging
	}
	if kind == Create {
		return errors.New("create gestures start with BeginCreate")
	}
	if entry.EndTime == nil {
		return errors.New("cannot drag a running entry")
	}

	g.kind = kind
	g.day = day
	g.snapshot = Snapshot{
		EntryID: entry.ID,
		TaskID:  entry.TaskID,
		Start:   entry.StartTime,
		End:     *entry.EndTime,
	}
	g.candStart = g.snapshot.Start
	g.candEnd = g.snapshot.End
	if kind == Move {
		g.grabOffset = g.cfg.PositionToTime(px, day).Sub(entry.StartTime)
	}
	g.state = Dragging
	return nil
}

// BeginCreate starts a click-to-create gesture for taskID at px. The
// candidate opens as a zero-length interval and grows as the pointer moves.
func (g *Gesture) BeginCreate(taskID string, day time.Time, px float64) error {
	if g.state != Idle {
		return ErrAlreadyDragging
	}
	at := g.cfg.PositionToTime(px, day)
	g.kind = Create
	g.day = day
	g.createTaskID = taskID
	g.snapshot = Snapshot{}
	g.candStart = at
	g.candEnd = at
	g.state = Dragging
	return nil
}

// Tick folds a pointer movement into the candidate. Invalid candidates
// (inverted resize, zero-length) are ignored and the previous valid
// candidate stands. Tick never calls the store.
func (g *Gesture) Tick(px float64) error {
	if g.state != Dragging {
		return ErrNotDragging
	}
	at := g.cfg.PositionToTime(px, g.day)

	switch g.kind {
	case ResizeStart:
		// Strictly before the fixed end, or the entry would invert.
		if at.Before(g.candEnd) {
			g.candStart = at
		}
	case ResizeEnd:
		if at.After(g.candStart) {
			g.candEnd = at
		}
	case Move:
		// Shift both endpoints by the pointer delta; duration is preserved
		// exactly because only the start is re-derived from the pointer.
		dur := g.snapshot.End.Sub(g.snapshot.Start)
		start := at.Add(-g.grabOffset)
		g.candStart = start
		g.candEnd = start.Add(dur)
	case Create:
		anchor := g.candStart
		if at.After(anchor) {
			g.candEnd = at
		}
	}
	return nil
}

// Changed reports whether the candidate differs from the snapshot.
func (g *Gesture) Changed() bool {
	if g.kind == Create {
		return g.candEnd.After(g.candStart)
	}
	return !g.candStart.Equal(g.snapshot.Start) || !g.candEnd.Equal(g.snapshot.End)
}

// End finishes the gesture. When the candidate differs from the snapshot it
// issues exactly one store call; a no-net-movement drag issues none. On
// failure the returned snapshot carries the interval to revert the view to.
func (g *Gesture) End(ctx context.Context) (*domain.TimeEntry, error) {
	if g.state != Dragging {
		return nil, ErrNotDragging
	}
	g.state = Committing
	defer g.reset()

	if !g.Changed() {
		return nil, nil
	}

	if g.kind == Create {
		end := g.candEnd
		return g.entries.Create(ctx, service.CreateEntryInput{
			TaskID: g.createTaskID,
			Start:  g.candStart,
			End:    &end,
		})
	}

	entry, err := g.entries.Update(ctx, g.snapshot.EntryID, service.UpdateEntryInput{
		Start: g.candStart,
		End:   g.candEnd,
	})
	if err != nil {
		// The store kept the pre-drag interval; the caller reverts the
		// view to the snapshot.
		return nil, err
	}
	return entry, nil
}

// Cancel discards the gesture. Nothing was persisted mid-drag, so there is
// nothing to compensate.
func (g *Gesture) Cancel() {
	g.reset()
}

func (g *Gesture) reset() {
	*g = Gesture{cfg: g.cfg, entries: g.entries}
}

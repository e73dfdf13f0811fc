package editor

import (
	"context"
	"errors"
	"time"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/service"
)

// UndoWindow is how long a deleted entry can be brought back.
const UndoWindow = 10 * time.Second

var ErrNothingToUndo = errors.New("nothing to undo")

// UndoBuffer holds the last deleted entry for a bounded window. Undo
// re-creates an equivalent entry through the store; the id is new, so this
// is a recreate, not a restore.
type UndoBuffer struct {
	entries service.EntryService
	window  time.Duration
	now     func() time.Time

	taskID    string
	start     time.Time
	end       time.Time
	deletedAt time.Time
	held      bool
}

// NewUndoBuffer builds an empty buffer committing through entries. The now
// function is injectable for tests; pass nil for the wall clock.
func NewUndoBuffer(entries service.EntryService, now func() time.Time) *UndoBuffer {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &UndoBuffer{entries: entries, window: UndoWindow, now: now}
}

// Delete removes the entry from the store and remembers its task and
// interval for the undo window. Running entries cannot be buffered; stop
// the timer first.
func (b *UndoBuffer) Delete(ctx context.Context, entry *domain.TimeEntry) error {
	if entry.EndTime == nil {
		return errors.New("cannot delete a running entry")
	}
	if err := b.entries.Delete(ctx, entry.ID); err != nil {
		return err
	}
	b.taskID = entry.TaskID
	b.start = entry.StartTime
	b.end = *entry.EndTime
	b.deletedAt = b.now()
	b.held = true
	return nil
}

// CanUndo reports whether a deletion is still inside its window.
func (b *UndoBuffer) CanUndo() bool {
	return b.held && b.now().Sub(b.deletedAt) <= b.window
}

// Undo re-creates the last deleted entry with the same task and endpoints.
// The created entry has a fresh id.
func (b *UndoBuffer) Undo(ctx context.Context) (*domain.TimeEntry, error) {
	if !b.CanUndo() {
		b.clear()
		return nil, ErrNothingToUndo
	}
	end := b.end
	entry, err := b.entries.Create(ctx, service.CreateEntryInput{
		TaskID: b.taskID,
		Start:  b.start,
		End:    &end,
	})
	if err != nil {
		return nil, err
	}
	b.clear()
	return entry, nil
}

func (b *UndoBuffer) clear() {
	*b = UndoBuffer{entries: b.entries, window: b.window, now: b.now}
}

package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotAt(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

func TestFindNonOverlappingSlot_NoConflict(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	existing := []Block{{ID: "a", Start: slotAt(9, 0), End: slotAt(10, 0)}}

	start, end := cfg.FindNonOverlappingSlot(slotAt(11, 0), slotAt(12, 0), existing, "")
	assert.True(t, start.Equal(slotAt(11, 0)))
	assert.True(t, end.Equal(slotAt(12, 0)))
}

func TestFindNonOverlappingSlot_ShiftsAfterConflict(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	existing := []Block{{ID: "a", Start: slotAt(9, 0), End: slotAt(10, 0)}}

	// Candidate starts inside the existing entry: it slides to the space
	// right after it.
	start, end := cfg.FindNonOverlappingSlot(slotAt(9, 30), slotAt(10, 30), existing, "")
	assert.True(t, start.Equal(slotAt(10, 0)))
	assert.True(t, end.Equal(slotAt(11, 0)))
}

func TestFindNonOverlappingSlot_ShiftsBeforeConflict(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	existing := []Block{{ID: "a", Start: slotAt(9, 0), End: slotAt(10, 0)}}

	// Candidate begins before the conflict: it backs up to end where the
	// conflict starts.
	start, end := cfg.FindNonOverlappingSlot(slotAt(8, 30), slotAt(9, 30), existing, "")
	assert.True(t, start.Equal(slotAt(8, 0)))
	assert.True(t, end.Equal(slotAt(9, 0)))
}

func TestFindNonOverlappingSlot_UsesGapBetweenConflicts(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	existing := []Block{
		{ID: "a", Start: slotAt(9, 0), End: slotAt(10, 0)},
		{ID: "b", Start: slotAt(10, 30), End: slotAt(11, 30)},
	}

	// A 30-minute candidate conflicting with a slides into the gap before b.
	start, end := cfg.FindNonOverlappingSlot(slotAt(9, 50), slotAt(10, 20), existing, "")
	assert.True(t, start.Equal(slotAt(10, 0)))
	assert.True(t, end.Equal(slotAt(10, 30)))

	// An hour-long candidate conflicting with both does not fit the
	// 30-minute gap and goes after the last conflict instead.
	start, end = cfg.FindNonOverlappingSlot(slotAt(9, 45), slotAt(10, 45), existing, "")
	assert.True(t, start.Equal(slotAt(11, 30)))
	assert.True(t, end.Equal(slotAt(12, 30)))
}

func TestFindNonOverlappingSlot_ExcludesSelf(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	existing := []Block{{ID: "self", Start: slotAt(9, 0), End: slotAt(10, 0)}}

	// Moving an entry over its own previous footprint is not a conflict.
	start, end := cfg.FindNonOverlappingSlot(slotAt(9, 15), slotAt(10, 15), existing, "self")
	assert.True(t, start.Equal(slotAt(9, 15)))
	assert.True(t, end.Equal(slotAt(10, 15)))
}

func TestFindNonOverlappingSlot_NothingFitsReturnsUnchanged(t *testing.T) {
	cfg := DefaultConfig(time.UTC)
	// One block filling the whole visible window.
	existing := []Block{{ID: "wall", Start: slotAt(5, 0), End: slotAt(23, 0)}}

	start, end := cfg.FindNonOverlappingSlot(slotAt(9, 0), slotAt(10, 0), existing, "")
	assert.True(t, start.Equal(slotAt(9, 0)))
	assert.True(t, end.Equal(slotAt(10, 0)))
}

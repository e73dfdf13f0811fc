package timeline

import (
	"sort"
	"time"
)

// FindNonOverlappingSlot relocates a candidate interval so it does not
// collide with the day's existing blocks. The search order is:
//
//  1. immediately before the earliest conflicting block, when the candidate
//     already begins before that block and the window has room,
//  2. the first gap between consecutive blocks, at or after the conflict,
//     wide enough for the candidate's duration,
//  3. immediately after the last conflicting block, when the window allows.
//
// If nothing fits the candidate comes back unchanged: overlap is tolerated
// on the track, never silently dropped. excludeID names the block being
// moved so it does not collide with itself.
func (c Config) FindNonOverlappingSlot(start, end time.Time, existing []Block, excludeID string) (time.Time, time.Time) {
	candidate := Block{Start: start, End: end}
	dur := candidate.Duration()

	others := make([]Block, 0, len(existing))
	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		others = append(others, b)
	}

	var conflicts []Block
	for _, b := range others {
		if candidate.Overlaps(b) {
			conflicts = append(conflicts, b)
		}
	}
	if len(conflicts) == 0 {
		return start, end
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Start.Before(conflicts[j].Start)
	})

	fits := func(s time.Time) bool {
		slot := Block{Start: s, End: s.Add(dur)}
		if slot.Start.Before(c.WindowStart(start)) || slot.End.After(c.WindowEnd(start)) {
			return false
		}
		for _, b := range others {
			if slot.Overlaps(b) {
				return false
			}
		}
		return true
	}

	// Before the earliest conflict, only when the candidate was aimed at
	// the space in front of it.
	first := conflicts[0]
	if candidate.Start.Before(first.Start) {
		if s := first.Start.Add(-dur); fits(s) {
			return s, s.Add(dur)
		}
	}

	// First gap between consecutive blocks, searching forward from the
	// conflict. Gaps behind the conflict would jump the candidate far from
	// where it was dropped.
	sorted := make([]Block, len(others))
	copy(sorted, others)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	for i := 0; i < len(sorted)-1; i++ {
		gapStart := sorted[i].End
		if gapStart.Before(first.End) {
			continue
		}
		if sorted[i+1].Start.Sub(gapStart) >= dur && fits(gapStart) {
			return gapStart, gapStart.Add(dur)
		}
	}

	// After the last conflict.
	last := conflicts[len(conflicts)-1]
	if fits(last.End) {
		return last.End, last.End.Add(dur)
	}

	return start, end
}

package motion

import (
	"context"
	"fmt"
)

// A Player is anything a timeline can play to completion: a Motion or
// another Timeline.
type Player interface {
	Play(ctx context.Context) error
}

// Timeline plays an ordered queue of motions and nested timelines strictly
// in insertion order, each entry completing (after hook included) before
// the next begins.
//
// A Timeline does not guard against overlapping Play calls on the same
// instance; callers that need a timeline played twice must serialize the
// calls themselves.
type Timeline struct {
	entries []Player
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Add appends an entry to the queue. Entries nest to arbitrary depth.
func (t *Timeline) Add(p Player) *Timeline {
	t.entries = append(t.entries, p)
	return t
}

// Clear empties the queue. Entries already completed by an earlier Play are
// unaffected.
func (t *Timeline) Clear() *Timeline {
	t.entries = nil
	return t
}

// Play runs every entry in insertion order. The first failure aborts the
// remaining entries and is returned; only a nil result means every entry
// completed.
func (t *Timeline) Play(ctx context.Context) error {
	for i, entry := range t.entries {
		if err := entry.Play(ctx); err != nil {
			return fmt.Errorf("timeline entry %d: %w", i, err)
		}
	}
	return nil
}

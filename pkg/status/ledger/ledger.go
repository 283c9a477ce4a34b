// Package ledger holds the rules that derive a field's current status from
// its append-only event history.
package ledger

import (
	"sort"

	"fieldbook/entities"
)

// Newer reports whether a supersedes b: later CreatedAt wins, equal
// timestamps fall to the higher EventID.
func Newer(a, b entities.StatusEvent) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.EventID > b.EventID
}

// Current returns the current event of a single field's history. On a full
// tie the later slice element wins, so append order decides.
func Current(events []entities.StatusEvent) (entities.StatusEvent, bool) {
	if len(events) == 0 {
		return entities.StatusEvent{}, false
	}
	cur := events[0]
	for _, ev := range events[1:] {
		if !Newer(cur, ev) {
			cur = ev
		}
	}
	return cur, true
}

// SortHistory orders events newest first, stable for full ties (later
// appended first).
func SortHistory(events []entities.StatusEvent) {
	// reverse first so a stable sort keeps later-appended events ahead on ties
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	sort.SliceStable(events, func(i, j int) bool { return Newer(events[i], events[j]) })
}

// CurrentByField groups a mixed event list and derives each field's current status.
func CurrentByField(events []entities.StatusEvent) map[uint]entities.StatusEvent {
	out := make(map[uint]entities.StatusEvent)
	for _, ev := range events {
		cur, ok := out[ev.FieldID]
		if !ok || !Newer(cur, ev) {
			out[ev.FieldID] = ev
		}
	}
	return out
}

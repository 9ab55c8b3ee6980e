package world

import (
	"container/heap"

	"gopkg.in/yaml.v3"
)

// compactThreshold is the tombstone count above which the storage is rebuilt.
// Tests lower it to exercise the compaction path.
var compactThreshold = 64

// ScheduledEvent is a batch of actions due on a turn. A nil Condition fires
// unconditionally; otherwise the condition is checked at pop time with only
// state predicates in effect, and OnFalse decides the event's fate.
type ScheduledEvent struct {
	OnTurn    int           `yaml:"on_turn"`
	Actions   []Action      `yaml:"actions,omitempty"`
	Note      string        `yaml:"note,omitempty"`
	Condition *CondExpr     `yaml:"condition,omitempty"`
	OnFalse   OnFalsePolicy `yaml:"on_false,omitempty"`
}

// isPlaceholder identifies a consumed slot.
func (e *ScheduledEvent) isPlaceholder() bool {
	return e.OnTurn == 0 && len(e.Actions) == 0 && e.Note == "" && e.Condition == nil
}

// heapEntry orders events by (turn due, slot index); the slot index is the
// FIFO tiebreaker for events due on the same turn.
type heapEntry struct {
	TurnDue int `yaml:"turn_due"`
	Slot    int `yaml:"slot"`
}

type entryHeap []heapEntry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].TurnDue != h[j].TurnDue {
		return h[i].TurnDue < h[j].TurnDue
	}
	return h[i].Slot < h[j].Slot
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(heapEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Scheduler is the timed-event queue: a min-heap of (turn due, slot) pairs
// over a parallel payload vector. Popped slots are tombstoned in place to
// keep the remaining heap indices valid, and the storage is rebuilt once
// tombstones pile up past the threshold.
type Scheduler struct {
	heap   entryHeap
	events []ScheduledEvent
}

// schedulerDoc is the serialized form.
type schedulerDoc struct {
	Heap   []heapEntry      `yaml:"heap,omitempty"`
	Events []ScheduledEvent `yaml:"events,omitempty"`
}

func (s Scheduler) MarshalYAML() (interface{}, error) {
	sorted := make(entryHeap, len(s.heap))
	copy(sorted, s.heap)
	// Canonical order keeps save round-trips byte-identical.
	heap.Init(&sorted)
	doc := schedulerDoc{Events: s.events}
	for sorted.Len() > 0 {
		doc.Heap = append(doc.Heap, heap.Pop(&sorted).(heapEntry))
	}
	return doc, nil
}

func (s *Scheduler) UnmarshalYAML(node *yaml.Node) error {
	var doc schedulerDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	s.events = doc.Events
	s.heap = entryHeap(doc.Heap)
	heap.Init(&s.heap)
	return nil
}

// Len reports the number of pending events.
func (s *Scheduler) Len() int { return len(s.heap) }

// Pending returns the live events in due order, for inspection.
func (s *Scheduler) Pending() []ScheduledEvent {
	sorted := make(entryHeap, len(s.heap))
	copy(sorted, s.heap)
	heap.Init(&sorted)
	out := make([]ScheduledEvent, 0, len(sorted))
	for sorted.Len() > 0 {
		e := heap.Pop(&sorted).(heapEntry)
		out = append(out, s.events[e.Slot])
	}
	return out
}

// push appends the payload and indexes it in the heap.
func (s *Scheduler) push(ev ScheduledEvent) {
	slot := len(s.events)
	s.events = append(s.events, ev)
	heap.Push(&s.heap, heapEntry{TurnDue: ev.OnTurn, Slot: slot})
}

// ScheduleIn queues actions a number of turns in the future.
func (s *Scheduler) ScheduleIn(now, turnsAhead int, actions []Action, note string) {
	s.push(ScheduledEvent{OnTurn: now + turnsAhead, Actions: actions, Note: note})
}

// ScheduleOn queues actions for a specific turn.
func (s *Scheduler) ScheduleOn(onTurn int, actions []Action, note string) {
	s.push(ScheduledEvent{OnTurn: onTurn, Actions: actions, Note: note})
}

// ScheduleInIf queues a conditional event relative to now.
func (s *Scheduler) ScheduleInIf(now, turnsAhead int, cond *CondExpr, onFalse OnFalsePolicy, actions []Action, note string) {
	s.push(ScheduledEvent{OnTurn: now + turnsAhead, Actions: actions, Note: note, Condition: cond, OnFalse: onFalse})
}

// ScheduleOnIf queues a conditional event for a specific turn.
func (s *Scheduler) ScheduleOnIf(onTurn int, cond *CondExpr, onFalse OnFalsePolicy, actions []Action, note string) {
	s.push(ScheduledEvent{OnTurn: onTurn, Actions: actions, Note: note, Condition: cond, OnFalse: onFalse})
}

// Requeue reinserts a popped event for a new turn, preserving its condition
// and policy.
func (s *Scheduler) Requeue(ev ScheduledEvent, onTurn int) {
	ev.OnTurn = onTurn
	s.push(ev)
}

// PopDue removes and returns the earliest event due at or before now.
// Returns false when the queue is empty or the earliest event is still in
// the future; the queue is left untouched in that case.
func (s *Scheduler) PopDue(now int) (ScheduledEvent, bool) {
	if len(s.heap) == 0 || s.heap[0].TurnDue > now {
		return ScheduledEvent{}, false
	}
	entry := heap.Pop(&s.heap).(heapEntry)
	ev := s.events[entry.Slot]
	s.events[entry.Slot] = ScheduledEvent{} // tombstone keeps slots stable
	s.compactIfNeeded()
	return ev, true
}

// compactIfNeeded rebuilds the payload vector and re-maps heap slots when
// too many tombstones accumulate. Relative slot order is preserved, so FIFO
// ordering within a turn survives compaction.
func (s *Scheduler) compactIfNeeded() {
	placeholders := 0
	for i := range s.events {
		if s.events[i].isPlaceholder() {
			placeholders++
		}
	}
	if placeholders <= compactThreshold {
		return
	}
	indexMap := make([]int, len(s.events))
	kept := s.events[:0:0]
	for i := range s.events {
		if s.events[i].isPlaceholder() {
			continue
		}
		indexMap[i] = len(kept)
		kept = append(kept, s.events[i])
	}
	s.events = kept
	for i := range s.heap {
		s.heap[i].Slot = indexMap[s.heap[i].Slot]
	}
	heap.Init(&s.heap)
}

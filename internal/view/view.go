// Package view collects the structured output of one turn and flushes it
// as an ordered frame. Renderers consume frames; the engine never prints.
package view

import "sort"

// Section is a top-level band of the turn frame, rendered in declaration
// order.
type Section int

const (
	SectionTransition Section = iota
	SectionEnvironment
	SectionAmbient
	SectionDirectResult
	SectionWorldResponse
	SectionSystem
)

// Mode alters how frames render room descriptions.
type Mode int

const (
	// ModeBrief shows short descriptions for already-visited rooms.
	ModeBrief Mode = iota
	// ModeVerbose always shows full descriptions.
	ModeVerbose
	// ModeClearVerbose is verbose plus a screen clear before each frame.
	ModeClearVerbose
)

// Item is one unit of displayable turn output. Concrete item types live in
// items.go; renderers dispatch on the concrete type.
type Item interface {
	Section() Section
	DefaultPriority() int
}

// Entry wraps an item with its ordering metadata.
type Entry struct {
	Item           Item
	Priority       int
	CustomPriority *int
	sequence       int
}

// EffectivePriority is the custom override when present, the per-kind
// default otherwise.
func (e Entry) EffectivePriority() int {
	if e.CustomPriority != nil {
		return *e.CustomPriority
	}
	return e.Priority
}

// View buffers one turn's output. Push order is preserved except in the
// WorldResponse section, which re-sorts by effective priority at flush.
type View struct {
	entries []Entry
	mode    Mode
	seq     int
}

func New() *View {
	return &View{mode: ModeBrief}
}

// Push appends an item with its default priority.
func (v *View) Push(item Item) {
	v.PushCustom(item, nil)
}

// PushPriority appends an item with an explicit priority.
func (v *View) PushPriority(item Item, priority int) {
	v.PushCustom(item, &priority)
}

// PushCustom appends an item with an optional priority override; nil keeps
// the per-kind default.
func (v *View) PushCustom(item Item, custom *int) {
	v.entries = append(v.entries, Entry{
		Item:           item,
		Priority:       item.DefaultPriority(),
		CustomPriority: custom,
		sequence:       v.seq,
	})
	v.seq++
}

// Mode returns the current render mode.
func (v *View) Mode() Mode { return v.mode }

// SetMode switches render modes and returns the previous one.
func (v *View) SetMode(mode Mode) Mode {
	prev := v.mode
	v.mode = mode
	return prev
}

// Frame is one flushed turn of output: the mode it should render under and
// its entries in final display order.
type Frame struct {
	Mode    Mode
	Entries []Entry
}

// Flush drains the buffer into a frame. Entries are grouped by section in
// section order; within WorldResponse they sort ascending by effective
// priority with insertion order breaking ties, everywhere else pure
// insertion order.
func (v *View) Flush() Frame {
	frame := Frame{Mode: v.mode}
	for sec := SectionTransition; sec <= SectionSystem; sec++ {
		var group []Entry
		for _, e := range v.entries {
			if e.Item.Section() == sec {
				group = append(group, e)
			}
		}
		if sec == SectionWorldResponse {
			sort.SliceStable(group, func(i, j int) bool {
				pi, pj := group[i].EffectivePriority(), group[j].EffectivePriority()
				if pi != pj {
					return pi < pj
				}
				return group[i].sequence < group[j].sequence
			})
		}
		frame.Entries = append(frame.Entries, group...)
	}
	v.entries = nil
	return frame
}

// Reset discards buffered output without producing a frame.
func (v *View) Reset() {
	v.entries = nil
}

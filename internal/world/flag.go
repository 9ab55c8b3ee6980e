package world

import (
	"fmt"
	"sort"
)

// StatusPrefix marks flags that represent applied status effects; the text
// after the prefix names the effect ("status:nausea" → "nausea").
const StatusPrefix = "status:"

// Flag is a named piece of player progression state, stamped with the turn
// it was set. A simple flag is a boolean; a sequence flag carries a step
// counter optionally clamped at End.
//
// Identity is by name only: setting a flag replaces any prior flag with the
// same name, even across the simple/sequence split. FlagSet encodes that by
// keying on the name.
type Flag struct {
	Name     string `yaml:"name"`
	TurnSet  int    `yaml:"turn_set"`
	Sequence bool   `yaml:"sequence,omitempty"`
	Step     int    `yaml:"step,omitempty"`
	End      *int   `yaml:"end,omitempty"`
}

// SimpleFlag builds a boolean flag.
func SimpleFlag(name string, turn int) *Flag {
	return &Flag{Name: name, TurnSet: turn}
}

// SequenceFlag builds a stepped flag starting at step 0.
func SequenceFlag(name string, end *int, turn int) *Flag {
	return &Flag{Name: name, TurnSet: turn, Sequence: true, End: end}
}

// Value renders the flag for condition matching and display: the bare name
// for simple flags, "name#step" for sequences.
func (f *Flag) Value() string {
	if f.Sequence {
		return fmt.Sprintf("%s#%d", f.Name, f.Step)
	}
	return f.Name
}

// Advance moves a sequence one step forward, clamped at End when present.
// Advancing a simple flag is a no-op.
func (f *Flag) Advance() {
	if !f.Sequence {
		return
	}
	f.Step++
	if f.End != nil && f.Step > *f.End {
		f.Step = *f.End
	}
}

// Reset returns a sequence to step 0. No-op on simple flags.
func (f *Flag) Reset() {
	if f.Sequence {
		f.Step = 0
	}
}

// IsComplete is true for simple flags, and for sequences that have reached
// their End. An open-ended sequence is never complete.
func (f *Flag) IsComplete() bool {
	if !f.Sequence {
		return true
	}
	return f.End != nil && f.Step == *f.End
}

// IsStatus reports whether the flag encodes a status effect.
func (f *Flag) IsStatus() bool {
	return len(f.Name) > len(StatusPrefix) && f.Name[:len(StatusPrefix)] == StatusPrefix
}

// StatusName returns the effect name for status flags, "" otherwise.
func (f *Flag) StatusName() string {
	if f.IsStatus() {
		return f.Name[len(StatusPrefix):]
	}
	return ""
}

// FlagSet holds the player's flags keyed by name, making replacement-by-name
// the only possible insert semantics.
type FlagSet map[string]*Flag

// Set inserts the flag, replacing any existing flag of the same name.
func (s *FlagSet) Set(f *Flag) {
	if *s == nil {
		*s = make(FlagSet)
	}
	(*s)[f.Name] = f
}

// Get returns the flag with the given name.
func (s FlagSet) Get(name string) (*Flag, bool) {
	f, ok := s[name]
	return f, ok
}

// Has reports whether a condition value matches any held flag. Values are
// compared against Flag.Value(), so "quest#2" matches only a sequence on
// step 2 while "quest" matches a simple flag of that name.
func (s FlagSet) Has(value string) bool {
	for _, f := range s {
		if f.Value() == value {
			return true
		}
	}
	return false
}

// Remove deletes the named flag; reports whether it was present.
func (s FlagSet) Remove(name string) bool {
	if _, ok := s[name]; !ok {
		return false
	}
	delete(s, name)
	return true
}

// Statuses lists the names of applied status effects in sorted order.
func (s FlagSet) Statuses() []string {
	var out []string
	for _, name := range s.sortedNames() {
		if f := s[name]; f.IsStatus() {
			out = append(out, f.StatusName())
		}
	}
	return out
}

func (s FlagSet) sortedNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the flags ordered by name, for display and serialization.
func (s FlagSet) Sorted() []*Flag {
	out := make([]*Flag, 0, len(s))
	for _, name := range s.sortedNames() {
		out = append(out, s[name])
	}
	return out
}

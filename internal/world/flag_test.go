package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestSimpleFlagValueAndCompletion(t *testing.T) {
	f := SimpleFlag("lights_on", 7)
	assert.Equal(t, "lights_on", f.Value())
	assert.Equal(t, 7, f.TurnSet)
	assert.True(t, f.IsComplete())
}

func TestSequenceAdvanceClampsAtEnd(t *testing.T) {
	f := SequenceFlag("puzzle", intPtr(3), 0)
	for i := 0; i < 5; i++ {
		f.Advance()
	}
	assert.Equal(t, 3, f.Step)
	assert.Equal(t, "puzzle#3", f.Value())
	assert.True(t, f.IsComplete())
}

func TestOpenEndedSequenceNeverCompletes(t *testing.T) {
	f := SequenceFlag("count", nil, 0)
	f.Advance()
	f.Advance()
	assert.Equal(t, 2, f.Step)
	assert.False(t, f.IsComplete())
}

func TestSequenceResetIsIdempotent(t *testing.T) {
	f := SequenceFlag("seq", intPtr(4), 0)
	f.Advance()
	f.Reset()
	assert.Equal(t, 0, f.Step)
	f.Reset()
	assert.Equal(t, 0, f.Step)
}

func TestAdvanceOnSimpleFlagIsNoOp(t *testing.T) {
	f := SimpleFlag("plain", 0)
	f.Advance()
	assert.Equal(t, 0, f.Step)
	assert.Equal(t, "plain", f.Value())
}

func TestFlagSetReplacesByName(t *testing.T) {
	var set FlagSet
	set.Set(SimpleFlag("quest", 1))
	set.Set(SequenceFlag("quest", intPtr(2), 5))

	require.Len(t, set, 1)
	f, ok := set.Get("quest")
	require.True(t, ok)
	assert.True(t, f.Sequence, "sequence flag must replace the simple flag of the same name")
	assert.Equal(t, 5, f.TurnSet)
}

func TestFlagSetHasMatchesRenderedValue(t *testing.T) {
	var set FlagSet
	seq := SequenceFlag("dial", intPtr(3), 0)
	seq.Advance()
	set.Set(seq)

	assert.True(t, set.Has("dial#1"))
	assert.False(t, set.Has("dial"))
	assert.False(t, set.Has("dial#2"))
}

func TestStatusFlags(t *testing.T) {
	var set FlagSet
	set.Set(SimpleFlag("status:nausea", 2))
	set.Set(SimpleFlag("status:bleeding", 3))
	set.Set(SimpleFlag("ordinary", 4))

	assert.Equal(t, []string{"status:bleeding", "status:nausea"}, func() []string {
		var names []string
		for _, f := range set.Sorted() {
			if f.IsStatus() {
				names = append(names, f.Name)
			}
		}
		return names
	}())
	assert.Equal(t, []string{"bleeding", "nausea"}, set.Statuses())
}

func TestFlagSetRemove(t *testing.T) {
	var set FlagSet
	set.Set(SimpleFlag("temp", 0))
	assert.True(t, set.Remove("temp"))
	assert.False(t, set.Remove("temp"))
}

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func msg(text string) []Action {
	return []Action{{Kind: ActShowMessage, Text: text}}
}

func TestSchedulerEmptyPopLeavesStateAlone(t *testing.T) {
	var s Scheduler
	_, ok := s.PopDue(10)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestScheduleInComputesDueTurn(t *testing.T) {
	var s Scheduler
	s.ScheduleIn(5, 3, msg("later"), "test")

	_, ok := s.PopDue(7)
	assert.False(t, ok, "not due before turn 8")

	ev, ok := s.PopDue(8)
	require.True(t, ok)
	assert.Equal(t, 8, ev.OnTurn)
	assert.Equal(t, "test", ev.Note)
}

func TestPopDueNeverReturnsFutureEvents(t *testing.T) {
	var s Scheduler
	s.ScheduleOn(10, msg("a"), "")
	s.ScheduleOn(4, msg("b"), "")

	ev, ok := s.PopDue(4)
	require.True(t, ok)
	assert.Equal(t, 4, ev.OnTurn)
	_, ok = s.PopDue(4)
	assert.False(t, ok)
}

func TestSameTurnEventsFireInScheduleOrder(t *testing.T) {
	var s Scheduler
	s.ScheduleOn(10, msg("first"), "first")
	s.ScheduleOn(10, msg("second"), "second")
	s.ScheduleOn(10, msg("third"), "third")

	var notes []string
	for {
		ev, ok := s.PopDue(10)
		if !ok {
			break
		}
		notes = append(notes, ev.Note)
	}
	assert.Equal(t, []string{"first", "second", "third"}, notes)
}

func TestOverdueEventsStillFire(t *testing.T) {
	var s Scheduler
	s.ScheduleOn(3, msg("late"), "late")
	ev, ok := s.PopDue(9)
	require.True(t, ok)
	assert.Equal(t, 3, ev.OnTurn)
}

func TestCompactionPreservesPendingEvents(t *testing.T) {
	prev := compactThreshold
	compactThreshold = 4
	defer func() { compactThreshold = prev }()

	var s Scheduler
	for i := 1; i <= 8; i++ {
		s.ScheduleOn(i, msg("event"), "")
	}
	// Same-turn pair appended last; compaction must not reorder them.
	s.ScheduleOn(20, msg("x"), "alpha")
	s.ScheduleOn(20, msg("y"), "beta")

	for i := 1; i <= 8; i++ {
		ev, ok := s.PopDue(i)
		require.True(t, ok, "event %d", i)
		assert.Equal(t, i, ev.OnTurn)
	}

	first, ok := s.PopDue(20)
	require.True(t, ok)
	second, ok := s.PopDue(20)
	require.True(t, ok)
	assert.Equal(t, "alpha", first.Note)
	assert.Equal(t, "beta", second.Note)
	_, ok = s.PopDue(99)
	assert.False(t, ok)
}

func TestRequeueKeepsConditionAndPolicy(t *testing.T) {
	var s Scheduler
	cond := Pred(Condition{Kind: CondHasFlag, Flag: "ready"})
	s.ScheduleInIf(0, 1, &cond, OnFalsePolicy{Kind: OnFalseRetryNextTurn}, msg("go"), "retry me")

	ev, ok := s.PopDue(1)
	require.True(t, ok)
	s.Requeue(ev, 2)

	again, ok := s.PopDue(2)
	require.True(t, ok)
	assert.NotNil(t, again.Condition)
	assert.Equal(t, OnFalseRetryNextTurn, again.OnFalse.Kind)
	assert.Equal(t, "retry me", again.Note)
}

func TestSchedulerSerializationRoundTrip(t *testing.T) {
	var s Scheduler
	s.ScheduleIn(5, 10, msg("one"), "serialize")
	s.ScheduleOn(20, msg("two"), "")

	out, err := s.MarshalYAML()
	require.NoError(t, err)
	doc := out.(schedulerDoc)
	assert.Len(t, doc.Heap, 2)
	assert.Len(t, doc.Events, 2)
	// Canonical heap order: earliest due first.
	assert.Equal(t, 15, doc.Heap[0].TurnDue)

	var node yaml.Node
	require.NoError(t, node.Encode(doc))
	var back Scheduler
	require.NoError(t, back.UnmarshalYAML(&node))
	assert.Equal(t, 2, back.Len())
	assert.Equal(t, "serialize", back.Pending()[0].Note)
}

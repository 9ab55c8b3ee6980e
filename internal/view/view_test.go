package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsFlushInOrder(t *testing.T) {
	v := New()
	v.Push(EngineMessage{Text: "sys"})
	v.Push(ActionSuccess{Text: "direct"})
	v.Push(RoomDescription{Name: "room"})
	v.Push(TransitionMessage{Text: "trans"})
	v.Push(AmbientEvent{Text: "ambient"})

	frame := v.Flush()
	require.Len(t, frame.Entries, 5)
	var sections []Section
	for _, e := range frame.Entries {
		sections = append(sections, e.Item.Section())
	}
	assert.Equal(t, []Section{
		SectionTransition, SectionEnvironment, SectionAmbient,
		SectionDirectResult, SectionSystem,
	}, sections)
}

func TestWorldResponseSortsByEffectivePriority(t *testing.T) {
	v := New()
	v.Push(NpcLeft{Name: "bot"})                       // default 15
	v.Push(NpcSpeech{Speaker: "bot", Quote: "hi"})     // default 10
	v.Push(TriggeredEvent{Text: "click"})              // default -30
	v.Push(CharacterHarmed{Name: "you", Amount: 2})    // default -20
	v.Push(NpcEntered{Name: "cat"})                    // default 5

	frame := v.Flush()
	var order []int
	for _, e := range frame.Entries {
		order = append(order, e.EffectivePriority())
	}
	assert.Equal(t, []int{-30, -20, 5, 10, 15}, order)
}

func TestCustomPriorityOverridesDefault(t *testing.T) {
	v := New()
	v.PushPriority(TriggeredEvent{Text: "last"}, 50)
	v.Push(NpcSpeech{Speaker: "a", Quote: "q"}) // default 10

	frame := v.Flush()
	first := frame.Entries[0].Item.(NpcSpeech)
	assert.Equal(t, "a", first.Speaker)
	second := frame.Entries[1].Item.(TriggeredEvent)
	assert.Equal(t, "last", second.Text)
}

func TestPriorityTiesKeepInsertionOrder(t *testing.T) {
	v := New()
	v.Push(TriggeredEvent{Text: "one"})
	v.Push(TriggeredEvent{Text: "two"})
	v.Push(TriggeredEvent{Text: "three"})

	frame := v.Flush()
	var texts []string
	for _, e := range frame.Entries {
		texts = append(texts, e.Item.(TriggeredEvent).Text)
	}
	assert.Equal(t, []string{"one", "two", "three"}, texts)
}

func TestFlushDrainsBuffer(t *testing.T) {
	v := New()
	v.Push(ActionSuccess{Text: "x"})
	_ = v.Flush()
	frame := v.Flush()
	assert.Empty(t, frame.Entries)
}

func TestSetModeReturnsPrevious(t *testing.T) {
	v := New()
	prev := v.SetMode(ModeVerbose)
	assert.Equal(t, ModeBrief, prev)
	assert.Equal(t, ModeVerbose, v.Mode())
}

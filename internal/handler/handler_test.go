package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	w := world.New(5)
	w.Rooms["pantry"] = &world.Room{Id: "pantry", Name: "Pantry", Desc: "Shelves of jars."}
	closed := world.ContainerClosed
	w.Items["jar"] = &world.Item{
		Id: "jar", Name: "glass jar", Desc: "A jar.", Location: world.InRoom("pantry"),
		ContainerState: &closed,
	}
	w.Items["pickle"] = &world.Item{Id: "pickle", Name: "sour pickle", Desc: "Green.", Location: world.InsideItem("jar"),
		Abilities: []world.Ability{{Kind: world.AbilityEat}}}
	w.Items["note"] = &world.Item{Id: "note", Name: "crumpled note", Desc: "Paper.", Location: world.InRoom("pantry"),
		Text: "Beware of the dog."}
	w.Rooms["pantry"].Contents = world.NewIdSet("jar", "note")
	w.Items["jar"].Contents = world.NewIdSet("pickle")
	w.Player.Location = world.InRoom("pantry")
	w.Player.Health = world.NewHealth(10)
	require.Empty(t, w.CheckIntegrity())
	return &Deps{World: w, View: view.New(), Log: zap.NewNop()}
}

func lastFailure(t *testing.T, v *view.View) string {
	t.Helper()
	frame := v.Flush()
	for i := len(frame.Entries) - 1; i >= 0; i-- {
		if f, ok := frame.Entries[i].Item.(view.ActionFailure); ok {
			return f.Text
		}
	}
	return ""
}

func TestOpenThenTakeFromContainer(t *testing.T) {
	d := testDeps(t)

	events := Take(d, "pickle")
	assert.Empty(t, events, "closed jar blocks taking")
	assert.NotEmpty(t, lastFailure(t, d.View))

	events = Open(d, "jar")
	require.Len(t, events, 1)
	assert.Equal(t, world.CondOpenItem, events[0].Kind)

	events = Take(d, "pickle")
	require.Len(t, events, 1)
	assert.Equal(t, world.CondTakeItem, events[0].Kind)
	assert.True(t, d.World.Player.Inventory.Has("pickle"))
}

func TestCloseRefusesWhenAlreadyClosed(t *testing.T) {
	d := testDeps(t)
	Close(d, "jar")
	assert.Contains(t, lastFailure(t, d.View), "already closed")
}

func TestPutInRoundTrip(t *testing.T) {
	d := testDeps(t)
	Open(d, "jar")
	Take(d, "note")
	events := PutIn(d, "note", "jar")
	require.Len(t, events, 1)
	assert.Equal(t, world.CondInsertInto, events[0].Kind)
	assert.Equal(t, world.InsideItem("jar"), d.World.Items["note"].Location)
	assert.Empty(t, d.World.CheckIntegrity())
}

func TestReadShowsItemText(t *testing.T) {
	d := testDeps(t)
	events := Read(d, "note")
	require.Len(t, events, 1)
	frame := d.View.Flush()
	found := false
	for _, e := range frame.Entries {
		if it, ok := e.Item.(view.ItemText); ok {
			assert.Equal(t, "Beware of the dog.", it.Text)
			found = true
		}
	}
	assert.True(t, found)

	Read(d, "jar")
	assert.Contains(t, lastFailure(t, d.View), "nothing to read")
}

func TestIngestWithoutDescriptorDespawns(t *testing.T) {
	d := testDeps(t)
	Open(d, "jar")
	Take(d, "pickle")
	events := Ingest(d, "pickle", world.IngestEat)
	require.Len(t, events, 1)
	assert.Equal(t, world.CondIngest, events[0].Kind)
	assert.True(t, d.World.Items["pickle"].Location.IsNowhere())
}

func TestIngestRequiresAbility(t *testing.T) {
	d := testDeps(t)
	Take(d, "note")
	events := Ingest(d, "note", world.IngestEat)
	assert.Empty(t, events)
	assert.Contains(t, lastFailure(t, d.View), "can't eat")
}

func TestConsumableReplacementInInventory(t *testing.T) {
	d := testDeps(t)
	w := d.World
	w.Items["match"] = &world.Item{
		Id: "match", Name: "match", Desc: "A match.", Location: world.InInventory(),
		Abilities: []world.Ability{{Kind: world.AbilityIgnite}},
		Consumable: &world.Consumable{
			UsesLeft:  1,
			ConsumeOn: []world.Ability{{Kind: world.AbilityIgnite}},
			Outcome:   world.ConsumeReplaceInventory, Replacement: "stub",
		},
	}
	w.Items["stub"] = &world.Item{Id: "stub", Name: "burnt stub", Desc: "Spent.", Location: world.Nowhere()}
	w.Player.Inventory.Add("match")
	w.Items["kindling"] = &world.Item{
		Id: "kindling", Name: "kindling", Desc: "Dry twigs.", Location: world.InRoom("pantry"),
		Requires: map[world.InteractionKind]world.Ability{world.InteractBurn: {Kind: world.AbilityIgnite}},
	}
	w.Rooms["pantry"].Contents.Add("kindling")
	require.Empty(t, w.CheckIntegrity())

	events := UseOn(d, world.InteractBurn, "kindling", "match")
	require.Len(t, events, 1)
	assert.Equal(t, world.CondUseItemOnItem, events[0].Kind)
	assert.True(t, w.Items["match"].Location.IsNowhere())
	assert.True(t, w.Player.Inventory.Has("stub"))
	assert.Empty(t, w.CheckIntegrity())
}

func TestMoveToRequiresVisibleExit(t *testing.T) {
	d := testDeps(t)
	d.World.Rooms["cellar"] = &world.Room{Id: "cellar", Name: "Cellar", Desc: "Dark."}
	d.World.Rooms["pantry"].Exits = map[string]*world.Exit{
		"down":  {To: "cellar", Hidden: true},
		"north": {To: "cellar", Locked: true, BarredMessage: "The door is bolted."},
	}

	events := MoveTo(d, "down", "")
	assert.Empty(t, events, "hidden exits stay invisible")

	MoveTo(d, "north", "")
	assert.Equal(t, "The door is bolted.", lastFailure(t, d.View))

	d.World.Rooms["pantry"].Exits["north"].Locked = false
	events = MoveTo(d, "north", "")
	require.Len(t, events, 2)
	assert.Equal(t, world.CondLeaveRoom, events[0].Kind)
	assert.Equal(t, world.CondEnterRoom, events[1].Kind)
	assert.Equal(t, world.InRoom("cellar"), d.World.Player.Location)
	assert.True(t, d.World.Rooms["cellar"].Visited)
}

func TestExitRequirementGates(t *testing.T) {
	d := testDeps(t)
	d.World.Rooms["cellar"] = &world.Room{Id: "cellar", Name: "Cellar", Desc: "Dark."}
	d.World.Rooms["pantry"].Exits = map[string]*world.Exit{
		"down": {To: "cellar", RequiredFlags: []string{"lantern_lit"}},
	}

	MoveTo(d, "down", "")
	assert.Equal(t, "Something bars your way.", lastFailure(t, d.View))

	d.World.Player.Flags.Set(world.SimpleFlag("lantern_lit", 0))
	events := MoveTo(d, "down", "")
	assert.Len(t, events, 2)
}

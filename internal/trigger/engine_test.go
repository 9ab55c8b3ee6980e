package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// testCtx builds a small world and an executor context around it.
func testCtx(t *testing.T) *Ctx {
	t.Helper()
	w := world.New(1)
	w.Rooms["hall"] = &world.Room{Id: "hall", Name: "Hall", Desc: "A hall."}
	w.Rooms["cell"] = &world.Room{Id: "cell", Name: "Cell", Desc: "A cell."}
	w.Items["coin"] = &world.Item{Id: "coin", Name: "coin", Location: world.InRoom("hall")}
	w.Rooms["hall"].Contents = world.NewIdSet("coin")
	locked := world.ContainerLocked
	w.Items["chest"] = &world.Item{Id: "chest", Name: "chest", Location: world.InRoom("hall"), ContainerState: &locked}
	w.Rooms["hall"].Contents.Add("chest")
	w.Npcs["guard"] = &world.Npc{
		Id: "guard", Name: "Guard", Location: world.InRoom("hall"),
		State: world.StateNormal, Health: world.NewHealth(10),
		Dialogue: map[world.NpcState][]string{world.StateNormal: {"Move along."}},
	}
	w.Rooms["hall"].Npcs = world.NewIdSet("guard")
	w.Player.Location = world.InRoom("hall")
	w.Player.Health = world.NewHealth(20)
	require.Empty(t, w.CheckIntegrity())
	return &Ctx{World: w, View: view.New(), Log: zap.NewNop()}
}

func showMsg(text string) []world.Action {
	return []world.Action{{Kind: world.ActShowMessage, Text: text}}
}

func triggeredTexts(frame view.Frame) []string {
	var out []string
	for _, e := range frame.Entries {
		if te, ok := e.Item.(view.TriggeredEvent); ok {
			out = append(out, te.Text)
		}
	}
	return out
}

func TestTriggerFiresOnMatchingEvent(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{{
		Name:    "coin taken",
		Event:   world.Condition{Kind: world.CondTakeItem, Item: "coin"},
		Actions: showMsg("The guard glares."),
	}}

	fired := Check(ctx, []world.Event{world.EvTakeItem("coin")})
	assert.Len(t, fired, 1)
	assert.Equal(t, []string{"The guard glares."}, triggeredTexts(ctx.View.Flush()))

	fired = Check(ctx, []world.Event{world.EvDropItem("coin")})
	assert.Empty(t, fired)
}

func TestGuardConditionsAreConjunctive(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{{
		Name:       "guarded",
		Event:      world.Condition{Kind: world.CondTakeItem, Item: "coin"},
		Conditions: world.Pred(world.Condition{Kind: world.CondHasFlag, Flag: "bold"}),
		Actions:    showMsg("noticed"),
	}}

	assert.Empty(t, Check(ctx, []world.Event{world.EvTakeItem("coin")}))
	ctx.World.Player.Flags.Set(world.SimpleFlag("bold", 0))
	assert.Len(t, Check(ctx, []world.Event{world.EvTakeItem("coin")}), 1)
}

func TestOnlyOnceFiresAtMostOnce(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{{
		Name:     "once",
		OnlyOnce: true,
		Event:    world.Condition{Kind: world.CondEnterRoom, Room: "cell"},
		Actions:  showMsg("The door slams."),
	}}

	ev := []world.Event{world.EvEnterRoom("cell")}
	assert.Len(t, Check(ctx, ev), 1)
	assert.True(t, ctx.World.Triggers[0].Fired)
	for i := 0; i < 3; i++ {
		assert.Empty(t, Check(ctx, ev))
	}
}

func TestAlwaysEventTriggerIsStateDriven(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{{
		Name:       "watcher",
		Event:      world.Condition{Kind: world.CondAlways},
		Conditions: world.Pred(world.Condition{Kind: world.CondHasItem, Item: "coin"}),
		Actions:    showMsg("Your pocket feels heavy."),
	}}

	assert.Empty(t, Check(ctx, nil))
	require.NoError(t, ctx.World.SetItemLocation("coin", world.InInventory()))
	assert.Len(t, Check(ctx, nil), 1)
}

func TestLaterTriggerSeesEarlierMutations(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{
		{
			Name:    "set flag",
			Event:   world.Condition{Kind: world.CondEnterRoom, Room: "cell"},
			Actions: []world.Action{{Kind: world.ActAddFlag, FlagSpec: &world.FlagSpec{Name: "alarm"}}},
		},
		{
			Name:  "conditional on flag",
			Event: world.Condition{Kind: world.CondEnterRoom, Room: "cell"},
			Actions: []world.Action{{
				Kind:      world.ActConditional,
				Condition: &world.CondExpr{Pred: &world.Condition{Kind: world.CondHasFlag, Flag: "alarm"}},
				Actions:   showMsg("Klaxons sound."),
			}},
		},
	}

	Check(ctx, []world.Event{world.EvEnterRoom("cell")})
	assert.Equal(t, []string{"Klaxons sound."}, triggeredTexts(ctx.View.Flush()),
		"the second trigger's actions evaluate against the post-mutation world")
}

func TestBatchAbortsOnFatalErrorButOthersRun(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Triggers = []*world.Trigger{
		{
			Name:  "broken",
			Event: world.Condition{Kind: world.CondEnterRoom, Room: "cell"},
			Actions: []world.Action{
				{Kind: world.ActNpcSays, Npc: "ghost", Quote: "boo"}, // unknown npc: fatal
				{Kind: world.ActShowMessage, Text: "never shown"},
			},
		},
		{
			Name:    "healthy",
			Event:   world.Condition{Kind: world.CondEnterRoom, Room: "cell"},
			Actions: showMsg("still fires"),
		},
	}

	Check(ctx, []world.Event{world.EvEnterRoom("cell")})
	assert.Equal(t, []string{"still fires"}, triggeredTexts(ctx.View.Flush()))
}

func TestAmbientPassRespectsRoomsAndOnlyOnce(t *testing.T) {
	ctx := testCtx(t)
	ctx.World.Spinners["drips"] = &world.Spinner{Wedges: []world.Wedge{{Text: "Water drips."}}}
	ctx.World.Triggers = []*world.Trigger{{
		Name:     "dripping",
		OnlyOnce: true,
		Event:    world.Condition{Kind: world.CondAmbient, Spinner: "drips", Rooms: []world.Id{"cell"}},
		Actions:  []world.Action{{Kind: world.ActSpinnerMsg, Spinner: "drips"}},
	}}

	assert.Empty(t, CheckAmbient(ctx), "player not in the cell")
	// Ambient triggers also sit out normal passes.
	assert.Empty(t, Check(ctx, nil))

	ctx.World.Player.Location = world.InRoom("cell")
	assert.Len(t, CheckAmbient(ctx), 1)
	frame := ctx.View.Flush()
	require.Len(t, frame.Entries, 1)
	assert.Equal(t, view.AmbientEvent{Text: "Water drips."}, frame.Entries[0].Item)

	assert.Empty(t, CheckAmbient(ctx), "only-once trigger already fired")
}

func TestTriggersContainCondition(t *testing.T) {
	ctx := testCtx(t)
	_ = ctx
	trig := &world.Trigger{
		Name:  "talk",
		Event: world.Condition{Kind: world.CondTalkToNpc, Npc: "guard"},
	}
	found := world.TriggersContainCondition([]*world.Trigger{trig}, func(c *world.Condition) bool {
		return c.Kind == world.CondTalkToNpc && c.Npc == "guard"
	})
	assert.True(t, found)
}

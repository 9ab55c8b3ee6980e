package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

func run(t *testing.T, ctx *Ctx, actions ...world.Action) {
	t.Helper()
	require.NoError(t, ctx.RunActions(actions))
}

func TestSpawnThenDespawnLeavesNoBackReferences(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	w.Items["orb"] = &world.Item{Id: "orb", Name: "orb", Location: world.Nowhere()}

	run(t, ctx, world.Action{Kind: world.ActSpawnItemInRoom, Item: "orb", Room: "cell"})
	assert.Equal(t, world.InRoom("cell"), w.Items["orb"].Location)
	assert.True(t, w.Rooms["cell"].Contents.Has("orb"))

	run(t, ctx, world.Action{Kind: world.ActDespawnItem, Item: "orb"})
	assert.True(t, w.Items["orb"].Location.IsNowhere())
	assert.False(t, w.Rooms["cell"].Contents.Has("orb"))
	assert.Empty(t, w.CheckIntegrity())
}

func TestSpawnOfPlacedItemMovesInstead(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World

	// coin starts in the hall; spawning it into the cell must not leave a
	// stale hall back-reference.
	run(t, ctx, world.Action{Kind: world.ActSpawnItemInRoom, Item: "coin", Room: "cell"})
	assert.Equal(t, world.InRoom("cell"), w.Items["coin"].Location)
	assert.False(t, w.Rooms["hall"].Contents.Has("coin"))
	assert.Empty(t, w.CheckIntegrity())
}

func TestSpawnInInventoryAndContainer(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	w.Items["pearl"] = &world.Item{Id: "pearl", Name: "pearl", Location: world.Nowhere()}

	run(t, ctx, world.Action{Kind: world.ActSpawnItemInPocket, Item: "pearl"})
	assert.True(t, w.Player.Inventory.Has("pearl"))

	run(t, ctx, world.Action{Kind: world.ActSpawnItemInside, Item: "pearl", Container: "chest"})
	assert.Equal(t, world.InsideItem("chest"), w.Items["pearl"].Location)
	assert.False(t, w.Player.Inventory.Has("pearl"))
}

func TestLockCycleReturnsContainerToOpen(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World

	run(t, ctx, world.Action{Kind: world.ActUnlockItem, Item: "chest"})
	assert.Equal(t, world.ContainerOpen, *w.Items["chest"].ContainerState)

	run(t, ctx, world.Action{Kind: world.ActLockItem, Item: "chest"})
	assert.Equal(t, world.ContainerLocked, *w.Items["chest"].ContainerState)

	open := world.ContainerOpen
	run(t, ctx, world.Action{Kind: world.ActSetContainerState, Item: "chest", ContainerState: &open})
	assert.Equal(t, world.ContainerOpen, *w.Items["chest"].ContainerState)
}

func TestFlagActions(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	w.Turn = 9

	end := 3
	run(t, ctx, world.Action{Kind: world.ActAddFlag, FlagSpec: &world.FlagSpec{Name: "puzzle", Sequence: true, End: &end}})
	f, ok := w.Player.Flags.Get("puzzle")
	require.True(t, ok)
	assert.Equal(t, 9, f.TurnSet)

	for i := 0; i < 4; i++ {
		run(t, ctx, world.Action{Kind: world.ActAdvanceFlag, Flag: "puzzle"})
	}
	assert.Equal(t, "puzzle#3", f.Value())
	assert.True(t, f.IsComplete())

	run(t, ctx, world.Action{Kind: world.ActResetFlag, Flag: "puzzle"})
	assert.Equal(t, 0, f.Step)

	run(t, ctx, world.Action{Kind: world.ActRemoveFlag, Flag: "puzzle"})
	_, ok = w.Player.Flags.Get("puzzle")
	assert.False(t, ok)
}

func TestStatusFlagsEmitStatusChanges(t *testing.T) {
	ctx := testCtx(t)
	run(t, ctx,
		world.Action{Kind: world.ActAddFlag, FlagSpec: &world.FlagSpec{Name: "status:nausea"}},
		world.Action{Kind: world.ActRemoveFlag, Flag: "status:nausea"},
	)
	frame := ctx.View.Flush()
	require.Len(t, frame.Entries, 2)
	assert.Equal(t, view.StatusChange{Action: view.StatusApply, Status: "nausea"}, frame.Entries[0].Item)
	assert.Equal(t, view.StatusChange{Action: view.StatusRemove, Status: "nausea"}, frame.Entries[1].Item)
}

func TestHealthOverTimeActions(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World

	run(t, ctx, world.Action{Kind: world.ActDamagePlayerOT, Amount: 2, Turns: 3, Cause: "poison"})
	require.Len(t, w.Player.Effects, 1)

	run(t, ctx, world.Action{Kind: world.ActDamagePlayerOT, Amount: 5, Turns: 1, Cause: "poison"})
	require.Len(t, w.Player.Effects, 1, "same cause replaces")
	assert.Equal(t, 5, w.Player.Effects[0].Amount)

	run(t, ctx, world.Action{Kind: world.ActRemovePlayerFx, Cause: "poison"})
	assert.Empty(t, w.Player.Effects)

	run(t, ctx, world.Action{Kind: world.ActDamageNpc, Npc: "guard", Amount: 4, Cause: "trap"})
	assert.Equal(t, 6, w.Npcs["guard"].Health.Current)
}

func TestNpcSpeechActions(t *testing.T) {
	ctx := testCtx(t)
	run(t, ctx,
		world.Action{Kind: world.ActNpcSays, Npc: "guard", Quote: "Halt!"},
		world.Action{Kind: world.ActNpcSaysRandom, Npc: "guard"},
	)
	frame := ctx.View.Flush()
	require.Len(t, frame.Entries, 2)
	assert.Equal(t, view.NpcSpeech{Speaker: "Guard", Quote: "Halt!"}, frame.Entries[0].Item)
	assert.Equal(t, view.NpcSpeech{Speaker: "Guard", Quote: "Move along."}, frame.Entries[1].Item)
}

func TestExitActions(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World

	run(t, ctx, world.Action{Kind: world.ActRevealExit, FromRoom: "hall", ToRoom: "cell", Direction: "north"})
	exit := w.Rooms["hall"].Exits["north"]
	require.NotNil(t, exit)
	assert.False(t, exit.Hidden)
	assert.Equal(t, world.Id("cell"), exit.To)

	run(t, ctx, world.Action{Kind: world.ActLockExit, FromRoom: "hall", Direction: "north"})
	assert.True(t, exit.Locked)
	run(t, ctx, world.Action{Kind: world.ActUnlockExit, FromRoom: "hall", Direction: "north"})
	assert.False(t, exit.Locked)

	run(t, ctx, world.Action{Kind: world.ActSetBarredMessage, FromRoom: "hall", ToRoom: "cell", Text: "A portcullis blocks the arch."})
	assert.Equal(t, "A portcullis blocks the arch.", exit.BarredMessage)

	run(t, ctx, world.Action{Kind: world.ActModifyRoom, Room: "hall", RoomPatch: &world.RoomPatch{RemoveExits: []string{"north"}}})
	assert.NotContains(t, w.Rooms["hall"].Exits, "north")
}

func TestModifyItemPatch(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	name := "dull coin"
	run(t, ctx, world.Action{Kind: world.ActModifyItem, Item: "coin", ItemPatch: &world.ItemPatch{
		Name:         &name,
		AddAbilities: []world.Ability{{Kind: world.AbilityCut}},
	}})
	assert.Equal(t, "dull coin", w.Items["coin"].Name)
	assert.True(t, w.Items["coin"].HasAbilityKind(world.AbilityCut))

	run(t, ctx, world.Action{Kind: world.ActModifyItem, Item: "coin", ItemPatch: &world.ItemPatch{
		RemoveAbilities: []world.Ability{{Kind: world.AbilityCut}},
	}})
	assert.False(t, w.Items["coin"].HasAbilityKind(world.AbilityCut))
}

func TestScheduleActionsFeedScheduler(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	w.Turn = 4

	run(t, ctx, world.Action{Kind: world.ActScheduleIn, Turns: 3, Actions: showMsg("later"), Note: "n1"})
	run(t, ctx, world.Action{Kind: world.ActScheduleOn, OnTurn: 12, Actions: showMsg("fixed"), Note: "n2"})
	assert.Equal(t, 2, w.Scheduler.Len())

	ev, ok := w.Scheduler.PopDue(7)
	require.True(t, ok)
	assert.Equal(t, "n1", ev.Note)
}

func TestRunScheduledConditionalRetry(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	cond := world.Pred(world.Condition{Kind: world.CondHasFlag, Flag: "ready"})
	w.Scheduler.ScheduleInIf(0, 1, &cond, world.OnFalsePolicy{Kind: world.OnFalseRetryNextTurn}, showMsg("Go!"), "gate")

	for turn := 1; turn <= 2; turn++ {
		w.Turn = turn
		RunScheduled(ctx)
		assert.Empty(t, triggeredTexts(ctx.View.Flush()), "turn %d", turn)
		assert.Equal(t, 1, w.Scheduler.Len(), "exactly one copy lives in the heap")
	}

	w.Turn = 3
	w.Player.Flags.Set(world.SimpleFlag("ready", 3))
	RunScheduled(ctx)
	assert.Equal(t, []string{"Go!"}, triggeredTexts(ctx.View.Flush()))
	assert.Equal(t, 0, w.Scheduler.Len())

	w.Turn = 4
	RunScheduled(ctx)
	assert.Empty(t, triggeredTexts(ctx.View.Flush()), "fires exactly once")
}

func TestRunScheduledCancelPolicy(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	cond := world.Pred(world.Condition{Kind: world.CondHasFlag, Flag: "never"})
	w.Scheduler.ScheduleInIf(0, 1, &cond, world.OnFalsePolicy{Kind: world.OnFalseCancel}, showMsg("x"), "doomed")

	w.Turn = 1
	RunScheduled(ctx)
	assert.Equal(t, 0, w.Scheduler.Len())
}

func TestZeroDelayScheduleFiresWithinSamePass(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	w.Turn = 5
	w.Scheduler.ScheduleIn(5, 0, []world.Action{
		{Kind: world.ActShowMessage, Text: "first"},
		{Kind: world.ActScheduleIn, Turns: 0, Actions: showMsg("chained"), Note: ""},
	}, "")

	RunScheduled(ctx)
	assert.Equal(t, []string{"first", "chained"}, triggeredTexts(ctx.View.Flush()))
	assert.Equal(t, 0, w.Scheduler.Len())
}

func TestNpcRefuseItemReturnsItem(t *testing.T) {
	ctx := testCtx(t)
	w := ctx.World
	require.NoError(t, w.SetItemLocation("coin", world.HeldByNpc("guard")))

	run(t, ctx, world.Action{Kind: world.ActNpcRefuseItem, Npc: "guard", Item: "coin", Reason: "No bribes."})
	assert.True(t, w.Player.Inventory.Has("coin"))
	assert.False(t, w.Npcs["guard"].Inventory.Has("coin"))
}

func TestConditionalActionUsesEventSet(t *testing.T) {
	ctx := testCtx(t)
	ctx.Events = []world.Event{world.EvTakeItem("coin")}
	run(t, ctx, world.Action{
		Kind:      world.ActConditional,
		Condition: &world.CondExpr{Pred: &world.Condition{Kind: world.CondTakeItem, Item: "coin"}},
		Actions:   showMsg("saw the take"),
	})
	assert.Equal(t, []string{"saw the take"}, triggeredTexts(ctx.View.Flush()))
}

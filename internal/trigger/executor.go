// Package trigger runs the declarative rule engine: selecting triggers
// whose event and guard conditions hold, and executing scripted actions
// against the world.
package trigger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// ScriptRunner executes a named script function; the scripting package
// provides the Lua-backed implementation.
type ScriptRunner interface {
	Run(function string) error
}

// Ctx carries everything an action batch needs. Events is the turn's event
// set, consulted by Conditional actions; it is empty during scheduler
// execution.
type Ctx struct {
	World   *world.World
	View    *view.View
	Log     *zap.Logger
	Scripts ScriptRunner
	Events  []world.Event
}

// RunActions executes a batch in order. The first fatal error aborts the
// remainder of the batch; the caller logs and moves on to unrelated work.
func (c *Ctx) RunActions(actions []world.Action) error {
	for i := range actions {
		if err := c.runAction(&actions[i]); err != nil {
			return fmt.Errorf("action %s: %w", actions[i].Kind, err)
		}
	}
	return nil
}

// push emits a view item honoring the action's priority override.
func (c *Ctx) push(a *world.Action, item view.Item) {
	c.View.PushCustom(item, a.Priority)
}

func (c *Ctx) runAction(a *world.Action) error {
	w := c.World
	switch a.Kind {

	case world.ActShowMessage:
		c.push(a, view.TriggeredEvent{Text: a.Text})

	case world.ActDenyRead:
		c.push(a, view.ActionFailure{Text: a.Reason})

	case world.ActSpinnerMsg:
		sp, ok := w.Spinners[a.Spinner]
		if !ok {
			return fmt.Errorf("spinner %q not found", a.Spinner)
		}
		if msg, ok := sp.Spin(w.Rng); ok && msg != "" {
			c.push(a, view.AmbientEvent{Text: msg})
		}

	case world.ActNpcSays:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		c.push(a, view.NpcSpeech{Speaker: npc.Name, Quote: a.Quote})

	case world.ActNpcSaysRandom:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		line := npc.RandomLine(w.Rng)
		if line == "" {
			if sp, ok := w.Spinners[world.SpinnerNpcIgnore]; ok {
				line, _ = sp.Spin(w.Rng)
			}
		}
		if line != "" {
			c.push(a, view.NpcSpeech{Speaker: npc.Name, Quote: line})
		}

	case world.ActAddFlag:
		if a.FlagSpec == nil {
			return fmt.Errorf("addFlag without a flag spec")
		}
		var f *world.Flag
		if a.FlagSpec.Sequence {
			f = world.SequenceFlag(a.FlagSpec.Name, a.FlagSpec.End, w.Turn)
		} else {
			f = world.SimpleFlag(a.FlagSpec.Name, w.Turn)
		}
		w.Player.Flags.Set(f)
		c.Log.Debug("flag set", zap.String("flag", f.Value()))
		if f.IsStatus() {
			c.push(a, view.StatusChange{Action: view.StatusApply, Status: f.StatusName()})
		}

	case world.ActAdvanceFlag:
		if !w.Player.AdvanceFlag(a.Flag) {
			c.Log.Warn("advanceFlag: flag not set", zap.String("flag", a.Flag))
		}

	case world.ActResetFlag:
		if !w.Player.ResetFlag(a.Flag) {
			c.Log.Warn("resetFlag: flag not set", zap.String("flag", a.Flag))
		}

	case world.ActRemoveFlag:
		f, had := w.Player.Flags.Get(a.Flag)
		if !w.Player.Flags.Remove(a.Flag) {
			c.Log.Warn("removeFlag: flag was not set", zap.String("flag", a.Flag))
		} else if had && f.IsStatus() {
			c.push(a, view.StatusChange{Action: view.StatusRemove, Status: f.StatusName()})
		}

	case world.ActAwardPoints:
		w.Player.AwardPoints(a.Amount)
		c.push(a, view.PointsAwarded{Amount: a.Amount, Reason: a.Reason})

	case world.ActDamagePlayer:
		w.Player.Health.Damage(a.Amount)
		c.push(a, view.CharacterHarmed{Name: w.Player.Name, Cause: a.Cause, Amount: a.Amount})

	case world.ActHealPlayer:
		w.Player.Health.Heal(a.Amount)
		c.push(a, view.CharacterHealed{Name: w.Player.Name, Cause: a.Cause, Amount: a.Amount})

	case world.ActDamagePlayerOT:
		w.Player.Effects = world.AddEffect(w.Player.Effects, world.HealthEffect{
			Cause: a.Cause, Amount: a.Amount, TurnsLeft: a.Turns,
		})

	case world.ActHealPlayerOT:
		w.Player.Effects = world.AddEffect(w.Player.Effects, world.HealthEffect{
			Cause: a.Cause, Amount: a.Amount, TurnsLeft: a.Turns, Healing: true,
		})

	case world.ActRemovePlayerFx:
		if fx, removed := world.RemoveEffect(w.Player.Effects, a.Cause); removed {
			w.Player.Effects = fx
		} else {
			c.Log.Warn("removePlayerEffect: no effect with cause", zap.String("cause", a.Cause))
		}

	case world.ActDamageNpc:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		npc.Health.Damage(a.Amount)
		c.push(a, view.CharacterHarmed{Name: npc.Name, Cause: a.Cause, Amount: a.Amount})

	case world.ActHealNpc:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		npc.Health.Heal(a.Amount)
		c.push(a, view.CharacterHealed{Name: npc.Name, Cause: a.Cause, Amount: a.Amount})

	case world.ActDamageNpcOT:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		npc.Effects = world.AddEffect(npc.Effects, world.HealthEffect{
			Cause: a.Cause, Amount: a.Amount, TurnsLeft: a.Turns,
		})

	case world.ActHealNpcOT:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		npc.Effects = world.AddEffect(npc.Effects, world.HealthEffect{
			Cause: a.Cause, Amount: a.Amount, TurnsLeft: a.Turns, Healing: true,
		})

	case world.ActRemoveNpcFx:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		if fx, removed := world.RemoveEffect(npc.Effects, a.Cause); removed {
			npc.Effects = fx
		} else {
			c.Log.Warn("removeNpcEffect: no effect with cause",
				zap.String("npc", string(a.Npc)), zap.String("cause", a.Cause))
		}

	case world.ActSetNpcActive:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		if npc.Movement == nil {
			c.Log.Warn("setNpcActive: npc has no movement", zap.String("npc", string(a.Npc)))
			return nil
		}
		npc.Movement.Active = a.Active

	case world.ActSetNpcState:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		npc.State = a.NpcState

	case world.ActNpcRefuseItem:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		c.push(a, view.NpcSpeech{Speaker: npc.Name, Quote: a.Reason})
		if a.Item != "" && npc.Inventory.Has(a.Item) {
			if err := w.SetItemLocation(a.Item, world.InInventory()); err != nil {
				return err
			}
			c.push(a, view.TriggeredEvent{Text: fmt.Sprintf("%s returns it to you.", npc.Name)})
		}

	case world.ActGiveItemToPlayer:
		npc, err := w.Npc(a.Npc)
		if err != nil {
			return err
		}
		if !npc.Inventory.Has(a.Item) {
			return fmt.Errorf("npc %s does not hold item %s", a.Npc, a.Item)
		}
		if err := w.SetItemLocation(a.Item, world.InInventory()); err != nil {
			return err
		}

	case world.ActPushPlayerTo:
		if _, err := w.Room(a.Room); err != nil {
			return err
		}
		w.Player.Location = world.InRoom(a.Room)

	case world.ActSpawnItemHere:
		room, err := w.PlayerRoom()
		if err != nil {
			return err
		}
		return c.spawnItem(a.Item, world.InRoom(room.Id))

	case world.ActSpawnItemInRoom:
		if _, err := w.Room(a.Room); err != nil {
			return err
		}
		return c.spawnItem(a.Item, world.InRoom(a.Room))

	case world.ActSpawnItemInPocket:
		return c.spawnItem(a.Item, world.InInventory())

	case world.ActSpawnItemInside:
		if _, err := w.Item(a.Container); err != nil {
			return err
		}
		return c.spawnItem(a.Item, world.InsideItem(a.Container))

	case world.ActSpawnNpcInRoom:
		return w.SetNpcLocation(a.Npc, world.InRoom(a.Room))

	case world.ActDespawnItem:
		return w.SetItemLocation(a.Item, world.Nowhere())

	case world.ActDespawnNpc:
		return w.SetNpcLocation(a.Npc, world.Nowhere())

	case world.ActReplaceItem:
		oldItem, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		loc := oldItem.Location
		if err := w.SetItemLocation(a.Item, world.Nowhere()); err != nil {
			return err
		}
		return c.spawnItem(a.NewItem, loc)

	case world.ActReplaceDropItem:
		room, err := w.PlayerRoom()
		if err != nil {
			return err
		}
		if err := w.SetItemLocation(a.Item, world.Nowhere()); err != nil {
			return err
		}
		return c.spawnItem(a.NewItem, world.InRoom(room.Id))

	case world.ActLockItem:
		item, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		if item.ContainerState == nil {
			c.Log.Warn("lockItem: not a container", zap.String("item", string(a.Item)))
			return nil
		}
		locked := world.ContainerLocked
		item.ContainerState = &locked

	case world.ActUnlockItem:
		item, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		switch {
		case item.ContainerState == nil:
			c.Log.Warn("unlockItem: not a container", zap.String("item", string(a.Item)))
		case !item.ContainerState.Locked():
			c.Log.Warn("unlockItem: item was not locked", zap.String("item", string(a.Item)))
		default:
			open := world.ContainerOpen
			if *item.ContainerState == world.ContainerTransparentLocked {
				open = world.ContainerTransparentOpen
			}
			item.ContainerState = &open
		}

	case world.ActSetContainerState:
		item, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		if a.ContainerState == nil {
			if len(item.Contents) > 0 {
				c.Log.Warn("setContainerState: refusing to strip container with contents",
					zap.String("item", string(a.Item)))
				return nil
			}
			item.ContainerState = nil
			return nil
		}
		state := *a.ContainerState
		item.ContainerState = &state

	case world.ActSetItemDesc:
		item, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		item.Desc = a.Text

	case world.ActSetItemMovability:
		item, err := w.Item(a.Item)
		if err != nil {
			return err
		}
		if a.Movability != nil {
			item.Movability = *a.Movability
		}

	case world.ActModifyItem:
		return c.modifyItem(a)

	case world.ActLockExit:
		return c.setExitLock(a.FromRoom, a.Direction, true)

	case world.ActUnlockExit:
		return c.setExitLock(a.FromRoom, a.Direction, false)

	case world.ActRevealExit:
		room, err := w.Room(a.FromRoom)
		if err != nil {
			return err
		}
		if room.Exits == nil {
			room.Exits = make(map[string]*world.Exit)
		}
		exit, ok := room.Exits[a.Direction]
		if !ok {
			exit = &world.Exit{To: a.ToRoom}
			room.Exits[a.Direction] = exit
		}
		exit.Hidden = false

	case world.ActSetBarredMessage:
		room, err := w.Room(a.FromRoom)
		if err != nil {
			return err
		}
		for _, exit := range room.Exits {
			if exit.To == a.ToRoom {
				exit.BarredMessage = a.Text
				return nil
			}
		}
		return fmt.Errorf("no exit from %s to %s", a.FromRoom, a.ToRoom)

	case world.ActModifyRoom:
		return c.modifyRoom(a)

	case world.ActModifyNpc:
		return c.modifyNpc(a)

	case world.ActAddSpinnerWedge:
		sp, ok := w.Spinners[a.Spinner]
		if !ok {
			return fmt.Errorf("spinner %q not found", a.Spinner)
		}
		sp.AddWedge(a.Text, a.Width)

	case world.ActScheduleIn:
		w.Scheduler.ScheduleIn(w.Turn, a.Turns, a.Actions, a.Note)
		c.logScheduled(a)

	case world.ActScheduleOn:
		w.Scheduler.ScheduleOn(a.OnTurn, a.Actions, a.Note)
		c.logScheduled(a)

	case world.ActScheduleInIf:
		w.Scheduler.ScheduleInIf(w.Turn, a.Turns, a.Condition, a.OnFalse, a.Actions, a.Note)
		c.logScheduled(a)

	case world.ActScheduleOnIf:
		w.Scheduler.ScheduleOnIf(a.OnTurn, a.Condition, a.OnFalse, a.Actions, a.Note)
		c.logScheduled(a)

	case world.ActConditional:
		if a.Condition.Eval(w, c.Events) {
			return c.RunActions(a.Actions)
		}

	case world.ActRunScript:
		if c.Scripts == nil {
			c.Log.Warn("runScript: no script engine loaded", zap.String("function", a.Function))
			return nil
		}
		return c.Scripts.Run(a.Function)

	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}

func (c *Ctx) logScheduled(a *world.Action) {
	note := a.Note
	if note == "" {
		note = "<no note>"
	}
	c.Log.Debug("event scheduled",
		zap.Int("turn", c.World.Turn), zap.String("note", note))
}

// spawnItem places an item, first removing a stale placement so spawning
// never duplicates back-references.
func (c *Ctx) spawnItem(id world.Id, loc world.Location) error {
	item, err := c.World.Item(id)
	if err != nil {
		return err
	}
	if !item.Location.IsNowhere() {
		c.Log.Warn("spawn: item already placed, moving instead",
			zap.String("item", string(id)), zap.String("at", item.Location.String()))
		if err := c.World.SetItemLocation(id, world.Nowhere()); err != nil {
			return err
		}
	}
	return c.World.SetItemLocation(id, loc)
}

func (c *Ctx) setExitLock(room world.Id, direction string, locked bool) error {
	r, err := c.World.Room(room)
	if err != nil {
		return err
	}
	exit, ok := r.Exits[direction]
	if !ok {
		return fmt.Errorf("room %s has no exit %q", room, direction)
	}
	exit.Locked = locked
	return nil
}

func (c *Ctx) modifyItem(a *world.Action) error {
	item, err := c.World.Item(a.Item)
	if err != nil {
		return err
	}
	p := a.ItemPatch
	if p == nil {
		return nil
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Desc != nil {
		item.Desc = *p.Desc
	}
	if p.Text != nil {
		item.Text = *p.Text
	}
	if p.Movability != nil {
		item.Movability = *p.Movability
	}
	if p.RemoveContainer {
		if len(item.Contents) > 0 {
			c.Log.Warn("modifyItem: refusing to strip container with contents",
				zap.String("item", string(a.Item)))
		} else {
			item.ContainerState = nil
		}
	} else if p.ContainerState != nil {
		state := *p.ContainerState
		item.ContainerState = &state
	}
	for _, ab := range p.AddAbilities {
		if !item.HasAbility(ab) {
			item.Abilities = append(item.Abilities, ab)
		}
	}
	for _, ab := range p.RemoveAbilities {
		for i := range item.Abilities {
			if item.Abilities[i] == ab {
				item.Abilities = append(item.Abilities[:i], item.Abilities[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (c *Ctx) modifyRoom(a *world.Action) error {
	room, err := c.World.Room(a.Room)
	if err != nil {
		return err
	}
	p := a.RoomPatch
	if p == nil {
		return nil
	}
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.Desc != nil {
		room.Desc = *p.Desc
	}
	for _, dir := range p.RemoveExits {
		delete(room.Exits, dir)
	}
	for _, e := range p.AddExits {
		if room.Exits == nil {
			room.Exits = make(map[string]*world.Exit)
		}
		room.Exits[e.Direction] = &world.Exit{
			To:            e.To,
			Hidden:        e.Hidden,
			Locked:        e.Locked,
			RequiredFlags: e.RequiredFlags,
			RequiredItems: e.RequiredItems,
			BarredMessage: e.BarredMessage,
		}
	}
	return nil
}

func (c *Ctx) modifyNpc(a *world.Action) error {
	npc, err := c.World.Npc(a.Npc)
	if err != nil {
		return err
	}
	p := a.NpcPatch
	if p == nil {
		return nil
	}
	if p.Name != nil {
		npc.Name = *p.Name
	}
	if p.Desc != nil {
		npc.Desc = *p.Desc
	}
	if p.State != nil {
		npc.State = *p.State
	}
	for _, line := range p.AddLines {
		if npc.Dialogue == nil {
			npc.Dialogue = make(map[world.NpcState][]string)
		}
		npc.Dialogue[line.State] = append(npc.Dialogue[line.State], line.Line)
	}
	if mp := p.Movement; mp != nil {
		if npc.Movement == nil {
			npc.Movement = &world.Movement{Active: true}
		}
		m := npc.Movement
		if len(mp.Route) > 0 {
			m.Kind = world.MoveRoute
			m.Rooms = mp.Route
			m.CurrentIdx = 0
		}
		if len(mp.RandomRooms) > 0 {
			m.Kind = world.MoveRandomSet
			m.Rooms = mp.RandomRooms
		}
		if mp.Timing != nil {
			m.Timing = *mp.Timing
		}
		if mp.Turns != nil {
			m.Turns = *mp.Turns
		}
		if mp.OnTurn != nil {
			m.OnTurn = *mp.OnTurn
		}
		if mp.Active != nil {
			m.Active = *mp.Active
		}
		if mp.Loop != nil {
			m.Loop = *mp.Loop
		}
	}
	return nil
}

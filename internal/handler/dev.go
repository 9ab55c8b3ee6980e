package handler

import (
	"fmt"
	"strings"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Developer commands, enabled by config. All output lands in the System
// section and none of it consumes a turn.

// DevFlags dumps the player's flag set.
func DevFlags(d *Deps) {
	flags := d.World.Player.Flags.Sorted()
	if len(flags) == 0 {
		d.View.Push(view.EngineMessage{Text: "no flags set"})
		return
	}
	var parts []string
	for _, f := range flags {
		parts = append(parts, fmt.Sprintf("%s (turn %d)", f.Value(), f.TurnSet))
	}
	d.View.Push(view.EngineMessage{Text: "flags: " + strings.Join(parts, ", ")})
}

// DevSched dumps pending scheduled events in due order.
func DevSched(d *Deps) {
	pending := d.World.Scheduler.Pending()
	if len(pending) == 0 {
		d.View.Push(view.EngineMessage{Text: "scheduler empty"})
		return
	}
	for _, ev := range pending {
		note := ev.Note
		if note == "" {
			note = "<no note>"
		}
		tag := ""
		if ev.Condition != nil {
			tag = " [conditional]"
		}
		d.View.Push(view.EngineMessage{
			Text: fmt.Sprintf("turn %d: %s (%d actions)%s", ev.OnTurn, note, len(ev.Actions), tag),
		})
	}
}

// DevNpcs dumps NPC positions and states.
func DevNpcs(d *Deps) {
	for _, id := range sortedNpcIds(d.World) {
		npc := d.World.Npcs[id]
		d.View.Push(view.EngineMessage{
			Text: fmt.Sprintf("%s: %s, state=%s, hp=%d/%d",
				npc.Name, npc.Location, npc.State, npc.Health.Current, npc.Health.Max),
		})
	}
}

// DevGoto teleports the player to a room by id or name.
func DevGoto(d *Deps, target string) {
	w := d.World
	if _, ok := w.Rooms[world.Id(target)]; ok {
		w.Player.MoveToRoom(world.Id(target))
		d.View.Push(view.EngineMessage{Text: "moved to " + target})
		return
	}
	for id, room := range w.Rooms {
		if world.NameMatches(room.Name, target) {
			w.Player.MoveToRoom(id)
			d.View.Push(view.EngineMessage{Text: "moved to " + string(id)})
			return
		}
	}
	d.View.Push(view.EngineMessage{Text: "no room matches " + target})
}

func sortedNpcIds(w *world.World) []world.Id {
	set := world.NewIdSet()
	for id := range w.Npcs {
		set.Add(id)
	}
	return set.Sorted()
}

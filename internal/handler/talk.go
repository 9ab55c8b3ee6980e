package handler

import (
	"fmt"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// TalkTo addresses an NPC in the room. The handler only raises the event;
// if no trigger supplies a scripted reply, the turn loop falls back to the
// NPC's random dialogue for its current state.
func TalkTo(d *Deps, noun string) []world.Event {
	id, err := d.World.FindNpc(noun, world.ScopeTouchableNpcs)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("There's nobody called %q here.", noun)
		}
		return d.searchFail(err, noun)
	}
	return []world.Event{world.EvTalkToNpc(id)}
}

// DefaultNpcReply voices an NPC's stock dialogue; the turn loop calls it
// when no trigger consumed a talk event.
func DefaultNpcReply(d *Deps, npcId world.Id) {
	npc, ok := d.World.Npcs[npcId]
	if !ok {
		return
	}
	line := npc.RandomLine(d.World.Rng)
	if line == "" {
		if sp, ok := d.World.Spinners[world.SpinnerNpcIgnore]; ok {
			line, _ = sp.Spin(d.World.Rng)
		}
	}
	if line != "" {
		d.View.Push(view.NpcSpeech{Speaker: npc.Name, Quote: line})
	}
}

// GiveTo hands a carried item to an NPC. Acceptance is the default;
// content refuses through an NpcRefuseItem trigger, which returns the item.
func GiveTo(d *Deps, noun, npcName string) []world.Event {
	w := d.World
	itemId, err := w.FindItem(noun, world.ScopeInventory)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("You aren't carrying any %q.", noun)
		}
		return d.searchFail(err, noun)
	}
	npcId, err := w.FindNpc(npcName, world.ScopeTouchableNpcs)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("There's nobody called %q here.", npcName)
		}
		return d.searchFail(err, npcName)
	}
	item := w.Items[itemId]
	npc := w.Npcs[npcId]
	if err := w.SetItemLocation(itemId, world.HeldByNpc(npcId)); err != nil {
		return d.searchFail(err, noun)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You give the %s to %s.", item.Name, npc.Name)})
	return []world.Event{world.EvGiveToNpc(itemId, npcId)}
}

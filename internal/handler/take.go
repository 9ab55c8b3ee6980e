package handler

import (
	"fmt"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// consumableStatus renders the uses-left line shown when examining a
// limited-use item.
func consumableStatus(name string, c *world.Consumable) string {
	switch c.UsesLeft {
	case 0:
		return fmt.Sprintf("The %s is used up.", name)
	case 1:
		return fmt.Sprintf("The %s has one use left.", name)
	default:
		return fmt.Sprintf("The %s has %d uses left.", name, c.UsesLeft)
	}
}

// Take picks up an item from the room or an open container.
func Take(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		if world.IsNoMatch(err) {
			// A visible but unreachable item gets a better refusal than
			// "you don't see it" — closed transparent lids, mostly.
			if seen, seeErr := w.FindItem(noun, world.ScopeVisibleItems); seeErr == nil {
				item := w.Items[seen]
				return d.fail("You can't get at the %s.", item.Name)
			}
		}
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.Location == world.InInventory() {
		return d.fail("You're already carrying the %s.", item.Name)
	}
	switch item.Movability.Kind {
	case world.MoveFixed:
		reason := item.Movability.Reason
		if reason == "" {
			reason = fmt.Sprintf("The %s won't budge.", item.Name)
		}
		return d.fail("%s", reason)
	case world.MoveRestricted:
		reason := item.Movability.Reason
		if reason == "" {
			reason = fmt.Sprintf("You'd better leave the %s alone.", item.Name)
		}
		return d.fail("%s", reason)
	}
	if err := w.SetItemLocation(id, world.InInventory()); err != nil {
		return d.searchFail(err, noun)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You take the %s.", item.Name)})
	return []world.Event{world.EvTakeItem(id)}
}

// Drop leaves a carried item in the current room.
func Drop(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeInventory)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("You aren't carrying any %q.", noun)
		}
		return d.searchFail(err, noun)
	}
	room, err := w.PlayerRoom()
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if err := w.SetItemLocation(id, world.InRoom(room.Id)); err != nil {
		return d.searchFail(err, noun)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You drop the %s.", item.Name)})
	return []world.Event{world.EvDropItem(id)}
}

// TakeFrom pulls an item out of a nearby container or NPC.
func TakeFrom(d *Deps, noun, vesselName string) []world.Event {
	w := d.World
	vessel, err := w.FindEntity(vesselName, world.ScopeNearbyVessels)
	if err != nil {
		return d.searchFail(err, vesselName)
	}

	if vessel.Npc != "" {
		npc := w.Npcs[vessel.Npc]
		itemId, err := w.FindItemNear(noun, world.ScopeNpcInventory, vessel.Npc)
		if err != nil {
			if world.IsNoMatch(err) {
				return d.fail("%s doesn't have any %q.", npc.Name, noun)
			}
			return d.searchFail(err, noun)
		}
		item := w.Items[itemId]
		if err := w.SetItemLocation(itemId, world.InInventory()); err != nil {
			return d.searchFail(err, noun)
		}
		d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You take the %s from %s.", item.Name, npc.Name)})
		return []world.Event{world.EvTakeFromNpc(itemId, vessel.Npc)}
	}

	container := w.Items[vessel.Item]
	if container.ContainerState != nil && !container.ContainerState.Reachable() {
		return d.fail("The %s is closed.", container.Name)
	}
	var itemId world.Id
	for _, id := range container.Contents.Sorted() {
		if item, ok := w.Items[id]; ok && item.Location == world.InsideItem(container.Id) {
			if world.NameMatches(item.Name, noun) {
				itemId = id
				break
			}
		}
	}
	if itemId == "" {
		return d.fail("There's no %q in the %s.", noun, container.Name)
	}
	item := w.Items[itemId]
	if !item.Movability.IsFree() {
		reason := item.Movability.Reason
		if reason == "" {
			reason = fmt.Sprintf("The %s won't come out.", item.Name)
		}
		return d.fail("%s", reason)
	}
	if err := w.SetItemLocation(itemId, world.InInventory()); err != nil {
		return d.searchFail(err, noun)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You take the %s from the %s.", item.Name, container.Name)})
	return []world.Event{world.EvTakeItem(itemId)}
}

// PutIn moves a carried item into a nearby vessel. Giving to an NPC by way
// of "put" routes through the give handler.
func PutIn(d *Deps, noun, vesselName string) []world.Event {
	w := d.World
	itemId, err := w.FindItem(noun, world.ScopeInventory)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("You aren't carrying any %q.", noun)
		}
		return d.searchFail(err, noun)
	}
	vessel, err := w.FindEntity(vesselName, world.ScopeNearbyVessels)
	if err != nil {
		return d.searchFail(err, vesselName)
	}
	if vessel.Npc != "" {
		return GiveTo(d, noun, vesselName)
	}
	container := w.Items[vessel.Item]
	if container.Id == itemId {
		return d.fail("You can't put the %s inside itself.", container.Name)
	}
	if container.ContainerState == nil {
		return d.fail("The %s can't hold anything.", container.Name)
	}
	if !container.ContainerState.Reachable() {
		return d.fail("The %s is closed.", container.Name)
	}
	item := w.Items[itemId]
	if err := w.SetItemLocation(itemId, world.InsideItem(container.Id)); err != nil {
		return d.searchFail(err, noun)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You put the %s in the %s.", item.Name, container.Name)})
	return []world.Event{world.EvInsertInto(itemId, container.Id)}
}

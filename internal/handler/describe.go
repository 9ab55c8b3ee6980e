package handler

import (
	"sort"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// PushRoomView assembles the Environment section for the player's current
// room: description, overlays, loose items, exits, NPCs. forceVerbose makes
// an explicit `look` show the full description even in brief mode.
func PushRoomView(d *Deps, room *world.Room, forceVerbose bool) {
	d.View.Push(view.RoomDescription{
		Name:         room.Name,
		Desc:         room.Desc,
		Visited:      room.Visited,
		ForceVerbose: forceVerbose,
	})
	if overlays := room.ActiveOverlayText(d.World); len(overlays) > 0 {
		d.View.Push(view.RoomOverlays{Text: overlays, ForceVerbose: forceVerbose})
	}

	var itemNames []string
	for _, id := range room.Contents.Sorted() {
		if item, ok := d.World.Items[id]; ok {
			itemNames = append(itemNames, item.Name)
		}
	}
	if len(itemNames) > 0 {
		d.View.Push(view.RoomItems{Names: itemNames})
	}

	d.View.Push(view.RoomExits{Exits: exitLines(d.World, room)})

	var npcs []view.NpcLine
	for _, id := range room.Npcs.Sorted() {
		if npc, ok := d.World.Npcs[id]; ok {
			npcs = append(npcs, view.NpcLine{Name: npc.Name, Desc: npc.Desc})
		}
	}
	if len(npcs) > 0 {
		d.View.Push(view.RoomNpcs{Npcs: npcs})
	}
}

// exitLines lists the room's non-hidden exits in direction order.
func exitLines(w *world.World, room *world.Room) []view.ExitLine {
	dirs := make([]string, 0, len(room.Exits))
	for dir, exit := range room.Exits {
		if exit.Hidden {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	lines := make([]view.ExitLine, 0, len(dirs))
	for _, dir := range dirs {
		exit := room.Exits[dir]
		dest := ""
		visited := false
		if destRoom, ok := w.Rooms[exit.To]; ok {
			visited = destRoom.Visited
			if visited {
				dest = destRoom.Name
			}
		}
		lines = append(lines, view.ExitLine{
			Direction:   dir,
			Destination: dest,
			Locked:      exit.Locked,
			DestVisited: visited,
		})
	}
	return lines
}

// Look renders the current room verbosely.
func Look(d *Deps) []world.Event {
	room, err := d.World.PlayerRoom()
	if err != nil {
		return d.searchFail(err, "here")
	}
	PushRoomView(d, room, true)
	return nil
}

// LookAt examines a visible item or NPC by name.
func LookAt(d *Deps, noun string) []world.Event {
	found, err := d.World.FindEntity(noun, world.ScopeAllVisible)
	if err != nil {
		return d.searchFail(err, noun)
	}
	if found.Npc != "" {
		npc := d.World.Npcs[found.Npc]
		d.View.Push(view.NpcDescription{
			Name:    npc.Name,
			Desc:    npc.Desc,
			Current: npc.Health.Current,
			Max:     npc.Health.Max,
			State:   string(npc.State),
		})
		if len(npc.Inventory) > 0 {
			d.View.Push(view.NpcInventory{Name: npc.Name, Lines: d.contentLines(npc.Inventory.Sorted())})
		}
		return nil
	}
	item := d.World.Items[found.Item]
	d.View.Push(view.ItemDescription{Name: item.Name, Desc: item.Desc})
	if item.IsContainer() {
		if contents := d.World.VisibleContents(item); contents != nil {
			d.View.Push(view.ItemContents{Name: item.Name, Lines: d.contentLines(contents)})
		}
	}
	if c := item.Consumable; c != nil {
		d.View.Push(view.ItemConsumableStatus{Text: consumableStatus(item.Name, c)})
	}
	return []world.Event{world.EvLookAtItem(found.Item)}
}

// Inventory lists what the player carries.
func Inventory(d *Deps) []world.Event {
	d.View.Push(view.Inventory{Lines: d.contentLines(d.World.Player.Inventory.Sorted())})
	return nil
}

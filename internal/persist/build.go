package persist

import (
	"fmt"

	"github.com/saunter/saunter/internal/world"
)

// Build constructs a runtime world from a validated definition. All
// back-references (room contents, container contents, NPC inventories) are
// derived here from entity locations, so the result satisfies the store
// invariants from its first turn.
func Build(def *WorldDef, seed int64) (*world.World, error) {
	w := world.New(seed)
	w.Version = FormatVersion
	w.Game = world.GameMeta{
		Title: def.Game.Title,
		Intro: def.Game.Intro,
		Ranks: def.Game.Scoring,
	}

	for _, rd := range def.Rooms {
		room := &world.Room{
			Id:       rd.Id,
			Name:     rd.Name,
			Desc:     rd.Desc,
			Visited:  rd.Visited,
			Overlays: rd.Overlays,
			Exits:    make(map[string]*world.Exit, len(rd.Exits)),
		}
		for _, ed := range rd.Exits {
			room.Exits[ed.Direction] = &world.Exit{
				To:            ed.To,
				Hidden:        ed.Hidden,
				Locked:        ed.Locked,
				RequiredFlags: ed.RequiredFlags,
				RequiredItems: ed.RequiredItems,
				BarredMessage: ed.BarredMessage,
			}
		}
		w.Rooms[rd.Id] = room
	}

	for _, id := range def.Items {
		item := &world.Item{
			Id:             id.Id,
			Name:           id.Name,
			Desc:           id.Desc,
			Location:       id.Location,
			Movability:     id.Movability,
			ContainerState: id.ContainerState,
			Abilities:      id.Abilities,
			Requires:       id.Requires,
			Text:           id.Text,
			Consumable:     id.Consumable,
		}
		w.Items[id.Id] = item
	}

	for _, nd := range def.Npcs {
		npc := &world.Npc{
			Id:       nd.Id,
			Name:     nd.Name,
			Desc:     nd.Desc,
			Location: nd.Location,
			State:    nd.State,
			Dialogue: nd.Dialogue,
			Health:   world.NewHealth(nd.MaxHP),
			Movement: nd.Movement,
		}
		if npc.State == "" {
			npc.State = world.StateNormal
		}
		w.Npcs[nd.Id] = npc
	}

	for _, sd := range def.Spinners {
		w.Spinners[sd.Id] = &world.Spinner{Wedges: sd.Wedges}
	}

	w.Triggers = def.Triggers
	w.Goals = def.Goals

	// Derive back-references from locations.
	for id, item := range w.Items {
		switch item.Location.Kind {
		case world.LocRoom:
			room, ok := w.Rooms[item.Location.Ref]
			if !ok {
				return nil, fmt.Errorf("item %s placed in unknown room %s", id, item.Location.Ref)
			}
			room.Contents.Add(id)
		case world.LocItem:
			container, ok := w.Items[item.Location.Ref]
			if !ok {
				return nil, fmt.Errorf("item %s placed in unknown container %s", id, item.Location.Ref)
			}
			if container.ContainerState == nil {
				return nil, fmt.Errorf("item %s placed inside non-container %s", id, item.Location.Ref)
			}
			container.Contents.Add(id)
		case world.LocNpc:
			npc, ok := w.Npcs[item.Location.Ref]
			if !ok {
				return nil, fmt.Errorf("item %s held by unknown npc %s", id, item.Location.Ref)
			}
			npc.Inventory.Add(id)
		case world.LocInventory:
			w.Player.Inventory.Add(id)
		}
	}
	for id, npc := range w.Npcs {
		if room, ok := npc.Location.Room(); ok {
			r, found := w.Rooms[room]
			if !found {
				return nil, fmt.Errorf("npc %s placed in unknown room %s", id, room)
			}
			r.Npcs.Add(id)
		}
	}

	// Seed the player.
	p := def.Game.Player
	w.Player.Name = p.Name
	w.Player.Desc = p.Desc
	w.Player.Health = world.NewHealth(p.MaxHP)
	w.Player.Location = world.InRoom(p.StartRoom)
	start, ok := w.Rooms[p.StartRoom]
	if !ok {
		return nil, fmt.Errorf("start room %s not found", p.StartRoom)
	}
	start.Visited = true

	w.MaxScore = maxScore(def.Triggers)
	return w, nil
}

// maxScore totals every positive award reachable from trigger actions,
// giving the quit summary its denominator.
func maxScore(triggers []*world.Trigger) int {
	total := 0
	var walk func(actions []world.Action)
	walk = func(actions []world.Action) {
		for i := range actions {
			a := &actions[i]
			if a.Kind == world.ActAwardPoints && a.Amount > 0 {
				total += a.Amount
			}
			walk(a.Actions)
		}
	}
	for _, t := range triggers {
		walk(t.Actions)
	}
	return total
}

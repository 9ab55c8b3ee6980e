package world

import (
	"errors"
	"fmt"
)

// EntityKind names an entity family in lookup errors.
type EntityKind string

const (
	KindRoom EntityKind = "room"
	KindItem EntityKind = "item"
	KindNpc  EntityKind = "npc"
)

// NotFoundError reports a failed id lookup. Lookup failures abort the
// enclosing action batch but never the run.
type NotFoundError struct {
	Kind EntityKind
	Id   Id
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with id %q", e.Kind, e.Id)
}

// IsNotFound reports whether err is a failed entity lookup.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ScoringRank is one entry of the score → rank table.
type ScoringRank struct {
	Threshold int    `yaml:"threshold"`
	Name      string `yaml:"name"`
	Desc      string `yaml:"description,omitempty"`
}

// GameMeta is the authored metadata of a world.
type GameMeta struct {
	Title string        `yaml:"title"`
	Intro string        `yaml:"intro,omitempty"`
	Ranks []ScoringRank `yaml:"ranks,omitempty"`
}

// World is the aggregate root. It exclusively owns every entity; all
// cross-references are ids resolved through the maps here. The RNG is
// world-owned so that runs replay identically from a seed.
type World struct {
	Version   string           `yaml:"version"`
	Game      GameMeta         `yaml:"game"`
	Rooms     map[Id]*Room     `yaml:"rooms"`
	Items     map[Id]*Item     `yaml:"items,omitempty"`
	Npcs      map[Id]*Npc      `yaml:"npcs,omitempty"`
	Player    *Player          `yaml:"player"`
	Triggers  []*Trigger       `yaml:"triggers,omitempty"`
	Goals     []*Goal          `yaml:"goals,omitempty"`
	Spinners  map[Id]*Spinner  `yaml:"spinners,omitempty"`
	Scheduler Scheduler        `yaml:"scheduler"`
	Turn      int              `yaml:"turn"`
	MaxScore  int              `yaml:"max_score,omitempty"`
	Seed      int64            `yaml:"seed"`
	RngDraws  uint64           `yaml:"rng_draws,omitempty"`

	Rng *Rand `yaml:"-"`
}

// New creates an empty world with a seeded RNG.
func New(seed int64) *World {
	return &World{
		Rooms:    make(map[Id]*Room),
		Items:    make(map[Id]*Item),
		Npcs:     make(map[Id]*Npc),
		Spinners: make(map[Id]*Spinner),
		Player:   &Player{Id: NewId(), Location: Nowhere()},
		Seed:     seed,
		Rng:      NewRand(seed),
	}
}

// Room returns the room or a typed lookup error.
func (w *World) Room(id Id) (*Room, error) {
	if r, ok := w.Rooms[id]; ok {
		return r, nil
	}
	return nil, &NotFoundError{Kind: KindRoom, Id: id}
}

// Item returns the item or a typed lookup error.
func (w *World) Item(id Id) (*Item, error) {
	if i, ok := w.Items[id]; ok {
		return i, nil
	}
	return nil, &NotFoundError{Kind: KindItem, Id: id}
}

// Npc returns the NPC or a typed lookup error.
func (w *World) Npc(id Id) (*Npc, error) {
	if n, ok := w.Npcs[id]; ok {
		return n, nil
	}
	return nil, &NotFoundError{Kind: KindNpc, Id: id}
}

// PlayerRoom returns the room the player currently occupies.
func (w *World) PlayerRoom() (*Room, error) {
	id, ok := w.Player.Location.Room()
	if !ok {
		return nil, &NotFoundError{Kind: KindRoom, Id: Id(w.Player.Location.String())}
	}
	return w.Room(id)
}

// detachItem removes the item id from whatever collection its current
// location names.
func (w *World) detachItem(item *Item) {
	switch item.Location.Kind {
	case LocRoom:
		if r, ok := w.Rooms[item.Location.Ref]; ok {
			r.Contents.Remove(item.Id)
		}
	case LocItem:
		if c, ok := w.Items[item.Location.Ref]; ok {
			c.Contents.Remove(item.Id)
		}
	case LocNpc:
		if n, ok := w.Npcs[item.Location.Ref]; ok {
			n.Inventory.Remove(item.Id)
		}
	case LocInventory:
		w.Player.Inventory.Remove(item.Id)
	}
}

// SetItemLocation moves an item atomically: the old container's
// back-reference is removed, the new container's is added, and the item's
// Location is updated, all in one step. Moving to Nowhere despawns.
func (w *World) SetItemLocation(itemId Id, loc Location) error {
	item, err := w.Item(itemId)
	if err != nil {
		return err
	}
	switch loc.Kind {
	case LocRoom:
		r, err := w.Room(loc.Ref)
		if err != nil {
			return err
		}
		w.detachItem(item)
		r.Contents.Add(itemId)
	case LocItem:
		c, err := w.Item(loc.Ref)
		if err != nil {
			return err
		}
		w.detachItem(item)
		c.Contents.Add(itemId)
	case LocNpc:
		n, err := w.Npc(loc.Ref)
		if err != nil {
			return err
		}
		w.detachItem(item)
		n.Inventory.Add(itemId)
	case LocInventory:
		w.detachItem(item)
		w.Player.Inventory.Add(itemId)
	case LocNowhere:
		w.detachItem(item)
	}
	item.Location = loc
	return nil
}

// SetNpcLocation moves an NPC atomically between rooms (or out of the
// world).
func (w *World) SetNpcLocation(npcId Id, loc Location) error {
	npc, err := w.Npc(npcId)
	if err != nil {
		return err
	}
	if loc.Kind == LocRoom {
		if _, err := w.Room(loc.Ref); err != nil {
			return err
		}
	}
	if prev, ok := npc.Location.Room(); ok {
		if r, ok := w.Rooms[prev]; ok {
			r.Npcs.Remove(npcId)
		}
	}
	if room, ok := loc.Room(); ok {
		w.Rooms[room].Npcs.Add(npcId)
	}
	npc.Location = loc
	return nil
}

// VisibleContents returns the ids inside a container that the player can
// see, honoring transparency; an opaque closed container yields nothing.
func (w *World) VisibleContents(item *Item) []Id {
	if item.ContainerState == nil || !item.ContainerState.SeeThrough() {
		return nil
	}
	return item.Contents.Sorted()
}

// visibleItemsInRoom collects the room's items plus any nested items
// exposed by see-through containers (one level at a time, walking down).
func (w *World) visibleItemsInRoom(room *Room) IdSet {
	out := NewIdSet()
	var walk func(id Id)
	walk = func(id Id) {
		out.Add(id)
		item, ok := w.Items[id]
		if !ok || item.ContainerState == nil {
			return
		}
		if item.ContainerState.SeeThrough() {
			for _, inner := range item.Contents.Sorted() {
				walk(inner)
			}
		}
	}
	for _, id := range room.Contents.Sorted() {
		walk(id)
	}
	return out
}

// reachableItemsInRoom collects the room's items plus nested items inside
// open containers only; transparent-closed contents are visible but out of
// reach.
func (w *World) reachableItemsInRoom(room *Room) IdSet {
	out := NewIdSet()
	var walk func(id Id)
	walk = func(id Id) {
		out.Add(id)
		item, ok := w.Items[id]
		if !ok || item.ContainerState == nil {
			return
		}
		if item.ContainerState.Reachable() {
			for _, inner := range item.Contents.Sorted() {
				walk(inner)
			}
		}
	}
	for _, id := range room.Contents.Sorted() {
		walk(id)
	}
	return out
}

// vesselItemsInRoom collects reachable container items that could give or
// receive an item.
func (w *World) vesselItemsInRoom(room *Room) IdSet {
	out := NewIdSet()
	for id := range w.reachableItemsInRoom(room) {
		if item, ok := w.Items[id]; ok && item.IsContainer() {
			out.Add(id)
		}
	}
	return out
}

// CheckIntegrity verifies the location invariants in both directions and
// returns every violation found. Used by tests.
func (w *World) CheckIntegrity() []error {
	var errs []error
	report := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	for id, item := range w.Items {
		switch item.Location.Kind {
		case LocRoom:
			if r, ok := w.Rooms[item.Location.Ref]; !ok || !r.Contents.Has(id) {
				report("item %s claims room %s but is not in its contents", id, item.Location.Ref)
			}
		case LocItem:
			if c, ok := w.Items[item.Location.Ref]; !ok || !c.Contents.Has(id) {
				report("item %s claims container %s but is not in its contents", id, item.Location.Ref)
			}
		case LocNpc:
			if n, ok := w.Npcs[item.Location.Ref]; !ok || !n.Inventory.Has(id) {
				report("item %s claims npc %s but is not in its inventory", id, item.Location.Ref)
			}
		case LocInventory:
			if !w.Player.Inventory.Has(id) {
				report("item %s claims inventory but the player does not hold it", id)
			}
		}
	}
	for id, room := range w.Rooms {
		for itemId := range room.Contents {
			if it, ok := w.Items[itemId]; !ok || it.Location != InRoom(id) {
				report("room %s lists item %s which is not located there", id, itemId)
			}
		}
		for npcId := range room.Npcs {
			if n, ok := w.Npcs[npcId]; !ok || n.Location != InRoom(id) {
				report("room %s lists npc %s which is not located there", id, npcId)
			}
		}
	}
	for id, npc := range w.Npcs {
		if room, ok := npc.Location.Room(); ok {
			if r, found := w.Rooms[room]; !found || !r.Npcs.Has(id) {
				report("npc %s claims room %s but is not in its npc set", id, room)
			}
		}
		for itemId := range npc.Inventory {
			if it, ok := w.Items[itemId]; !ok || it.Location != HeldByNpc(id) {
				report("npc %s holds item %s which is not located there", id, itemId)
			}
		}
	}
	for itemId := range w.Player.Inventory {
		if it, ok := w.Items[itemId]; !ok || it.Location != InInventory() {
			report("player holds item %s which is not located there", itemId)
		}
	}
	return errs
}

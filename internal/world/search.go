package world

import (
	"fmt"
	"strings"
)

// SearchScope bounds a name search. Visible scopes include what the player
// can see (inventory plus the room, looking through transparent
// containers); touchable scopes stop at closed lids. NearbyVessels covers
// containers and NPCs that could give or receive an item.
type SearchScope int

const (
	ScopeAllVisible SearchScope = iota
	ScopeAllTouchable
	ScopeVisibleItems
	ScopeTouchableItems
	ScopeVisibleNpcs
	ScopeTouchableNpcs
	ScopeNearbyVessels
	ScopeInventory
	ScopeNpcInventory
)

func (s SearchScope) String() string {
	switch s {
	case ScopeAllVisible:
		return "allVisible"
	case ScopeAllTouchable:
		return "allTouchable"
	case ScopeVisibleItems:
		return "visibleItems"
	case ScopeTouchableItems:
		return "touchableItems"
	case ScopeVisibleNpcs:
		return "visibleNpcs"
	case ScopeTouchableNpcs:
		return "touchableNpcs"
	case ScopeNearbyVessels:
		return "nearbyVessels"
	case ScopeInventory:
		return "inventory"
	case ScopeNpcInventory:
		return "npcInventory"
	}
	return "unknown"
}

// SearchError is a failed entity search; the variants map to the
// user-input error taxonomy.
type SearchError struct {
	Pattern string
	Scope   SearchScope
	Wanted  string // entity family the scope cannot provide, for scope errors
	NoMatch bool
}

func (e *SearchError) Error() string {
	if e.NoMatch {
		return fmt.Sprintf("nothing in scope matches %q", e.Pattern)
	}
	return fmt.Sprintf("scope %s cannot contain a %s", e.Scope, e.Wanted)
}

// IsNoMatch reports whether the error is a simple failed name match.
func IsNoMatch(err error) bool {
	se, ok := err.(*SearchError)
	return ok && se.NoMatch
}

// NameMatches implements the substring/tokenized match against a display
// name: a case-folded substring hit, or every input token a prefix of some
// token of the name.
func NameMatches(name, pattern string) bool {
	name = strings.ToLower(name)
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return false
	}
	if strings.Contains(name, pattern) {
		return true
	}
	nameTokens := strings.Fields(name)
	for _, tok := range strings.Fields(pattern) {
		found := false
		for _, nt := range nameTokens {
			if strings.HasPrefix(nt, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// itemHaystack assembles the candidate item ids for a scope.
func (w *World) itemHaystack(scope SearchScope, npcId Id) (IdSet, error) {
	switch scope {
	case ScopeVisibleItems, ScopeAllVisible:
		room, err := w.PlayerRoom()
		if err != nil {
			return nil, err
		}
		set := w.visibleItemsInRoom(room)
		for id := range w.Player.Inventory {
			set.Add(id)
		}
		return set, nil
	case ScopeTouchableItems, ScopeAllTouchable:
		room, err := w.PlayerRoom()
		if err != nil {
			return nil, err
		}
		set := w.reachableItemsInRoom(room)
		for id := range w.Player.Inventory {
			set.Add(id)
		}
		return set, nil
	case ScopeNearbyVessels:
		room, err := w.PlayerRoom()
		if err != nil {
			return nil, err
		}
		return w.vesselItemsInRoom(room), nil
	case ScopeInventory:
		return w.Player.Inventory, nil
	case ScopeNpcInventory:
		npc, err := w.Npc(npcId)
		if err != nil {
			return nil, err
		}
		return npc.Inventory, nil
	case ScopeVisibleNpcs, ScopeTouchableNpcs:
		return nil, &SearchError{Scope: scope, Wanted: "item"}
	}
	return nil, &SearchError{Scope: scope, Wanted: "item"}
}

// FindItem resolves a player-typed name to an item id within the scope.
func (w *World) FindItem(pattern string, scope SearchScope) (Id, error) {
	return w.FindItemNear(pattern, scope, "")
}

// FindItemNear is FindItem with the NPC id needed by NpcInventory scope.
func (w *World) FindItemNear(pattern string, scope SearchScope, npcId Id) (Id, error) {
	haystack, err := w.itemHaystack(scope, npcId)
	if err != nil {
		return "", err
	}
	for _, id := range haystack.Sorted() {
		if item, ok := w.Items[id]; ok && NameMatches(item.Name, pattern) {
			return id, nil
		}
	}
	return "", &SearchError{Pattern: pattern, Scope: scope, NoMatch: true}
}

// FindNpc resolves a player-typed name to an NPC id within the scope.
// Visible and touchable NPC scopes are identical: NPCs do not hide inside
// containers.
func (w *World) FindNpc(pattern string, scope SearchScope) (Id, error) {
	switch scope {
	case ScopeVisibleNpcs, ScopeTouchableNpcs, ScopeAllVisible, ScopeAllTouchable, ScopeNearbyVessels:
	default:
		return "", &SearchError{Scope: scope, Wanted: "npc"}
	}
	room, err := w.PlayerRoom()
	if err != nil {
		return "", err
	}
	for _, id := range room.Npcs.Sorted() {
		if npc, ok := w.Npcs[id]; ok && NameMatches(npc.Name, pattern) {
			return id, nil
		}
	}
	return "", &SearchError{Pattern: pattern, Scope: scope, NoMatch: true}
}

// FoundEntity is the result of a combined item-or-NPC search.
type FoundEntity struct {
	Item Id
	Npc  Id
}

// FindEntity resolves a name to an item or an NPC, preferring NPCs on a
// tie so that "talk to guard" style commands win over a same-named item.
func (w *World) FindEntity(pattern string, scope SearchScope) (FoundEntity, error) {
	if npcId, err := w.FindNpc(pattern, scope); err == nil {
		return FoundEntity{Npc: npcId}, nil
	}
	itemId, err := w.FindItem(pattern, scope)
	if err != nil {
		return FoundEntity{}, err
	}
	return FoundEntity{Item: itemId}, nil
}

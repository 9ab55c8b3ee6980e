package handler

import (
	"fmt"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Open opens a closed container and shows what's inside.
func Open(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.ContainerState == nil {
		return d.fail("The %s doesn't open.", item.Name)
	}
	switch *item.ContainerState {
	case world.ContainerOpen, world.ContainerTransparentOpen:
		return d.fail("The %s is already open.", item.Name)
	case world.ContainerLocked, world.ContainerTransparentLocked:
		return d.fail("The %s is locked.", item.Name)
	case world.ContainerClosed:
		open := world.ContainerOpen
		item.ContainerState = &open
	case world.ContainerTransparentClosed:
		open := world.ContainerTransparentOpen
		item.ContainerState = &open
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You open the %s.", item.Name)})
	if len(item.Contents) > 0 {
		d.View.Push(view.ItemContents{Name: item.Name, Lines: d.contentLines(item.Contents.Sorted())})
	}
	return []world.Event{world.EvOpenItem(id)}
}

// Close shuts an open container.
func Close(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.ContainerState == nil {
		return d.fail("The %s doesn't close.", item.Name)
	}
	switch *item.ContainerState {
	case world.ContainerOpen:
		closed := world.ContainerClosed
		item.ContainerState = &closed
	case world.ContainerTransparentOpen:
		closed := world.ContainerTransparentClosed
		item.ContainerState = &closed
	default:
		return d.fail("The %s is already closed.", item.Name)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You close the %s.", item.Name)})
	return nil
}

// keyFor finds a carried item whose unlock ability fits the target.
func keyFor(w *world.World, target world.Id) (world.Id, bool) {
	req := world.Ability{Kind: world.AbilityUnlock, Target: target}
	for _, id := range w.Player.Inventory.Sorted() {
		if item, ok := w.Items[id]; ok && item.HasAbility(req) {
			return id, true
		}
	}
	return "", false
}

// Lock locks a container using whatever fitting key the player carries.
func Lock(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.ContainerState == nil {
		return d.fail("The %s has no lock.", item.Name)
	}
	if item.ContainerState.Locked() {
		return d.fail("The %s is already locked.", item.Name)
	}
	if _, ok := keyFor(w, id); !ok {
		return d.fail("You don't have anything that locks the %s.", item.Name)
	}
	locked := world.ContainerLocked
	if item.ContainerState.SeeThrough() && *item.ContainerState != world.ContainerOpen {
		locked = world.ContainerTransparentLocked
	}
	item.ContainerState = &locked
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You lock the %s.", item.Name)})
	return nil
}

// Unlock unlocks a container with an implicit fitting key.
func Unlock(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.ContainerState == nil || !item.ContainerState.Locked() {
		return d.fail("The %s isn't locked.", item.Name)
	}
	keyId, ok := keyFor(w, id)
	if !ok {
		return d.fail("You don't have anything that unlocks the %s.", item.Name)
	}
	return unlockWithKey(d, item, keyId)
}

// UnlockWith unlocks a container with an explicitly named tool.
func UnlockWith(d *Deps, noun, toolName string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	toolId, err := w.FindItem(toolName, world.ScopeInventory)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("You aren't carrying any %q.", toolName)
		}
		return d.searchFail(err, toolName)
	}
	tool := w.Items[toolId]
	req, hasReq := item.Requires[world.InteractUnlock]
	if !hasReq {
		req = world.Ability{Kind: world.AbilityUnlock, Target: id}
	}
	if !tool.HasAbility(req) {
		return d.fail("The %s doesn't fit the %s.", tool.Name, item.Name)
	}
	if item.ContainerState == nil || !item.ContainerState.Locked() {
		return d.fail("The %s isn't locked.", item.Name)
	}
	events := unlockWithKey(d, item, toolId)
	return append(events, world.EvUseItemOnItem(world.InteractUnlock, id, toolId))
}

// unlockWithKey flips the lock state, ticks the key's consumable, and
// emits the unlock event.
func unlockWithKey(d *Deps, item *world.Item, keyId world.Id) []world.Event {
	open := world.ContainerOpen
	if *item.ContainerState == world.ContainerTransparentLocked {
		open = world.ContainerTransparentOpen
	}
	item.ContainerState = &open
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You unlock the %s.", item.Name)})
	consumeUse(d, keyId, world.AbilityUnlock)
	return []world.Event{world.EvUnlockItem(item.Id)}
}

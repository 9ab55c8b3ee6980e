package handler

import (
	"fmt"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// MoveTo walks the player through an exit named by direction or by the
// destination room's name.
func MoveTo(d *Deps, direction, place string) []world.Event {
	w := d.World
	room, err := w.PlayerRoom()
	if err != nil {
		return d.searchFail(err, "here")
	}

	var exit *world.Exit
	switch {
	case direction != "":
		e, ok := room.Exits[direction]
		if !ok || e.Hidden {
			return d.fail("You can't go %s from here.", direction)
		}
		exit = e
	default:
		for _, e := range room.Exits {
			if e.Hidden {
				continue
			}
			dest, ok := w.Rooms[e.To]
			if ok && world.NameMatches(dest.Name, place) {
				exit = e
				break
			}
		}
		if exit == nil {
			return d.fail("There's no way to %q from here.", place)
		}
	}

	if barred, reason := exitBarred(w, exit); barred {
		return d.fail("%s", reason)
	}

	return enterRoom(d, room.Id, exit.To)
}

// exitBarred checks locks and requirement gates, returning the refusal
// text when passage is denied.
func exitBarred(w *world.World, exit *world.Exit) (bool, string) {
	deny := func(fallback string) (bool, string) {
		if exit.BarredMessage != "" {
			return true, exit.BarredMessage
		}
		return true, fallback
	}
	if exit.Locked {
		return deny("The way is locked.")
	}
	for _, flag := range exit.RequiredFlags {
		if !w.Player.Flags.Has(flag) {
			return deny("Something bars your way.")
		}
	}
	for _, item := range exit.RequiredItems {
		if !w.Player.Inventory.Has(item) {
			return deny("Something bars your way.")
		}
	}
	return false, ""
}

// enterRoom performs the actual transition: history, visited marking, the
// arrival view, and the leave/enter events.
func enterRoom(d *Deps, from, to world.Id) []world.Event {
	w := d.World
	dest, err := w.Room(to)
	if err != nil {
		return d.searchFail(err, string(to))
	}
	w.Player.MoveToRoom(to)
	PushRoomView(d, dest, false)
	dest.Visited = true
	return []world.Event{world.EvLeaveRoom(from), world.EvEnterRoom(to)}
}

// GoBack retraces the player's last step.
func GoBack(d *Deps) []world.Event {
	w := d.World
	from, ok := w.Player.Location.Room()
	if !ok {
		return d.fail("You can't go back from here.")
	}
	prev, ok := w.Player.PreviousRoom()
	if !ok {
		return d.fail("You haven't been anywhere else yet.")
	}
	if _, err := w.Room(prev); err != nil {
		return d.searchFail(err, string(prev))
	}
	w.Player.GoBack()
	dest := w.Rooms[prev]
	d.View.Push(view.TransitionMessage{Text: fmt.Sprintf("You retrace your steps to %s.", dest.Name)})
	PushRoomView(d, dest, false)
	dest.Visited = true
	return []world.Event{world.EvLeaveRoom(from), world.EvEnterRoom(prev)}
}

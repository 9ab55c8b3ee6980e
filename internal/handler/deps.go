// Package handler implements the player-command handlers. Each handler
// mutates the world through the entity store, pushes its direct-result view
// items, and returns the typed events the trigger engine will consume this
// turn.
package handler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Deps carries the shared state every handler needs.
type Deps struct {
	World *world.World
	View  *view.View
	Log   *zap.Logger
}

// fail pushes a direct-result failure and returns no events.
func (d *Deps) fail(format string, args ...interface{}) []world.Event {
	d.View.Push(view.ActionFailure{Text: fmt.Sprintf(format, args...)})
	return nil
}

// searchFail renders a failed entity search. Name mismatches get the
// polite "don't see" line; anything else surfaces as an error view item
// and is logged.
func (d *Deps) searchFail(err error, pattern string) []world.Event {
	if world.IsNoMatch(err) {
		d.View.Push(view.ActionFailure{Text: fmt.Sprintf("You don't see any %q here.", pattern)})
		return nil
	}
	d.Log.Warn("entity search failed", zap.Error(err))
	d.View.Push(view.ErrorMessage{Text: "Something went wrong with that."})
	return nil
}

// contentLines renders a set of item ids for inventory-style listings.
func (d *Deps) contentLines(ids []world.Id) []view.ContentLine {
	var lines []view.ContentLine
	for _, id := range ids {
		item, ok := d.World.Items[id]
		if !ok {
			continue
		}
		lines = append(lines, view.ContentLine{
			Name:       item.Name,
			Restricted: item.Movability.Kind == world.MoveRestricted,
		})
	}
	return lines
}

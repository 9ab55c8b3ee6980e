package handler

import (
	"fmt"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// interactionAbility maps a use-verb family to the tool ability it
// exercises by default when the target doesn't spell out a requirement.
var interactionAbility = map[world.InteractionKind]world.AbilityKind{
	world.InteractAttach:     world.AbilityAttach,
	world.InteractBreak:      world.AbilitySmash,
	world.InteractBurn:       world.AbilityIgnite,
	world.InteractClean:      world.AbilityClean,
	world.InteractCut:        world.AbilityCut,
	world.InteractExtinguish: world.AbilityExtinguish,
	world.InteractRepair:     world.AbilityRepair,
	world.InteractSharpen:    world.AbilitySharpen,
	world.InteractUnlock:     world.AbilityUnlock,
	world.InteractHandle:     world.AbilityUse,
	world.InteractOpen:       world.AbilityPry,
	world.InteractMove:       world.AbilityUse,
	world.InteractTurn:       world.AbilityUse,
	world.InteractCover:      world.AbilityUse,
}

// UseOn performs a tool interaction on a target. The handler validates the
// capability gate and raises the event; world reactions are authored as
// triggers on useItemOnItem / actOnItem.
func UseOn(d *Deps, interaction world.InteractionKind, noun, toolName string) []world.Event {
	w := d.World
	targetId, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	target := w.Items[targetId]

	req, hasReq := target.Requires[interaction]

	// Bare interaction, no tool named.
	if toolName == "" {
		if hasReq {
			return d.fail("You need something to do that to the %s.", target.Name)
		}
		d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You %s the %s.", string(interaction), target.Name)})
		return []world.Event{world.EvActOnItem(interaction, targetId)}
	}

	toolId, err := w.FindItem(toolName, world.ScopeTouchableItems)
	if err != nil {
		if world.IsNoMatch(err) {
			return d.fail("You don't have any %q.", toolName)
		}
		return d.searchFail(err, toolName)
	}
	tool := w.Items[toolId]
	if !hasReq {
		if kind, ok := interactionAbility[interaction]; ok {
			req = world.Ability{Kind: kind}
		}
	}
	if !tool.HasAbility(req) {
		return d.fail("The %s is no good for that.", tool.Name)
	}
	d.View.Push(view.ActionSuccess{
		Text: fmt.Sprintf("You %s the %s with the %s.", string(interaction), target.Name, tool.Name),
	})
	consumeUse(d, toolId, req.Kind)
	return []world.Event{world.EvUseItemOnItem(interaction, targetId, toolId)}
}

// TurnOnOff flips a powered item; on selects between the two abilities.
func TurnOnOff(d *Deps, noun string, on bool) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	kind := world.AbilityTurnOff
	verb := "off"
	if on {
		kind = world.AbilityTurnOn
		verb = "on"
	}
	if !item.HasAbilityKind(kind) {
		return d.fail("The %s doesn't turn %s.", item.Name, verb)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You turn %s the %s.", verb, item.Name)})
	consumeUse(d, id, kind)
	return []world.Event{world.EvUseItem(id, world.Ability{Kind: kind})}
}

// Read shows an item's readable text. Worlds that want to gate reading do
// it with a lookAtItem trigger carrying a denyRead action.
func Read(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeAllVisible)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	if item.Text == "" {
		return d.fail("There's nothing to read on the %s.", item.Name)
	}
	d.View.Push(view.ItemText{Text: item.Text})
	return []world.Event{world.EvLookAtItem(id)}
}

// Touch pokes an item; purely an event source for triggers.
func Touch(d *Deps, noun string) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You touch the %s.", item.Name)})
	return []world.Event{world.EvTouchItem(id)}
}

// ingestAbility maps an ingest mode to the ability that permits it.
var ingestAbility = map[world.IngestMode]world.AbilityKind{
	world.IngestEat:    world.AbilityEat,
	world.IngestDrink:  world.AbilityDrink,
	world.IngestInhale: world.AbilityInhale,
}

// ingestVerb is the player-facing verb per mode.
var ingestVerb = map[world.IngestMode]string{
	world.IngestEat:    "eat",
	world.IngestDrink:  "drink",
	world.IngestInhale: "inhale",
}

// Ingest consumes an item by mouth or nose. Items without a consumable
// descriptor vanish outright; descriptors tick down and fire their
// outcome.
func Ingest(d *Deps, noun string, mode world.IngestMode) []world.Event {
	w := d.World
	id, err := w.FindItem(noun, world.ScopeTouchableItems)
	if err != nil {
		return d.searchFail(err, noun)
	}
	item := w.Items[id]
	kind := ingestAbility[mode]
	if !item.HasAbilityKind(kind) {
		return d.fail("You can't %s the %s.", ingestVerb[mode], item.Name)
	}
	d.View.Push(view.ActionSuccess{Text: fmt.Sprintf("You %s the %s.", ingestVerb[mode], item.Name)})
	if item.Consumable != nil {
		consumeUse(d, id, kind)
	} else if err := w.SetItemLocation(id, world.Nowhere()); err != nil {
		return d.searchFail(err, noun)
	}
	return []world.Event{world.EvIngest(id, mode)}
}

package persist

import (
	"fmt"
	"strings"

	"github.com/saunter/saunter/internal/world"
)

// ValidationKind classifies a definition problem.
type ValidationKind string

const (
	DuplicateId      ValidationKind = "duplicate id"
	MissingReference ValidationKind = "missing reference"
	InvalidValue     ValidationKind = "invalid value"
)

// ValidationError is one problem found in a world definition.
type ValidationError struct {
	Kind    ValidationKind
	Entity  string // entity family: room, item, npc, spinner, goal
	Id      world.Id
	Context string
}

func (e ValidationError) Error() string {
	if e.Id != "" {
		return fmt.Sprintf("%s: %s %q (%s)", e.Kind, e.Entity, e.Id, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// ValidationFailure aggregates every error from a validation pass.
type ValidationFailure struct {
	Errors []ValidationError
}

func (f *ValidationFailure) Error() string {
	lines := make([]string, 0, len(f.Errors)+1)
	lines = append(lines, fmt.Sprintf("world definition invalid (%d errors):", len(f.Errors)))
	for _, e := range f.Errors {
		lines = append(lines, "  - "+e.Error())
	}
	return strings.Join(lines, "\n")
}

// idSets indexes every declared id for reference checking.
type idSets struct {
	rooms    map[world.Id]bool
	items    map[world.Id]bool
	npcs     map[world.Id]bool
	spinners map[world.Id]bool
	goals    map[world.Id]bool
}

// Validate checks the definition exhaustively: duplicate ids, dangling
// references from every entity, trigger, goal and action, and out-of-range
// values. The returned slice is empty for a clean definition.
func Validate(def *WorldDef) []ValidationError {
	var errs []ValidationError
	ids := idSets{
		rooms:    map[world.Id]bool{},
		items:    map[world.Id]bool{},
		npcs:     map[world.Id]bool{},
		spinners: map[world.Id]bool{},
		goals:    map[world.Id]bool{},
	}
	track := func(set map[world.Id]bool, family string, id world.Id) {
		if set[id] {
			errs = append(errs, ValidationError{Kind: DuplicateId, Entity: family, Id: id})
		}
		set[id] = true
	}
	for _, r := range def.Rooms {
		track(ids.rooms, "room", r.Id)
	}
	for _, i := range def.Items {
		track(ids.items, "item", i.Id)
	}
	for _, n := range def.Npcs {
		track(ids.npcs, "npc", n.Id)
	}
	for _, s := range def.Spinners {
		track(ids.spinners, "spinner", s.Id)
	}
	for _, g := range def.Goals {
		track(ids.goals, "goal", g.Id)
	}

	check := func(set map[world.Id]bool, family string, id world.Id, context string) {
		if id != "" && !set[id] {
			errs = append(errs, ValidationError{Kind: MissingReference, Entity: family, Id: id, Context: context})
		}
	}
	checkLoc := func(loc world.Location, context string) {
		switch loc.Kind {
		case world.LocRoom:
			check(ids.rooms, "room", loc.Ref, context)
		case world.LocItem:
			check(ids.items, "item", loc.Ref, context)
		case world.LocNpc:
			check(ids.npcs, "npc", loc.Ref, context)
		}
	}

	if def.Game.Player.StartRoom != "" {
		check(ids.rooms, "room", def.Game.Player.StartRoom, "game.player.start_room")
	} else {
		errs = append(errs, ValidationError{Kind: InvalidValue, Context: "game.player.start_room is required"})
	}
	if def.Game.Player.MaxHP <= 0 {
		errs = append(errs, ValidationError{Kind: InvalidValue, Context: "game.player.max_hp must be positive"})
	}

	for _, r := range def.Rooms {
		ctx := fmt.Sprintf("room %q", r.Id)
		for _, e := range r.Exits {
			check(ids.rooms, "room", e.To, ctx+" exit "+e.Direction)
			for _, item := range e.RequiredItems {
				check(ids.items, "item", item, ctx+" exit "+e.Direction)
			}
		}
		for _, ov := range r.Overlays {
			for _, c := range ov.Conditions {
				validateOverlayCond(c, &ids, &errs, ctx)
			}
		}
	}

	for _, i := range def.Items {
		ctx := fmt.Sprintf("item %q", i.Id)
		checkLoc(i.Location, ctx+" location")
		for _, a := range i.Abilities {
			if a.Kind == world.AbilityUnlock {
				check(ids.items, "item", a.Target, ctx+" unlock ability")
			}
		}
		for _, a := range i.Requires {
			if a.Kind == world.AbilityUnlock {
				check(ids.items, "item", a.Target, ctx+" interaction requirement")
			}
		}
		if c := i.Consumable; c != nil {
			if c.UsesLeft < 0 {
				errs = append(errs, ValidationError{Kind: InvalidValue, Context: ctx + " uses_left negative"})
			}
			if c.Outcome != world.ConsumeDespawn {
				check(ids.items, "item", c.Replacement, ctx+" consumable replacement")
			}
		}
	}

	for _, n := range def.Npcs {
		ctx := fmt.Sprintf("npc %q", n.Id)
		checkLoc(n.Location, ctx+" location")
		if n.MaxHP <= 0 {
			errs = append(errs, ValidationError{Kind: InvalidValue, Context: ctx + " max_hp must be positive"})
		}
		if m := n.Movement; m != nil {
			for _, room := range m.Rooms {
				check(ids.rooms, "room", room, ctx+" movement")
			}
		}
	}

	for ti := range def.Triggers {
		t := def.Triggers[ti]
		ctx := fmt.Sprintf("trigger %q", t.Name)
		validateCondition(&t.Event, &ids, &errs, ctx+" event")
		validateExpr(&t.Conditions, &ids, &errs, ctx)
		validateActions(t.Actions, &ids, &errs, ctx)
	}

	for _, g := range def.Goals {
		ctx := fmt.Sprintf("goal %q", g.Id)
		if g.ActivateWhen != nil {
			validateGoalCond(*g.ActivateWhen, &ids, &errs, ctx+" activate_when")
		}
		validateGoalCond(g.FinishedWhen, &ids, &errs, ctx+" finished_when")
		if g.FailedWhen != nil {
			validateGoalCond(*g.FailedWhen, &ids, &errs, ctx+" failed_when")
		}
	}

	return errs
}

func validateOverlayCond(c world.OverlayCond, ids *idSets, errs *[]ValidationError, context string) {
	push := func(set map[world.Id]bool, family string, id world.Id) {
		if id != "" && !set[id] {
			*errs = append(*errs, ValidationError{Kind: MissingReference, Entity: family, Id: id, Context: context})
		}
	}
	push(ids.items, "item", c.Item)
	push(ids.npcs, "npc", c.Npc)
	push(ids.rooms, "room", c.Room)
}

func validateExpr(e *world.CondExpr, ids *idSets, errs *[]ValidationError, context string) {
	if e == nil {
		return
	}
	if e.Pred != nil {
		validateCondition(e.Pred, ids, errs, context)
	}
	for i := range e.All {
		validateExpr(&e.All[i], ids, errs, context)
	}
	for i := range e.Any {
		validateExpr(&e.Any[i], ids, errs, context)
	}
}

func validateCondition(c *world.Condition, ids *idSets, errs *[]ValidationError, context string) {
	push := func(set map[world.Id]bool, family string, id world.Id) {
		if id != "" && !set[id] {
			*errs = append(*errs, ValidationError{Kind: MissingReference, Entity: family, Id: id, Context: context})
		}
	}
	push(ids.rooms, "room", c.Room)
	push(ids.items, "item", c.Item)
	push(ids.npcs, "npc", c.Npc)
	push(ids.items, "item", c.Container)
	push(ids.items, "item", c.Tool)
	push(ids.spinners, "spinner", c.Spinner)
	for _, room := range c.Rooms {
		push(ids.rooms, "room", room)
	}
	if c.Kind == world.CondChancePercent && (c.Percent < 0 || c.Percent > 100) {
		*errs = append(*errs, ValidationError{
			Kind: InvalidValue, Context: fmt.Sprintf("%s: chance percent %v out of range", context, c.Percent),
		})
	}
}

func validateActions(actions []world.Action, ids *idSets, errs *[]ValidationError, context string) {
	push := func(set map[world.Id]bool, family string, id world.Id) {
		if id != "" && !set[id] {
			*errs = append(*errs, ValidationError{Kind: MissingReference, Entity: family, Id: id, Context: context})
		}
	}
	for i := range actions {
		a := &actions[i]
		push(ids.items, "item", a.Item)
		push(ids.items, "item", a.NewItem)
		push(ids.items, "item", a.Container)
		push(ids.rooms, "room", a.Room)
		push(ids.rooms, "room", a.FromRoom)
		push(ids.rooms, "room", a.ToRoom)
		push(ids.npcs, "npc", a.Npc)
		push(ids.spinners, "spinner", a.Spinner)
		validateExpr(a.Condition, ids, errs, context)
		validateActions(a.Actions, ids, errs, context)
		if rp := a.RoomPatch; rp != nil {
			for _, e := range rp.AddExits {
				push(ids.rooms, "room", e.To)
			}
		}
		if np := a.NpcPatch; np != nil && np.Movement != nil {
			for _, room := range np.Movement.Route {
				push(ids.rooms, "room", room)
			}
			for _, room := range np.Movement.RandomRooms {
				push(ids.rooms, "room", room)
			}
		}
	}
}

func validateGoalCond(c world.GoalCond, ids *idSets, errs *[]ValidationError, context string) {
	push := func(set map[world.Id]bool, family string, id world.Id) {
		if id != "" && !set[id] {
			*errs = append(*errs, ValidationError{Kind: MissingReference, Entity: family, Id: id, Context: context})
		}
	}
	push(ids.items, "item", c.Item)
	push(ids.rooms, "room", c.Room)
	push(ids.goals, "goal", c.Goal)
}

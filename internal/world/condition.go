package world

// CondKind tags a trigger condition. The first group matches per-turn
// events emitted by command handlers; the second group queries live world
// state. Ambient and chance predicates form a third, special group.
type CondKind string

const (
	// Event predicates — matched only against the current turn's event set.
	CondAlways        CondKind = "always"
	CondEnterRoom     CondKind = "enterRoom"
	CondLeaveRoom     CondKind = "leaveRoom"
	CondTakeItem      CondKind = "takeItem"
	CondDropItem      CondKind = "dropItem"
	CondLookAtItem    CondKind = "lookAtItem"
	CondOpenItem      CondKind = "openItem"
	CondUnlockItem    CondKind = "unlockItem"
	CondTouchItem     CondKind = "touchItem"
	CondTalkToNpc     CondKind = "talkToNpc"
	CondUseItem       CondKind = "useItem"
	CondUseItemOnItem CondKind = "useItemOnItem"
	CondActOnItem     CondKind = "actOnItem"
	CondGiveToNpc     CondKind = "giveToNpc"
	CondTakeFromNpc   CondKind = "takeFromNpc"
	CondInsertInto    CondKind = "insertItemInto"
	CondIngest        CondKind = "ingest"
	CondPlayerDeath   CondKind = "playerDeath"
	CondNpcDeath      CondKind = "npcDeath"

	// State predicates — always evaluated against the live world.
	CondHasFlag          CondKind = "hasFlag"
	CondMissingFlag      CondKind = "missingFlag"
	CondFlagInProgress   CondKind = "flagInProgress"
	CondFlagComplete     CondKind = "flagComplete"
	CondHasItem          CondKind = "hasItem"
	CondMissingItem      CondKind = "missingItem"
	CondHasVisited       CondKind = "hasVisited"
	CondPlayerInRoom     CondKind = "playerInRoom"
	CondWithNpc          CondKind = "withNpc"
	CondNpcHasItem       CondKind = "npcHasItem"
	CondNpcInState       CondKind = "npcInState"
	CondContainerHasItem CondKind = "containerHasItem"

	// Special predicates.
	CondChancePercent CondKind = "chancePercent"
	CondAmbient       CondKind = "ambient"
)

// IngestMode distinguishes the consumption verbs.
type IngestMode string

const (
	IngestEat    IngestMode = "eat"
	IngestDrink  IngestMode = "drink"
	IngestInhale IngestMode = "inhale"
)

// Condition is a single predicate over the world or the turn's event set.
// Only the fields relevant to Kind are populated; the rest stay zero and
// are omitted from serialized form.
type Condition struct {
	Kind        CondKind        `yaml:"kind"`
	Room        Id              `yaml:"room,omitempty"`
	Item        Id              `yaml:"item,omitempty"`
	Npc         Id              `yaml:"npc,omitempty"`
	Container   Id              `yaml:"container,omitempty"`
	Tool        Id              `yaml:"tool,omitempty"`
	Flag        string          `yaml:"flag,omitempty"`
	State       NpcState        `yaml:"state,omitempty"`
	Ability     *Ability        `yaml:"ability,omitempty"`
	Interaction InteractionKind `yaml:"interaction,omitempty"`
	Mode        IngestMode      `yaml:"mode,omitempty"`
	Percent     float64         `yaml:"percent,omitempty"`
	Spinner     Id              `yaml:"spinner,omitempty"`
	Rooms       []Id            `yaml:"rooms,omitempty"`
}

// Event is a typed token describing something that happened this turn.
// Events share the Condition shape; handlers construct them with the event
// kinds above and the trigger engine matches them structurally.
type Event = Condition

// Event constructors used by the command handlers.

func EvEnterRoom(room Id) Event  { return Event{Kind: CondEnterRoom, Room: room} }
func EvLeaveRoom(room Id) Event  { return Event{Kind: CondLeaveRoom, Room: room} }
func EvTakeItem(item Id) Event   { return Event{Kind: CondTakeItem, Item: item} }
func EvDropItem(item Id) Event   { return Event{Kind: CondDropItem, Item: item} }
func EvLookAtItem(item Id) Event { return Event{Kind: CondLookAtItem, Item: item} }
func EvOpenItem(item Id) Event   { return Event{Kind: CondOpenItem, Item: item} }
func EvUnlockItem(item Id) Event { return Event{Kind: CondUnlockItem, Item: item} }
func EvTouchItem(item Id) Event  { return Event{Kind: CondTouchItem, Item: item} }
func EvTalkToNpc(npc Id) Event   { return Event{Kind: CondTalkToNpc, Npc: npc} }
func EvPlayerDeath() Event       { return Event{Kind: CondPlayerDeath} }
func EvNpcDeath(npc Id) Event    { return Event{Kind: CondNpcDeath, Npc: npc} }

func EvUseItem(item Id, ability Ability) Event {
	return Event{Kind: CondUseItem, Item: item, Ability: &ability}
}

func EvUseItemOnItem(interaction InteractionKind, target, tool Id) Event {
	return Event{Kind: CondUseItemOnItem, Interaction: interaction, Item: target, Tool: tool}
}

func EvActOnItem(action InteractionKind, target Id) Event {
	return Event{Kind: CondActOnItem, Interaction: action, Item: target}
}

func EvGiveToNpc(item, npc Id) Event   { return Event{Kind: CondGiveToNpc, Item: item, Npc: npc} }
func EvTakeFromNpc(item, npc Id) Event { return Event{Kind: CondTakeFromNpc, Item: item, Npc: npc} }

func EvInsertInto(item, container Id) Event {
	return Event{Kind: CondInsertInto, Item: item, Container: container}
}

func EvIngest(item Id, mode IngestMode) Event {
	return Event{Kind: CondIngest, Item: item, Mode: mode}
}

// IsEventKind reports whether the condition can only be satisfied by an
// event token, never by ongoing state.
func (c Condition) IsEventKind() bool {
	switch c.Kind {
	case CondEnterRoom, CondLeaveRoom, CondTakeItem, CondDropItem, CondLookAtItem,
		CondOpenItem, CondUnlockItem, CondTouchItem, CondTalkToNpc, CondUseItem,
		CondUseItemOnItem, CondActOnItem, CondGiveToNpc, CondTakeFromNpc,
		CondInsertInto, CondIngest, CondPlayerDeath, CondNpcDeath:
		return true
	case CondAmbient:
		// Ambient predicates never fire from ordinary passes; the dedicated
		// post-movement ambient pass evaluates them via HoldsInWorld.
		return true
	}
	return false
}

// MatchesEvent reports whether the condition structurally matches one of
// the turn's events. State predicates never match here.
func (c Condition) MatchesEvent(events []Event) bool {
	if !c.IsEventKind() {
		return false
	}
	for i := range events {
		if c.matchesOne(events[i]) {
			return true
		}
	}
	return false
}

func (c Condition) matchesOne(e Event) bool {
	if c.Kind != e.Kind {
		return false
	}
	switch c.Kind {
	case CondEnterRoom, CondLeaveRoom:
		return c.Room == e.Room
	case CondTakeItem, CondDropItem, CondLookAtItem, CondOpenItem, CondUnlockItem, CondTouchItem:
		return c.Item == e.Item
	case CondTalkToNpc, CondNpcDeath:
		return c.Npc == e.Npc
	case CondUseItem:
		return c.Item == e.Item && c.Ability != nil && e.Ability != nil && c.Ability.Kind == e.Ability.Kind
	case CondUseItemOnItem:
		return c.Interaction == e.Interaction && c.Item == e.Item && c.Tool == e.Tool
	case CondActOnItem:
		return c.Interaction == e.Interaction && c.Item == e.Item
	case CondGiveToNpc, CondTakeFromNpc:
		return c.Item == e.Item && c.Npc == e.Npc
	case CondInsertInto:
		return c.Item == e.Item && c.Container == e.Container
	case CondIngest:
		return c.Item == e.Item && c.Mode == e.Mode
	case CondPlayerDeath:
		return true
	}
	return false
}

// HoldsInWorld evaluates the condition's ongoing-state interpretation.
// Event-only predicates are false here; the chance predicate draws once
// from the world RNG.
func (c Condition) HoldsInWorld(w *World) bool {
	switch c.Kind {
	case CondAlways:
		return true
	case CondHasFlag:
		return w.Player.Flags.Has(c.Flag)
	case CondMissingFlag:
		return !w.Player.Flags.Has(c.Flag)
	case CondFlagInProgress:
		f, ok := w.Player.Flags.Get(c.Flag)
		return ok && !f.IsComplete()
	case CondFlagComplete:
		f, ok := w.Player.Flags.Get(c.Flag)
		return ok && f.IsComplete()
	case CondHasItem:
		return w.Player.Inventory.Has(c.Item)
	case CondMissingItem:
		return !w.Player.Inventory.Has(c.Item)
	case CondHasVisited:
		r, ok := w.Rooms[c.Room]
		return ok && r.Visited
	case CondPlayerInRoom:
		return w.Player.Location == InRoom(c.Room)
	case CondWithNpc:
		npc, ok := w.Npcs[c.Npc]
		return ok && npc.Location == w.Player.Location
	case CondNpcHasItem:
		npc, ok := w.Npcs[c.Npc]
		return ok && npc.Inventory.Has(c.Item)
	case CondNpcInState:
		npc, ok := w.Npcs[c.Npc]
		return ok && npc.State == c.State
	case CondContainerHasItem:
		it, ok := w.Items[c.Item]
		return ok && it.Location == InsideItem(c.Container)
	case CondChancePercent:
		if c.Percent <= 0 {
			w.Rng.Float64() // the draw happens regardless of the bound
			return false
		}
		if c.Percent >= 100 {
			w.Rng.Float64()
			return true
		}
		return w.Rng.Float64() < c.Percent/100
	case CondAmbient:
		if _, ok := w.Spinners[c.Spinner]; !ok {
			return false
		}
		if len(c.Rooms) == 0 {
			return true
		}
		room, ok := w.Player.Location.Room()
		if !ok {
			return false
		}
		for _, id := range c.Rooms {
			if id == room {
				return true
			}
		}
		return false
	}
	return false
}

// Holds reports whether the condition is satisfied this turn, in the
// combined event-and-state sense used by the trigger engine.
func (c Condition) Holds(w *World, events []Event) bool {
	if c.IsEventKind() {
		return c.MatchesEvent(events)
	}
	return c.HoldsInWorld(w)
}

// CondExpr is a boolean expression tree over conditions. Exactly one of the
// three fields is set; the zero value reads as All(nil), which is true.
type CondExpr struct {
	All  []CondExpr `yaml:"all,omitempty"`
	Any  []CondExpr `yaml:"any,omitempty"`
	Pred *Condition `yaml:"pred,omitempty"`
}

// Eval evaluates the tree. All with no children is true; Any with no
// children is false. A nil expression is treated as All(nil).
func (e *CondExpr) Eval(w *World, events []Event) bool {
	if e == nil {
		return true
	}
	if e.Pred != nil {
		return e.Pred.Holds(w, events)
	}
	if e.Any != nil {
		for i := range e.Any {
			if e.Any[i].Eval(w, events) {
				return true
			}
		}
		return false
	}
	for i := range e.All {
		if !e.All[i].Eval(w, events) {
			return false
		}
	}
	return true
}

// EvalState evaluates using only ongoing-state interpretations; event
// predicates are false. Used by the scheduler, where no event set exists.
func (e *CondExpr) EvalState(w *World) bool {
	return e.Eval(w, nil)
}

// Pred wraps a single condition into an expression.
func Pred(c Condition) CondExpr { return CondExpr{Pred: &c} }

// AllOf combines expressions conjunctively.
func AllOf(children ...CondExpr) CondExpr { return CondExpr{All: children} }

// AnyOf combines expressions disjunctively.
func AnyOf(children ...CondExpr) CondExpr { return CondExpr{Any: children} }

// FindPred walks the tree looking for a predicate satisfying match.
func (e *CondExpr) FindPred(match func(*Condition) bool) *Condition {
	if e == nil {
		return nil
	}
	if e.Pred != nil {
		if match(e.Pred) {
			return e.Pred
		}
		return nil
	}
	for i := range e.All {
		if found := e.All[i].FindPred(match); found != nil {
			return found
		}
	}
	for i := range e.Any {
		if found := e.Any[i].FindPred(match); found != nil {
			return found
		}
	}
	return nil
}

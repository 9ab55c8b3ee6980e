package game

import (
	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// tickHealth applies over-time effects to the player and every NPC, pushes
// harm/heal view items, and surfaces deaths. The returned events carry any
// deaths for one final trigger pass; a player death ends the run.
func (e *Engine) tickHealth() []world.Event {
	w := e.World
	var events []world.Event

	effects, result := world.TickEffects(&w.Player.Health, w.Player.Effects)
	w.Player.Effects = effects
	e.pushTicks(w.Player.Name, result)
	if result.Died && !e.dead {
		e.dead = true
		w.Player.Flags.Set(world.SimpleFlag(world.StatusPrefix+"dead", w.Turn))
		e.View.Push(view.CharacterDeath{Name: w.Player.Name, IsPlayer: true, Cause: lastCause(result)})
		events = append(events, world.EvPlayerDeath())
	}

	set := world.NewIdSet()
	for id := range w.Npcs {
		set.Add(id)
	}
	for _, id := range set.Sorted() {
		npc := w.Npcs[id]
		if npc.Health.Dead() && len(npc.Effects) == 0 {
			continue // already dead, nothing ticking
		}
		fx, res := world.TickEffects(&npc.Health, npc.Effects)
		npc.Effects = fx
		e.pushTicks(npc.Name, res)
		if res.Died && npc.State != world.NpcState("dead") {
			npc.State = world.NpcState("dead")
			npc.Effects = nil
			e.View.Push(view.CharacterDeath{Name: npc.Name, Cause: lastCause(res)})
			events = append(events, world.EvNpcDeath(id))
		}
	}
	return events
}

// pushTicks renders one entity's round of effect applications.
func (e *Engine) pushTicks(name string, res world.HealthTickResult) {
	for _, t := range res.Applied {
		if t.Healing {
			e.View.Push(view.CharacterHealed{Name: name, Cause: t.Cause, Amount: t.Amount})
		} else {
			e.View.Push(view.CharacterHarmed{Name: name, Cause: t.Cause, Amount: t.Amount})
		}
	}
}

// lastCause attributes a death to the final damaging effect applied.
func lastCause(res world.HealthTickResult) string {
	for i := len(res.Applied) - 1; i >= 0; i-- {
		if !res.Applied[i].Healing {
			return res.Applied[i].Cause
		}
	}
	return ""
}

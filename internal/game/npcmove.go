package game

import (
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// moveNpcs runs the per-turn movement pass. NPCs are visited in id order
// so that a fixed seed replays the same run. A random-set NPC may pick the
// room it already stands in; that reads as the NPC pausing, and stays.
func (e *Engine) moveNpcs() {
	w := e.World
	ids := make([]world.Id, 0, len(w.Npcs))
	for id := range w.Npcs {
		ids = append(ids, id)
	}
	set := world.NewIdSet(ids...)

	for _, id := range set.Sorted() {
		npc := w.Npcs[id]
		m := npc.Movement
		if m == nil || !m.DueThisTurn(w.Turn) {
			continue
		}
		dest, ok := m.NextRoom(w.Rng)
		if !ok {
			continue
		}
		m.LastMoved = w.Turn
		prev, _ := npc.Location.Room()
		if dest == prev {
			continue // stationary pick: the NPC lingers
		}
		if err := w.SetNpcLocation(id, world.InRoom(dest)); err != nil {
			e.Log.Warn("npc move failed",
				zap.String("npc", string(id)), zap.String("dest", string(dest)), zap.Error(err))
			continue
		}
		e.Log.Debug("npc moved",
			zap.String("npc", string(id)), zap.String("from", string(prev)), zap.String("to", string(dest)))

		playerRoom, ok := w.Player.Location.Room()
		if !ok {
			continue
		}
		if playerRoom == prev {
			e.View.Push(view.NpcLeft{Name: npc.Name, SpinMsg: e.spin(world.SpinnerNpcLeave)})
		}
		if playerRoom == dest {
			e.View.Push(view.NpcEntered{Name: npc.Name, SpinMsg: e.spin(world.SpinnerNpcEnter)})
		}
	}
}

// spin draws one string from a named spinner, tolerating its absence.
func (e *Engine) spin(id world.Id) string {
	sp, ok := e.World.Spinners[id]
	if !ok {
		return ""
	}
	msg, _ := sp.Spin(e.World.Rng)
	return msg
}

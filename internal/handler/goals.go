package handler

import (
	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Goals lists the player's visible objectives. Status-effect goals render
// elsewhere (as status lines), so only required and optional goals appear
// here.
func Goals(d *Deps) []world.Event {
	for _, g := range d.World.Goals {
		if g.Group == world.GoalStatusEffect {
			continue
		}
		switch g.Status {
		case world.GoalActive:
			d.View.Push(view.ActiveGoal{Name: g.Name, Desc: g.Desc})
		case world.GoalComplete:
			d.View.Push(view.CompleteGoal{Name: g.Name, Desc: g.Desc})
		case world.GoalFailed:
			d.View.Push(view.FailedGoal{Name: g.Name, Desc: g.Desc})
		}
	}
	return nil
}

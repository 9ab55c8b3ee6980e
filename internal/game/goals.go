package game

import (
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// deriveGoals recomputes every goal's status and pushes view items for the
// transitions: activation, completion, failure. Status-effect goals change
// silently; their surface is the status line.
func (e *Engine) deriveGoals() {
	for _, g := range e.World.Goals {
		prev := g.Status
		next := g.DeriveStatus(e.World)
		if next == prev {
			continue
		}
		g.Status = next
		e.Log.Debug("goal status changed",
			zap.String("goal", string(g.Id)), zap.String("status", string(next)))
		if g.Group == world.GoalStatusEffect {
			continue
		}
		switch next {
		case world.GoalActive:
			if prev != "" && prev != world.GoalInactive {
				continue
			}
			e.View.Push(view.ActiveGoal{Name: g.Name, Desc: g.Desc})
		case world.GoalComplete:
			e.View.Push(view.CompleteGoal{Name: g.Name, Desc: g.Desc})
		case world.GoalFailed:
			e.View.Push(view.FailedGoal{Name: g.Name, Desc: g.Desc})
		}
	}
}

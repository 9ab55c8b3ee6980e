package world

// GoalGroup classifies a goal for display.
type GoalGroup string

const (
	GoalRequired     GoalGroup = "required"
	GoalOptional     GoalGroup = "optional"
	GoalStatusEffect GoalGroup = "statusEffect"
)

// GoalStatus is derived fresh each turn from the goal's conditions.
type GoalStatus string

const (
	GoalInactive GoalStatus = "inactive"
	GoalActive   GoalStatus = "active"
	GoalComplete GoalStatus = "complete"
	GoalFailed   GoalStatus = "failed"
)

// GoalCondKind tags a goal condition. Goal conditions are a small
// state-only subset of the trigger predicates, plus goalComplete.
type GoalCondKind string

const (
	GoalCondFlagComplete   GoalCondKind = "flagComplete"
	GoalCondFlagInProgress GoalCondKind = "flagInProgress"
	GoalCondGoalComplete   GoalCondKind = "goalComplete"
	GoalCondHasItem        GoalCondKind = "hasItem"
	GoalCondHasFlag        GoalCondKind = "hasFlag"
	GoalCondMissingFlag    GoalCondKind = "missingFlag"
	GoalCondReachedRoom    GoalCondKind = "reachedRoom"
)

// GoalCond is one goal condition.
type GoalCond struct {
	Kind GoalCondKind `yaml:"kind"`
	Flag string       `yaml:"flag,omitempty"`
	Item Id           `yaml:"item,omitempty"`
	Goal Id           `yaml:"goal,omitempty"`
	Room Id           `yaml:"room,omitempty"`
}

// Holds evaluates the goal condition against the live world.
func (c GoalCond) Holds(w *World) bool {
	switch c.Kind {
	case GoalCondFlagComplete:
		f, ok := w.Player.Flags.Get(c.Flag)
		return ok && f.IsComplete()
	case GoalCondFlagInProgress:
		f, ok := w.Player.Flags.Get(c.Flag)
		return ok && !f.IsComplete()
	case GoalCondGoalComplete:
		for _, g := range w.Goals {
			if g.Id == c.Goal {
				return g.Status == GoalComplete
			}
		}
		return false
	case GoalCondHasItem:
		return w.Player.Inventory.Has(c.Item)
	case GoalCondHasFlag:
		return w.Player.Flags.Has(c.Flag)
	case GoalCondMissingFlag:
		return !w.Player.Flags.Has(c.Flag)
	case GoalCondReachedRoom:
		r, ok := w.Rooms[c.Room]
		return ok && r.Visited
	}
	return false
}

// Goal is a declarative objective. ActivateWhen nil means active from the
// start; FailedWhen nil means the goal cannot fail.
type Goal struct {
	Id           Id         `yaml:"id"`
	Name         string     `yaml:"name"`
	Desc         string     `yaml:"description"`
	Group        GoalGroup  `yaml:"group"`
	ActivateWhen *GoalCond  `yaml:"activate_when,omitempty"`
	FinishedWhen GoalCond   `yaml:"finished_when"`
	FailedWhen   *GoalCond  `yaml:"failed_when,omitempty"`
	Status       GoalStatus `yaml:"status,omitempty"`
}

// DeriveStatus recomputes the goal's status from the world. Completion and
// failure are terminal; an inactive goal activates once its activation
// condition holds.
func (g *Goal) DeriveStatus(w *World) GoalStatus {
	switch g.Status {
	case GoalComplete, GoalFailed:
		return g.Status
	}
	status := g.Status
	if status == "" {
		status = GoalInactive
	}
	if status == GoalInactive {
		if g.ActivateWhen == nil || g.ActivateWhen.Holds(w) {
			status = GoalActive
		}
	}
	if status == GoalActive {
		if g.FailedWhen != nil && g.FailedWhen.Holds(w) {
			return GoalFailed
		}
		if g.FinishedWhen.Holds(w) {
			return GoalComplete
		}
	}
	return status
}

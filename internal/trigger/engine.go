package trigger

import (
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/world"
)

// Check selects every eligible trigger whose event and guard conditions
// hold against the world and this pass's event set, fires them in declared
// order, and returns the fired triggers. Each trigger observes the world as
// mutated by the triggers before it; content is authored around that.
//
// A fatal error inside one trigger's batch aborts that batch only; the
// remaining triggers still run.
func Check(ctx *Ctx, events []world.Event) []*world.Trigger {
	w := ctx.World
	prev := ctx.Events
	ctx.Events = events
	defer func() { ctx.Events = prev }()

	// Selection happens up front: triggers enabled by an earlier trigger's
	// mutations this pass wait for the next invocation.
	var toFire []*world.Trigger
	for _, t := range w.Triggers {
		if !t.Eligible() {
			continue
		}
		if t.Ready(w, events) {
			toFire = append(toFire, t)
		}
	}

	for _, t := range toFire {
		ctx.Log.Info("trigger fired", zap.String("name", t.Name))
		if t.OnlyOnce {
			t.Fired = true
		}
		if err := ctx.RunActions(t.Actions); err != nil {
			ctx.Log.Error("trigger batch aborted",
				zap.String("name", t.Name), zap.Error(err))
		}
	}
	return toFire
}

// CheckAmbient runs the post-movement ambient pass: triggers whose event
// predicate is an ambient match fire when the player is in one of the
// predicate's rooms (or anywhere, for an empty room set), the spinner
// exists, and the guard conditions hold.
func CheckAmbient(ctx *Ctx) []*world.Trigger {
	w := ctx.World
	var fired []*world.Trigger
	for _, t := range w.Triggers {
		if !t.IsAmbient() || !t.Eligible() {
			continue
		}
		if !t.Event.HoldsInWorld(w) {
			continue
		}
		if !t.Conditions.Eval(w, nil) {
			continue
		}
		ctx.Log.Info("ambient trigger fired", zap.String("name", t.Name))
		if t.OnlyOnce {
			t.Fired = true
		}
		if err := ctx.RunActions(t.Actions); err != nil {
			ctx.Log.Error("ambient trigger batch aborted",
				zap.String("name", t.Name), zap.Error(err))
		}
		fired = append(fired, t)
	}
	return fired
}

// RunScheduled pops every event due at or before the current turn and
// executes it. Conditional events re-check their condition against live
// state (the event set is empty here); a false condition applies the
// event's on-false policy. Events scheduled during execution with zero
// delay are due now and fire in this same pass.
func RunScheduled(ctx *Ctx) {
	w := ctx.World
	prev := ctx.Events
	ctx.Events = nil
	defer func() { ctx.Events = prev }()

	for {
		ev, ok := w.Scheduler.PopDue(w.Turn)
		if !ok {
			return
		}
		if ev.Condition != nil && !ev.Condition.EvalState(w) {
			switch ev.OnFalse.Kind {
			case world.OnFalseRetryAfter:
				after := ev.OnFalse.Turns
				if after < 1 {
					after = 1 // zero would respin forever within this pass
				}
				w.Scheduler.Requeue(ev, w.Turn+after)
				ctx.Log.Debug("scheduled event retried",
					zap.String("note", ev.Note), zap.Int("after", ev.OnFalse.Turns))
			case world.OnFalseRetryNextTurn:
				w.Scheduler.Requeue(ev, w.Turn+1)
				ctx.Log.Debug("scheduled event retried next turn", zap.String("note", ev.Note))
			default:
				ctx.Log.Debug("scheduled event cancelled", zap.String("note", ev.Note))
			}
			continue
		}
		if err := ctx.RunActions(ev.Actions); err != nil {
			ctx.Log.Error("scheduled batch aborted",
				zap.String("note", ev.Note), zap.Error(err))
		}
	}
}

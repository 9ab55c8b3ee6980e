// Package game orchestrates the turn loop: command dispatch, trigger
// passes, the scheduler, NPC movement, health ticks, ambient flavor, and
// goal evaluation, in the fixed order the content model relies on.
package game

import (
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/command"
	"github.com/saunter/saunter/internal/config"
	"github.com/saunter/saunter/internal/handler"
	"github.com/saunter/saunter/internal/scripting"
	"github.com/saunter/saunter/internal/trigger"
	"github.com/saunter/saunter/internal/view"
	"github.com/saunter/saunter/internal/world"
)

// Engine drives a single game run. It owns the world exclusively; nothing
// here is safe for concurrent use, and nothing needs to be.
type Engine struct {
	World   *world.World
	View    *view.View
	Log     *zap.Logger
	Cfg     config.Config
	Scripts *scripting.Engine

	quit bool
	dead bool
}

// New wires an engine around a freshly built or loaded world.
func New(w *world.World, v *view.View, log *zap.Logger, cfg config.Config) *Engine {
	e := &Engine{World: w, View: v, Log: log, Cfg: cfg}
	switch cfg.Display.Mode {
	case "verbose":
		v.SetMode(view.ModeVerbose)
	case "clear-verbose":
		v.SetMode(view.ModeClearVerbose)
	}
	return e
}

func (e *Engine) deps() *handler.Deps {
	return &handler.Deps{World: e.World, View: e.View, Log: e.Log}
}

func (e *Engine) ctx() *trigger.Ctx {
	c := &trigger.Ctx{World: e.World, View: e.View, Log: e.Log}
	if e.Scripts != nil {
		c.Scripts = e.Scripts
	}
	return c
}

// Done reports whether the run is over (quit or death).
func (e *Engine) Done() bool { return e.quit || e.dead }

// Quit reports whether the run ended by player request rather than death.
func (e *Engine) Quit() bool { return e.quit }

// CurrentWorld and CurrentView satisfy scripting.Host; loads swap the
// world, so scripts resolve it per call.
func (e *Engine) CurrentWorld() *world.World { return e.World }
func (e *Engine) CurrentView() *view.View    { return e.View }

// Start produces the opening frame: intro text and the starting room.
func (e *Engine) Start() view.Frame {
	if e.World.Game.Intro != "" {
		e.View.Push(view.TransitionMessage{Text: e.World.Game.Intro})
	}
	if room, err := e.World.PlayerRoom(); err == nil {
		handler.PushRoomView(e.deps(), room, true)
	}
	e.deriveGoals()
	return e.View.Flush()
}

// RunTurn processes one parsed command and returns the flushed frame.
// Meta commands (saves, help, view modes) run outside the turn clock.
func (e *Engine) RunTurn(cmd command.Command) view.Frame {
	if !cmd.ConsumesTurn() {
		e.dispatchMeta(cmd)
		return e.View.Flush()
	}

	w := e.World
	w.Turn++

	// 1–2. Dispatch the command; collect its direct events.
	events := e.dispatch(cmd)

	// 3. Trigger pass over the command's events.
	ctx := e.ctx()
	fired := trigger.Check(ctx, events)
	e.defaultReplies(events, fired)

	// 4. Scheduled events due this turn.
	trigger.RunScheduled(ctx)

	// 5. NPC movement.
	e.moveNpcs()

	// 6. Health-over-time ticks; deaths surface here.
	deathEvents := e.tickHealth()
	if len(deathEvents) > 0 {
		trigger.Check(ctx, deathEvents)
	}
	if e.dead {
		return e.View.Flush()
	}

	// 7. Ambient pass.
	trigger.CheckAmbient(ctx)

	// 8. Goal evaluation.
	e.deriveGoals()

	// 9. Flush.
	return e.View.Flush()
}

// dispatch routes a turn-consuming command to its handler and returns the
// events it raised.
func (e *Engine) dispatch(cmd command.Command) []world.Event {
	d := e.deps()
	switch cmd.Kind {
	case command.Look:
		return handler.Look(d)
	case command.LookAt:
		return handler.LookAt(d, cmd.Noun)
	case command.Inventory:
		return handler.Inventory(d)
	case command.Take:
		return handler.Take(d, cmd.Noun)
	case command.TakeFrom:
		return handler.TakeFrom(d, cmd.Noun, cmd.Second)
	case command.Drop:
		return handler.Drop(d, cmd.Noun)
	case command.PutIn:
		return handler.PutIn(d, cmd.Noun, cmd.Second)
	case command.Open:
		return handler.Open(d, cmd.Noun)
	case command.Close:
		return handler.Close(d, cmd.Noun)
	case command.Lock:
		return handler.Lock(d, cmd.Noun)
	case command.Unlock:
		return handler.Unlock(d, cmd.Noun)
	case command.UnlockWith:
		return handler.UnlockWith(d, cmd.Noun, cmd.Second)
	case command.MoveTo:
		return handler.MoveTo(d, cmd.Direction, cmd.Noun)
	case command.GoBack:
		return handler.GoBack(d)
	case command.Read:
		return handler.Read(d, cmd.Noun)
	case command.Touch:
		return handler.Touch(d, cmd.Noun)
	case command.TalkTo:
		return handler.TalkTo(d, cmd.Noun)
	case command.GiveTo:
		return handler.GiveTo(d, cmd.Noun, cmd.Second)
	case command.Ingest:
		return handler.Ingest(d, cmd.Noun, cmd.Mode)
	case command.UseOn:
		return handler.UseOn(d, cmd.Interaction, cmd.Noun, cmd.Second)
	case command.TurnOn:
		return handler.TurnOnOff(d, cmd.Noun, true)
	case command.TurnOff:
		return handler.TurnOnOff(d, cmd.Noun, false)
	case command.Goals:
		return handler.Goals(d)
	}
	return nil
}

// defaultReplies supplies stock responses for events no trigger consumed —
// currently the talk-to fallback dialogue.
func (e *Engine) defaultReplies(events []world.Event, fired []*world.Trigger) {
	for i := range events {
		ev := &events[i]
		if ev.Kind != world.CondTalkToNpc {
			continue
		}
		consumed := world.TriggersContainCondition(fired, func(c *world.Condition) bool {
			return c.Kind == world.CondTalkToNpc && c.Npc == ev.Npc
		})
		if !consumed {
			handler.DefaultNpcReply(e.deps(), ev.Npc)
		}
	}
}

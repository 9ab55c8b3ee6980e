package game

import (
	"go.uber.org/zap"

	"github.com/saunter/saunter/internal/command"
	"github.com/saunter/saunter/internal/handler"
	"github.com/saunter/saunter/internal/persist"
	"github.com/saunter/saunter/internal/view"
)

// dispatchMeta handles the commands that run outside the turn clock.
func (e *Engine) dispatchMeta(cmd command.Command) {
	d := e.deps()
	switch cmd.Kind {
	case command.Save:
		e.save(cmd.Slot)
	case command.Load:
		e.load(cmd.Slot)
	case command.ListSaves:
		e.listSaves()
	case command.Help:
		e.View.Push(helpItem())
	case command.Quit:
		e.quit = true
		e.View.Push(e.QuitSummary())
	case command.SetBrief:
		e.View.SetMode(view.ModeBrief)
		e.View.Push(view.EngineMessage{Text: "Brief descriptions."})
	case command.SetVerbose:
		e.View.SetMode(view.ModeVerbose)
		e.View.Push(view.EngineMessage{Text: "Verbose descriptions."})
	case command.SetClearVerbose:
		e.View.SetMode(view.ModeClearVerbose)
		e.View.Push(view.EngineMessage{Text: "Verbose descriptions with screen clearing."})
	case command.DevFlags, command.DevSched, command.DevNpcs, command.DevGoto:
		if !e.Cfg.Game.DevCommands {
			e.View.Push(view.ErrorMessage{Text: "Sorry, I don't understand that."})
			return
		}
		switch cmd.Kind {
		case command.DevFlags:
			handler.DevFlags(d)
		case command.DevSched:
			handler.DevSched(d)
		case command.DevNpcs:
			handler.DevNpcs(d)
		case command.DevGoto:
			handler.DevGoto(d, cmd.Noun)
		}
	default:
		e.View.Push(view.ErrorMessage{Text: "Sorry, I don't understand that."})
	}
}

func (e *Engine) save(slot string) {
	path, err := persist.Save(e.World, e.Cfg.Game.SavesDir, slot)
	if err != nil {
		e.Log.Error("save failed", zap.String("slot", slot), zap.Error(err))
		e.View.Push(view.ErrorMessage{Text: "Saving failed: " + err.Error()})
		return
	}
	e.View.Push(view.GameSaved{Slot: persist.SanitizeSlot(slot), File: path})
}

func (e *Engine) load(slot string) {
	w, warning, err := persist.Load(e.Cfg.Game.SavesDir, slot)
	if err != nil {
		e.Log.Error("load failed", zap.String("slot", slot), zap.Error(err))
		e.View.Push(view.ErrorMessage{Text: "Loading failed: " + err.Error()})
		return
	}
	if warning != "" {
		e.Log.Warn("save version mismatch", zap.String("slot", slot))
		e.View.Push(view.EngineMessage{Text: warning})
	}
	e.World = w
	e.View.Push(view.GameLoaded{Slot: persist.SanitizeSlot(slot), File: persist.SlotPath(e.Cfg.Game.SavesDir, slot)})
	if room, err := e.World.PlayerRoom(); err == nil {
		handler.PushRoomView(e.deps(), room, true)
	}
}

func (e *Engine) listSaves() {
	entries, err := persist.ListSaves(e.Cfg.Game.SavesDir)
	if err != nil {
		e.View.Push(view.ErrorMessage{Text: "Couldn't read the save directory."})
		return
	}
	item := view.SavedGamesList{Directory: e.Cfg.Game.SavesDir}
	for _, entry := range entries {
		item.Entries = append(item.Entries, view.SaveEntry{
			Slot: entry.Slot, File: entry.File, Modified: entry.Modified,
		})
	}
	e.View.Push(item)
}

// QuitSummary assembles the end-of-run scorecard.
func (e *Engine) QuitSummary() view.QuitSummary {
	w := e.World
	visited := 0
	for _, room := range w.Rooms {
		if room.Visited {
			visited++
		}
	}
	rank := ""
	notes := ""
	for _, r := range w.Game.Ranks {
		if w.Player.Score >= r.Threshold {
			rank = r.Name
			notes = r.Desc
		}
	}
	return view.QuitSummary{
		Title:      w.Game.Title,
		Rank:       rank,
		RankNotes:  notes,
		Score:      w.Player.Score,
		MaxScore:   w.MaxScore,
		Visited:    visited,
		MaxVisited: len(w.Rooms),
	}
}

func helpItem() view.Help {
	return view.Help{
		Intro: "Type what you want to do. Most commands are a verb and a thing.",
		Commands: []view.HelpCommand{
			{Usage: "look / look at X", Blurb: "describe the room or an object"},
			{Usage: "inventory", Blurb: "list what you're carrying"},
			{Usage: "take X / drop X", Blurb: "pick up or put down an object"},
			{Usage: "take X from Y / put X in Y", Blurb: "move things between containers"},
			{Usage: "open X / close X", Blurb: "work lids and doors"},
			{Usage: "lock X / unlock X [with Y]", Blurb: "work locks with a fitting key"},
			{Usage: "move to DIR / go back", Blurb: "travel between rooms"},
			{Usage: "read X / touch X", Blurb: "inspect things closely"},
			{Usage: "talk to NPC / give X to NPC", Blurb: "deal with the locals"},
			{Usage: "eat / drink / inhale X", Blurb: "consume something"},
			{Usage: "use TOOL on TARGET", Blurb: "apply a tool (burn, cut, repair, ...)"},
			{Usage: "turn on/off X", Blurb: "flip a switch"},
			{Usage: "goals", Blurb: "show your objectives"},
			{Usage: "save SLOT / load SLOT / list saves", Blurb: "manage saved games"},
			{Usage: "brief / verbose / clear-verbose", Blurb: "set description detail"},
			{Usage: "quit", Blurb: "end the game"},
		},
	}
}

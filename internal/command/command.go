// Package command defines the parsed player-command surface and the
// tokenizer that produces it from raw input.
package command

import "github.com/saunter/saunter/internal/world"

// Kind tags a parsed command.
type Kind int

const (
	Unknown Kind = iota
	Look
	LookAt
	Inventory
	Take
	TakeFrom
	Drop
	PutIn
	Open
	Close
	Lock
	Unlock
	UnlockWith
	MoveTo
	GoBack
	Read
	Touch
	TalkTo
	GiveTo
	Ingest
	UseOn
	TurnOn
	TurnOff
	Save
	Load
	ListSaves
	Goals
	Help
	Quit
	SetBrief
	SetVerbose
	SetClearVerbose

	// Developer commands, available when enabled in config.
	DevFlags
	DevSched
	DevNpcs
	DevGoto
)

// Command is one parsed player input. Noun is the primary object name;
// Second the indirect object (container, NPC, or tool). Raw preserves the
// original line for error text.
type Command struct {
	Kind        Kind
	Noun        string
	Second      string
	Direction   string
	Slot        string
	Interaction world.InteractionKind
	Mode        world.IngestMode
	Raw         string
}

// ConsumesTurn reports whether dispatching the command advances the turn
// counter. Meta commands (help, saves, view modes) and unparseable input
// leave the world clock alone.
func (c Command) ConsumesTurn() bool {
	switch c.Kind {
	case Unknown, Save, Load, ListSaves, Help, Quit,
		SetBrief, SetVerbose, SetClearVerbose,
		DevFlags, DevSched, DevNpcs, DevGoto:
		return false
	}
	return true
}

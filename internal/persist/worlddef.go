// Package persist owns everything that crosses the process boundary: the
// YAML world-definition format with its validation pass, and the save-slot
// store.
package persist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/saunter/saunter/internal/world"
)

// FormatVersion stamps every save file; loads warn on mismatch.
const FormatVersion = "saunter/1"

// WorldDef is the authored world-definition document. It reuses the
// runtime rule types (triggers, goals, overlays) directly; only entities
// with derived state get dedicated def shapes.
type WorldDef struct {
	Game     GameDef          `yaml:"game"`
	Rooms    []RoomDef        `yaml:"rooms"`
	Items    []ItemDef        `yaml:"items,omitempty"`
	Npcs     []NpcDef         `yaml:"npcs,omitempty"`
	Spinners []SpinnerDef     `yaml:"spinners,omitempty"`
	Triggers []*world.Trigger `yaml:"triggers,omitempty"`
	Goals    []*world.Goal    `yaml:"goals,omitempty"`
}

// GameDef is the game metadata block.
type GameDef struct {
	Title   string              `yaml:"title"`
	Intro   string              `yaml:"intro,omitempty"`
	Player  PlayerDef           `yaml:"player"`
	Scoring []world.ScoringRank `yaml:"scoring,omitempty"`
}

// PlayerDef seeds the player character.
type PlayerDef struct {
	Name      string   `yaml:"name"`
	Desc      string   `yaml:"description,omitempty"`
	StartRoom world.Id `yaml:"start_room"`
	MaxHP     int      `yaml:"max_hp"`
}

// RoomDef authors one room; exits are a list here and become the keyed map
// at build time.
type RoomDef struct {
	Id       world.Id        `yaml:"id"`
	Name     string          `yaml:"name"`
	Desc     string          `yaml:"desc"`
	Visited  bool            `yaml:"visited,omitempty"`
	Exits    []ExitDef       `yaml:"exits,omitempty"`
	Overlays []world.Overlay `yaml:"overlays,omitempty"`
}

// ExitDef authors one exit.
type ExitDef struct {
	Direction     string     `yaml:"direction"`
	To            world.Id   `yaml:"to"`
	Hidden        bool       `yaml:"hidden,omitempty"`
	Locked        bool       `yaml:"locked,omitempty"`
	RequiredFlags []string   `yaml:"required_flags,omitempty"`
	RequiredItems []world.Id `yaml:"required_items,omitempty"`
	BarredMessage string     `yaml:"barred_message,omitempty"`
}

// ItemDef authors one item. Contents are derived from other items'
// locations, never authored directly.
type ItemDef struct {
	Id             world.Id                                `yaml:"id"`
	Name           string                                  `yaml:"name"`
	Desc           string                                  `yaml:"desc"`
	Location       world.Location                          `yaml:"location"`
	Movability     world.Movability                        `yaml:"movability,omitempty"`
	ContainerState *world.ContainerState                   `yaml:"container_state,omitempty"`
	Abilities      []world.Ability                         `yaml:"abilities,omitempty"`
	Requires       map[world.InteractionKind]world.Ability `yaml:"interaction_requires,omitempty"`
	Text           string                                  `yaml:"text,omitempty"`
	Consumable     *world.Consumable                       `yaml:"consumable,omitempty"`
}

// NpcDef authors one NPC.
type NpcDef struct {
	Id       world.Id                       `yaml:"id"`
	Name     string                         `yaml:"name"`
	Desc     string                         `yaml:"desc"`
	MaxHP    int                            `yaml:"max_hp"`
	Location world.Location                 `yaml:"location"`
	State    world.NpcState                 `yaml:"state"`
	Dialogue map[world.NpcState][]string    `yaml:"dialogue,omitempty"`
	Movement *world.Movement                `yaml:"movement,omitempty"`
}

// SpinnerDef authors one weighted flavor table.
type SpinnerDef struct {
	Id     world.Id      `yaml:"id"`
	Wedges []world.Wedge `yaml:"wedges,omitempty"`
}

// LoadWorldDef reads and validates a definition file. Validation errors
// are exhaustive: every problem in the file is reported in one pass.
func LoadWorldDef(path string) (*WorldDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world definition: %w", err)
	}
	var def WorldDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse world definition: %w", err)
	}
	if errs := Validate(&def); len(errs) > 0 {
		return nil, &ValidationFailure{Errors: errs}
	}
	return &def, nil
}

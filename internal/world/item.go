package world

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ContainerState models an item's openness. The three Transparent variants
// expose contents to sight; only Open and TransparentOpen expose them to
// touch. A nil *ContainerState means the item is not a container at all.
type ContainerState string

const (
	ContainerOpen              ContainerState = "open"
	ContainerClosed            ContainerState = "closed"
	ContainerLocked            ContainerState = "locked"
	ContainerTransparentOpen   ContainerState = "transparentOpen"
	ContainerTransparentClosed ContainerState = "transparentClosed"
	ContainerTransparentLocked ContainerState = "transparentLocked"
)

// SeeThrough reports whether contents are visible in this state.
func (s ContainerState) SeeThrough() bool {
	switch s {
	case ContainerOpen, ContainerTransparentOpen, ContainerTransparentClosed, ContainerTransparentLocked:
		return true
	}
	return false
}

// Reachable reports whether contents can be touched in this state.
func (s ContainerState) Reachable() bool {
	return s == ContainerOpen || s == ContainerTransparentOpen
}

// Locked reports whether the container refuses opening.
func (s ContainerState) Locked() bool {
	return s == ContainerLocked || s == ContainerTransparentLocked
}

// MovabilityKind tags an item's portability policy.
type MovabilityKind string

const (
	MoveFree       MovabilityKind = "free"
	MoveFixed      MovabilityKind = "fixed"
	MoveRestricted MovabilityKind = "restricted"
)

// Movability is an item's portability policy. Fixed items never move;
// restricted items refuse casual taking. Reason is the player-facing text
// for the refusal.
type Movability struct {
	Kind   MovabilityKind `yaml:"kind"`
	Reason string         `yaml:"reason,omitempty"`
}

func Free() Movability { return Movability{Kind: MoveFree} }

func (m Movability) IsFree() bool { return m.Kind == MoveFree || m.Kind == "" }

// AbilityKind enumerates what a tool item can do.
type AbilityKind string

const (
	AbilityAttach     AbilityKind = "attach"
	AbilityClean      AbilityKind = "clean"
	AbilityCut        AbilityKind = "cut"
	AbilityCutWood    AbilityKind = "cutWood"
	AbilityDrink      AbilityKind = "drink"
	AbilityEat        AbilityKind = "eat"
	AbilityExtinguish AbilityKind = "extinguish"
	AbilityIgnite     AbilityKind = "ignite"
	AbilityInhale     AbilityKind = "inhale"
	AbilityInsulate   AbilityKind = "insulate"
	AbilityMagnify    AbilityKind = "magnify"
	AbilityPluck      AbilityKind = "pluck"
	AbilityPry        AbilityKind = "pry"
	AbilityRead       AbilityKind = "read"
	AbilityRepair     AbilityKind = "repair"
	AbilitySharpen    AbilityKind = "sharpen"
	AbilitySmash      AbilityKind = "smash"
	AbilityTurnOn     AbilityKind = "turnOn"
	AbilityTurnOff    AbilityKind = "turnOff"
	AbilityUnlock     AbilityKind = "unlock"
	AbilityUse        AbilityKind = "use"
)

// Ability is an item capability. Unlock abilities may be keyed to a single
// target item; an empty Target unlocks anything that accepts unlocking.
type Ability struct {
	Kind   AbilityKind
	Target Id // unlock only; empty = any target
}

// Grants reports whether holding ability a satisfies requirement req.
// A requirement with a Target is only satisfied by the matching key or by an
// untargeted ability of the same kind.
func (a Ability) Grants(req Ability) bool {
	if a.Kind != req.Kind {
		return false
	}
	return a.Target == "" || req.Target == "" || a.Target == req.Target
}

func (a Ability) String() string {
	if a.Target != "" {
		return string(a.Kind) + ":" + string(a.Target)
	}
	return string(a.Kind)
}

func (a Ability) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

func (a *Ability) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseAbility(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAbility parses the "kind" or "unlock:target" text form.
func ParseAbility(raw string) (Ability, error) {
	kind, target, _ := strings.Cut(raw, ":")
	if kind == "" {
		return Ability{}, fmt.Errorf("invalid ability %q", raw)
	}
	return Ability{Kind: AbilityKind(kind), Target: Id(target)}, nil
}

// InteractionKind enumerates the "use tool on target" verb families.
type InteractionKind string

const (
	InteractAttach     InteractionKind = "attach"
	InteractBreak      InteractionKind = "break"
	InteractBurn       InteractionKind = "burn"
	InteractClean      InteractionKind = "clean"
	InteractCover      InteractionKind = "cover"
	InteractCut        InteractionKind = "cut"
	InteractExtinguish InteractionKind = "extinguish"
	InteractHandle     InteractionKind = "handle"
	InteractMove       InteractionKind = "move"
	InteractOpen       InteractionKind = "open"
	InteractRepair     InteractionKind = "repair"
	InteractSharpen    InteractionKind = "sharpen"
	InteractTurn       InteractionKind = "turn"
	InteractUnlock     InteractionKind = "unlock"
)

// ConsumeOutcomeKind tags what happens when a consumable runs out.
type ConsumeOutcomeKind string

const (
	ConsumeDespawn            ConsumeOutcomeKind = "despawn"
	ConsumeReplaceInventory   ConsumeOutcomeKind = "replaceInventory"
	ConsumeReplaceCurrentRoom ConsumeOutcomeKind = "replaceCurrentRoom"
)

// Consumable tracks limited-use items. Each use of an ability listed in
// ConsumeOn decrements UsesLeft; at zero the outcome fires.
type Consumable struct {
	UsesLeft    int                `yaml:"uses_left"`
	ConsumeOn   []Ability          `yaml:"consume_on,omitempty"`
	Outcome     ConsumeOutcomeKind `yaml:"when_consumed"`
	Replacement Id                 `yaml:"replacement,omitempty"`
}

// ConsumesOn reports whether using the given ability ticks the counter.
func (c *Consumable) ConsumesOn(kind AbilityKind) bool {
	for _, a := range c.ConsumeOn {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Item is any object the player can see, carry, or act on. Non-container
// items keep Contents empty and ContainerState nil.
type Item struct {
	Id             Id                          `yaml:"id"`
	Name           string                      `yaml:"name"`
	Desc           string                      `yaml:"desc"`
	Location       Location                    `yaml:"location"`
	Movability     Movability                  `yaml:"movability,omitempty"`
	ContainerState *ContainerState             `yaml:"container_state,omitempty"`
	Contents       IdSet                       `yaml:"contents,omitempty"`
	Abilities      []Ability                   `yaml:"abilities,omitempty"`
	Requires       map[InteractionKind]Ability `yaml:"interaction_requires,omitempty"`
	Text           string                      `yaml:"text,omitempty"`
	Consumable     *Consumable                 `yaml:"consumable,omitempty"`
}

// IsContainer reports whether the item can ever hold contents.
func (i *Item) IsContainer() bool { return i.ContainerState != nil }

// HasAbility reports whether the item grants the required ability.
func (i *Item) HasAbility(req Ability) bool {
	for _, a := range i.Abilities {
		if a.Grants(req) {
			return true
		}
	}
	return false
}

// HasAbilityKind reports whether the item has any ability of the given kind.
func (i *Item) HasAbilityKind(kind AbilityKind) bool {
	for _, a := range i.Abilities {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

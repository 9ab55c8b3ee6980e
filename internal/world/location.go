package world

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocationKind tags the variant held by a Location.
type LocationKind uint8

const (
	LocNowhere LocationKind = iota
	LocInventory
	LocRoom
	LocItem
	LocNpc
)

// Location places an item or NPC in exactly one spot: a room, inside a
// container item, held by an NPC, in the player's inventory, or nowhere
// (despawned). Ref is the owning entity's id for the room/item/npc variants
// and empty otherwise.
type Location struct {
	Kind LocationKind
	Ref  Id
}

func Nowhere() Location       { return Location{Kind: LocNowhere} }
func InInventory() Location   { return Location{Kind: LocInventory} }
func InRoom(id Id) Location   { return Location{Kind: LocRoom, Ref: id} }
func InsideItem(id Id) Location { return Location{Kind: LocItem, Ref: id} }
func HeldByNpc(id Id) Location  { return Location{Kind: LocNpc, Ref: id} }

// Room returns the room id and true when the location is a room.
func (l Location) Room() (Id, bool) {
	if l.Kind == LocRoom {
		return l.Ref, true
	}
	return "", false
}

func (l Location) IsNowhere() bool { return l.Kind == LocNowhere }

func (l Location) String() string {
	switch l.Kind {
	case LocNowhere:
		return "nowhere"
	case LocInventory:
		return "inventory"
	case LocRoom:
		return "room:" + string(l.Ref)
	case LocItem:
		return "item:" + string(l.Ref)
	case LocNpc:
		return "npc:" + string(l.Ref)
	}
	return "invalid"
}

// MarshalYAML renders locations in the compact "kind:ref" form used by
// definition and save files.
func (l Location) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

func (l *Location) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLocation parses the "kind:ref" text form.
func ParseLocation(raw string) (Location, error) {
	switch raw {
	case "nowhere", "":
		return Nowhere(), nil
	case "inventory":
		return InInventory(), nil
	}
	kind, ref, ok := strings.Cut(raw, ":")
	if !ok || ref == "" {
		return Location{}, fmt.Errorf("invalid location %q", raw)
	}
	switch kind {
	case "room":
		return InRoom(Id(ref)), nil
	case "item":
		return InsideItem(Id(ref)), nil
	case "npc":
		return HeldByNpc(Id(ref)), nil
	}
	return Location{}, fmt.Errorf("invalid location %q", raw)
}

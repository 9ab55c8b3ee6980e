package world

// Exit connects a room to a destination in one direction. Hidden exits are
// invisible until revealed; locked exits refuse passage. RequiredFlags and
// RequiredItems gate passage on player state; BarredMessage overrides the
// default refusal text when passage is denied.
type Exit struct {
	To            Id       `yaml:"to"`
	Hidden        bool     `yaml:"hidden,omitempty"`
	Locked        bool     `yaml:"locked,omitempty"`
	RequiredFlags []string `yaml:"required_flags,omitempty"`
	RequiredItems []Id     `yaml:"required_items,omitempty"`
	BarredMessage string   `yaml:"barred_message,omitempty"`
}

// OverlayCondKind tags a single overlay condition.
type OverlayCondKind string

const (
	OverlayFlagSet           OverlayCondKind = "flagSet"
	OverlayFlagUnset         OverlayCondKind = "flagUnset"
	OverlayFlagComplete      OverlayCondKind = "flagComplete"
	OverlayItemPresent       OverlayCondKind = "itemPresent"
	OverlayItemAbsent        OverlayCondKind = "itemAbsent"
	OverlayPlayerHasItem     OverlayCondKind = "playerHasItem"
	OverlayPlayerMissingItem OverlayCondKind = "playerMissingItem"
	OverlayNpcPresent        OverlayCondKind = "npcPresent"
	OverlayNpcAbsent         OverlayCondKind = "npcAbsent"
	OverlayNpcInState        OverlayCondKind = "npcInState"
	OverlayItemInRoom        OverlayCondKind = "itemInRoom"
)

// OverlayCond is one conjunct gating an overlay's text.
type OverlayCond struct {
	Kind  OverlayCondKind `yaml:"kind"`
	Flag  string          `yaml:"flag,omitempty"`
	Item  Id              `yaml:"item,omitempty"`
	Npc   Id              `yaml:"npc,omitempty"`
	Room  Id              `yaml:"room,omitempty"`
	State NpcState        `yaml:"state,omitempty"`
}

// Overlay appends conditional text to a room's base description when all of
// its conditions hold.
type Overlay struct {
	Conditions []OverlayCond `yaml:"conditions,omitempty"`
	Text       string        `yaml:"text"`
}

// Room is one location in the world graph. Contents and Npcs are
// back-references kept in sync with the Location of each contained entity;
// mutate them only through World.SetItemLocation / SetNpcLocation.
type Room struct {
	Id       Id              `yaml:"id"`
	Name     string          `yaml:"name"`
	Desc     string          `yaml:"desc"`
	Visited  bool            `yaml:"visited,omitempty"`
	Exits    map[string]*Exit `yaml:"exits,omitempty"`
	Contents IdSet           `yaml:"contents,omitempty"`
	Npcs     IdSet           `yaml:"npcs,omitempty"`
	Overlays []Overlay       `yaml:"overlays,omitempty"`
}

// Holds evaluates one overlay condition against the live world.
func (c OverlayCond) Holds(w *World) bool {
	switch c.Kind {
	case OverlayFlagSet:
		return w.Player.Flags.Has(c.Flag)
	case OverlayFlagUnset:
		return !w.Player.Flags.Has(c.Flag)
	case OverlayFlagComplete:
		f, ok := w.Player.Flags.Get(c.Flag)
		return ok && f.IsComplete()
	case OverlayItemPresent:
		it, ok := w.Items[c.Item]
		return ok && !it.Location.IsNowhere()
	case OverlayItemAbsent:
		it, ok := w.Items[c.Item]
		return !ok || it.Location.IsNowhere()
	case OverlayPlayerHasItem:
		return w.Player.Inventory.Has(c.Item)
	case OverlayPlayerMissingItem:
		return !w.Player.Inventory.Has(c.Item)
	case OverlayNpcPresent:
		npc, ok := w.Npcs[c.Npc]
		return ok && npc.Location == w.Player.Location
	case OverlayNpcAbsent:
		npc, ok := w.Npcs[c.Npc]
		return !ok || npc.Location != w.Player.Location
	case OverlayNpcInState:
		npc, ok := w.Npcs[c.Npc]
		return ok && npc.State == c.State
	case OverlayItemInRoom:
		it, ok := w.Items[c.Item]
		return ok && it.Location == InRoom(c.Room)
	}
	return false
}

// ActiveOverlayText returns the text of every overlay whose conditions all
// hold, in authored order.
func (r *Room) ActiveOverlayText(w *World) []string {
	var lines []string
	for _, ov := range r.Overlays {
		all := true
		for _, c := range ov.Conditions {
			if !c.Holds(w) {
				all = false
				break
			}
		}
		if all {
			lines = append(lines, ov.Text)
		}
	}
	return lines
}

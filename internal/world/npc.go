package world

// NpcState is an NPC's mood. The built-in states below have authored
// dialogue fallbacks; any other value is a custom state with no fallback.
type NpcState string

const (
	StateBored  NpcState = "bored"
	StateHappy  NpcState = "happy"
	StateMad    NpcState = "mad"
	StateNormal NpcState = "normal"
	StateSad    NpcState = "sad"
	StateTired  NpcState = "tired"
)

// MovementKind tags how a wandering NPC picks its next room.
type MovementKind string

const (
	MoveRoute     MovementKind = "route"
	MoveRandomSet MovementKind = "randomSet"
)

// TimingKind tags when a wandering NPC moves.
type TimingKind string

const (
	TimingEveryNTurns TimingKind = "everyNTurns"
	TimingOnTurn      TimingKind = "onTurn"
)

// Movement describes an NPC's wandering behavior. Route movement walks
// Rooms in order (wrapping when Loop is set, clamping at the end
// otherwise); randomSet picks uniformly from Rooms each time, which may
// re-select the current room and look like a pause.
type Movement struct {
	Kind        MovementKind `yaml:"kind"`
	Rooms       []Id         `yaml:"rooms"`
	CurrentIdx  int          `yaml:"current_idx,omitempty"`
	Loop        bool         `yaml:"loop,omitempty"`
	Timing      TimingKind   `yaml:"timing"`
	Turns       int          `yaml:"turns,omitempty"`
	OnTurn      int          `yaml:"on_turn,omitempty"`
	Active      bool         `yaml:"active"`
	LastMoved   int          `yaml:"last_moved,omitempty"`
	PausedUntil *int         `yaml:"paused_until,omitempty"`
}

// DueThisTurn reports whether the timing predicate fires on the given turn.
func (m *Movement) DueThisTurn(turn int) bool {
	if !m.Active || len(m.Rooms) == 0 {
		return false
	}
	if m.PausedUntil != nil {
		if turn < *m.PausedUntil {
			return false
		}
		m.PausedUntil = nil
	}
	switch m.Timing {
	case TimingEveryNTurns:
		return m.Turns > 0 && turn-m.LastMoved >= m.Turns
	case TimingOnTurn:
		return turn == m.OnTurn
	}
	return false
}

// NextRoom picks the destination for this move and advances route state.
// Random selection draws from the world RNG.
func (m *Movement) NextRoom(rng *Rand) (Id, bool) {
	switch m.Kind {
	case MoveRoute:
		next := m.CurrentIdx + 1
		if next >= len(m.Rooms) {
			if !m.Loop {
				return "", false
			}
			next = 0
		}
		m.CurrentIdx = next
		return m.Rooms[next], true
	case MoveRandomSet:
		return m.Rooms[rng.Intn(len(m.Rooms))], true
	}
	return "", false
}

// Npc is a non-player character. Inventory mirrors the Location of held
// items; Dialogue maps each state to the lines the NPC can speak in it.
type Npc struct {
	Id        Id                    `yaml:"id"`
	Name      string                `yaml:"name"`
	Desc      string                `yaml:"desc"`
	Location  Location              `yaml:"location"`
	Inventory IdSet                 `yaml:"inventory,omitempty"`
	Dialogue  map[NpcState][]string `yaml:"dialogue,omitempty"`
	State     NpcState              `yaml:"state"`
	Health    HealthState           `yaml:"health"`
	Effects   []HealthEffect        `yaml:"effects,omitempty"`
	Movement  *Movement             `yaml:"movement,omitempty"`
}

// RandomLine picks dialogue for the NPC's current state, or "" when the
// state has no lines.
func (n *Npc) RandomLine(rng *Rand) string {
	lines := n.Dialogue[n.State]
	if len(lines) == 0 {
		return ""
	}
	return lines[rng.Intn(len(lines))]
}

package world

// historyDepth bounds the go-back trail.
const historyDepth = 5

// Player is the player-controlled character. Location is always a room
// during play. LocationHistory holds up to the five most recent rooms,
// oldest first, for the go-back command.
type Player struct {
	Id              Id             `yaml:"id"`
	Name            string         `yaml:"name"`
	Desc            string         `yaml:"desc"`
	Location        Location       `yaml:"location"`
	LocationHistory []Id           `yaml:"location_history,omitempty"`
	Inventory       IdSet          `yaml:"inventory,omitempty"`
	Flags           FlagSet        `yaml:"flags,omitempty"`
	Score           int            `yaml:"score"`
	Health          HealthState    `yaml:"health"`
	Effects         []HealthEffect `yaml:"effects,omitempty"`
}

// MoveToRoom records the current room in history and relocates the player.
func (p *Player) MoveToRoom(room Id) {
	if current, ok := p.Location.Room(); ok {
		p.LocationHistory = append(p.LocationHistory, current)
		if len(p.LocationHistory) > historyDepth {
			p.LocationHistory = p.LocationHistory[1:]
		}
	}
	p.Location = InRoom(room)
}

// PreviousRoom peeks at the most recent history entry.
func (p *Player) PreviousRoom() (Id, bool) {
	if len(p.LocationHistory) == 0 {
		return "", false
	}
	return p.LocationHistory[len(p.LocationHistory)-1], true
}

// GoBack pops the most recent room off the history and moves there.
func (p *Player) GoBack() (Id, bool) {
	room, ok := p.PreviousRoom()
	if !ok {
		return "", false
	}
	p.LocationHistory = p.LocationHistory[:len(p.LocationHistory)-1]
	p.Location = InRoom(room)
	return room, true
}

// AdvanceFlag steps the named sequence flag forward. Missing flags and
// simple flags are left untouched.
func (p *Player) AdvanceFlag(name string) bool {
	f, ok := p.Flags.Get(name)
	if !ok {
		return false
	}
	f.Advance()
	return true
}

// ResetFlag returns the named sequence flag to step 0.
func (p *Player) ResetFlag(name string) bool {
	f, ok := p.Flags.Get(name)
	if !ok {
		return false
	}
	f.Reset()
	return true
}

// AwardPoints adjusts the score, saturating at zero rather than going
// negative.
func (p *Player) AwardPoints(amount int) {
	p.Score += amount
	if p.Score < 0 {
		p.Score = 0
	}
}

package world

// Wedge is one weighted entry in a spinner. Width is the relative weight;
// the zero value is treated as 1.
type Wedge struct {
	Text  string `yaml:"text"`
	Width int    `yaml:"width,omitempty"`
}

func (w Wedge) weight() int {
	if w.Width <= 0 {
		return 1
	}
	return w.Width
}

// Spinner is a named weighted bag of flavor strings. Spinning draws from
// the world RNG so that runs are reproducible from the seed.
type Spinner struct {
	Wedges []Wedge `yaml:"wedges,omitempty"`
}

// AddWedge appends a weighted wedge.
func (s *Spinner) AddWedge(text string, width int) {
	s.Wedges = append(s.Wedges, Wedge{Text: text, Width: width})
}

// Spin picks one wedge proportionally to its width. Returns false when the
// spinner is empty.
func (s *Spinner) Spin(rng *Rand) (string, bool) {
	total := 0
	for _, w := range s.Wedges {
		total += w.weight()
	}
	if total == 0 {
		return "", false
	}
	pick := rng.Intn(total)
	for _, w := range s.Wedges {
		pick -= w.weight()
		if pick < 0 {
			return w.Text, true
		}
	}
	return "", false
}

// Well-known spinner ids the engine itself consults.
const (
	SpinnerNpcIgnore Id = "npc_ignore" // fallback when an NPC has no dialogue
	SpinnerNpcLeave  Id = "npc_leaves" // verb for NPC departures
	SpinnerNpcEnter  Id = "npc_enters" // verb for NPC arrivals
)

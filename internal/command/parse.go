package command

import (
	"strings"

	"github.com/saunter/saunter/internal/world"
)

// articles are dropped from input before matching.
var articles = map[string]bool{"a": true, "an": true, "the": true}

// directionWords normalizes shorthand movement.
var directionWords = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
	"ne": "northeast", "northeast": "northeast",
	"nw": "northwest", "northwest": "northwest",
	"se": "southeast", "southeast": "southeast",
	"sw": "southwest", "southwest": "southwest",
	"up": "up", "u": "up",
	"down": "down", "d": "down",
	"in": "in", "out": "out",
}

// useVerbs maps "use tool on target" style verbs to interaction kinds.
var useVerbs = map[string]world.InteractionKind{
	"attach":     world.InteractAttach,
	"break":      world.InteractBreak,
	"burn":       world.InteractBurn,
	"clean":      world.InteractClean,
	"cover":      world.InteractCover,
	"cut":        world.InteractCut,
	"extinguish": world.InteractExtinguish,
	"handle":     world.InteractHandle,
	"repair":     world.InteractRepair,
	"sharpen":    world.InteractSharpen,
	"turn":       world.InteractTurn,
	"detach":     world.InteractAttach,
}

// Parse tokenizes one input line into a Command. It never fails: input it
// cannot shape comes back with Kind Unknown and the raw line preserved.
func Parse(line string) Command {
	raw := strings.TrimSpace(line)
	cmd := Command{Kind: Unknown, Raw: raw}
	if raw == "" {
		return cmd
	}
	tokens := tokenize(raw)
	if len(tokens) == 0 {
		return cmd
	}
	verb := tokens[0]
	rest := tokens[1:]

	// Bare direction moves.
	if dir, ok := directionWords[verb]; ok && len(rest) == 0 {
		return Command{Kind: MoveTo, Direction: dir, Raw: raw}
	}

	switch verb {
	case "look", "l", "examine", "x":
		if len(rest) == 0 {
			return Command{Kind: Look, Raw: raw}
		}
		rest = dropLeading(rest, "at")
		return Command{Kind: LookAt, Noun: join(rest), Raw: raw}

	case "inventory", "i", "inv":
		return Command{Kind: Inventory, Raw: raw}

	case "take", "get", "grab", "pick":
		rest = dropLeading(rest, "up")
		if noun, from, ok := split(rest, "from"); ok {
			return Command{Kind: TakeFrom, Noun: noun, Second: from, Raw: raw}
		}
		return Command{Kind: Take, Noun: join(rest), Raw: raw}

	case "drop":
		return Command{Kind: Drop, Noun: join(rest), Raw: raw}

	case "put", "insert", "place":
		if noun, into, ok := split(rest, "in", "into", "inside", "on"); ok {
			return Command{Kind: PutIn, Noun: noun, Second: into, Raw: raw}
		}
		return Command{Kind: Unknown, Raw: raw}

	case "open":
		if target, tool, ok := split(rest, "with", "using"); ok {
			return Command{Kind: UseOn, Interaction: world.InteractOpen, Noun: target, Second: tool, Raw: raw}
		}
		return Command{Kind: Open, Noun: join(rest), Raw: raw}

	case "close", "shut":
		return Command{Kind: Close, Noun: join(rest), Raw: raw}

	case "lock":
		return Command{Kind: Lock, Noun: join(rest), Raw: raw}

	case "unlock":
		if noun, with, ok := split(rest, "with", "using"); ok {
			return Command{Kind: UnlockWith, Noun: noun, Second: with, Raw: raw}
		}
		return Command{Kind: Unlock, Noun: join(rest), Raw: raw}

	case "move", "go", "walk", "head":
		if verb == "move" {
			if target, tool, ok := split(rest, "with", "using"); ok {
				return Command{Kind: UseOn, Interaction: world.InteractMove, Noun: target, Second: tool, Raw: raw}
			}
		}
		rest = dropLeading(rest, "to")
		if len(rest) == 1 && rest[0] == "back" {
			return Command{Kind: GoBack, Raw: raw}
		}
		if len(rest) == 0 {
			return Command{Kind: Unknown, Raw: raw}
		}
		if dir, ok := directionWords[rest[0]]; ok && len(rest) == 1 {
			return Command{Kind: MoveTo, Direction: dir, Raw: raw}
		}
		return Command{Kind: MoveTo, Noun: join(rest), Raw: raw}

	case "back":
		return Command{Kind: GoBack, Raw: raw}

	case "read":
		return Command{Kind: Read, Noun: join(rest), Raw: raw}

	case "touch", "feel":
		return Command{Kind: Touch, Noun: join(rest), Raw: raw}

	case "talk", "speak":
		rest = dropLeading(rest, "to", "with")
		return Command{Kind: TalkTo, Noun: join(rest), Raw: raw}

	case "give", "offer", "hand":
		if noun, npc, ok := split(rest, "to"); ok {
			return Command{Kind: GiveTo, Noun: noun, Second: npc, Raw: raw}
		}
		return Command{Kind: Unknown, Raw: raw}

	case "eat":
		return Command{Kind: Ingest, Mode: world.IngestEat, Noun: join(rest), Raw: raw}
	case "drink", "sip", "quaff":
		return Command{Kind: Ingest, Mode: world.IngestDrink, Noun: join(rest), Raw: raw}
	case "inhale", "sniff", "huff":
		return Command{Kind: Ingest, Mode: world.IngestInhale, Noun: join(rest), Raw: raw}

	case "use":
		if tool, target, ok := split(rest, "on", "with"); ok {
			return Command{Kind: UseOn, Interaction: world.InteractHandle, Second: tool, Noun: target, Raw: raw}
		}
		return Command{Kind: Unknown, Raw: raw}

	case "turn":
		if len(rest) > 0 && (rest[0] == "on" || rest[0] == "off") {
			kind := TurnOn
			if rest[0] == "off" {
				kind = TurnOff
			}
			return Command{Kind: kind, Noun: join(rest[1:]), Raw: raw}
		}
		// "turn crank with wrench" falls through to the use-verb family.

	case "save":
		return Command{Kind: Save, Slot: strings.Trim(join(rest), `"`), Raw: raw}
	case "load", "restore":
		return Command{Kind: Load, Slot: strings.Trim(join(rest), `"`), Raw: raw}
	case "saves", "list":
		return Command{Kind: ListSaves, Raw: raw}

	case "goals", "objectives":
		return Command{Kind: Goals, Raw: raw}
	case "help", "?":
		return Command{Kind: Help, Raw: raw}
	case "quit", "exit", "q":
		return Command{Kind: Quit, Raw: raw}

	case "brief":
		return Command{Kind: SetBrief, Raw: raw}
	case "verbose":
		return Command{Kind: SetVerbose, Raw: raw}
	case "clear-verbose", "clearverbose":
		return Command{Kind: SetClearVerbose, Raw: raw}

	case ".flags":
		return Command{Kind: DevFlags, Raw: raw}
	case ".sched":
		return Command{Kind: DevSched, Raw: raw}
	case ".npcs":
		return Command{Kind: DevNpcs, Raw: raw}
	case ".goto":
		return Command{Kind: DevGoto, Noun: join(rest), Raw: raw}
	}

	// Interaction verbs: "<verb> TARGET [with TOOL]".
	if interaction, ok := useVerbs[verb]; ok {
		if target, tool, found := split(rest, "with", "using"); found {
			return Command{Kind: UseOn, Interaction: interaction, Noun: target, Second: tool, Raw: raw}
		}
		if len(rest) > 0 {
			return Command{Kind: UseOn, Interaction: interaction, Noun: join(rest), Raw: raw}
		}
	}

	return Command{Kind: Unknown, Raw: raw}
}

// tokenize lowercases, splits, and drops articles.
func tokenize(line string) []string {
	fields := strings.Fields(strings.ToLower(line))
	out := fields[:0]
	for _, f := range fields {
		if !articles[f] {
			out = append(out, f)
		}
	}
	return out
}

// split cuts the token list at the first occurrence of any separator,
// returning the joined halves.
func split(tokens []string, separators ...string) (before, after string, ok bool) {
	for i, tok := range tokens {
		for _, sep := range separators {
			if tok == sep && i > 0 && i < len(tokens)-1 {
				return join(tokens[:i]), join(tokens[i+1:]), true
			}
		}
	}
	return "", "", false
}

func dropLeading(tokens []string, words ...string) []string {
	for len(tokens) > 0 {
		dropped := false
		for _, w := range words {
			if tokens[0] == w {
				tokens = tokens[1:]
				dropped = true
				break
			}
		}
		if !dropped {
			break
		}
	}
	return tokens
}

func join(tokens []string) string {
	return strings.Join(tokens, " ")
}

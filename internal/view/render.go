package view

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/saunter/saunter/internal/markup"
)

// Renderer turns flushed frames into terminal text. Plain mode drops ANSI
// styling but keeps layout, for dumb terminals and tests.
type Renderer struct {
	Width int
	Plain bool
}

var titler = cases.Title(language.English)

// Render produces the full text of one frame.
func (r *Renderer) Render(frame Frame) string {
	var b strings.Builder
	if frame.Mode == ModeClearVerbose && !r.Plain {
		b.WriteString("\x1b[2J\x1b[H")
	}
	var lastSection Section = -1
	for _, entry := range frame.Entries {
		if sec := entry.Item.Section(); sec != lastSection && lastSection != -1 {
			b.WriteString("\n")
		}
		lastSection = entry.Item.Section()
		b.WriteString(r.renderItem(entry.Item, frame.Mode))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) markup(text string) string {
	if r.Plain {
		return markup.Strip(text, r.Width)
	}
	return markup.Render(text, r.Width)
}

func (r *Renderer) renderItem(item Item, mode Mode) string {
	switch it := item.(type) {

	case TransitionMessage:
		return r.markup("[[dim]]" + it.Text + "[[/dim]]")

	case RoomDescription:
		name := r.markup("[[room]]" + it.Name + "[[/room]]")
		if mode == ModeBrief && it.Visited && !it.ForceVerbose {
			return name
		}
		return name + "\n" + r.markup(it.Desc)

	case RoomOverlays:
		if mode == ModeBrief && !it.ForceVerbose {
			return r.markup(strings.Join(it.Text, " "))
		}
		return r.markup(strings.Join(it.Text, "\n"))

	case RoomItems:
		styled := make([]string, len(it.Names))
		for i, n := range it.Names {
			styled[i] = "[[item]]" + n + "[[/item]]"
		}
		return r.markup("You see: " + strings.Join(styled, ", "))

	case RoomExits:
		if len(it.Exits) == 0 {
			return r.markup("[[dim]]There are no obvious exits.[[/dim]]")
		}
		parts := make([]string, len(it.Exits))
		for i, e := range it.Exits {
			label := titler.String(e.Direction)
			if e.DestVisited && e.Destination != "" {
				label += " → " + e.Destination
			}
			if e.Locked {
				label += " (locked)"
			}
			parts[i] = label
		}
		return r.markup("Exits: " + strings.Join(parts, ", "))

	case RoomNpcs:
		lines := make([]string, len(it.Npcs))
		for i, n := range it.Npcs {
			lines[i] = r.markup("[[npc]]"+n.Name+"[[/npc]]") + " is here."
		}
		return strings.Join(lines, "\n")

	case ActionSuccess:
		return r.markup(it.Text)
	case ActionFailure:
		return r.markup("[[denied]]" + it.Text + "[[/denied]]")
	case ErrorMessage:
		return r.markup("[[denied]]" + it.Text + "[[/denied]]")

	case ItemDescription:
		return r.markup("[[item]]"+it.Name+"[[/item]]") + "\n" + r.markup(it.Desc)
	case ItemText:
		return r.markup(it.Text)
	case ItemConsumableStatus:
		return r.markup("[[dim]]" + it.Text + "[[/dim]]")
	case ItemContents:
		return r.markup("The "+it.Name+" contains:") + "\n" + r.contentList(it.Lines)
	case Inventory:
		if len(it.Lines) == 0 {
			return r.markup("You aren't carrying anything.")
		}
		return r.markup("You are carrying:") + "\n" + r.contentList(it.Lines)
	case NpcDescription:
		head := r.markup("[[npc]]" + it.Name + "[[/npc]]")
		return fmt.Sprintf("%s (%s, %d/%d hp)\n%s", head, it.State, it.Current, it.Max, r.markup(it.Desc))
	case NpcInventory:
		return r.markup(it.Name+" is carrying:") + "\n" + r.contentList(it.Lines)

	case ActiveGoal:
		return r.markup("[[highlight]]New goal:[[/highlight]] " + it.Name + " — " + it.Desc)
	case CompleteGoal:
		return r.markup("[[highlight]]Goal complete:[[/highlight]] " + it.Name)
	case FailedGoal:
		return r.markup("[[denied]]Goal failed:[[/denied]] " + it.Name)

	case TriggeredEvent:
		return r.markup("[[triggered]]" + it.Text + "[[/triggered]]")
	case NpcSpeech:
		return r.markup("[[npc]]"+it.Speaker+"[[/npc]]: ") + r.markup(it.Quote)
	case NpcEntered:
		return r.markup(fmt.Sprintf("[[npc]]%s[[/npc]] %s.", it.Name, orDefault(it.SpinMsg, "arrives")))
	case NpcLeft:
		return r.markup(fmt.Sprintf("[[npc]]%s[[/npc]] %s.", it.Name, orDefault(it.SpinMsg, "leaves")))
	case CharacterHarmed:
		return r.markup(fmt.Sprintf("[[red]]%s takes %d damage (%s).[[/red]]", it.Name, it.Amount, it.Cause))
	case CharacterHealed:
		return r.markup(fmt.Sprintf("[[green]]%s recovers %d hp (%s).[[/green]]", it.Name, it.Amount, it.Cause))
	case CharacterDeath:
		if it.IsPlayer {
			return r.markup("[[b]][[red]]You have died.[[/red]][[/b]]")
		}
		return r.markup(fmt.Sprintf("[[red]]%s has died.[[/red]]", it.Name))
	case PointsAwarded:
		if it.Reason != "" {
			return r.markup(fmt.Sprintf("[[highlight]]%+d points[[/highlight]] — %s", it.Amount, it.Reason))
		}
		return r.markup(fmt.Sprintf("[[highlight]]%+d points[[/highlight]]", it.Amount))
	case StatusChange:
		if it.Action == StatusApply {
			return r.markup(fmt.Sprintf("[[dim]]You are now affected by %s.[[/dim]]", it.Status))
		}
		return r.markup(fmt.Sprintf("[[dim]]You are no longer affected by %s.[[/dim]]", it.Status))

	case AmbientEvent:
		return r.markup("[[dim]]" + it.Text + "[[/dim]]")

	case EngineMessage:
		return r.markup("[[dim]]" + it.Text + "[[/dim]]")
	case GameSaved:
		return r.markup(fmt.Sprintf("Saved to slot %q (%s).", it.Slot, it.File))
	case GameLoaded:
		return r.markup(fmt.Sprintf("Loaded slot %q (%s).", it.Slot, it.File))
	case SavedGamesList:
		if len(it.Entries) == 0 {
			return r.markup("No saved games in " + it.Directory + ".")
		}
		lines := []string{r.markup("Saved games in " + it.Directory + ":")}
		for _, e := range it.Entries {
			lines = append(lines, fmt.Sprintf("  %-20s %s", e.Slot, e.Modified))
		}
		return strings.Join(lines, "\n")
	case Help:
		lines := []string{r.markup(it.Intro), ""}
		for _, c := range it.Commands {
			lines = append(lines, fmt.Sprintf("  %-32s %s", c.Usage, c.Blurb))
		}
		return strings.Join(lines, "\n")
	case QuitSummary:
		body := fmt.Sprintf("%s\nScore: %d / %d\nRooms visited: %d / %d",
			it.Title, it.Score, it.MaxScore, it.Visited, it.MaxVisited)
		if it.Rank != "" {
			body += "\nRank: " + titler.String(it.Rank)
			if it.RankNotes != "" {
				body += " — " + it.RankNotes
			}
		}
		return r.markup("[[box: Final Report ]]" + body + "[[/box]]")
	}
	return ""
}

func (r *Renderer) contentList(lines []ContentLine) string {
	if len(lines) == 0 {
		return r.markup("  [[dim]]nothing[[/dim]]")
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		suffix := ""
		if l.Restricted {
			suffix = " (best left alone)"
		}
		out[i] = "  " + r.markup("[[item]]"+l.Name+"[[/item]]"+suffix)
	}
	return strings.Join(out, "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saunter/saunter/internal/world"
)

// CorruptError marks a save file that exists but cannot be restored.
type CorruptError struct {
	Slot    string
	Message string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("save slot %q corrupted: %s", e.Slot, e.Message)
}

// slotSanitizer strips anything that doesn't belong in a file name.
var slotSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SanitizeSlot turns a player-typed slot name into a safe file stem.
func SanitizeSlot(slot string) string {
	slot = strings.TrimSpace(slot)
	slot = slotSanitizer.ReplaceAllString(slot, "_")
	if slot == "" {
		slot = "default"
	}
	return slot
}

// SlotPath resolves the file a slot serializes to.
func SlotPath(dir, slot string) string {
	return filepath.Join(dir, SanitizeSlot(slot)+".yaml")
}

// Save writes the entire world state to a slot file, creating the save
// directory on first use. The write is atomic: a temp file replaces the
// slot on success.
func Save(w *world.World, dir, slot string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	w.Version = FormatVersion
	w.RngDraws = w.Rng.Draws()
	data, err := yaml.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("serialize world: %w", err)
	}
	path := SlotPath(dir, slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("finalize save: %w", err)
	}
	return path, nil
}

// Load restores a world from a slot file. A version mismatch is tolerated
// and returned as a warning string; corrupt files fail the slot.
func Load(dir, slot string) (*world.World, string, error) {
	path := SlotPath(dir, slot)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read save: %w", err)
	}
	var w world.World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, "", &CorruptError{Slot: slot, Message: err.Error()}
	}
	if w.Player == nil || w.Rooms == nil {
		return nil, "", &CorruptError{Slot: slot, Message: "missing player or rooms"}
	}
	warning := ""
	if w.Version != FormatVersion {
		warning = fmt.Sprintf("save version %q does not match engine %q; loading anyway", w.Version, FormatVersion)
	}
	w.Rng = world.Restore(w.Seed, w.RngDraws)
	return &w, warning, nil
}

// SaveEntry describes one slot on disk.
type SaveEntry struct {
	Slot     string
	File     string
	Modified string
}

// ListSaves enumerates the slot files in the save directory, newest first.
func ListSaves(dir string) ([]SaveEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read save directory: %w", err)
	}
	var saves []SaveEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		saves = append(saves, SaveEntry{
			Slot:     strings.TrimSuffix(e.Name(), ".yaml"),
			File:     filepath.Join(dir, e.Name()),
			Modified: info.ModTime().Format("2006-01-02 15:04"),
		})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Modified > saves[j].Modified })
	return saves, nil
}

package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/saunter/saunter/internal/world"
)

func minimalDef() *WorldDef {
	return &WorldDef{
		Game: GameDef{
			Title:  "Test Caves",
			Player: PlayerDef{Name: "Tester", StartRoom: "foyer", MaxHP: 50},
			Scoring: []world.ScoringRank{
				{Threshold: 0, Name: "novice"},
				{Threshold: 10, Name: "adept"},
			},
		},
		Rooms: []RoomDef{
			{Id: "foyer", Name: "Foyer", Desc: "An entry hall.", Exits: []ExitDef{
				{Direction: "north", To: "lab"},
			}},
			{Id: "lab", Name: "Lab", Desc: "Benches."},
		},
		Items: []ItemDef{
			{Id: "coin", Name: "brass coin", Desc: "A coin.", Location: world.InRoom("foyer")},
			{Id: "chest", Name: "chest", Desc: "A chest.", Location: world.InRoom("lab"),
				ContainerState: containerPtr(world.ContainerClosed)},
			{Id: "gem", Name: "gem", Desc: "A gem.", Location: world.InsideItem("chest")},
		},
		Npcs: []NpcDef{
			{Id: "bot", Name: "bot", Desc: "A bot.", MaxHP: 10, Location: world.InRoom("lab"), State: world.StateNormal},
		},
		Spinners: []SpinnerDef{
			{Id: "creaks", Wedges: []world.Wedge{{Text: "Creak."}}},
		},
		Triggers: []*world.Trigger{{
			Name:  "welcome",
			Event: world.Condition{Kind: world.CondEnterRoom, Room: "lab"},
			Actions: []world.Action{
				{Kind: world.ActShowMessage, Text: "hello"},
				{Kind: world.ActAwardPoints, Amount: 7, Reason: "arrival"},
			},
		}},
		Goals: []*world.Goal{{
			Id: "visit", Name: "Visit the lab", Desc: "Go north.",
			Group:        world.GoalRequired,
			FinishedWhen: world.GoalCond{Kind: world.GoalCondReachedRoom, Room: "lab"},
		}},
	}
}

func containerPtr(s world.ContainerState) *world.ContainerState { return &s }

func TestValidateCleanDefinition(t *testing.T) {
	assert.Empty(t, Validate(minimalDef()))
}

func TestValidateReportsDuplicates(t *testing.T) {
	def := minimalDef()
	def.Rooms = append(def.Rooms, RoomDef{Id: "foyer", Name: "Clone", Desc: "?"})
	errs := Validate(def)
	require.NotEmpty(t, errs)
	found := false
	for _, e := range errs {
		if e.Kind == DuplicateId && e.Entity == "room" && e.Id == "foyer" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateReportsMissingReferencesExhaustively(t *testing.T) {
	def := minimalDef()
	def.Rooms[0].Exits = append(def.Rooms[0].Exits, ExitDef{Direction: "west", To: "void"})
	def.Items = append(def.Items, ItemDef{Id: "ghost", Name: "g", Desc: "g", Location: world.InRoom("nowhere-room")})
	def.Triggers = append(def.Triggers, &world.Trigger{
		Name:    "bad",
		Event:   world.Condition{Kind: world.CondTakeItem, Item: "missing-item"},
		Actions: []world.Action{{Kind: world.ActDespawnNpc, Npc: "missing-npc"}},
	})

	errs := Validate(def)
	ids := map[world.Id]bool{}
	for _, e := range errs {
		if e.Kind == MissingReference {
			ids[e.Id] = true
		}
	}
	assert.True(t, ids["void"])
	assert.True(t, ids["nowhere-room"])
	assert.True(t, ids["missing-item"])
	assert.True(t, ids["missing-npc"])
}

func TestValidateReportsInvalidValues(t *testing.T) {
	def := minimalDef()
	def.Game.Player.MaxHP = 0
	def.Triggers = append(def.Triggers, &world.Trigger{
		Name:       "odds",
		Event:      world.Condition{Kind: world.CondAlways},
		Conditions: world.Pred(world.Condition{Kind: world.CondChancePercent, Percent: 250}),
	})
	errs := Validate(def)
	count := 0
	for _, e := range errs {
		if e.Kind == InvalidValue {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestBuildDerivesBackReferencesAndPlayer(t *testing.T) {
	w, err := Build(minimalDef(), 7)
	require.NoError(t, err)

	assert.True(t, w.Rooms["foyer"].Contents.Has("coin"))
	assert.True(t, w.Items["chest"].Contents.Has("gem"))
	assert.True(t, w.Rooms["lab"].Npcs.Has("bot"))
	assert.Empty(t, w.CheckIntegrity())

	assert.Equal(t, world.InRoom("foyer"), w.Player.Location)
	assert.Equal(t, 50, w.Player.Health.Max)
	assert.True(t, w.Rooms["foyer"].Visited, "start room counts as visited")
	assert.Equal(t, 7, w.MaxScore, "positive awards total into the max score")
	assert.Equal(t, FormatVersion, w.Version)
}

func TestBuildRejectsItemInNonContainer(t *testing.T) {
	def := minimalDef()
	def.Items = append(def.Items, ItemDef{Id: "pebble", Name: "pebble", Desc: "p", Location: world.InsideItem("coin")})
	_, err := Build(def, 1)
	require.Error(t, err)
}

func TestSanitizeSlot(t *testing.T) {
	assert.Equal(t, "my_save", SanitizeSlot("my save"))
	assert.Equal(t, "slot-1", SanitizeSlot("slot-1"))
	assert.Equal(t, "a_b_c", SanitizeSlot("a/b\\c"))
	assert.Equal(t, "default", SanitizeSlot("   "))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves") // missing dir is auto-created
	w, err := Build(minimalDef(), 99)
	require.NoError(t, err)

	// Advance some state so the save is non-trivial.
	w.Turn = 12
	w.Player.Flags.Set(world.SimpleFlag("met_bot", 3))
	w.Scheduler.ScheduleIn(12, 2, []world.Action{{Kind: world.ActShowMessage, Text: "later"}}, "note")
	w.Rng.Intn(100)
	w.Rng.Intn(100)

	path, err := Save(w, dir, "slot one")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slot_one.yaml"), path)

	loaded, warning, err := Load(dir, "slot one")
	require.NoError(t, err)
	assert.Empty(t, warning)

	assert.Equal(t, 12, loaded.Turn)
	assert.True(t, loaded.Player.Flags.Has("met_bot"))
	assert.Equal(t, 1, loaded.Scheduler.Len())
	assert.Empty(t, loaded.CheckIntegrity())

	// Save → load → save is byte-identical.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	path2, err := Save(loaded, dir, "slot two")
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	// The restored RNG continues the stream from the same position.
	assert.Equal(t, w.Rng.Intn(1000), loaded.Rng.Intn(1000))
}

func TestLoadVersionMismatchWarnsButLoads(t *testing.T) {
	dir := t.TempDir()
	w, err := Build(minimalDef(), 1)
	require.NoError(t, err)
	_, err = Save(w, dir, "old")
	require.NoError(t, err)

	// Rewrite the version field on disk.
	path := SlotPath(dir, "old")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	doc["version"] = "saunter/0"
	edited, err := yaml.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, edited, 0o644))

	loaded, warning, err := Load(dir, "old")
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.NotNil(t, loaded)
}

func TestLoadCorruptFileFailsSlot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(SlotPath(dir, "bad"), []byte("{{{not yaml"), 0o644))
	_, _, err := Load(dir, "bad")
	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
}

func TestListSavesMissingDirIsEmpty(t *testing.T) {
	entries, err := ListSaves(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadWorldDefFromFile(t *testing.T) {
	def := minimalDef()
	data, err := yaml.Marshal(def)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadWorldDef(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Caves", loaded.Game.Title)
	assert.Len(t, loaded.Rooms, 2)
	assert.Len(t, loaded.Triggers, 1)
}

func TestLoadWorldDefReportsValidationFailure(t *testing.T) {
	def := minimalDef()
	def.Rooms[0].Exits[0].To = "nonexistent"
	data, err := yaml.Marshal(def)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadWorldDef(path)
	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.NotEmpty(t, failure.Errors)
}

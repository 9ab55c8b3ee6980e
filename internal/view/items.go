package view

// Concrete view items. Each type carries only display data — names and
// text, never entity ids — so renderers need no world access.

// ContentLine is one row when listing an inventory or container.
type ContentLine struct {
	Name       string
	Restricted bool
}

// ExitLine is one row of a room's exit listing.
type ExitLine struct {
	Direction   string
	Destination string
	Locked      bool
	DestVisited bool
}

// NpcLine is one row of a room's NPC listing.
type NpcLine struct {
	Name string
	Desc string
}

// SaveEntry is one row of the saved-games listing.
type SaveEntry struct {
	Slot     string
	File     string
	Modified string
}

// HelpCommand is one row of the help table.
type HelpCommand struct {
	Usage string
	Blurb string
}

// StatusAction distinguishes applying vs removing a status effect.
type StatusAction int

const (
	StatusApply StatusAction = iota
	StatusRemove
)

// Transition section.

type TransitionMessage struct{ Text string }

// Environment section.

type RoomDescription struct {
	Name    string
	Desc    string
	Visited bool
	// ForceVerbose overrides brief mode for this frame (explicit `look`).
	ForceVerbose bool
}

type RoomOverlays struct {
	Text         []string
	ForceVerbose bool
}

type RoomItems struct{ Names []string }

type RoomExits struct{ Exits []ExitLine }

type RoomNpcs struct{ Npcs []NpcLine }

// DirectResult section.

type ActionSuccess struct{ Text string }

type ActionFailure struct{ Text string }

type ErrorMessage struct{ Text string }

type ItemDescription struct {
	Name string
	Desc string
}

type ItemText struct{ Text string }

type ItemConsumableStatus struct{ Text string }

type ItemContents struct {
	Name  string
	Lines []ContentLine
}

type Inventory struct{ Lines []ContentLine }

type NpcDescription struct {
	Name    string
	Desc    string
	Current int
	Max     int
	State   string
}

type NpcInventory struct {
	Name  string
	Lines []ContentLine
}

type ActiveGoal struct {
	Name string
	Desc string
}

type CompleteGoal struct {
	Name string
	Desc string
}

type FailedGoal struct {
	Name string
	Desc string
}

// WorldResponse section.

type TriggeredEvent struct{ Text string }

type NpcSpeech struct {
	Speaker string
	Quote   string
}

type NpcEntered struct {
	Name    string
	SpinMsg string
}

type NpcLeft struct {
	Name    string
	SpinMsg string
}

type CharacterHarmed struct {
	Name   string
	Cause  string
	Amount int
}

type CharacterHealed struct {
	Name   string
	Cause  string
	Amount int
}

type CharacterDeath struct {
	Name     string
	Cause    string
	IsPlayer bool
}

type PointsAwarded struct {
	Amount int
	Reason string
}

type StatusChange struct {
	Action StatusAction
	Status string
}

// Ambient section.

type AmbientEvent struct{ Text string }

// System section.

type EngineMessage struct{ Text string }

type GameSaved struct {
	Slot string
	File string
}

type GameLoaded struct {
	Slot string
	File string
}

type SavedGamesList struct {
	Directory string
	Entries   []SaveEntry
}

type Help struct {
	Intro    string
	Commands []HelpCommand
}

type QuitSummary struct {
	Title      string
	Rank       string
	RankNotes  string
	Score      int
	MaxScore   int
	Visited    int
	MaxVisited int
}

// Section classification.

func (TransitionMessage) Section() Section { return SectionTransition }

func (RoomDescription) Section() Section { return SectionEnvironment }
func (RoomOverlays) Section() Section    { return SectionEnvironment }
func (RoomItems) Section() Section       { return SectionEnvironment }
func (RoomExits) Section() Section       { return SectionEnvironment }
func (RoomNpcs) Section() Section        { return SectionEnvironment }

func (ActionSuccess) Section() Section        { return SectionDirectResult }
func (ActionFailure) Section() Section        { return SectionDirectResult }
func (ErrorMessage) Section() Section         { return SectionDirectResult }
func (ItemDescription) Section() Section      { return SectionDirectResult }
func (ItemText) Section() Section             { return SectionDirectResult }
func (ItemConsumableStatus) Section() Section { return SectionDirectResult }
func (ItemContents) Section() Section         { return SectionDirectResult }
func (Inventory) Section() Section            { return SectionDirectResult }
func (NpcDescription) Section() Section       { return SectionDirectResult }
func (NpcInventory) Section() Section         { return SectionDirectResult }
func (ActiveGoal) Section() Section           { return SectionDirectResult }
func (CompleteGoal) Section() Section         { return SectionDirectResult }
func (FailedGoal) Section() Section           { return SectionDirectResult }

func (TriggeredEvent) Section() Section  { return SectionWorldResponse }
func (NpcSpeech) Section() Section       { return SectionWorldResponse }
func (NpcEntered) Section() Section      { return SectionWorldResponse }
func (NpcLeft) Section() Section         { return SectionWorldResponse }
func (CharacterHarmed) Section() Section { return SectionWorldResponse }
func (CharacterHealed) Section() Section { return SectionWorldResponse }
func (CharacterDeath) Section() Section  { return SectionWorldResponse }
func (PointsAwarded) Section() Section   { return SectionWorldResponse }
func (StatusChange) Section() Section    { return SectionWorldResponse }

func (AmbientEvent) Section() Section { return SectionAmbient }

func (EngineMessage) Section() Section  { return SectionSystem }
func (GameSaved) Section() Section      { return SectionSystem }
func (GameLoaded) Section() Section     { return SectionSystem }
func (SavedGamesList) Section() Section { return SectionSystem }
func (Help) Section() Section           { return SectionSystem }
func (QuitSummary) Section() Section    { return SectionSystem }

// Default priorities order the WorldResponse band: triggered text first,
// then harm/heal, NPC movement wrapped around speech, deaths last.

func (TriggeredEvent) DefaultPriority() int  { return -30 }
func (CharacterHarmed) DefaultPriority() int { return -20 }
func (CharacterHealed) DefaultPriority() int { return -10 }
func (NpcEntered) DefaultPriority() int      { return 5 }
func (NpcSpeech) DefaultPriority() int       { return 10 }
func (NpcLeft) DefaultPriority() int         { return 15 }
func (CharacterDeath) DefaultPriority() int  { return 100 }

func (TransitionMessage) DefaultPriority() int    { return 0 }
func (RoomDescription) DefaultPriority() int      { return 0 }
func (RoomOverlays) DefaultPriority() int         { return 0 }
func (RoomItems) DefaultPriority() int            { return 0 }
func (RoomExits) DefaultPriority() int            { return 0 }
func (RoomNpcs) DefaultPriority() int             { return 0 }
func (ActionSuccess) DefaultPriority() int        { return 0 }
func (ActionFailure) DefaultPriority() int        { return 0 }
func (ErrorMessage) DefaultPriority() int         { return 0 }
func (ItemDescription) DefaultPriority() int      { return 0 }
func (ItemText) DefaultPriority() int             { return 0 }
func (ItemConsumableStatus) DefaultPriority() int { return 0 }
func (ItemContents) DefaultPriority() int         { return 0 }
func (Inventory) DefaultPriority() int            { return 0 }
func (NpcDescription) DefaultPriority() int       { return 0 }
func (NpcInventory) DefaultPriority() int         { return 0 }
func (ActiveGoal) DefaultPriority() int           { return 0 }
func (CompleteGoal) DefaultPriority() int         { return 0 }
func (FailedGoal) DefaultPriority() int           { return 0 }
func (PointsAwarded) DefaultPriority() int        { return 0 }
func (StatusChange) DefaultPriority() int         { return 0 }
func (AmbientEvent) DefaultPriority() int         { return 0 }
func (EngineMessage) DefaultPriority() int        { return 0 }
func (GameSaved) DefaultPriority() int            { return 0 }
func (GameLoaded) DefaultPriority() int           { return 0 }
func (SavedGamesList) DefaultPriority() int       { return 0 }
func (Help) DefaultPriority() int                 { return 0 }
func (QuitSummary) DefaultPriority() int          { return 0 }

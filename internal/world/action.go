package world

// ActionKind tags a scripted mutation.
type ActionKind string

const (
	// Text and flavor.
	ActShowMessage   ActionKind = "showMessage"
	ActDenyRead      ActionKind = "denyRead"
	ActSpinnerMsg    ActionKind = "spinnerMessage"
	ActNpcSays       ActionKind = "npcSays"
	ActNpcSaysRandom ActionKind = "npcSaysRandom"

	// Flags.
	ActAddFlag     ActionKind = "addFlag"
	ActAdvanceFlag ActionKind = "advanceFlag"
	ActResetFlag   ActionKind = "resetFlag"
	ActRemoveFlag  ActionKind = "removeFlag"

	// Scoring.
	ActAwardPoints ActionKind = "awardPoints"

	// Health.
	ActDamagePlayer    ActionKind = "damagePlayer"
	ActDamagePlayerOT  ActionKind = "damagePlayerOT"
	ActHealPlayer      ActionKind = "healPlayer"
	ActHealPlayerOT    ActionKind = "healPlayerOT"
	ActRemovePlayerFx  ActionKind = "removePlayerEffect"
	ActDamageNpc       ActionKind = "damageNpc"
	ActDamageNpcOT     ActionKind = "damageNpcOT"
	ActHealNpc         ActionKind = "healNpc"
	ActHealNpcOT       ActionKind = "healNpcOT"
	ActRemoveNpcFx     ActionKind = "removeNpcEffect"

	// NPC state.
	ActSetNpcActive     ActionKind = "setNpcActive"
	ActSetNpcState      ActionKind = "setNpcState"
	ActNpcRefuseItem    ActionKind = "npcRefuseItem"
	ActGiveItemToPlayer ActionKind = "giveItemToPlayer"

	// Location.
	ActPushPlayerTo      ActionKind = "pushPlayerTo"
	ActSpawnItemHere     ActionKind = "spawnItemCurrentRoom"
	ActSpawnItemInRoom   ActionKind = "spawnItemInRoom"
	ActSpawnItemInPocket ActionKind = "spawnItemInInventory"
	ActSpawnItemInside   ActionKind = "spawnItemInContainer"
	ActSpawnNpcInRoom    ActionKind = "spawnNpcInRoom"
	ActDespawnItem       ActionKind = "despawnItem"
	ActDespawnNpc        ActionKind = "despawnNpc"

	// Item mutation.
	ActReplaceItem       ActionKind = "replaceItem"
	ActReplaceDropItem   ActionKind = "replaceDropItem"
	ActLockItem          ActionKind = "lockItem"
	ActUnlockItem        ActionKind = "unlockItem"
	ActSetContainerState ActionKind = "setContainerState"
	ActSetItemDesc       ActionKind = "setItemDescription"
	ActSetItemMovability ActionKind = "setItemMovability"
	ActModifyItem        ActionKind = "modifyItem"

	// Room and exit.
	ActLockExit         ActionKind = "lockExit"
	ActUnlockExit       ActionKind = "unlockExit"
	ActRevealExit       ActionKind = "revealExit"
	ActSetBarredMessage ActionKind = "setBarredMessage"
	ActModifyRoom       ActionKind = "modifyRoom"
	ActModifyNpc        ActionKind = "modifyNpc"

	// Spinner.
	ActAddSpinnerWedge ActionKind = "addSpinnerWedge"

	// Scheduling and composition.
	ActScheduleIn   ActionKind = "scheduleIn"
	ActScheduleOn   ActionKind = "scheduleOn"
	ActScheduleInIf ActionKind = "scheduleInIf"
	ActScheduleOnIf ActionKind = "scheduleOnIf"
	ActConditional  ActionKind = "conditional"

	// Scripting hook.
	ActRunScript ActionKind = "runScript"
)

// ItemPatch is a partial item update; nil fields are left untouched.
type ItemPatch struct {
	Name            *string         `yaml:"name,omitempty"`
	Desc            *string         `yaml:"desc,omitempty"`
	Text            *string         `yaml:"text,omitempty"`
	Movability      *Movability     `yaml:"movability,omitempty"`
	ContainerState  *ContainerState `yaml:"container_state,omitempty"`
	RemoveContainer bool            `yaml:"remove_container_state,omitempty"`
	AddAbilities    []Ability       `yaml:"add_abilities,omitempty"`
	RemoveAbilities []Ability       `yaml:"remove_abilities,omitempty"`
}

// ExitPatch describes an exit added by a room patch.
type ExitPatch struct {
	Direction     string   `yaml:"direction"`
	To            Id       `yaml:"to"`
	Hidden        bool     `yaml:"hidden,omitempty"`
	Locked        bool     `yaml:"locked,omitempty"`
	RequiredFlags []string `yaml:"required_flags,omitempty"`
	RequiredItems []Id     `yaml:"required_items,omitempty"`
	BarredMessage string   `yaml:"barred_message,omitempty"`
}

// RoomPatch is a partial room update. RemoveExits deletes direction keys;
// AddExits inserts or replaces them.
type RoomPatch struct {
	Name        *string     `yaml:"name,omitempty"`
	Desc        *string     `yaml:"desc,omitempty"`
	RemoveExits []string    `yaml:"remove_exits,omitempty"`
	AddExits    []ExitPatch `yaml:"add_exits,omitempty"`
}

// DialogueLine adds one line to an NPC's dialogue for a state.
type DialogueLine struct {
	State NpcState `yaml:"state"`
	Line  string   `yaml:"line"`
}

// MovementPatch is a partial NPC movement update.
type MovementPatch struct {
	Route       []Id        `yaml:"route,omitempty"`
	RandomRooms []Id        `yaml:"random_rooms,omitempty"`
	Timing      *TimingKind `yaml:"timing,omitempty"`
	Turns       *int        `yaml:"turns,omitempty"`
	OnTurn      *int        `yaml:"on_turn,omitempty"`
	Active      *bool       `yaml:"active,omitempty"`
	Loop        *bool       `yaml:"loop,omitempty"`
}

// NpcPatch is a partial NPC update.
type NpcPatch struct {
	Name     *string        `yaml:"name,omitempty"`
	Desc     *string        `yaml:"desc,omitempty"`
	State    *NpcState      `yaml:"state,omitempty"`
	AddLines []DialogueLine `yaml:"add_lines,omitempty"`
	Movement *MovementPatch `yaml:"movement,omitempty"`
}

// FlagSpec describes a flag to create in an addFlag action.
type FlagSpec struct {
	Name     string `yaml:"name"`
	Sequence bool   `yaml:"sequence,omitempty"`
	End      *int   `yaml:"end,omitempty"`
}

// OnFalseKind tags a scheduled event's behavior when its condition fails.
type OnFalseKind string

const (
	OnFalseCancel        OnFalseKind = "cancel"
	OnFalseRetryAfter    OnFalseKind = "retryAfter"
	OnFalseRetryNextTurn OnFalseKind = "retryNextTurn"
)

// OnFalsePolicy controls retry behavior for conditional scheduled events.
// The zero value cancels.
type OnFalsePolicy struct {
	Kind  OnFalseKind `yaml:"kind,omitempty"`
	Turns int         `yaml:"turns,omitempty"`
}

// Action is one scripted mutation in a trigger or scheduled event. Only the
// fields relevant to Kind are populated. Priority overrides the display
// ordering of whatever view item the action emits; nil uses the item's
// per-kind default.
type Action struct {
	Kind     ActionKind `yaml:"kind"`
	Priority *int       `yaml:"priority,omitempty"`

	Text      string `yaml:"text,omitempty"`
	Reason    string `yaml:"reason,omitempty"`
	Quote     string `yaml:"quote,omitempty"`
	Cause     string `yaml:"cause,omitempty"`
	Note      string `yaml:"note,omitempty"`
	Direction string `yaml:"direction,omitempty"`
	Flag      string `yaml:"flag,omitempty"`
	Function  string `yaml:"function,omitempty"`

	Amount int `yaml:"amount,omitempty"`
	Turns  int `yaml:"turns,omitempty"`
	Width  int `yaml:"width,omitempty"`
	OnTurn int `yaml:"on_turn,omitempty"`

	Item      Id `yaml:"item,omitempty"`
	NewItem   Id `yaml:"new_item,omitempty"`
	Container Id `yaml:"container,omitempty"`
	Room      Id `yaml:"room,omitempty"`
	FromRoom  Id `yaml:"from_room,omitempty"`
	ToRoom    Id `yaml:"to_room,omitempty"`
	Npc       Id `yaml:"npc,omitempty"`
	Spinner   Id `yaml:"spinner,omitempty"`

	Active         bool            `yaml:"active,omitempty"`
	NpcState       NpcState        `yaml:"npc_state,omitempty"`
	ContainerState *ContainerState `yaml:"container_state,omitempty"`
	Movability     *Movability     `yaml:"movability,omitempty"`
	FlagSpec       *FlagSpec       `yaml:"flag_spec,omitempty"`

	ItemPatch *ItemPatch `yaml:"item_patch,omitempty"`
	RoomPatch *RoomPatch `yaml:"room_patch,omitempty"`
	NpcPatch  *NpcPatch  `yaml:"npc_patch,omitempty"`

	Condition *CondExpr     `yaml:"condition,omitempty"`
	OnFalse   OnFalsePolicy `yaml:"on_false,omitempty"`
	Actions   []Action      `yaml:"actions,omitempty"`
}

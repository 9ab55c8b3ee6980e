package world

import "github.com/google/uuid"

// Id identifies every room, item, NPC, goal, spinner and trigger in a world.
// Authored content uses stable human-readable ids from the definition file;
// entities created at runtime without one get a generated token.
type Id string

// NewId returns a generated unique id for entities the author never named.
func NewId() Id {
	return Id(uuid.NewString())
}

package core

import "github.com/google/uuid"

// ComponentId identifies a component within a scene. It is a plain value
// (not a pointer), so a Ray carrying its source's ComponentId in history
// never forms a reference cycle back into the scene.
type ComponentId string

// NewComponentId generates a fresh random component id.
func NewComponentId() ComponentId {
	return ComponentId(uuid.NewString())
}

// ParseComponentId validates that s looks like a scene-loader-supplied id.
// The core does not require ids to be UUIDs — any non-empty string is
// accepted, since the external scene loader owns id assignment — but when a
// loader does hand us a UUID this round-trips it cleanly.
func ParseComponentId(s string) ComponentId {
	return ComponentId(s)
}

func (id ComponentId) String() string {
	return string(id)
}

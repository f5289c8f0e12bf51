// Package types holds small shared domain types that cross layer
// boundaries without belonging to any single entity.
package types

// Role is the permission level attached to an actor
type Role string

// Roles
const (
	// RolePlayer may act on characters they own
	RolePlayer Role = "player"

	// RoleDM may act on any character
	RoleDM Role = "dm"
)

// Actor is the authenticated identity performing an operation. It is
// passed explicitly on every orchestrator call; there is no ambient
// identity.
type Actor struct {
	PlayerID string
	Role     Role
}

// CanActFor reports whether the actor may mutate a character owned by
// the given player
func (a Actor) CanActFor(ownerID string) bool {
	if a.Role == RoleDM {
		return true
	}
	return a.PlayerID != "" && a.PlayerID == ownerID
}

// IsDM reports whether the actor holds the DM role
func (a Actor) IsDM() bool {
	return a.Role == RoleDM
}

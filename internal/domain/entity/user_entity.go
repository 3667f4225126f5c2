package entity

import (
	"time"
)

// Roles a user may register with. The value is stored as-is and
// echoed back on auth responses; no endpoint enforces it.
const (
	RoleBuyer     = "buyer"
	RoleSeller    = "seller"
	RoleOrganizer = "organizer"
)

// User is the aggregate root for the identity domain.
// Password holds the one-way digest produced by the configured
// hasher, never the raw value.
type User struct {
	ID        string
	Email     string
	FullName  string
	Phone     string
	Password  string
	Role      string
	CreatedAt time.Time
}

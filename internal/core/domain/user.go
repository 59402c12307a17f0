package domain

import "time"

// Role of a platform account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSubscriber Role = "abonne"
)

// Roles lists the fixed filterable value set.
var Roles = []Role{RoleAdmin, RoleSubscriber}

// User is a read-only platform account record.
type User struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	Role             Role
	SubscriptionEnds *time.Time
	CreatedAt        *time.Time
}

package domain

// Role is a sender's standing in a chat, resolved per message against the
// live administrator list. Roles are never cached.
type Role int

const (
	RoleMember Role = iota
	RoleAdmin
	RoleOwner
)

// Privileged reports whether the role is exempt from moderation actions
func (r Role) Privileged() bool {
	return r == RoleAdmin || r == RoleOwner
}

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	default:
		return "member"
	}
}

package domain

// Role is the privilege tier of an account. Tiers form a total order:
// RoleUser < RoleModerator < RoleAdmin.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// roleRank drives every role comparison in the system. Guards must use
// AtLeast/CanActOn rather than comparing strings.
var roleRank = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r satisfies a requirement of at least min.
// Unknown roles satisfy nothing.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] != 0 && roleRank[r] >= roleRank[min]
}

// CanActOn reports whether an actor holding r may moderate an account
// holding target: moderators reach only plain users, admins reach everyone.
func (r Role) CanActOn(target Role) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleModerator:
		return target == RoleUser
	default:
		return false
	}
}

package user

// Role mirrors the role claim carried in the access token.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "USER"
)

// CanActForOthers reports whether the role may read or mutate records
// belonging to other employees (approvals, company-wide listings).
func (r Role) CanActForOthers() bool {
	return r == RoleAdmin || r == RoleHR
}

package domain

import "time"

// AccountRole tags an account with its place in the approval hierarchy.
type AccountRole string

const (
	RoleOfficeBearer       AccountRole = "OFFICE_BEARER"
	RoleApprovingAuthority AccountRole = "APPROVING_AUTHORITY"
	RoleAdmin              AccountRole = "ADMIN"
)

// Account models anyone who can act on grievances. Office bearers,
// approving authorities and admins share one table with a role tag.
type Account struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	Role         AccountRole
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Worker is a department-scoped field worker grievances get assigned
// to. Workers do not authenticate.
type Worker struct {
	ID           string
	DepartmentID string
	Name         string
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleForLevel returns the role a given escalation level answers to.
func RoleForLevel(level int) AccountRole {
	switch {
	case level >= EscalationLevelAdmin:
		return RoleAdmin
	case level == EscalationLevelAuthority:
		return RoleApprovingAuthority
	default:
		return RoleOfficeBearer
	}
}

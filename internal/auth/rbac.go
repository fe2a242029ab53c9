package auth

import "strings"

type Role string

const (
	RoleStudent      Role = "STUDENT"
	RoleOrganization Role = "ORGANIZATION"
	RoleUniversity   Role = "UNIVERSITY"
	RoleAdmin        Role = "ADMIN"
)

// ParseRole maps a raw role string onto a known role. Unknown values
// come back as an empty role so callers can reject them instead of
// silently granting a default.
func ParseRole(role string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case string(RoleStudent):
		return RoleStudent, true
	case string(RoleOrganization):
		return RoleOrganization, true
	case string(RoleUniversity):
		return RoleUniversity, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}

func HasRole(role string, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	current, ok := ParseRole(role)
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}

func IsAdmin(role string) bool {
	current, ok := ParseRole(role)
	return ok && current == RoleAdmin
}

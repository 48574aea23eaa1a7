package entity

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AllRoles lists the roles that must exist in the store.
var AllRoles = []Role{RoleAdmin, RoleUser}

// ParseRole trims and upper-cases s. An empty value means RoleUser.
func ParseRole(s string) (Role, error) {
	normalized := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch normalized {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return normalized, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be USER or ADMIN", s)
	}
}

func (r Role) String() string {
	return string(r)
}

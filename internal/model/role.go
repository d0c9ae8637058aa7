package model

import (
	"sort"
	"strings"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// RoleSet is the parsed form of the comma-joined roles column on users.
type RoleSet map[Role]struct{}

func ParseRoleSet(raw string) RoleSet {
	set := RoleSet{}
	for _, part := range strings.Split(raw, ",") {
		role := Role(strings.TrimSpace(part))
		if role.Valid() {
			set[role] = struct{}{}
		}
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, role := range roles {
		if s.Has(role) {
			return true
		}
	}
	return false
}

func (s RoleSet) Add(role Role) {
	if role.Valid() {
		s[role] = struct{}{}
	}
}

func (s RoleSet) Remove(role Role) {
	delete(s, role)
}

// String renders the set back to the storage form, sorted for stability.
func (s RoleSet) String() string {
	names := make([]string, 0, len(s))
	for role := range s {
		names = append(names, string(role))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

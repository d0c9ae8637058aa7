package model

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID   uint
	Username string
	Roles    RoleSet
}

func (p Principal) IsAdmin() bool {
	return p.Roles.Has(RoleAdmin)
}

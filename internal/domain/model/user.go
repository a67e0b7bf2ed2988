package model

import "time"

// User represents an account of the marketplace.
type User struct {
	ID              int64
	Login           string
	PasswordHash    string
	Permissions     PermissionSet
	DNI             string
	DNIDocumentPath string
	CreatedAt       time.Time
}

// Can reports whether the user holds given permission.
func (u *User) Can(p Permission) bool {
	return u != nil && u.Permissions.Has(p)
}

// IsElevated reports whether the user holds any organization-wide role.
func (u *User) IsElevated() bool {
	return u != nil && u.Permissions.HasAny(ElevatedPermissions)
}

package model

import "sort"

// Permission is a role granted to a user. Permissions are independent flags,
// holding one never implies another.
type Permission string

const (
	PermissionSuperAdmin  Permission = "super_admin"
	PermissionCEO         Permission = "ceo"
	PermissionManagement  Permission = "management"
	PermissionLegal       Permission = "legal"
	PermissionHRManager   Permission = "hr_manager"
	PermissionShareholder Permission = "shareholder"
	PermissionMarketing   Permission = "marketing"
	PermissionStoreOwner  Permission = "store_owner"
	PermissionStaff       Permission = "staff"
	PermissionCustomer    Permission = "customer"
)

// ElevatedPermissions are organization-wide roles exempt from shop ownership checks.
var ElevatedPermissions = NewPermissionSet(
	PermissionSuperAdmin,
	PermissionCEO,
	PermissionManagement,
	PermissionLegal,
	PermissionHRManager,
	PermissionShareholder,
	PermissionMarketing,
)

// ShopPermissions are roles bound to particular shops.
var ShopPermissions = NewPermissionSet(PermissionStoreOwner, PermissionStaff)

// PermissionSet is a set of granted permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the permission is granted.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny reports whether at least one permission of other is granted.
func (s PermissionSet) HasAny(other PermissionSet) bool {
	for p := range other {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Slice returns permissions in a stable order.
func (s PermissionSet) Slice() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

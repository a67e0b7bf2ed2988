package model

// Shop is a vendor storefront owned by a store owner and operated by staff.
type Shop struct {
	ID       int64
	OwnerID  int64
	Name     string
	IsActive bool
	StaffIDs []int64
}

// HasStaff reports whether user is listed as shop staff.
func (s *Shop) HasStaff(userID int64) bool {
	for _, id := range s.StaffIDs {
		if id == userID {
			return true
		}
	}
	return false
}

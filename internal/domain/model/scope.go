package model

// ScopeKind enumerates order visibility scopes.
type ScopeKind int

const (
	// ScopeAllParents covers every aggregate order.
	ScopeAllParents ScopeKind = iota + 1
	// ScopeShopChildren covers child orders of a single shop.
	ScopeShopChildren
	// ScopeCustomerParents covers aggregate orders placed by a customer.
	ScopeCustomerParents
)

// OrderScope narrows order listing to what the caller may see.
type OrderScope struct {
	Kind       ScopeKind
	ShopID     int64
	CustomerID int64
}

// IncludesChildren reports whether listed orders come with their children.
func (s OrderScope) IncludesChildren() bool {
	return s.Kind == ScopeAllParents || s.Kind == ScopeCustomerParents
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page selects a window of a listing.
type Page struct {
	Limit  int
	Number int
}

// Normalize clamps page values to the supported range.
func (p Page) Normalize(defaultLimit int) Page {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Number <= 0 {
		p.Number = 1
	}
	return p
}

// Offset returns amount of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// OrderPage is a page of listed orders.
type OrderPage struct {
	Items []ParentOrder
	Total int64
	Page  Page
}

// LastPage returns number of the last page.
func (p *OrderPage) LastPage() int {
	if p.Page.Limit <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.Page.Limit) - 1) / int64(p.Page.Limit))
}

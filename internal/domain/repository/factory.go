package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Shops() ShopRepository
	Orders() OrderRepository
	OrderStatuses() OrderStatusRepository
	Marketing() MarketingRepository
	Products() ProductRepository
}

package repository

// Factory exposes domain repositories backed by a shared storage.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Notifications() NotificationRepository
}

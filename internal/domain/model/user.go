package model

import "time"

// User represents a registered storefront customer.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

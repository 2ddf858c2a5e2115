package model

import "time"

// Notification is a stored payment notification record.
type Notification struct {
	ID        string
	UserID    int64
	OrderID   string
	Title     string
	Body      string
	CreatedAt time.Time
}

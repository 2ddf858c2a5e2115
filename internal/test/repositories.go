package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/workhive/paymentd/internal/domain/errors"
	"github.com/workhive/paymentd/internal/domain/model"
)

// UserRepositoryStub keeps users in memory for use case tests.
type UserRepositoryStub struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*model.User
	Err    error
}

// NewUserRepositoryStub returns an empty in-memory user repository.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{nextID: 1, users: make(map[string]*model.User)}
}

// Create stores a new user, enforcing login uniqueness.
func (r *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if _, ok := r.users[login]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	u := &model.User{ID: r.nextID, Login: login, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.nextID++
	r.users[login] = u
	return u, nil
}

// GetByLogin fetches a stored user by login.
func (r *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[login]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return u, nil
}

// GetByID fetches a stored user by identifier.
func (r *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory for use case tests.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	orders map[string]*model.Order
	Err    error
}

// NewOrderRepositoryStub returns an empty in-memory order repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{orders: make(map[string]*model.Order)}
}

// Create stores a new order keyed by its identifier.
func (r *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.orders[order.ID]; ok {
		return domainErrors.ErrAlreadyExists
	}
	now := time.Now()
	cp := *order
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.orders[order.ID] = &cp
	return nil
}

// GetByID fetches a stored order.
func (r *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// ListByUser returns the user's orders sorted by creation time.
func (r *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus transitions an order, refusing to touch completed ones.
func (r *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	o, ok := r.orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if o.Status == model.OrderStatusCompleted {
		return domainErrors.ErrOrderCompleted
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

// SelectStalePending returns pending orders older than age.
func (r *OrderRepositoryStub) SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cutoff := time.Now().Add(-age)
	var out []model.Order
	for _, o := range r.orders {
		if o.Status == model.OrderStatusPending && !o.UpdatedAt.After(cutoff) {
			out = append(out, *o)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// NotificationRepositoryStub keeps notifications in memory for tests.
type NotificationRepositoryStub struct {
	mu            sync.Mutex
	Notifications []model.Notification
	Err           error
}

// NewNotificationRepositoryStub returns an empty notification repository.
func NewNotificationRepositoryStub() *NotificationRepositoryStub {
	return &NotificationRepositoryStub{}
}

// Create appends a notification.
func (r *NotificationRepositoryStub) Create(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *n
	cp.CreatedAt = time.Now()
	r.Notifications = append(r.Notifications, cp)
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []model.Notification
	for i := len(r.Notifications) - 1; i >= 0; i-- {
		if r.Notifications[i].UserID == userID {
			out = append(out, r.Notifications[i])
		}
	}
	return out, nil
}

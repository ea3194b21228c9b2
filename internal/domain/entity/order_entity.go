package entity

import "time"

// Order is a snapshot of an Item taken when the user started a purchase.
// UserID is nil once the owning user has been deleted.
type Order struct {
	ID         int64
	Name       string
	Intro      string
	Price      int64
	Active     bool
	UserID     *int64
	PaymentRef string
	CreatedAt  time.Time
}

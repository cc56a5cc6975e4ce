package model

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          int64
	Name        string
	Description string
	Expired     Expiry
}

// InitMeta sets the provisional lifecycle window for a category
// created at now.
func (c *Category) InitMeta(now time.Time) {
	c.Expired = NewDraftExpiry(now)
}

// Lifecycle implements Record.
func (c *Category) Lifecycle() Expiry {
	return c.Expired
}

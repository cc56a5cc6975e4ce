package model

import "time"

// Product represents a catalog product. Its name seeds the storage key
// of the product image, so a rename implies an asset rename.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  int64
	Modified    time.Time
	Expired     Expiry

	// CategoryName is the joined category name, populated by detail
	// queries only.
	CategoryName string
}

// InitMeta sets the modification timestamp and the provisional
// lifecycle window for a product created at now.
func (p *Product) InitMeta(now time.Time) {
	p.Modified = now
	p.Expired = NewDraftExpiry(now)
}

// Touch records a content change at now. Modified doubles as the
// cache-busting version token in draft-phase image URLs.
func (p *Product) Touch(now time.Time) {
	p.Modified = now
}

// Lifecycle implements Record.
func (p *Product) Lifecycle() Expiry {
	return p.Expired
}

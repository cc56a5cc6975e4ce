package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Phase is the lifecycle phase of a catalog record at a given moment.
type Phase string

const (
	// PhaseDraft marks a freshly created record still inside its
	// provisional window. Drafts appear in listings but cannot be
	// edited or deleted.
	PhaseDraft Phase = "draft"

	// PhaseLive marks a permanently confirmed record.
	PhaseLive Phase = "live"

	// PhaseRetired marks a record whose expiry has passed. Retired
	// records are treated as absent everywhere.
	PhaseRetired Phase = "retired"
)

// DraftWindow is how long a newly created record stays provisional
// before it silently expires.
const DraftWindow = 24 * time.Hour

// Expiry is the lifecycle timestamp shared by categories and products.
// An infinite expiry marks a permanently live record and is stored as
// SQL NULL; any finite value is the instant the record retires.
type Expiry struct {
	Time  time.Time
	Valid bool // false means the record never expires
}

// NeverExpires returns the infinite expiry.
func NeverExpires() Expiry {
	return Expiry{}
}

// ExpireAt returns a finite expiry at t.
func ExpireAt(t time.Time) Expiry {
	return Expiry{Time: t, Valid: true}
}

// NewDraftExpiry returns the provisional expiry for a record created
// at now.
func NewDraftExpiry(now time.Time) Expiry {
	return ExpireAt(now.Add(DraftWindow))
}

// IsInfinite reports whether the record never expires.
func (e Expiry) IsInfinite() bool {
	return !e.Valid
}

// PhaseAt resolves the lifecycle phase at the given moment.
func (e Expiry) PhaseAt(now time.Time) Phase {
	switch {
	case !e.Valid:
		return PhaseLive
	case now.Before(e.Time):
		return PhaseDraft
	default:
		return PhaseRetired
	}
}

// Scan implements sql.Scanner. NULL scans as the infinite expiry.
func (e *Expiry) Scan(value any) error {
	if value == nil {
		*e = Expiry{}
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Expiry", value)
	}
	*e = Expiry{Time: t, Valid: true}
	return nil
}

// Value implements driver.Valuer. The infinite expiry is stored as NULL.
func (e Expiry) Value() (driver.Value, error) {
	if !e.Valid {
		return nil, nil
	}
	return e.Time, nil
}

// Record is a lifecycle-bearing catalog record. Categories and
// products share one state machine through this capability.
type Record interface {
	Lifecycle() Expiry
}

// PhaseOf resolves a record's lifecycle phase at the given moment.
func PhaseOf(r Record, now time.Time) Phase {
	return r.Lifecycle().PhaseAt(now)
}

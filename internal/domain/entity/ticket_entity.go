package entity

import "time"

// Listing statuses. A ticket starts pending, an organizer decision
// moves it to verified or rejected, and a purchase deletes it.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Ticket is a resale listing held by the ledger.
//
// EventDate is kept as the seller-supplied string; the ledger does
// not parse or validate it. DecidedAt is nil until an organizer
// verifies or rejects the listing.
type Ticket struct {
	ID            int64
	Name          string
	EventDate     string
	Venue         string
	OriginalPrice float64
	ResalePrice   float64
	SellerEmail   string
	QRCode        string
	Verified      bool
	DecidedAt     *time.Time
	CreatedAt     time.Time
}

package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/jioni/internal/domain/entity"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrTicketNotAvailable covers both unknown ids and listings that
	// exist but were never verified; purchase does not distinguish them.
	ErrTicketNotAvailable = errors.New("ticket not found or not verified")
)

// LedgerStats are the aggregate counts computed over the current
// ledger contents. User counts live with the identity store.
type LedgerStats struct {
	TotalTickets    int64
	VerifiedTickets int64
	PendingCount    int64
}

// TicketLedger holds every listing ever created and derives the
// pending queue and the purchasable set from it.
//
// CreateListing, Decide, and Purchase must be atomic with respect to
// each other: concurrent purchases of one id yield exactly one
// success, and a purchase racing a decision never sells an
// unverified ticket.
type TicketLedger interface {
	// CreateListing assigns the next sequential id, appends the
	// listing to the ledger, and queues it for verification. The id
	// is written back to t.
	CreateListing(ctx context.Context, t *entity.Ticket) error

	// ListAvailable returns verified listings in insertion order.
	ListAvailable(ctx context.Context) ([]*entity.Ticket, error)

	// ListPending returns listings awaiting a decision in insertion
	// order.
	ListPending(ctx context.Context) ([]*entity.Ticket, error)

	// Decide records the verification outcome and removes the listing
	// from the pending queue whether it was approved or not. Removal
	// is idempotent; a second decision on the same id only updates
	// the flag and timestamp. Fails with ErrTicketNotFound for
	// unknown ids.
	Decide(ctx context.Context, id int64, approved bool) (*entity.Ticket, error)

	// Purchase removes a verified listing from the ledger and returns
	// it. Fails with ErrTicketNotAvailable if the id is unknown, the
	// listing is unverified, or it was already bought.
	Purchase(ctx context.Context, id int64) (*entity.Ticket, error)

	// Stats counts the ledger contents on demand.
	Stats(ctx context.Context) (LedgerStats, error)
}

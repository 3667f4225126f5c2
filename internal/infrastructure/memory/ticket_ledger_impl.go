package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/jioni/internal/domain/entity"
	"github.com/oksasatya/jioni/internal/domain/repository"
)

// TicketLedger is the in-memory reference implementation of the
// ledger. One mutex covers both the ledger slice and the pending
// queue, so a decision racing a purchase on the same id can never
// sell an unverified ticket, and two purchases of one id yield
// exactly one success.
//
// Ids are monotonic and never reused, even after a purchase removes
// an entry.
type TicketLedger struct {
	mu      sync.RWMutex
	nextID  int64
	tickets []*entity.Ticket
	pending []*entity.Ticket
}

func NewTicketLedger() *TicketLedger {
	return &TicketLedger{nextID: 1}
}

func (l *TicketLedger) CreateListing(ctx context.Context, t *entity.Ticket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t.ID = l.nextID
	l.nextID++

	cp := *t
	l.tickets = append(l.tickets, &cp)
	l.pending = append(l.pending, &cp)
	return nil
}

func (l *TicketLedger) ListAvailable(ctx context.Context) ([]*entity.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*entity.Ticket, 0, len(l.tickets))
	for _, t := range l.tickets {
		if t.Verified {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (l *TicketLedger) ListPending(ctx context.Context) ([]*entity.Ticket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*entity.Ticket, 0, len(l.pending))
	for _, t := range l.pending {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (l *TicketLedger) Decide(ctx context.Context, id int64, approved bool) (*entity.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.findLocked(id)
	if t == nil {
		return nil, repository.ErrTicketNotFound
	}

	now := time.Now().UTC()
	t.Verified = approved
	t.DecidedAt = &now

	// Idempotent: the id may already be gone from the queue.
	for i, p := range l.pending {
		if p.ID == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			break
		}
	}

	cp := *t
	return &cp, nil
}

func (l *TicketLedger) Purchase(ctx context.Context, id int64) (*entity.Ticket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, t := range l.tickets {
		if t.ID == id && t.Verified {
			l.tickets = append(l.tickets[:i], l.tickets[i+1:]...)
			return t, nil
		}
	}
	return nil, repository.ErrTicketNotAvailable
}

func (l *TicketLedger) Stats(ctx context.Context) (repository.LedgerStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := repository.LedgerStats{
		TotalTickets: int64(len(l.tickets)),
		PendingCount: int64(len(l.pending)),
	}
	for _, t := range l.tickets {
		if t.Verified {
			st.VerifiedTickets++
		}
	}
	return st, nil
}

// findLocked returns the ledger entry for id or nil; callers hold mu.
func (l *TicketLedger) findLocked(id int64) *entity.Ticket {
	for _, t := range l.tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

var _ repository.TicketLedger = (*TicketLedger)(nil)

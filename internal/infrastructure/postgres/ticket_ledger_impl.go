package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/jioni/internal/domain/entity"
	"github.com/oksasatya/jioni/internal/domain/repository"
)

const ticketColumns = `id, name, event_date, venue, original_price, resale_price,
	seller_email, qr_code, verified, decided_at, created_at`

// TicketLedger is the postgres-backed ledger. Pending queue
// membership is a column rather than a separate table: a row is
// pending until a decision flips the flag, and a purchase deletes
// the row outright. Decide and Purchase are single statements, so
// the database serializes racing calls and a ticket can only be
// sold once.
type TicketLedger struct {
	pool *pgxpool.Pool
}

func NewTicketLedger(pool *pgxpool.Pool) *TicketLedger {
	return &TicketLedger{pool: pool}
}

func (l *TicketLedger) CreateListing(ctx context.Context, t *entity.Ticket) error {
	row := l.pool.QueryRow(ctx, `
		INSERT INTO tickets (name, event_date, venue, original_price, resale_price,
			seller_email, qr_code, verified, pending, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, TRUE, $8)
		RETURNING id
	`, t.Name, t.EventDate, t.Venue, t.OriginalPrice, t.ResalePrice,
		t.SellerEmail, t.QRCode, t.CreatedAt)

	return row.Scan(&t.ID)
}

func (l *TicketLedger) ListAvailable(ctx context.Context) ([]*entity.Ticket, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE verified
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (l *TicketLedger) ListPending(ctx context.Context) ([]*entity.Ticket, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE pending
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (l *TicketLedger) Decide(ctx context.Context, id int64, approved bool) (*entity.Ticket, error) {
	row := l.pool.QueryRow(ctx, `
		UPDATE tickets
		SET verified = $2, decided_at = $3, pending = FALSE
		WHERE id = $1
		RETURNING `+ticketColumns+`
	`, id, approved, time.Now().UTC())

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

func (l *TicketLedger) Purchase(ctx context.Context, id int64) (*entity.Ticket, error) {
	row := l.pool.QueryRow(ctx, `
		DELETE FROM tickets
		WHERE id = $1 AND verified
		RETURNING `+ticketColumns+`
	`, id)

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrTicketNotAvailable
		}
		return nil, err
	}
	return t, nil
}

func (l *TicketLedger) Stats(ctx context.Context) (repository.LedgerStats, error) {
	var st repository.LedgerStats

	row := l.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE verified),
			COUNT(*) FILTER (WHERE pending)
		FROM tickets
	`)
	if err := row.Scan(&st.TotalTickets, &st.VerifiedTickets, &st.PendingCount); err != nil {
		return repository.LedgerStats{}, err
	}
	return st, nil
}

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	t := &entity.Ticket{}
	if err := row.Scan(&t.ID, &t.Name, &t.EventDate, &t.Venue, &t.OriginalPrice,
		&t.ResalePrice, &t.SellerEmail, &t.QRCode, &t.Verified,
		&t.DecidedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func collectTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	out := make([]*entity.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repository.TicketLedger = (*TicketLedger)(nil)

package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jioni/internal/domain/entity"
	repo "github.com/oksasatya/jioni/internal/domain/repository"
	"github.com/oksasatya/jioni/internal/monitoring"
	"github.com/oksasatya/jioni/pkg/helpers"
)

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketNotAvailable = errors.New("ticket not found or not verified")
)

// TicketService drives the listing lifecycle: submission, the
// organizer decision, and purchase. Elasticsearch indexing is
// best-effort and only happens when a client is wired in.
type TicketService struct {
	Ledger  repo.TicketLedger
	Users   repo.UserRepository
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewTicketService(ledger repo.TicketLedger, users repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *TicketService {
	return &TicketService{Ledger: ledger, Users: users, Logger: logger, ES: es, ESIndex: esIndex}
}

// TicketView is the wire shape of a listing. verification_date is
// absent until an organizer decision lands.
type TicketView struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	EventDate        string  `json:"event_date"`
	Venue            string  `json:"venue"`
	OriginalPrice    float64 `json:"original_price"`
	ResalePrice      float64 `json:"resale_price"`
	SellerEmail      string  `json:"seller_email"`
	QRCode           string  `json:"qr_code"`
	Verified         bool    `json:"verified"`
	VerificationDate *string `json:"verification_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func NewTicketView(t *entity.Ticket) TicketView {
	v := TicketView{
		ID:            t.ID,
		Name:          t.Name,
		EventDate:     t.EventDate,
		Venue:         t.Venue,
		OriginalPrice: t.OriginalPrice,
		ResalePrice:   t.ResalePrice,
		SellerEmail:   t.SellerEmail,
		QRCode:        t.QRCode,
		Verified:      t.Verified,
		CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DecidedAt != nil {
		s := t.DecidedAt.UTC().Format(time.RFC3339Nano)
		v.VerificationDate = &s
	}
	return v
}

func toViews(tickets []*entity.Ticket) []TicketView {
	out := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketView(t))
	}
	return out
}

type CreateListingInput struct {
	Name          string
	EventDate     string
	Venue         string
	OriginalPrice float64
	ResalePrice   float64
	SellerEmail   string
}

// CreateListing generates the listing QR code and queues the ticket
// for verification.
func (s *TicketService) CreateListing(ctx context.Context, in CreateListingInput) (*entity.Ticket, error) {
	qr, err := helpers.NewListingCode()
	if err != nil {
		return nil, err
	}

	t := &entity.Ticket{
		Name:          in.Name,
		EventDate:     in.EventDate,
		Venue:         in.Venue,
		OriginalPrice: in.OriginalPrice,
		ResalePrice:   in.ResalePrice,
		SellerEmail:   in.SellerEmail,
		QRCode:        qr,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Ledger.CreateListing(ctx, t); err != nil {
		return nil, err
	}

	monitoring.TrackListing()
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"ticket_id": t.ID, "seller": t.SellerEmail}).Info("listing created")
	}
	return t, nil
}

// Available returns verified listings in insertion order.
func (s *TicketService) Available(ctx context.Context) ([]TicketView, error) {
	tickets, err := s.Ledger.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(tickets), nil
}

// Pending returns listings still awaiting an organizer decision.
func (s *TicketService) Pending(ctx context.Context) ([]TicketView, error) {
	tickets, err := s.Ledger.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(tickets), nil
}

// Decide applies a verification outcome to a listing. Verified
// listings are indexed for search; rejected ones are dropped from
// the index in case an earlier decision put them there.
func (s *TicketService) Decide(ctx context.Context, id int64, outcome string) error {
	approved := outcome == entity.StatusVerified

	t, err := s.Ledger.Decide(ctx, id, approved)
	if err != nil {
		if errors.Is(err, repo.ErrTicketNotFound) {
			return ErrTicketNotFound
		}
		return err
	}

	monitoring.TrackDecision(outcome)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"ticket_id": id, "outcome": outcome}).Info("listing decided")
	}

	if approved {
		_ = s.indexListing(ctx, t)
	} else {
		_ = s.deleteListingDoc(ctx, id)
	}
	return nil
}

// PurchaseResult carries everything the purchase response needs.
type PurchaseResult struct {
	Ticket      TicketView
	NewQRCode   string
	PurchasedAt time.Time
}

// Purchase removes a verified listing from the ledger and mints the
// buyer's secure QR code.
func (s *TicketService) Purchase(ctx context.Context, id int64) (*PurchaseResult, error) {
	t, err := s.Ledger.Purchase(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrTicketNotAvailable) {
			return nil, ErrTicketNotAvailable
		}
		return nil, err
	}

	secure, err := helpers.NewSecureCode()
	if err != nil {
		return nil, err
	}

	monitoring.TrackPurchase()
	if s.Logger != nil {
		s.Logger.WithField("ticket_id", id).Info("listing purchased")
	}
	_ = s.deleteListingDoc(ctx, id)

	return &PurchaseResult{
		Ticket:      NewTicketView(t),
		NewQRCode:   secure,
		PurchasedAt: time.Now().UTC(),
	}, nil
}

// PlatformStats are the aggregate counts reported by the stats
// endpoint, computed on demand.
type PlatformStats struct {
	TotalTickets         int64 `json:"total_tickets"`
	VerifiedTickets      int64 `json:"verified_tickets"`
	PendingVerifications int64 `json:"pending_verifications"`
	TotalUsers           int64 `json:"total_users"`
}

func (s *TicketService) Stats(ctx context.Context) (*PlatformStats, error) {
	ledger, err := s.Ledger.Stats(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalTickets:         ledger.TotalTickets,
		VerifiedTickets:      ledger.VerifiedTickets,
		PendingVerifications: ledger.PendingCount,
		TotalUsers:           users,
	}, nil
}

func (s *TicketService) indexListing(ctx context.Context, t *entity.Ticket) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	b, _ := json.Marshal(NewTicketView(t))
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(t.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ticket_id", t.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("ticket_id", t.ID).Warn("es index response error")
	}
	return nil
}

func (s *TicketService) deleteListingDoc(ctx context.Context, id int64) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ticket_id", id).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// Search performs a simple multi_match over indexed listings and
// returns raw documents. Without an Elasticsearch client it returns
// an empty result rather than an error.
func (s *TicketService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "venue", "seller_email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

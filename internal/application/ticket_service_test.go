package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jioni/internal/domain/entity"
	"github.com/oksasatya/jioni/internal/infrastructure/memory"
)

func newTicketService() (*TicketService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	return NewTicketService(memory.NewTicketLedger(), users, nil, nil, ""), users
}

func listingInput(name string) CreateListingInput {
	return CreateListingInput{
		Name:          name,
		EventDate:     "2025-12-01",
		Venue:         "Arena",
		OriginalPrice: 100,
		ResalePrice:   80,
		SellerEmail:   "s@x.com",
	}
}

func TestCreateListingAssignsIDAndCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	tk, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), tk.ID)
	assert.Regexp(t, `^QR-[0-9A-F]{8}$`, tk.QRCode)
	assert.False(t, tk.Verified)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, tk.ID, pending[0].ID)
}

func TestListingLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	tk, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, tk.ID, entity.StatusVerified))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	available, err := svc.Available(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.True(t, available[0].Verified)
	require.NotNil(t, available[0].VerificationDate)

	res, err := svc.Purchase(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, tk.ID, res.Ticket.ID)
	assert.True(t, res.Ticket.Verified)
	assert.Regexp(t, `^SECURE-QR-[0-9A-F]{8}$`, res.NewQRCode)
	assert.NotEqual(t, tk.QRCode, res.NewQRCode)
	assert.WithinDuration(t, time.Now().UTC(), res.PurchasedAt, time.Minute)

	available, err = svc.Available(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = svc.Purchase(ctx, tk.ID)
	assert.ErrorIs(t, err, ErrTicketNotAvailable)
}

func TestDecideUnknownListing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	err := svc.Decide(ctx, 42, entity.StatusVerified)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestRejectedListingStaysUnsellable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	tk, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, tk.ID, entity.StatusRejected))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	available, err := svc.Available(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = svc.Purchase(ctx, tk.ID)
	assert.ErrorIs(t, err, ErrTicketNotAvailable)
}

func TestPurchaseBeforeDecision(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	tk, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, tk.ID)
	assert.ErrorIs(t, err, ErrTicketNotAvailable)
}

func TestStatsCombineLedgerAndUsers(t *testing.T) {
	ctx := context.Background()
	svc, users := newTicketService()

	first, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)
	_, err = svc.CreateListing(ctx, listingInput("Concert B"))
	require.NoError(t, err)
	require.NoError(t, svc.Decide(ctx, first.ID, entity.StatusVerified))

	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.NoError(t, users.Create(ctx, &entity.User{ID: email, Email: email}))
	}

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &PlatformStats{
		TotalTickets:         2,
		VerifiedTickets:      1,
		PendingVerifications: 1,
		TotalUsers:           2,
	}, st)
}

func TestSearchWithoutElasticsearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	hits, err := svc.Search(ctx, "concert", 10)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestTicketViewWireShape(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTicketService()

	tk, err := svc.CreateListing(ctx, listingInput("Concert A"))
	require.NoError(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	b, err := json.Marshal(pending[0])
	require.NoError(t, err)

	// Undecided listings must not carry a verification_date key.
	assert.NotContains(t, string(b), "verification_date")
	assert.Contains(t, string(b), `"qr_code":"`+tk.QRCode+`"`)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	_, err = time.Parse(time.RFC3339Nano, m["created_at"].(string))
	assert.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, tk.ID, entity.StatusVerified))
	available, err := svc.Available(ctx)
	require.NoError(t, err)
	b, err = json.Marshal(available[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "verification_date")
}

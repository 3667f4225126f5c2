package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingPayload(name string) map[string]any {
	return map[string]any{
		"name":           name,
		"event_date":     "2026-09-12",
		"venue":          "Uhuru Gardens",
		"original_price": 50.0,
		"resale_price":   65.0,
		"seller_email":   "seller@example.com",
	}
}

func TestCreateTicket(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tickets", listingPayload("Sauti za Busara"))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Ticket submitted for verification", body["message"])
	assert.Equal(t, float64(1), body["ticket_id"])
	assert.Equal(t, "pending", body["status"])
}

func TestCreateTicketValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tickets", map[string]any{
		"venue":        "Uhuru Gardens",
		"seller_email": "seller@example.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "invalid payload", body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["event_date"])
}

func TestCreateTicketZeroPriceAllowed(t *testing.T) {
	env := newTestEnv(t)

	payload := listingPayload("Free Gig")
	payload["original_price"] = 0
	payload["resale_price"] = 0
	w := env.do(t, http.MethodPost, "/api/tickets", payload)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAvailableEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tickets": [], "count": 0}`, w.Body.String())
}

func TestPendingEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/pending-verifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pending": [], "count": 0}`, w.Body.String())
}

func TestTicketLifecycle(t *testing.T) {
	env := newTestEnv(t)

	created := env.do(t, http.MethodPost, "/api/tickets", listingPayload("Sauti za Busara"))
	require.Equal(t, http.StatusOK, created.Code)
	id := int64(decodeBody(t, created)["ticket_id"].(float64))

	// Listed as pending, not yet available.
	pending := decodeBody(t, env.do(t, http.MethodGet, "/api/pending-verifications", nil))
	assert.Equal(t, float64(1), pending["count"])
	available := decodeBody(t, env.do(t, http.MethodGet, "/api/tickets", nil))
	assert.Equal(t, float64(0), available["count"])

	// Approve it.
	verified := env.do(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/verify", id), map[string]any{
		"ticket_id": id,
		"status":    "verified",
	})
	require.Equal(t, http.StatusOK, verified.Code)
	verifiedBody := decodeBody(t, verified)
	assert.Equal(t, "Ticket verified", verifiedBody["message"])
	assert.Equal(t, float64(id), verifiedBody["ticket_id"])

	// Now available with a verification date, no longer pending.
	available = decodeBody(t, env.do(t, http.MethodGet, "/api/tickets", nil))
	require.Equal(t, float64(1), available["count"])
	item := available["tickets"].([]any)[0].(map[string]any)
	assert.Equal(t, true, item["verified"])
	assert.Regexp(t, regexp.MustCompile(`^QR-[0-9A-F]{8}$`), item["qr_code"])
	_, err := time.Parse(time.RFC3339Nano, item["verification_date"].(string))
	assert.NoError(t, err)

	pending = decodeBody(t, env.do(t, http.MethodGet, "/api/pending-verifications", nil))
	assert.Equal(t, float64(0), pending["count"])

	// Purchase removes it and reissues the QR code.
	purchased := env.do(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/purchase", id), nil)
	require.Equal(t, http.StatusOK, purchased.Code)
	purchasedBody := decodeBody(t, purchased)
	assert.Equal(t, "Purchase successful", purchasedBody["message"])
	assert.Regexp(t, regexp.MustCompile(`^SECURE-QR-[0-9A-F]{8}$`), purchasedBody["new_qr_code"])
	_, err = time.Parse(time.RFC3339Nano, purchasedBody["purchase_date"].(string))
	assert.NoError(t, err)
	ticket := purchasedBody["ticket"].(map[string]any)
	assert.Equal(t, float64(id), ticket["id"])
	assert.Equal(t, "Sauti za Busara", ticket["name"])

	// Sold tickets cannot be bought twice.
	again := env.do(t, http.MethodPost, fmt.Sprintf("/api/tickets/%d/purchase", id), nil)
	require.Equal(t, http.StatusNotFound, again.Code)
	assert.JSONEq(t, `{"error": "Ticket not found or not verified"}`, again.Body.String())
}

func TestVerifyReject(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/tickets", listingPayload("Sauti za Busara"))

	w := env.do(t, http.MethodPost, "/api/tickets/1/verify", map[string]any{
		"ticket_id": 1,
		"status":    "rejected",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ticket rejected", body["message"])

	// Rejected tickets never reach the marketplace and leave the queue.
	available := decodeBody(t, env.do(t, http.MethodGet, "/api/tickets", nil))
	assert.Equal(t, float64(0), available["count"])
	pending := decodeBody(t, env.do(t, http.MethodGet, "/api/pending-verifications", nil))
	assert.Equal(t, float64(0), pending["count"])

	purchase := env.do(t, http.MethodPost, "/api/tickets/1/purchase", nil)
	require.Equal(t, http.StatusNotFound, purchase.Code)
	assert.JSONEq(t, `{"error": "Ticket not found or not verified"}`, purchase.Body.String())
}

func TestVerifyUnknownTicket(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tickets/99/verify", map[string]any{
		"ticket_id": 99,
		"status":    "verified",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Ticket not found"}`, w.Body.String())
}

func TestVerifyInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/tickets", listingPayload("Sauti za Busara"))

	w := env.do(t, http.MethodPost, "/api/tickets/1/verify", map[string]any{
		"ticket_id": 1,
		"status":    "maybe",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "invalid payload", body["error"])
	details := body["details"].(map[string]any)
	assert.Equal(t, "must be one of: verified, rejected", details["status"])
}

func TestVerifyBadIDParam(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tickets/abc/verify", map[string]any{
		"ticket_id": 1,
		"status":    "verified",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "invalid ticket id"}`, w.Body.String())
}

func TestPurchaseUnverifiedTicket(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/tickets", listingPayload("Sauti za Busara"))

	w := env.do(t, http.MethodPost, "/api/tickets/1/purchase", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Ticket not found or not verified"}`, w.Body.String())
}

func TestPurchaseBadIDParam(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tickets/abc/purchase", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "invalid ticket id"}`, w.Body.String())
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/register", registerPayload("asha@example.com"))
	env.do(t, http.MethodPost, "/api/tickets", listingPayload("Show A"))
	env.do(t, http.MethodPost, "/api/tickets", listingPayload("Show B"))
	env.do(t, http.MethodPost, "/api/tickets/1/verify", map[string]any{"ticket_id": 1, "status": "verified"})

	w := env.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_tickets": 2,
		"verified_tickets": 1,
		"pending_verifications": 1,
		"total_users": 1
	}`, w.Body.String())
}

func TestSearchWithoutES(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/tickets/search?q=busara", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": [], "count": 0}`, w.Body.String())
}

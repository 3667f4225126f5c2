package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jioni/internal/application"
	"github.com/oksasatya/jioni/internal/domain/entity"
	"github.com/oksasatya/jioni/pkg/response"
	"github.com/oksasatya/jioni/pkg/validation"
)

type TicketHandler struct {
	Tickets *application.TicketService
	Logger  *logrus.Logger
}

func NewTicketHandler(tickets *application.TicketService, logger *logrus.Logger) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Logger: logger}
}

type createTicketRequest struct {
	Name          string  `json:"name" binding:"required"`
	EventDate     string  `json:"event_date" binding:"required"`
	Venue         string  `json:"venue" binding:"required"`
	OriginalPrice float64 `json:"original_price"`
	ResalePrice   float64 `json:"resale_price"`
	SellerEmail   string  `json:"seller_email" binding:"required,email"`
}

type verifyTicketRequest struct {
	TicketID int64  `json:"ticket_id"`
	Status   string `json:"status" binding:"required,oneof=verified rejected"`
}

func ticketIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ticket id", nil)
		return 0, false
	}
	return id, true
}

// Available GET /api/tickets
func (h *TicketHandler) Available(c *gin.Context) {
	views, err := h.Tickets.Available(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list tickets failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tickets": views,
		"count":   len(views),
	})
}

// Create POST /api/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Tickets.CreateListing(c.Request.Context(), application.CreateListingInput{
		Name:          req.Name,
		EventDate:     req.EventDate,
		Venue:         req.Venue,
		OriginalPrice: req.OriginalPrice,
		ResalePrice:   req.ResalePrice,
		SellerEmail:   req.SellerEmail,
	})
	if err != nil {
		h.fail(c, err, "create listing failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Ticket submitted for verification",
		"ticket_id": t.ID,
		"status":    entity.StatusPending,
	})
}

// Verify POST /api/tickets/:id/verify
func (h *TicketHandler) Verify(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}
	var req verifyTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Tickets.Decide(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, application.ErrTicketNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		h.fail(c, err, "verify ticket failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Ticket " + req.Status,
		"ticket_id": id,
	})
}

// Pending GET /api/pending-verifications
func (h *TicketHandler) Pending(c *gin.Context) {
	views, err := h.Tickets.Pending(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list pending failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pending": views,
		"count":   len(views),
	})
}

// Purchase POST /api/tickets/:id/purchase
func (h *TicketHandler) Purchase(c *gin.Context) {
	id, ok := ticketIDParam(c)
	if !ok {
		return
	}

	res, err := h.Tickets.Purchase(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrTicketNotAvailable) {
			response.Error(c, http.StatusNotFound, "Ticket not found or not verified", nil)
			return
		}
		h.fail(c, err, "purchase failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Purchase successful",
		"ticket":        res.Ticket,
		"new_qr_code":   res.NewQRCode,
		"purchase_date": res.PurchasedAt.UTC().Format(time.RFC3339Nano),
	})
}

// Stats GET /api/stats
func (h *TicketHandler) Stats(c *gin.Context) {
	stats, err := h.Tickets.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "stats failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Search GET /api/tickets/search?q=...&size=...
func (h *TicketHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Tickets.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		h.fail(c, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": hits,
		"count":   len(hits),
	})
}

func (h *TicketHandler) fail(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		h.Logger.WithError(err).Error(msg)
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/booking/internal/domain"
	"github.com/DukeRupert/booking/internal/service"
)

// IntegrationHandler serves the integration listing.
type IntegrationHandler struct {
	bookingService service.BookingService
	renderer       TemplateRenderer
	logger         *slog.Logger
}

// NewIntegrationHandler creates a new IntegrationHandler.
func NewIntegrationHandler(bookingService service.BookingService, renderer TemplateRenderer, logger *slog.Logger) *IntegrationHandler {
	return &IntegrationHandler{
		bookingService: bookingService,
		renderer:       renderer,
		logger:         logger,
	}
}

// RegisterRoutes registers the listing routes.
//
// Routes:
// - GET /             -> redirect to the listing
// - GET /integrations -> Index
func (h *IntegrationHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, domain.ListingPath, http.StatusFound)
	})
	mux.HandleFunc("GET "+domain.ListingPath, h.Index)
}

// Index lists the bookable integrations and shows any pending notification.
func (h *IntegrationHandler) Index(w http.ResponseWriter, r *http.Request) {
	integrations, err := h.bookingService.ListIntegrations(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	data := NewIntegrationListPageData(integrations, consumeFlash(w, r))
	h.renderer.RenderHTTP(w, "public/integrations", data)
}

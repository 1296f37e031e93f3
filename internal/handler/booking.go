// Package handler contains HTTP handlers for the booking application.
//
// This file implements the booking form handlers: showing the form, live
// field edits over htmx, and submission.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/form"

	"github.com/DukeRupert/booking/internal/csrf"
	"github.com/DukeRupert/booking/internal/domain"
	"github.com/DukeRupert/booking/internal/service"
)

// =============================================================================
// Form Input
// =============================================================================

// bookingFormInput is the decoded form body. The hidden selected_date holds
// the last accepted date and errors[field] the current error kinds, so a
// request can rebuild the snapshot the page was rendered from.
type bookingFormInput struct {
	Name         string            `form:"name"`
	Phone        string            `form:"phone"`
	Email        string            `form:"email"`
	Date         string            `form:"date"`
	SelectedDate string            `form:"selected_date"`
	Errors       map[string]string `form:"errors"`
}

func (in bookingFormInput) value(field domain.BookingField) string {
	switch field {
	case domain.BookingFieldName:
		return in.Name
	case domain.BookingFieldPhone:
		return in.Phone
	case domain.BookingFieldEmail:
		return in.Email
	case domain.BookingFieldDate:
		return in.Date
	}
	return ""
}

// snapshot rebuilds the form the client was showing. Error messages are
// regenerated from the kinds, never taken from the client.
func (in bookingFormInput) snapshot() domain.BookingForm {
	state := domain.BookingFormState{
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}
	if in.SelectedDate != "" {
		if d, err := domain.ParseBookingDate(in.SelectedDate, time.UTC); err == nil {
			state.Date = &d
		}
	}

	var errs domain.BookingFormErrors
	for key, kind := range in.Errors {
		field, ok := domain.ParseBookingField(key)
		if !ok {
			continue
		}
		errs = errs.With(field, domain.NewFieldError(field, domain.FieldErrorKind(kind)))
	}

	return domain.RestoreBookingForm(state, errs)
}

// =============================================================================
// Handler Configuration
// =============================================================================

// BookingHandler handles booking form requests.
type BookingHandler struct {
	bookingService service.BookingService
	renderer       TemplateRenderer
	decoder        *form.Decoder
	logger         *slog.Logger
	isSecure       bool
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(
	bookingService service.BookingService,
	renderer TemplateRenderer,
	logger *slog.Logger,
	isSecure bool,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		renderer:       renderer,
		decoder:        form.NewDecoder(),
		logger:         logger,
		isSecure:       isSecure,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the booking routes with the provided mux.
//
// Routes:
// - GET  /booking/{integrationId}                -> Show
// - POST /booking/{integrationId}                -> Submit (rate limited)
// - POST /booking/{integrationId}/fields/{field} -> EditField (htmx)
func (h *BookingHandler) RegisterRoutes(
	mux *http.ServeMux,
	protect func(http.Handler) http.Handler,
	limitSubmit func(http.Handler) http.Handler,
) {
	mux.HandleFunc("GET /booking/{integrationId}", h.Show)
	mux.Handle("POST /booking/{integrationId}", limitSubmit(protect(http.HandlerFunc(h.Submit))))
	mux.Handle("POST /booking/{integrationId}/fields/{field}", protect(http.HandlerFunc(h.EditField)))
}

// =============================================================================
// GET /booking/{integrationId}
// =============================================================================

// Show renders an empty form for the integration. Unknown integrations
// redirect to the listing.
func (h *BookingHandler) Show(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.loadIntegration(w, r)
	if !ok {
		return
	}

	token := csrf.Token(w, r, h.isSecure)
	data := NewBookingPageData(*integration, domain.NewBookingForm(), h.bookingService.Today(), token)
	h.renderer.RenderHTTP(w, "public/booking", data)
}

// =============================================================================
// POST /booking/{integrationId}/fields/{field}
// =============================================================================

// EditField applies one field change and returns the re-rendered form.
func (h *BookingHandler) EditField(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.loadIntegration(w, r)
	if !ok {
		return
	}

	field, ok := domain.ParseBookingField(r.PathValue("field"))
	if !ok {
		NotFoundResponse(w, r, h.logger)
		return
	}

	in, err := h.decodeForm(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form := in.snapshot()
	if field == domain.BookingFieldDate {
		form, err = h.applyDate(form, in)
	} else {
		form, err = h.bookingService.Edit(form, field, in.value(field))
	}
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.renderForm(w, r, integration.ID, form)
}

// =============================================================================
// POST /booking/{integrationId}
// =============================================================================

// Submit validates the booking. Success notifies through the flash cookie and
// redirects to the listing; failure re-renders the form with its errors.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	integration, ok := h.loadIntegration(w, r)
	if !ok {
		return
	}

	in, err := h.decodeForm(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form, err := h.applyDate(in.snapshot(), in)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	nav := newNavigator(w, r)
	notifier := flashNotifier{w: w, isSecure: h.isSecure}
	form, err = h.bookingService.Submit(r.Context(), *integration, form, notifier, nav)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if nav.Navigated() {
		return
	}

	switch {
	case isHTMX(r):
		// htmx only swaps 2xx responses
		h.renderForm(w, r, integration.ID, form)
	case acceptsJSON(r):
		ValidationErrorResponse(w, r, h.logger, form.Errors.AsValidationError("booking.submit"))
	default:
		token := csrf.Token(w, r, h.isSecure)
		data := NewBookingPageData(*integration, form, h.bookingService.Today(), token)
		h.renderer.RenderHTTPStatus(w, http.StatusUnprocessableEntity, "public/booking", data)
	}
}

// =============================================================================
// Helpers
// =============================================================================

// loadIntegration resolves the route parameter. It returns false once a
// response (redirect or error) has been written.
func (h *BookingHandler) loadIntegration(w http.ResponseWriter, r *http.Request) (*domain.Integration, bool) {
	nav := newNavigator(w, r)

	integration, err := h.bookingService.LoadIntegration(r.Context(), r.PathValue("integrationId"), nav)
	if err != nil {
		if !nav.Navigated() {
			ErrorResponse(w, r, h.logger, err)
		}
		return nil, false
	}
	return integration, true
}

func (h *BookingHandler) decodeForm(r *http.Request) (bookingFormInput, error) {
	const op = "booking.decode"

	var in bookingFormInput
	if err := r.ParseForm(); err != nil {
		return in, domain.Invalid(op, "malformed form body")
	}
	if err := h.decoder.Decode(&in, r.PostForm); err != nil {
		return in, domain.Invalid(op, "malformed form body")
	}
	return in, nil
}

// applyDate runs a date selection when the picker differs from the last
// accepted date. Rejected dates keep the previous snapshot.
func (h *BookingHandler) applyDate(form domain.BookingForm, in bookingFormInput) (domain.BookingForm, error) {
	if in.Date == in.SelectedDate {
		return form, nil
	}

	next, err := h.bookingService.SelectDate(form, in.Date)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINVALID {
			h.logger.Debug("date selection rejected", "date", in.Date, "error", err)
			return form, nil
		}
		return form, err
	}
	return next, nil
}

func (h *BookingHandler) renderForm(w http.ResponseWriter, r *http.Request, integrationID string, form domain.BookingForm) {
	token := csrf.Token(w, r, h.isSecure)
	view := NewBookingFormView(integrationID, form, h.bookingService.Today(), token)
	h.renderer.RenderPartial(w, "booking_form", view)
}

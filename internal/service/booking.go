// Package service contains the business logic layer.
//
// This file implements the booking service: integration lookup and the
// booking form controller.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/DukeRupert/booking/internal/catalog"
	"github.com/DukeRupert/booking/internal/domain"
	"github.com/DukeRupert/booking/internal/metrics"
	"github.com/google/uuid"
)

// =============================================================================
// Collaborators
// =============================================================================

// Navigator moves the visitor to another view.
type Navigator interface {
	GoTo(path string)
}

// Notifier shows the visitor a message.
type Notifier interface {
	Notify(message string)
}

// =============================================================================
// Interface Definition
// =============================================================================

// BookingService defines the booking operations used by the handlers.
type BookingService interface {
	// ListIntegrations returns the catalog in display order.
	ListIntegrations(ctx context.Context) ([]domain.Integration, error)

	// LoadIntegration looks up a descriptor by exact ID.
	// On a miss it navigates to the listing view once and returns domain.ENOTFOUND.
	LoadIntegration(ctx context.Context, id string, nav Navigator) (*domain.Integration, error)

	// Edit applies a text field change.
	Edit(form domain.BookingForm, field domain.BookingField, value string) (domain.BookingForm, error)

	// SelectDate applies a date picker change. An empty value clears the date.
	// Past dates return domain.EINVALID with the form unchanged.
	SelectDate(form domain.BookingForm, value string) (domain.BookingForm, error)

	// Submit validates the form. When every field passes it notifies, then
	// navigates to the listing view.
	Submit(ctx context.Context, integration domain.Integration, form domain.BookingForm, notifier Notifier, nav Navigator) (domain.BookingForm, error)

	// Today returns the first selectable booking date.
	Today() time.Time
}

// =============================================================================
// Implementation
// =============================================================================

type bookingService struct {
	catalog   catalog.Repository
	validator *BookingValidator
	location  *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

// NewBookingService creates a new BookingService.
//
// Parameters:
// - repo: Catalog of bookable integrations
// - validator: Submit-time field rules
// - location: Time zone that decides which dates are in the past
// - logger: Structured logger for operation logging
func NewBookingService(
	repo catalog.Repository,
	validator *BookingValidator,
	location *time.Location,
	logger *slog.Logger,
) BookingService {
	if location == nil {
		location = time.UTC
	}
	return &bookingService{
		catalog:   repo,
		validator: validator,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// =============================================================================
// Lookup
// =============================================================================

// ListIntegrations returns the catalog.
func (s *bookingService) ListIntegrations(ctx context.Context) ([]domain.Integration, error) {
	const op = "integration.list"

	integrations, err := s.catalog.List(ctx)
	if err != nil {
		metrics.CatalogErrors.Inc()
		return nil, domain.Internal(err, op, "failed to load integrations")
	}
	return integrations, nil
}

// LoadIntegration resolves the route parameter against the catalog.
func (s *bookingService) LoadIntegration(ctx context.Context, id string, nav Navigator) (*domain.Integration, error) {
	const op = "integration.load"

	integrations, err := s.ListIntegrations(ctx)
	if err != nil {
		return nil, err
	}

	found := domain.FindIntegration(integrations, id)
	if found == nil {
		metrics.LookupMissed()
		s.logger.Info("integration not found, returning to listing", "integration_id", id)
		nav.GoTo(domain.ListingPath)
		return nil, domain.NotFound(op, "integration", id)
	}

	return found, nil
}

// =============================================================================
// Form Events
// =============================================================================

// Edit sets a text field.
func (s *bookingService) Edit(form domain.BookingForm, field domain.BookingField, value string) (domain.BookingForm, error) {
	return form.Edit(field, value)
}

// SelectDate parses the picker value in the service location.
func (s *bookingService) SelectDate(form domain.BookingForm, value string) (domain.BookingForm, error) {
	const op = "booking.select_date"

	if value == "" {
		return form.ClearDate()
	}

	date, err := domain.ParseBookingDate(value, s.location)
	if err != nil {
		return form, domain.Invalid(op, "date is not a calendar date")
	}

	return form.SelectDate(date, s.now().In(s.location))
}

// Submit runs validation and, on success, the notify-then-navigate side effects.
func (s *bookingService) Submit(
	ctx context.Context,
	integration domain.Integration,
	form domain.BookingForm,
	notifier Notifier,
	nav Navigator,
) (domain.BookingForm, error) {
	next, err := form.ApplyValidation(s.validator.Validate(form.State))
	if err != nil {
		return form, err
	}

	if !next.IsSubmitted() {
		metrics.BookingRejected(next.Errors)
		s.logger.Debug("booking validation failed",
			"integration_id", integration.ID,
			"fields", len(next.Errors.Messages()),
		)
		return next, nil
	}

	ref := uuid.New()
	s.logger.InfoContext(ctx, "booking submitted",
		"booking_ref", ref,
		"integration_id", integration.ID,
		"date", next.State.Value(domain.BookingFieldDate),
	)
	metrics.BookingSubmitted(integration.ID)

	notifier.Notify(domain.BookingSuccessMessage)
	nav.GoTo(domain.ListingPath)

	return next, nil
}

// Today returns the current calendar day in the service location.
func (s *bookingService) Today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

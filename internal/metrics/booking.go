package metrics

import "github.com/DukeRupert/booking/internal/domain"

// BookingSubmitted records a successful submission.
func BookingSubmitted(integrationID string) {
	BookingsSubmitted.WithLabelValues(integrationID).Inc()
}

// BookingRejected records one failure per field that has an error.
func BookingRejected(errs domain.BookingFormErrors) {
	for _, field := range domain.BookingFields {
		if fe := errs.Get(field); !fe.IsZero() {
			BookingFieldErrors.WithLabelValues(string(field), string(fe.Kind)).Inc()
		}
	}
}

// LookupMissed records a request for an integration that is not in the catalog.
func LookupMissed() {
	IntegrationLookupMisses.Inc()
}

// Package domain contains core business types and interfaces.
//
// This file defines the booking form: its field state, per-field errors and
// the snapshot state machine that moves between editing, invalid and
// submitted.
package domain

import (
	"regexp"
	"time"
)

// DateLayout is the wire format of booking dates (matches <input type="date">).
const DateLayout = "2006-01-02"

// BookingSuccessMessage is the notification shown after a successful submission.
const BookingSuccessMessage = "Booking submitted successfully!"

// EmailPattern is the only format check applied to emails. It is a search,
// not an anchored match.
var EmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// =============================================================================
// Fields and Field Errors
// =============================================================================

// BookingField names one input of the booking form.
type BookingField string

const (
	BookingFieldName  BookingField = "name"
	BookingFieldPhone BookingField = "phone"
	BookingFieldEmail BookingField = "email"
	BookingFieldDate  BookingField = "date"
)

// BookingFields lists the form fields in display order.
var BookingFields = []BookingField{
	BookingFieldName,
	BookingFieldPhone,
	BookingFieldEmail,
	BookingFieldDate,
}

// ParseBookingField converts a form/route value into a BookingField.
func ParseBookingField(s string) (BookingField, bool) {
	for _, f := range BookingFields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FieldErrorKind classifies a field validation failure.
type FieldErrorKind string

const (
	FieldErrorRequired      FieldErrorKind = "required"
	FieldErrorInvalidFormat FieldErrorKind = "invalid_format"
)

// FieldError is an optional per-field validation message. The zero value
// means "no error".
type FieldError struct {
	Kind    FieldErrorKind
	Message string
}

// IsZero reports whether the field has no error.
func (e FieldError) IsZero() bool {
	return e.Kind == ""
}

var requiredMessages = map[BookingField]string{
	BookingFieldName:  "Name is required",
	BookingFieldPhone: "Phone number is required",
	BookingFieldEmail: "Email is required",
	BookingFieldDate:  "Date is required",
}

// NewFieldError builds the user-facing error for a field and kind.
// Unknown kinds produce the zero FieldError.
func NewFieldError(field BookingField, kind FieldErrorKind) FieldError {
	switch kind {
	case FieldErrorRequired:
		return FieldError{Kind: kind, Message: requiredMessages[field]}
	case FieldErrorInvalidFormat:
		if field == BookingFieldEmail {
			return FieldError{Kind: kind, Message: "Please enter a valid email address"}
		}
		return FieldError{Kind: kind, Message: "Please enter a valid " + string(field)}
	}
	return FieldError{}
}

// =============================================================================
// Form State and Errors
// =============================================================================

// BookingFormState holds the values typed into the booking form.
type BookingFormState struct {
	Name  string
	Phone string
	Email string
	Date  *time.Time // Calendar date at midnight; nil when unset
}

// Value returns the raw form value of a field. Dates use DateLayout.
func (s BookingFormState) Value(field BookingField) string {
	switch field {
	case BookingFieldName:
		return s.Name
	case BookingFieldPhone:
		return s.Phone
	case BookingFieldEmail:
		return s.Email
	case BookingFieldDate:
		if s.Date == nil {
			return ""
		}
		return s.Date.Format(DateLayout)
	}
	return ""
}

// BookingFormErrors mirrors BookingFormState with one optional error per field.
type BookingFormErrors struct {
	Name  FieldError
	Phone FieldError
	Email FieldError
	Date  FieldError
}

// Get returns the error for a field.
func (e BookingFormErrors) Get(field BookingField) FieldError {
	switch field {
	case BookingFieldName:
		return e.Name
	case BookingFieldPhone:
		return e.Phone
	case BookingFieldEmail:
		return e.Email
	case BookingFieldDate:
		return e.Date
	}
	return FieldError{}
}

// With returns a copy with the field's error replaced.
func (e BookingFormErrors) With(field BookingField, fe FieldError) BookingFormErrors {
	switch field {
	case BookingFieldName:
		e.Name = fe
	case BookingFieldPhone:
		e.Phone = fe
	case BookingFieldEmail:
		e.Email = fe
	case BookingFieldDate:
		e.Date = fe
	}
	return e
}

// Clear returns a copy without the field's error.
func (e BookingFormErrors) Clear(field BookingField) BookingFormErrors {
	return e.With(field, FieldError{})
}

// Empty reports whether no field has an error.
func (e BookingFormErrors) Empty() bool {
	for _, f := range BookingFields {
		if !e.Get(f).IsZero() {
			return false
		}
	}
	return true
}

// Messages returns the non-empty messages keyed by field name.
func (e BookingFormErrors) Messages() map[string]string {
	out := make(map[string]string)
	for _, f := range BookingFields {
		if fe := e.Get(f); !fe.IsZero() {
			out[string(f)] = fe.Message
		}
	}
	return out
}

// AsValidationError converts the errors for generic field-error responses.
func (e BookingFormErrors) AsValidationError(op string) *ValidationError {
	return &ValidationError{Op: op, Fields: e.Messages()}
}

// =============================================================================
// Form Status and Snapshot
// =============================================================================

// BookingStatus represents the lifecycle state of a booking form.
type BookingStatus string

const (
	// BookingStatusEditing is the initial state; no errors are shown.
	BookingStatusEditing BookingStatus = "editing"

	// BookingStatusInvalid means the last submit failed and at least one
	// field error is still shown.
	BookingStatusInvalid BookingStatus = "invalid"

	// BookingStatusSubmitted is terminal for the form instance.
	BookingStatusSubmitted BookingStatus = "submitted"
)

// BookingForm is an immutable snapshot of the form. Transitions return a new
// snapshot and never modify the receiver.
type BookingForm struct {
	State  BookingFormState
	Errors BookingFormErrors
	Status BookingStatus
}

// NewBookingForm returns an empty form in the editing state.
func NewBookingForm() BookingForm {
	return BookingForm{Status: BookingStatusEditing}
}

// RestoreBookingForm rebuilds a not-yet-submitted snapshot from values that
// round-tripped through the client.
func RestoreBookingForm(state BookingFormState, errs BookingFormErrors) BookingForm {
	f := BookingForm{State: state, Errors: errs}
	f.Status = f.settledStatus()
	return f
}

// IsSubmitted reports whether the form reached its terminal state.
func (f BookingForm) IsSubmitted() bool {
	return f.Status == BookingStatusSubmitted
}

// Edit sets a text field and clears that field's error only.
func (f BookingForm) Edit(field BookingField, value string) (BookingForm, error) {
	const op = "booking.edit"

	if f.IsSubmitted() {
		return f, Conflict(op, "booking has already been submitted")
	}

	switch field {
	case BookingFieldName:
		f.State.Name = value
	case BookingFieldPhone:
		f.State.Phone = value
	case BookingFieldEmail:
		f.State.Email = value
	case BookingFieldDate:
		return f, Invalid(op, "dates are changed through date selection")
	default:
		return f, Invalid(op, "unknown booking field")
	}

	f.Errors = f.Errors.Clear(field)
	f.Status = f.settledStatus()
	return f, nil
}

// SelectDate sets the booking date. Dates before the calendar day of now are
// rejected and leave the snapshot unchanged.
func (f BookingForm) SelectDate(date, now time.Time) (BookingForm, error) {
	const op = "booking.select_date"

	if f.IsSubmitted() {
		return f, Conflict(op, "booking has already been submitted")
	}
	if !IsSelectableDate(date, now) {
		return f, Invalid(op, "date must not be in the past")
	}

	day := civilDay(date)
	f.State.Date = &day
	f.Errors = f.Errors.Clear(BookingFieldDate)
	f.Status = f.settledStatus()
	return f, nil
}

// ClearDate unsets the booking date, as when the picker selection is removed.
func (f BookingForm) ClearDate() (BookingForm, error) {
	if f.IsSubmitted() {
		return f, Conflict("booking.clear_date", "booking has already been submitted")
	}

	f.State.Date = nil
	f.Errors = f.Errors.Clear(BookingFieldDate)
	f.Status = f.settledStatus()
	return f, nil
}

// ApplyValidation replaces the errors wholesale with the result of a
// validation pass. An empty result submits the form.
func (f BookingForm) ApplyValidation(errs BookingFormErrors) (BookingForm, error) {
	const op = "booking.submit"

	if f.IsSubmitted() {
		return f, Conflict(op, "booking has already been submitted")
	}

	f.Errors = errs
	if errs.Empty() {
		f.Status = BookingStatusSubmitted
	} else {
		f.Status = BookingStatusInvalid
	}
	return f, nil
}

func (f BookingForm) settledStatus() BookingStatus {
	if f.Errors.Empty() {
		return BookingStatusEditing
	}
	return BookingStatusInvalid
}

// =============================================================================
// Dates
// =============================================================================

// IsSelectableDate reports whether date falls on the calendar day of now or
// later. Both values are compared in their own locations as calendar dates.
func IsSelectableDate(date, now time.Time) bool {
	return !civilDay(date).Before(civilDay(now))
}

// ParseBookingDate parses a DateLayout value as a calendar day in loc.
func ParseBookingDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

// civilDay drops the clock and zone, keeping the calendar date.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

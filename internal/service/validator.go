package service

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/DukeRupert/booking/internal/domain"
	"github.com/go-playground/validator/v10"
)

// bookingRules carries the validation tags for the booking form. Field names
// come from the json tags so validator errors map straight onto form fields.
type bookingRules struct {
	Name  string     `json:"name" validate:"required"`
	Phone string     `json:"phone" validate:"required"`
	Email string     `json:"email" validate:"required,loose_email"`
	Date  *time.Time `json:"date" validate:"required"`
}

// tagKinds maps validator tags to field error kinds.
var tagKinds = map[string]domain.FieldErrorKind{
	"required":    domain.FieldErrorRequired,
	"loose_email": domain.FieldErrorInvalidFormat,
}

// BookingValidator runs the submit-time field rules.
type BookingValidator struct {
	validate *validator.Validate
}

// NewBookingValidator builds the validator with the booking-specific rules registered.
func NewBookingValidator() *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// The stock "email" rule is stricter than the booking form allows.
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return domain.EmailPattern.MatchString(fl.Field().String())
	})

	return &BookingValidator{validate: v}
}

// Validate computes the complete error set for a form state. Values are
// checked as typed: nothing is trimmed or case folded.
func (bv *BookingValidator) Validate(state domain.BookingFormState) domain.BookingFormErrors {
	var errs domain.BookingFormErrors

	err := bv.validate.Struct(bookingRules{
		Name:  state.Name,
		Phone: state.Phone,
		Email: state.Email,
		Date:  state.Date,
	})
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs
	}

	for _, fe := range verrs {
		field, ok := domain.ParseBookingField(fe.Field())
		if !ok {
			continue
		}
		kind, ok := tagKinds[fe.Tag()]
		if !ok {
			kind = domain.FieldErrorInvalidFormat
		}
		// first failing rule wins, matching the order of the tags
		if errs.Get(field).IsZero() {
			errs = errs.With(field, domain.NewFieldError(field, kind))
		}
	}

	return errs
}

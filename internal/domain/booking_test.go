package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidForm(t *testing.T) BookingForm {
	t.Helper()
	errs := BookingFormErrors{}.
		With(BookingFieldName, NewFieldError(BookingFieldName, FieldErrorRequired)).
		With(BookingFieldEmail, NewFieldError(BookingFieldEmail, FieldErrorInvalidFormat))
	f, err := NewBookingForm().ApplyValidation(errs)
	require.NoError(t, err)
	require.Equal(t, BookingStatusInvalid, f.Status)
	return f
}

func TestBookingForm_EditClearsOnlyThatField(t *testing.T) {
	f := invalidForm(t)

	next, err := f.Edit(BookingFieldName, "Ada")
	require.NoError(t, err)

	assert.Equal(t, "Ada", next.State.Name)
	assert.True(t, next.Errors.Name.IsZero())
	assert.Equal(t, FieldErrorInvalidFormat, next.Errors.Email.Kind)
	assert.Equal(t, BookingStatusInvalid, next.Status)

	// receiver is untouched
	assert.Equal(t, "", f.State.Name)
	assert.Equal(t, FieldErrorRequired, f.Errors.Name.Kind)
}

func TestBookingForm_EditBackToEditingWhenAllCleared(t *testing.T) {
	f := invalidForm(t)

	f, err := f.Edit(BookingFieldName, "Ada")
	require.NoError(t, err)
	f, err = f.Edit(BookingFieldEmail, "ada@example.com")
	require.NoError(t, err)

	assert.True(t, f.Errors.Empty())
	assert.Equal(t, BookingStatusEditing, f.Status)
}

func TestBookingForm_EditFieldWithoutErrorKeepsOthers(t *testing.T) {
	f := invalidForm(t)

	next, err := f.Edit(BookingFieldPhone, "555-0100")
	require.NoError(t, err)
	assert.Equal(t, f.Errors, next.Errors)
}

func TestBookingForm_EditRejectsDateAndUnknownFields(t *testing.T) {
	f := NewBookingForm()

	_, err := f.Edit(BookingFieldDate, "2030-01-01")
	assert.Equal(t, EINVALID, ErrorCode(err))

	_, err = f.Edit(BookingField("company"), "x")
	assert.Equal(t, EINVALID, ErrorCode(err))
}

func TestBookingForm_SelectDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"yesterday", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), true},
		{"earlier today", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), false},
		{"next year", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBookingForm()
			next, err := f.SelectDate(tt.date, now)
			if tt.wantErr {
				assert.Equal(t, EINVALID, ErrorCode(err))
				assert.Nil(t, next.State.Date)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, next.State.Date)
			assert.Equal(t, tt.date.Format(DateLayout), next.State.Value(BookingFieldDate))
		})
	}
}

func TestBookingForm_SelectDateClearsDateError(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	errs := BookingFormErrors{}.
		With(BookingFieldDate, NewFieldError(BookingFieldDate, FieldErrorRequired)).
		With(BookingFieldPhone, NewFieldError(BookingFieldPhone, FieldErrorRequired))
	f := RestoreBookingForm(BookingFormState{}, errs)

	next, err := f.SelectDate(now.AddDate(0, 0, 1), now)
	require.NoError(t, err)
	assert.True(t, next.Errors.Date.IsZero())
	assert.Equal(t, FieldErrorRequired, next.Errors.Phone.Kind)
	assert.Equal(t, BookingStatusInvalid, next.Status)
}

func TestBookingForm_ApplyValidation(t *testing.T) {
	f, err := NewBookingForm().ApplyValidation(BookingFormErrors{})
	require.NoError(t, err)
	assert.Equal(t, BookingStatusSubmitted, f.Status)

	_, err = f.Edit(BookingFieldName, "late")
	assert.Equal(t, ECONFLICT, ErrorCode(err))
	_, err = f.SelectDate(time.Now(), time.Now())
	assert.Equal(t, ECONFLICT, ErrorCode(err))
	_, err = f.ApplyValidation(BookingFormErrors{})
	assert.Equal(t, ECONFLICT, ErrorCode(err))
}

func TestBookingForm_ApplyValidationReplacesWholesale(t *testing.T) {
	f := invalidForm(t)

	next, err := f.ApplyValidation(BookingFormErrors{}.With(BookingFieldDate, NewFieldError(BookingFieldDate, FieldErrorRequired)))
	require.NoError(t, err)
	assert.True(t, next.Errors.Name.IsZero())
	assert.True(t, next.Errors.Email.IsZero())
	assert.Equal(t, "Date is required", next.Errors.Date.Message)
}

func TestRestoreBookingForm_Status(t *testing.T) {
	assert.Equal(t, BookingStatusEditing, RestoreBookingForm(BookingFormState{}, BookingFormErrors{}).Status)
	assert.Equal(t, BookingStatusInvalid, invalidForm(t).Status)
}

func TestNewFieldError_Messages(t *testing.T) {
	assert.Equal(t, "Name is required", NewFieldError(BookingFieldName, FieldErrorRequired).Message)
	assert.Equal(t, "Phone number is required", NewFieldError(BookingFieldPhone, FieldErrorRequired).Message)
	assert.Equal(t, "Email is required", NewFieldError(BookingFieldEmail, FieldErrorRequired).Message)
	assert.Equal(t, "Please enter a valid email address", NewFieldError(BookingFieldEmail, FieldErrorInvalidFormat).Message)
	assert.True(t, NewFieldError(BookingFieldName, FieldErrorKind("bogus")).IsZero())
}

func TestBookingFormErrors_AsValidationError(t *testing.T) {
	ve := invalidForm(t).Errors.AsValidationError("booking.submit")

	assert.Equal(t, map[string]string{
		"name":  "Name is required",
		"email": "Please enter a valid email address",
	}, ve.Fields)
	assert.Equal(t, EINVALID, ErrorCode(ve))
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, EmailPattern.MatchString("ada@example.com"))
	assert.True(t, EmailPattern.MatchString("see ada@example.com please"))
	assert.False(t, EmailPattern.MatchString("not-an-email"))
	assert.False(t, EmailPattern.MatchString("ada@example"))
	assert.False(t, EmailPattern.MatchString("@example.com"))
}

func TestParseBookingField(t *testing.T) {
	f, ok := ParseBookingField("email")
	assert.True(t, ok)
	assert.Equal(t, BookingFieldEmail, f)

	_, ok = ParseBookingField("Email")
	assert.False(t, ok)
}

func TestBookingForm_ClearDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	f, err := NewBookingForm().SelectDate(now, now)
	require.NoError(t, err)

	errs := f.Errors.With(BookingFieldDate, NewFieldError(BookingFieldDate, FieldErrorRequired))
	f = RestoreBookingForm(f.State, errs)

	cleared, err := f.ClearDate()
	require.NoError(t, err)
	assert.Nil(t, cleared.State.Date)
	assert.True(t, cleared.Errors.Date.IsZero())
	assert.Equal(t, BookingStatusEditing, cleared.Status)
}

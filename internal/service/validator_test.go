package service

import (
	"testing"
	"time"

	"github.com/DukeRupert/booking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBookingValidator_Validate(t *testing.T) {
	v := NewBookingValidator()
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		state domain.BookingFormState
		want  map[string]string
	}{
		{
			name:  "valid",
			state: domain.BookingFormState{Name: "Ada Lovelace", Phone: "555-0100", Email: "ada@example.com", Date: &date},
			want:  map[string]string{},
		},
		{
			name:  "all missing",
			state: domain.BookingFormState{},
			want: map[string]string{
				"name":  "Name is required",
				"phone": "Phone number is required",
				"email": "Email is required",
				"date":  "Date is required",
			},
		},
		{
			name:  "email without dot",
			state: domain.BookingFormState{Name: "Ada", Phone: "1", Email: "ada@example", Date: &date},
			want:  map[string]string{"email": "Please enter a valid email address"},
		},
		{
			name:  "email with uppercase and surrounding text",
			state: domain.BookingFormState{Name: "Ada", Phone: "1", Email: "Contact: ADA@EXAMPLE.COM", Date: &date},
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(tt.state).Messages())
		})
	}
}

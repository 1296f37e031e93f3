package handler

import (
	"bytes"
	"context"
	"html/template"
	"net/url"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"

	"github.com/DukeRupert/booking/internal/catalog"
	"github.com/DukeRupert/booking/internal/domain"
)

// =============================================================================
// View Models
// =============================================================================

// The view is a pure function of (descriptor, snapshot); handlers rebuild it
// after every transition.

const (
	inputBaseClass  = "block w-full rounded-md border border-gray-300 bg-white px-3 py-2 text-sm shadow-sm placeholder:text-gray-400 focus:border-indigo-500 focus:outline-none focus:ring-1 focus:ring-indigo-500"
	inputErrorClass = "border-red-500 focus:border-red-500 focus:ring-red-500"
	dateMutedClass  = "text-gray-500"
	iconSize        = "20"
)

// IntegrationView is a descriptor prepared for display.
type IntegrationView struct {
	ID         string
	Name       string
	BookPath   string
	BadgeStyle template.CSS  // tinted background, empty for unusable colors
	IconStyle  template.CSS  // brand color for the glyph
	Icon       template.HTML // pre-rendered SVG
}

// FieldView describes one text input.
type FieldView struct {
	ID           string
	Name         string
	Label        string
	Type         string
	Placeholder  string
	AutoComplete string
	Value        string
	Error        string
	Class        string
	EditPath     string
}

// DateFieldView describes the date picker.
type DateFieldView struct {
	Label    string
	Value    string // DateLayout or empty
	Display  string // long date or the "Select a date" prompt
	HasValue bool
	Min      string // first selectable day
	Error    string
	Class    string
	EditPath string
}

// HiddenError carries one current error kind through the client.
type HiddenError struct {
	Field string
	Kind  string
}

// BookingFormView is the data for the booking_form partial.
type BookingFormView struct {
	Action     string
	Fields     []FieldView
	Date       DateFieldView
	Errors     []HiddenError
	Status     string
	CancelPath string
	CSRFToken  string
}

// BookingPageData is the data for the booking page.
type BookingPageData struct {
	Title       string
	Subtitle    string
	Integration IntegrationView
	Form        BookingFormView
}

// IntegrationListPageData is the data for the listing page.
type IntegrationListPageData struct {
	Title        string
	Integrations []IntegrationView
	Toast        *ToastData
}

// =============================================================================
// Builders
// =============================================================================

var textFields = []struct {
	field        domain.BookingField
	label        string
	inputType    string
	placeholder  string
	autoComplete string
}{
	{domain.BookingFieldName, "Name", "text", "Enter your full name", "name"},
	{domain.BookingFieldPhone, "Phone", "tel", "Enter your phone number", "tel"},
	{domain.BookingFieldEmail, "Email", "email", "Enter your email address", "email"},
}

// NewIntegrationView prepares a descriptor for display.
func NewIntegrationView(i domain.Integration) IntegrationView {
	v := IntegrationView{
		ID:       i.ID,
		Name:     i.Name,
		BookPath: bookingPath(i.ID),
		Icon:     renderIcon(i.Icon),
	}
	// colors only reach a style attribute after the hex check
	if i.HasValidColor() {
		v.BadgeStyle = template.CSS("background-color: " + i.TintColor())
		v.IconStyle = template.CSS("color: " + i.Color)
	}
	return v
}

// NewBookingPageData builds the page for an integration and a form snapshot.
func NewBookingPageData(integration domain.Integration, form domain.BookingForm, today time.Time, csrfToken string) BookingPageData {
	return BookingPageData{
		Title:       "Book " + integration.Name,
		Subtitle:    "Fill out the form below to book this integration",
		Integration: NewIntegrationView(integration),
		Form:        NewBookingFormView(integration.ID, form, today, csrfToken),
	}
}

// NewBookingFormView builds the form partial for a snapshot.
func NewBookingFormView(integrationID string, form domain.BookingForm, today time.Time, csrfToken string) BookingFormView {
	v := BookingFormView{
		Action:     bookingPath(integrationID),
		Status:     string(form.Status),
		CancelPath: domain.ListingPath,
		CSRFToken:  csrfToken,
	}

	for _, f := range textFields {
		fe := form.Errors.Get(f.field)
		v.Fields = append(v.Fields, FieldView{
			ID:           "booking-" + string(f.field),
			Name:         string(f.field),
			Label:        f.label,
			Type:         f.inputType,
			Placeholder:  f.placeholder,
			AutoComplete: f.autoComplete,
			Value:        form.State.Value(f.field),
			Error:        fe.Message,
			Class:        inputClass(!fe.IsZero()),
			EditPath:     fieldPath(integrationID, f.field),
		})
	}

	dateErr := form.Errors.Get(domain.BookingFieldDate)
	v.Date = DateFieldView{
		Label:    "Date for Booking",
		Value:    form.State.Value(domain.BookingFieldDate),
		Display:  "Select a date",
		HasValue: form.State.Date != nil,
		Min:      today.Format(domain.DateLayout),
		Error:    dateErr.Message,
		Class:    inputClass(!dateErr.IsZero()),
		EditPath: fieldPath(integrationID, domain.BookingFieldDate),
	}
	if form.State.Date != nil {
		v.Date.Display = FormatDateLong(*form.State.Date)
	} else {
		v.Date.Class = twmerge.Merge(v.Date.Class, dateMutedClass)
	}

	for _, field := range domain.BookingFields {
		if fe := form.Errors.Get(field); !fe.IsZero() {
			v.Errors = append(v.Errors, HiddenError{Field: string(field), Kind: string(fe.Kind)})
		}
	}

	return v
}

// NewIntegrationListPageData builds the listing page.
func NewIntegrationListPageData(integrations []domain.Integration, flash string) IntegrationListPageData {
	data := IntegrationListPageData{Title: "Integrations"}
	for _, i := range integrations {
		data.Integrations = append(data.Integrations, NewIntegrationView(i))
	}
	if flash != "" {
		data.Toast = &ToastData{Type: "success", Message: flash, AutoDismiss: 5}
	}
	return data
}

func inputClass(hasError bool) string {
	if hasError {
		return twmerge.Merge(inputBaseClass, inputErrorClass)
	}
	return inputBaseClass
}

func renderIcon(key string) template.HTML {
	var buf bytes.Buffer
	if err := catalog.Icon(key, iconSize).Render(context.Background(), &buf); err != nil {
		return ""
	}
	// generated SVG markup, no user input
	return template.HTML(buf.String())
}

func bookingPath(integrationID string) string {
	return "/booking/" + url.PathEscape(integrationID)
}

func fieldPath(integrationID string, field domain.BookingField) string {
	return bookingPath(integrationID) + "/fields/" + string(field)
}

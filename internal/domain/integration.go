// Package domain contains core business types and interfaces.
//
// This file defines the Integration descriptor: the static record that
// describes one bookable integration.
package domain

import "regexp"

// ListingPath is the listing view every booking flow returns to.
const ListingPath = "/integrations"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Integration is an immutable catalog descriptor.
type Integration struct {
	ID    string // Unique key, matched exactly against the route parameter
	Name  string // Display name
	Color string // Brand color as #RGB or #RRGGBB
	Icon  string // Opaque icon key, resolved by the view layer
}

// HasValidColor reports whether Color is a hex color safe to put in a style attribute.
func (i Integration) HasValidColor() bool {
	return hexColorPattern.MatchString(i.Color)
}

// TintColor returns the brand color at low opacity for badge backgrounds.
// Returns an empty string for colors that are not valid hex values.
func (i Integration) TintColor() string {
	if !i.HasValidColor() {
		return ""
	}
	c := i.Color
	if len(c) == 4 {
		// expand #RGB so the alpha suffix is unambiguous
		c = "#" + string([]byte{c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c + "20"
}

// FindIntegration scans an ordered collection for an exact identifier match.
// Returns nil when no descriptor has the given ID.
func FindIntegration(integrations []Integration, id string) *Integration {
	for i := range integrations {
		if integrations[i].ID == id {
			found := integrations[i]
			return &found
		}
	}
	return nil
}

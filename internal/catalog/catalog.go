// Package catalog provides the read-only collection of bookable integrations.
package catalog

import (
	"context"

	"github.com/DukeRupert/booking/internal/domain"
)

// Repository exposes the ordered integration catalog.
//
// Implementations must return descriptors in display order and must not hand
// out slices that alias their internal storage.
type Repository interface {
	List(ctx context.Context) ([]domain.Integration, error)
}

// Default is the built-in catalog used when no database is configured.
var Default = []domain.Integration{
	{ID: "slack", Name: "Slack", Color: "#4A154B", Icon: IconUsersThree},
	{ID: "github", Name: "GitHub", Color: "#181717", Icon: IconTreeStructure},
	{ID: "google-analytics", Name: "Google Analytics", Color: "#E37400", Icon: IconGauge},
	{ID: "salesforce", Name: "Salesforce", Color: "#00A1E0", Icon: IconBuildings},
	{ID: "zendesk", Name: "Zendesk", Color: "#03363D", Icon: IconUserCircle},
	{ID: "algolia", Name: "Algolia", Color: "#003DFF", Icon: IconMagnifyingGlass},
}

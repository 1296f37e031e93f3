package catalog

import (
	"context"

	"github.com/DukeRupert/booking/internal/domain"
)

// Static serves a fixed in-memory catalog.
type Static struct {
	integrations []domain.Integration
}

// NewStatic copies the given descriptors; later changes to the argument do
// not affect the catalog.
func NewStatic(integrations []domain.Integration) *Static {
	owned := make([]domain.Integration, len(integrations))
	copy(owned, integrations)
	return &Static{integrations: owned}
}

// List returns a copy of the catalog in its original order.
func (s *Static) List(ctx context.Context) ([]domain.Integration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Integration, len(s.integrations))
	copy(out, s.integrations)
	return out, nil
}

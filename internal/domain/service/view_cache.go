package service

import (
	"context"

	"github.com/google/uuid"
)

// Cached rendering keys the presentation layer stores its views under.
const (
	ViewAdminProducts = "views:admin:products"
	ViewDashboard     = "views:admin:dashboard"
	ViewCatalogue     = "views:catalogue"
)

// ProductDetailView returns the cache key of one product's detail page.
func ProductDetailView(id uuid.UUID) string {
	return "views:product:" + id.String()
}

// ViewCache invalidates cached renderings after catalogue mutations. It is
// the write-through signal to the presentation layer; reads never go
// through it.
type ViewCache interface {
	// Invalidate drops the given view keys. Missing keys are ignored.
	Invalidate(ctx context.Context, views ...string) error
}

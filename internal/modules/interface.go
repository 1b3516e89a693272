// Package modules lets the application mount and stop its feature modules
// without knowing their concrete types.
package modules

import (
	"context"

	"github.com/go-chi/chi/v5"
)

// RouteRegistrar is implemented by a module's HTTP handlers.
type RouteRegistrar interface {
	Routes(r chi.Router)
}

// Closer is implemented by modules holding resources.
type Closer interface {
	Close(ctx context.Context) error
}

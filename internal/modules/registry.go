package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-chi/chi/v5"
)

type entry struct {
	name   string
	routes RouteRegistrar
	closer Closer
}

// Registry keeps modules in construction order.
type Registry struct {
	entries []entry
	logger  *slog.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Add records a module. Either routes or closer may be nil.
func (r *Registry) Add(name string, routes RouteRegistrar, closer Closer) {
	r.entries = append(r.entries, entry{name: name, routes: routes, closer: closer})
}

// Mount registers every module's routes on router.
func (r *Registry) Mount(router chi.Router) {
	for _, e := range r.entries {
		if e.routes == nil {
			continue
		}
		e.routes.Routes(router)
		r.logger.Info("Mounted module routes", slog.String("module", e.name))
	}
}

// Close stops modules in reverse construction order and joins their errors.
func (r *Registry) Close(ctx context.Context) error {
	var errs []error
	for _, e := range slices.Backward(r.entries) {
		if e.closer == nil {
			continue
		}
		if err := e.closer.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

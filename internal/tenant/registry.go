package tenant

import (
	"fmt"

	"github.com/beamcollective/portal-api/internal/domain"
)

// Registry is the static tenant-to-content mapping. Built once at startup
// and immutable afterwards, so it is safe for unlimited concurrent readers
// without locking.
type Registry struct {
	defaultKey string
	tenants    map[string]*domain.TenantConfig
	locales    *LocaleResolver
}

// NewRegistry builds a registry from the given configs. Slide lists are
// sanitized here, at the only write point the registry has.
func NewRegistry(defaultKey string, configs []domain.TenantConfig) (*Registry, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no tenants registered")
	}

	tenants := make(map[string]*domain.TenantConfig, len(configs))
	for i := range configs {
		cfg := configs[i]
		if cfg.Key == "" {
			return nil, fmt.Errorf("tenant %q has no key", cfg.Name)
		}
		cfg.HomeSlides = domain.SanitizeHomeSlides(cfg.HomeSlides)
		cfg.RecordingSlides = domain.SanitizeHomeSlides(cfg.RecordingSlides)
		tenants[cfg.Key] = &cfg
	}

	if _, ok := tenants[defaultKey]; !ok {
		return nil, fmt.Errorf("default tenant %q is not registered", defaultKey)
	}

	return &Registry{
		defaultKey: defaultKey,
		tenants:    tenants,
		locales:    NewLocaleResolver(),
	}, nil
}

// DefaultKey returns the process-wide default tenant key.
func (r *Registry) DefaultKey() string {
	return r.defaultKey
}

// Resolve composes the tenant config and locale bundle for a tenant key. An
// empty key falls back to the default tenant. An unknown key yields
// domain.ErrNotFound so callers can map it to a 404 instead of proceeding
// with a nil config.
func (r *Registry) Resolve(tenantKey string) (*domain.TenantConfig, *Locale, error) {
	if tenantKey == "" {
		tenantKey = r.defaultKey
	}

	cfg, ok := r.tenants[tenantKey]
	if !ok {
		return nil, nil, fmt.Errorf("tenant %q: %w", tenantKey, domain.ErrNotFound)
	}

	return cfg, r.locales.Resolve(DefaultLocaleTag), nil
}

package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/mlb-season-service/internal/providers"
)

type namedProvider interface {
	Name() string
}

// normalizeProviderName returns a lower-cased provider name, preferring the
// provider's own Name, then the configured name, then its type.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if named, ok := provider.(namedProvider); ok && named.Name() != "" {
		return strings.ToLower(named.Name())
	}
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}

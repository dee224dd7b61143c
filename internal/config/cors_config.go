package config

import (
	"slices"
	"strings"
)

const (
	corsOriginsVar     = "CORS_ORIGINS"
	defaultCorsOrigins = "http://localhost:3000,http://localhost:5173"
)

type Cors struct{}

var _ CorsConfig = Cors{}

// AllowedOrigins is a set of browser origins; "*" allows any origin.
type AllowedOrigins map[string]struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	origins := make([]string, 0, len(a))
	for origin := range a {
		origins = append(origins, origin)
	}
	slices.Sort(origins)
	return strings.Join(origins, ", ")
}

// ParseAllowedOrigins reads a comma separated origin list, ignoring blanks
// and trailing slashes.
func ParseAllowedOrigins(list string) AllowedOrigins {
	origins := AllowedOrigins{}
	for _, origin := range strings.Split(list, ",") {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins[origin] = struct{}{}
		}
	}
	return origins
}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	return ParseAllowedOrigins(GetEnv(corsOriginsVar, defaultCorsOrigins))
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization, X-Request-ID"
}

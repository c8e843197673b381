// Package domain contains the core domain model for rashi.
//
// The domain is oracle- and rendering-agnostic: it does not depend on YAML parsing,
// net/http, SVG, or the filesystem. Infra/adapters map into/from these types.
package domain

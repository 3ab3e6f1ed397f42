// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Viewer contains user-facing chrome data for authenticated app pages.
type Viewer struct {
	DisplayName string
	Email       string
	Initials    string
}

// Mount describes a module route mount. A module may own several top-level
// patterns that all route to the same handler.
type Mount struct {
	Patterns []string
	Handler  http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

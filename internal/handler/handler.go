package handler

import (
	"github.com/karwey/ssecast/internal/config"
	"github.com/karwey/ssecast/internal/sse"
)

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Cfg *config.Config
	Hub *sse.Hub

	// staticRoot and staticRootResolved are the absolute and
	// symlink-resolved forms of the static directory, fixed at
	// construction so containment checks run against a stable base.
	staticRoot         string
	staticRootResolved string
}

// New creates a Handler serving static files from staticRoot, which
// must already be an absolute path to an existing directory, with
// staticRootResolved its symlink-resolved form.
func New(cfg *config.Config, hub *sse.Hub, staticRoot, staticRootResolved string) *Handler {
	return &Handler{
		Cfg:                cfg,
		Hub:                hub,
		staticRoot:         staticRoot,
		staticRootResolved: staticRootResolved,
	}
}

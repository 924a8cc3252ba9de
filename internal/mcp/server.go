package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"rulesaide/internal/assist"
	"rulesaide/internal/config"
	"rulesaide/internal/reminder"
	"rulesaide/internal/store"
)

type Server struct {
	assistant *assist.Assistant
	weapons   *config.WeaponCatalog
	reminders *reminder.Catalog
	db        store.Store
	mcp       *sdk.Server
}

// NewServer wires the assistant tools. db may be nil, in which case the
// grudge and encumbrance tools report that no database is configured.
func NewServer(a *assist.Assistant, weapons *config.WeaponCatalog, reminders *reminder.Catalog, db store.Store, version string) *Server {
	s := &Server{
		assistant: a,
		weapons:   weapons,
		reminders: reminders,
		db:        db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "rulesaide",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

package router

import (
	"github.com/oksasatya/jioni/internal/application"
	"github.com/oksasatya/jioni/internal/container"
	handlers "github.com/oksasatya/jioni/internal/interface/http"
	"github.com/oksasatya/jioni/internal/router/modules"
)

type AuthModuleDeps struct {
	Service *application.IdentityService
	Handler *handlers.AuthHandler
}

type TicketModuleDeps struct {
	Service *application.TicketService
	Handler *handlers.TicketHandler
}

func buildAuthDeps() AuthModuleDeps {
	service := application.NewIdentityService(
		container.GetUserRepository(),
		container.GetJWT(),
		container.GetHasher(),
		container.GetLogger(),
	)
	handler := handlers.NewAuthHandler(service, container.GetLogger())
	return AuthModuleDeps{Service: service, Handler: handler}
}

func buildTicketDeps() TicketModuleDeps {
	service := application.NewTicketService(
		container.GetTicketLedger(),
		container.GetUserRepository(),
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESTicketsIndex,
	)
	handler := handlers.NewTicketHandler(service, container.GetLogger())
	return TicketModuleDeps{Service: service, Handler: handler}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	authDeps := buildAuthDeps()
	r.Add(modules.NewAuthModule(authDeps.Handler))

	ticketDeps := buildTicketDeps()
	r.Add(modules.NewTicketModule(ticketDeps.Handler, container.GetJWT(), cfg.AuthEnforced))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

package httptransport

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apppublic "chess-relay/internal/app/public"
	"chess-relay/internal/config"
	"chess-relay/internal/mcpserver"
	"chess-relay/internal/relay"
	"chess-relay/internal/spectatorgateway"
	"chess-relay/internal/ws"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Pinger reports journal database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Config config.ServerConfig
	Relay  *relay.Relay
	WS     *ws.Server
	Feed   *spectatorgateway.Feed
	Public *apppublic.Service
	// DB is nil when the journal is disabled.
	DB Pinger
}

func NewRouter(d Deps) *chi.Mux {
	publicHandlers := NewPublicHandlers(d.Public)
	adminHandlers := NewAdminHandlers(d.Relay, d.DB)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	// Upgraded connections log through the relay; the access log
	// middleware would only record the handshake.
	r.Get("/ws", d.WS.HandleWS)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	if d.Config.MCPEnabled {
		mcpSrv := mcpserver.New(d.Public)
		r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", mcpSrv.Handler())
		r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", mcpSrv.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/public/state", spectatorgateway.StateHandler(d.Relay))
		r.Get("/public/spectate/events", spectatorgateway.EventsHandler(d.Feed))
		r.Get("/public/games/{game_id}/moves", publicHandlers.GameMoves())

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(d.Config.AdminAPIKey))
			r.Use(BodyCaptureMiddleware(4096))
			r.Post("/admin/reset", adminHandlers.Reset())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}

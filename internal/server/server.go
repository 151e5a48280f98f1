package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/overload/internal/mcp"
	"github.com/claude/overload/internal/progression"
	"github.com/claude/overload/internal/storage"
	"github.com/go-chi/chi/v5"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	planner  *progression.Planner
	log      *slog.Logger
	tokenTTL time.Duration
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, planner *progression.Planner, tokenTTL time.Duration, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		planner:  planner,
		log:      log,
		tokenTTL: tokenTTL,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	// Public auth endpoints
	s.router.Post("/api/v1/auth/register", s.handleRegister)
	s.router.Post("/api/v1/auth/login", s.handleLogin)

	// Everything else requires a bearer token
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuth(s.db))

		r.Get("/auth/me", s.handleMe)
		r.Post("/auth/logout", s.handleLogout)

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)
			r.Get("/muscle-groups", s.handleListMuscleGroups)
			r.Get("/{id}", s.handleGetExercise)
			r.Put("/{id}", s.handleUpdateExercise)
			r.Delete("/{id}", s.handleDeleteExercise)
		})

		r.Route("/mesocycles", func(r chi.Router) {
			r.Get("/", s.handleListMesocycles)
			r.Post("/", s.handleCreateMesocycle)
			r.Get("/{id}", s.handleGetMesocycle)
			r.Put("/{id}", s.handleUpdateMesocycle)
			r.Delete("/{id}", s.handleDeleteMesocycle)
		})

		r.Route("/instances", func(r chi.Router) {
			r.Get("/", s.handleListInstances)
			r.Post("/", s.handleCreateInstance)
			r.Get("/active", s.handleGetActiveInstance)
			r.Get("/{id}", s.handleGetInstance)
			r.Patch("/{id}", s.handleUpdateInstanceStatus)
			r.Delete("/{id}", s.handleDeleteInstance)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Patch("/{id}", s.handleUpdateSession)
			r.Delete("/{id}", s.handleDeleteSession)

			r.Put("/{id}/sets/{setID}", s.handleLogSet)

			r.Post("/{id}/exercises", s.handleAddExercise)
			r.Post("/{id}/exercises/swap", s.handleSwapExercise)
			r.Delete("/{id}/exercises/{exerciseID}", s.handleRemoveExercise)
			r.Post("/{id}/exercises/{exerciseID}/sets", s.handleAddSet)
			r.Delete("/{id}/exercises/{exerciseID}/sets", s.handleRemoveSet)
		})
	})
}

// MountMCP wires the MCP streamable HTTP transport under /mcp. Requests
// carry the same bearer tokens as the REST API; the resolved user ID flows
// to tool handlers through the context.
func (s *Server) MountMCP(m *mcpserver.MCPServer) {
	httpServer := mcpserver.NewStreamableHTTPServer(m)
	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(BearerAuth(s.db))
		r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid, _ := UserID(req.Context())
			httpServer.ServeHTTP(w, req.WithContext(mcp.WithUserID(req.Context(), uid)))
		}))
	})
}

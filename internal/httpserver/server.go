package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with all API, view and websocket routes. The session
// manager wraps the router so the storefront views can pin a cart id to the
// browser session.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, sessions *scs.SessionManager, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, db, sessions, deps)
	if err != nil {
		return nil, err
	}

	var handler http.Handler = router
	if sessions != nil {
		handler = sessions.LoadAndSave(router)
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

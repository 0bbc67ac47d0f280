package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server ties together HTTP routing and the room hubs.
type Server struct {
	handlers *Handlers
	cfg      Config
	log      *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Server {
	return &Server{
		handlers: NewHandlers(cfg, log),
		cfg:      cfg,
		log:      log,
	}
}

// Start serves until the context is canceled, then stops every room hub
// and drains the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.Router()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.handlers.Shutdown()
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(drainCtx)
	}
}

// Router mounts the API and WebSocket routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth", s.handlers.HandleAuth)
	r.Get("/api/rooms", s.handlers.HandleListRooms)
	r.Post("/api/rooms", s.handlers.HandleCreateRoom)
	r.Get("/api/qr", s.handlers.HandleQR)
	r.Get("/ws", s.handlers.HandleWS)

	s.log.Infow("routes mounted", "addr", s.cfg.Addr)
	return r
}

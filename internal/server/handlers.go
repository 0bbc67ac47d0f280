package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"unoroom/internal/auth"
	"unoroom/internal/engine"
	qr "unoroom/internal/qrcode"
	"unoroom/internal/room"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	mu       sync.Mutex
	registry *room.Registry
	issuer   *auth.Issuer
	hubs     map[string]*Hub
	cfg      Config
	log      *zap.SugaredLogger
}

func NewHandlers(cfg Config, log *zap.SugaredLogger) *Handlers {
	return &Handlers{
		registry: room.NewRegistry(),
		issuer:   auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		hubs:     make(map[string]*Hub),
		cfg:      cfg,
		log:      log,
	}
}

// HandleAuth issues a guest identity and its token.
func (h *Handlers) HandleAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, token, err := h.issuer.Issue(req.Username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"token": token, "user": user})
}

// HandleListRooms returns a summary of every open room.
func (h *Handlers) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.registry.List())
}

// HandleCreateRoom registers a room with the caller as host, starts its hub
// and returns the room code.
func (h *Handlers) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	user, err := h.requestUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req struct {
		Mode       room.Mode `json:"mode"`
		MaxPlayers int       `json:"max_players"`
		Difficulty string    `json:"difficulty"`
	}
	// an empty body means all defaults
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = room.ModePrivate
	}
	if req.MaxPlayers <= 0 {
		req.MaxPlayers = 4
	}
	if req.MaxPlayers > h.cfg.MaxPlayersCap {
		req.MaxPlayers = h.cfg.MaxPlayersCap
	}
	if req.Difficulty == "" {
		req.Difficulty = "easy"
	}

	host := room.User{ID: user.ID, Username: user.Username}
	code, err := h.registry.Create(host, req.MaxPlayers, req.Difficulty, req.Mode)
	if err != nil {
		h.log.Errorw("create room failed", "err", err)
		http.Error(w, "could not create room", http.StatusInternalServerError)
		return
	}

	rules := engine.Rules{HandSize: h.cfg.HandSize, DrawEndsTurn: h.cfg.DrawEndsTurn}
	hub := NewHub(code, h.registry, rules, h.dropHub, h.log)
	h.mu.Lock()
	h.hubs[code] = hub
	h.mu.Unlock()
	go hub.Run()

	h.log.Infow("room created", "room", code, "host", user.ID, "mode", req.Mode)
	writeJSON(w, map[string]any{"room_code": code})
}

// HandleQR generates a QR code PNG for a room's join link.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room parameter", http.StatusBadRequest)
		return
	}
	if _, ok := h.registry.Get(code); !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	url := fmt.Sprintf("http://%s/join?room=%s", r.Host, code)
	png, err := qr.Generate(url)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS upgrades a connection and attaches it to the room's hub.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room parameter", http.StatusBadRequest)
		return
	}
	user, err := h.requestUser(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.mu.Lock()
	hub, ok := h.hubs[code]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("ws upgrade error", "err", err)
		return
	}

	client := NewClient(hub, conn, user, h.log)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// requestUser resolves the caller's identity from the Authorization header
// or, for WebSocket upgrades, the token query parameter.
func (h *Handlers) requestUser(r *http.Request) (auth.User, error) {
	token := r.URL.Query().Get("token")
	if header := r.Header.Get("Authorization"); header != "" {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return auth.User{}, auth.ErrInvalidToken
	}
	return h.issuer.Verify(token)
}

// Shutdown stops every room hub, releasing their clients.
func (h *Handlers) Shutdown() {
	h.mu.Lock()
	hubs := make([]*Hub, 0, len(h.hubs))
	for _, hub := range h.hubs {
		hubs = append(hubs, hub)
	}
	h.mu.Unlock()
	for _, hub := range hubs {
		hub.Stop()
	}
}

// dropHub forgets a hub whose room has emptied.
func (h *Handlers) dropHub(code string) {
	h.mu.Lock()
	delete(h.hubs, code)
	h.mu.Unlock()
	h.log.Infow("room closed", "room", code)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}

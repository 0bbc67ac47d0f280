package server

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"unoroom/internal/engine"
	"unoroom/internal/protocol"
	"unoroom/internal/room"
)

// Hub serializes all intents for one room on a single goroutine. It owns
// the room's game; registry membership is only read when (re)dealing.
type Hub struct {
	code     string
	registry *room.Registry
	rules    engine.Rules
	game     *engine.Game
	log      *zap.SugaredLogger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	quitOnce   sync.Once

	// drop is called once the room has emptied and the hub is going away.
	drop func(code string)
}

// NewHub creates the hub for a freshly created room and deals its opening
// game from the current membership (the host alone, at creation time).
func NewHub(code string, registry *room.Registry, rules engine.Rules, drop func(string), log *zap.SugaredLogger) *Hub {
	h := &Hub{
		code:       code,
		registry:   registry,
		rules:      rules,
		log:        log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		drop:       drop,
	}
	if err := h.deal(); err != nil {
		log.Errorw("opening deal failed", "room", code, "err", err)
	}
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.sendState(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			emptied := h.registry.RemovePlayer(client.Handle)
			if slices.Contains(emptied, h.code) {
				h.shutdown()
				return
			}
			h.broadcastRoomUpdate()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			h.shutdown()
			return
		}
	}
}

// Stop shuts the hub down without waiting for the room to empty. Run
// releases the remaining clients before returning.
func (h *Hub) Stop() {
	h.signalQuit()
}

func (h *Hub) signalQuit() {
	h.quitOnce.Do(func() { close(h.quit) })
}

// shutdown releases every still-registered client: connection pumps that
// never unregistered (a viewer that never joined, a join that was refused)
// must not block on a hub that is gone.
func (h *Hub) shutdown() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.signalQuit()
	if h.drop != nil {
		h.drop(h.code)
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoinRoom:
		h.handleJoin(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgPlayCard:
		h.handlePlayCard(msg)
	case protocol.MsgDrawCard:
		h.handleDrawCard(msg)
	case protocol.MsgGetState:
		h.sendState(msg.Client)
	default:
		h.sendError(msg.Client, "unknown_intent", "unknown message type "+msg.Envelope.Type)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	u := room.User{ID: msg.Client.User.ID, Username: msg.Client.User.Username}
	if err := h.registry.Join(h.code, u); err != nil {
		h.sendError(msg.Client, errKind(err), err.Error())
		return
	}
	h.registry.Bind(h.code, u.ID, msg.Client.Handle)
	h.broadcastRoomUpdate()
}

// handleStartGame deals a fresh game from the room's current membership,
// replacing whatever game was bound before.
func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.deal(); err != nil {
		h.sendError(msg.Client, errKind(err), err.Error())
		return
	}
	h.broadcastRoomUpdate()
}

func (h *Hub) handlePlayCard(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, errKind(engine.ErrGameNotStarted), engine.ErrGameNotStarted.Error())
		return
	}
	var play protocol.PlayCardMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &play); err != nil {
		h.sendError(msg.Client, "bad_payload", "invalid play_card payload")
		return
	}
	if err := h.game.Play(msg.Client.User.ID, play.Card.ID); err != nil {
		h.sendError(msg.Client, errKind(err), err.Error())
		return
	}
	h.broadcastRoomUpdate()
}

func (h *Hub) handleDrawCard(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, errKind(engine.ErrGameNotStarted), engine.ErrGameNotStarted.Error())
		return
	}
	card, err := h.game.Draw(msg.Client.User.ID)
	if err != nil {
		h.sendError(msg.Client, errKind(err), err.Error())
		return
	}
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgCardDrawn, protocol.CardDrawn{Card: card}))
	h.broadcastRoomUpdate()
}

func (h *Hub) deal() error {
	r, ok := h.registry.Get(h.code)
	if !ok {
		return room.ErrRoomNotFound
	}
	game, err := engine.NewGame(r.PlayerIDs(), h.rules)
	if err != nil {
		return err
	}
	h.game = game
	return nil
}

// broadcastRoomUpdate pushes the public view to every connection and each
// member's own hand to that member alone.
func (h *Hub) broadcastRoomUpdate() {
	update, ok := h.roomUpdate()
	if !ok {
		return
	}
	env := protocol.MustEnvelope(protocol.MsgRoomUpdate, update)
	for client := range h.clients {
		client.SendEnvelope(env)
		h.sendHand(client)
	}
}

func (h *Hub) sendState(client *Client) {
	update, ok := h.roomUpdate()
	if !ok {
		return
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgRoomUpdate, update))
	h.sendHand(client)
}

func (h *Hub) roomUpdate() (protocol.RoomUpdate, bool) {
	r, ok := h.registry.Get(h.code)
	if !ok {
		return protocol.RoomUpdate{}, false
	}
	update := protocol.RoomUpdate{
		Code:    h.code,
		Players: protocol.RoomPlayersFrom(r.Members()),
	}
	if h.game != nil {
		snap := h.game.Snapshot()
		update.Game = &snap
	}
	return update, true
}

func (h *Hub) sendHand(client *Client) {
	if h.game == nil {
		return
	}
	view := h.game.SnapshotFor(client.User.ID)
	if _, seated := view.HandCounts[client.User.ID]; !seated {
		return
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgHandUpdate, protocol.HandUpdate{
		GameID: view.ID,
		Hand:   view.Hand,
	}))
}

func (h *Hub) sendError(client *Client, kind, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{
		Kind:    kind,
		Message: message,
	}))
}

// errKind maps sentinel errors to wire error kinds. Anything unrecognized
// is an internal fault and reported as such.
func errKind(err error) string {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, room.ErrRoomFull):
		return "room_full"
	case errors.Is(err, engine.ErrGameNotStarted):
		return "game_not_started"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, engine.ErrCardNotInHand):
		return "card_not_in_hand"
	case errors.Is(err, engine.ErrInvalidPlay):
		return "invalid_play"
	case errors.Is(err, engine.ErrNoPlayers):
		return "no_players"
	case errors.Is(err, engine.ErrDeckExhausted):
		return "deck_exhausted"
	default:
		return "internal"
	}
}

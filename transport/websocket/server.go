package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Fergus-Lai/ultimate-tic-tac-toe-backend/internal/room"
)

type sessionRegistry interface {
	Get(code string) (*room.Room, error)
	Remove(code string)
	FindByPlayer(connID string) (*room.Room, bool)
}

// client is one websocket connection. Gorilla connections support a single
// concurrent writer, so every send goes through the client's write lock.
type client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (that *client) send(action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err = that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Server bridges websocket events into the room state machine.
type Server struct {
	logger *slog.Logger
	rooms  sessionRegistry

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[string]*client

	handlers map[string]func(*client, json.RawMessage)
}

func New(logger *slog.Logger, rooms sessionRegistry) *Server {
	server := &Server{
		logger: logger,
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		clients:  make(map[string]*client),
		handlers: make(map[string]func(*client, json.RawMessage)),
	}

	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMakeMove] = server.handleMakeMove

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	// No read/write timeouts: game connections are long-lived and quiet.
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection upgrades the request and pumps messages until the peer
// goes away.
func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	connected := &client{
		id:   uuid.NewString(),
		conn: conn,
	}

	that.clientsMu.Lock()
	that.clients[connected.id] = connected
	that.clientsMu.Unlock()

	log.Info("user connected", "connID", connected.id)

	that.readLoop(connected)

	that.handleDisconnect(connected)

	if err = conn.Close(); err != nil {
		log.Debug("failed to close connection", "connID", connected.id, "error", err)
	}
}

// readLoop delivers events one at a time per connection. A malformed or
// mistimed client message must never take the process down, so handler
// panics are contained here.
func (that *Server) readLoop(connected *client) {
	log := that.logger.With("method", "readLoop", "connID", connected.id)

	for {
		_, body, err := connected.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("connection closed unexpectedly", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		that.dispatch(handler, connected, message.Payload)
	}
}

func (that *Server) dispatch(handler func(*client, json.RawMessage), connected *client, payload json.RawMessage) {
	defer func() {
		if recovered := recover(); recovered != nil {
			that.logger.Error("recovered from handler panic", "connID", connected.id, "panic", recovered)
		}
	}()

	handler(connected, payload)
}

// handleDisconnect terminates the room the connection was seated in, if any,
// and notifies the remaining seat.
func (that *Server) handleDisconnect(connected *client) {
	log := that.logger.With("method", "handleDisconnect", "connID", connected.id)

	that.clientsMu.Lock()
	delete(that.clients, connected.id)
	that.clientsMu.Unlock()

	log.Info("user disconnected")

	abandoned, ok := that.rooms.FindByPlayer(connected.id)
	if !ok {
		return
	}

	remaining := abandoned.Abandon(connected.id)
	that.broadcast(remaining, actionGameOver, GameOverPayload{Winner: winnerOpponentLeft})

	that.rooms.Remove(abandoned.Code())

	log.Info("room abandoned", "roomCode", abandoned.Code())
}

func (that *Server) broadcast(connIDs []string, action string, payload any) {
	log := that.logger.With("method", "broadcast", "action", action)

	for _, connID := range connIDs {
		that.clientsMu.RLock()
		recipient, ok := that.clients[connID]
		that.clientsMu.RUnlock()

		if !ok {
			log.Warn("connection not found", "connID", connID)
			continue
		}

		if err := recipient.send(action, payload); err != nil {
			log.Error("failed to send message", "connID", connID, "error", err)
		}
	}
}

func (that *Server) sendError(connected *client, message string) {
	if err := connected.send(actionError, ErrorPayload{Message: message}); err != nil {
		that.logger.Error("failed to send error response", "connID", connected.id, "error", err)
	}
}

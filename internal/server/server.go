// Package server exposes the combat engine over a websocket endpoint. It is
// deliberately thin: identity assignment, session handling and world movement
// belong to collaborating services; this server resolves combat commands for
// already-known players against already-known rooms.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/config"
	"github.com/hollowfall/delve/internal/encounter"
	"github.com/hollowfall/delve/internal/lock"
	"github.com/hollowfall/delve/internal/logger"
	"github.com/hollowfall/delve/internal/storage"
)

// Command is one combat action issued by a client.
type Command struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
	Action   string `json:"action"` // "attack", "skill" or "flee"
	SkillID  string `json:"skill_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// Response is the reply to one command. Log is the player-visible narration;
// Error is set only for caller-visible failures (unknown player/room, lock
// contention), never for in-game outcomes.
type Response struct {
	Log       []string `json:"log,omitempty"`
	Fled      bool     `json:"fled,omitempty"`
	Error     string   `json:"error,omitempty"`
	Retryable bool     `json:"retryable,omitempty"`
}

// Server wires the engine, storage and room guard behind a websocket handler.
type Server struct {
	cfg      *config.ServerConfig
	catalog  *catalog.Catalog
	engine   *encounter.Engine
	store    *storage.Store
	guard    *lock.Guard
	upgrader websocket.Upgrader
}

// New creates a Server.
func New(cfg *config.ServerConfig, cat *catalog.Catalog, engine *encounter.Engine, store *storage.Store) *Server {
	guard := lock.NewGuard(store)
	if cfg.Engine.LockAttempts > 0 {
		guard.Attempts = cfg.Engine.LockAttempts
	}
	if cfg.Engine.LockBackoffMillis > 0 {
		guard.Backoff = time.Duration(cfg.Engine.LockBackoffMillis) * time.Millisecond
	}

	s := &Server{
		cfg:     cfg,
		catalog: cat,
		engine:  engine,
		store:   store,
		guard:   guard,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return cfg.WebSocket.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}
	return s
}

// ListenAndServe starts the websocket server on the configured address.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	logger.Info("combat server listening", "addr", s.cfg.ListenAddr)
	return http.ListenAndServe(s.cfg.ListenAddr, mux)
}

// handleWebSocket upgrades the connection and serves commands until the
// client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warning("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	if s.cfg.WebSocket.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.reply(conn, Response{Error: "malformed command"})
			continue
		}
		s.reply(conn, s.Execute(cmd))
	}
}

// reply writes one JSON response, logging write failures.
func (s *Server) reply(conn *websocket.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("failed to encode response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logger.Warning("failed to write response", "error", err)
	}
}

// Execute runs one command through the room guard and persists the results.
func (s *Server) Execute(cmd Command) Response {
	p, err := s.store.LoadPlayer(cmd.PlayerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Response{Error: "unknown player"}
		}
		logger.Error("failed to load player", "player", cmd.PlayerID, "error", err)
		return Response{Error: "internal error", Retryable: true}
	}

	room, ok := s.catalog.Room(cmd.RoomID)
	if !ok {
		return Response{Error: "unknown room"}
	}

	ttl := time.Duration(s.cfg.Engine.LockTTLMillis) * time.Millisecond
	window := time.Duration(s.cfg.Engine.RespawnWindowSeconds) * time.Second

	var resp Response
	err = s.guard.WithLock(cmd.RoomID, ttl, func() error {
		state, err := s.engine.LoadOrRefreshEncounter(s.store, cmd.RoomID, window)
		if err != nil {
			return err
		}

		switch cmd.Action {
		case "flee":
			result := s.engine.ResolveFlee(p, state)
			resp.Log = result.Log
			resp.Fled = result.Success

		default: // attack or skill
			result := s.engine.ResolvePlayerAction(p, room, state, encounter.Action{
				SkillID:  cmd.SkillID,
				TargetID: cmd.TargetID,
			})
			resp.Log = result.Log

			// A kill that empties the room records a full clear; DeathCount
			// only ever increases here.
			if result.Killed != nil && state.AliveCount() == 0 {
				state.DeathCount++
				resp.Log = append(resp.Log, "The room falls silent.")
			}

			// The turn runs even when the room is clear so player-side
			// conditions keep ticking.
			turn := s.engine.RunMonsterTurn(p, state)
			resp.Log = append(resp.Log, turn.Log...)

			// A condition tick can also land the final kill.
			if len(turn.Killed) > 0 && state.AliveCount() == 0 {
				state.DeathCount++
				resp.Log = append(resp.Log, "The room falls silent.")
			}
		}

		if err := s.store.SaveEncounter(state); err != nil {
			return err
		}
		return s.store.SavePlayer(p)
	})

	if err != nil {
		if errors.Is(err, lock.ErrLockUnavailable) {
			return Response{Error: "room is busy, try again", Retryable: true}
		}
		if errors.Is(err, encounter.ErrUnknownRoom) {
			return Response{Error: "unknown room"}
		}
		logger.Error("failed to execute command", "player", cmd.PlayerID, "room", cmd.RoomID, "error", err)
		return Response{Error: "internal error", Retryable: true}
	}
	return resp
}

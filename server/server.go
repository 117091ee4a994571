package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gully/game"
)

// Update is one revision of a hosted match, as served by /state and /play
// and pushed over the websocket stream. PendingRoll is the dice the
// current player must play; it is absent once the game is over. Report
// carries the events of the turn that produced this revision, so it is
// absent on revision 1.
type Update struct {
	Rev         int              `json:"rev"`
	Hash        game.StateHash   `json:"hash"`
	Snapshot    game.Snapshot    `json:"snapshot"`
	PendingRoll *game.DiceRoll   `json:"pendingRoll,omitempty"`
	Report      *game.TurnReport `json:"report,omitempty"`
}

// CreateMatchRequest asks the server to host a new game.
type CreateMatchRequest struct {
	Mode     game.Mode     `json:"mode"`
	Seats    []game.Seat   `json:"seats"`
	Settings game.Settings `json:"settings"`
	Seed     uint64        `json:"seed,omitempty"` // 0 draws a seed from the clock
}

// CreatedMatch hands back the match code and one secret session token per
// seat. The creator distributes the tokens; each one authorizes moves for
// its color only.
type CreatedMatch struct {
	Code     string                `json:"code"`
	Sessions map[game.Color]string `json:"sessions"`
	Update
}

// PlayRequest submits one turn: which token to move with the pending
// roll, and the revision the decision was based on.
type PlayRequest struct {
	Session string `json:"session"`
	TokenID int    `json:"tokenId"`
	Rev     int    `json:"rev"`
}

const (
	codeLength  = 6
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// match is one hosted game. Its mutex serializes every read and
// application, so at most one turn is ever applied to a given revision.
type match struct {
	mu       sync.Mutex
	code     string
	state    *game.Game
	roller   *game.Roller
	rev      int
	pending  *game.DiceRoll
	report   *game.TurnReport
	sessions map[string]game.Color
	clients  map[*websocket.Conn]bool
}

// advance steps past seats that cannot act and draws the roll for the
// seat that can, or clears it if the game is over. Called with mu held,
// or before the match is published.
func (m *match) advance() {
	for !m.state.GameOver && !m.state.CurrentPlayer().CanAct() {
		m.state = m.state.AdvanceTurn()
	}
	if m.state.GameOver {
		m.pending = nil
		return
	}
	roll := m.roller.Roll()
	m.pending = &roll
}

// update assembles the wire form of the current revision. Called with mu
// held.
func (m *match) update() Update {
	u := Update{
		Rev:      m.rev,
		Hash:     m.state.Hash(),
		Snapshot: m.state.Snapshot(),
		Report:   m.report,
	}
	if m.pending != nil {
		roll := *m.pending
		u.PendingRoll = &roll
	}
	return u
}

// broadcast pushes an update to every subscriber. Called with mu held, so
// writes to each connection never interleave. Failed connections are
// closed; their readers unregister them.
func (m *match) broadcast(u Update) {
	for conn := range m.clients {
		if err := conn.WriteJSON(u); err != nil {
			log.Debug().Msgf("match %s: dropping subscriber: %v", m.code, err)
			conn.Close()
		}
	}
}

// reader drains a subscriber's connection so closes are noticed, and
// unregisters it when it goes away. Subscribers only listen; moves go
// through POST /play.
func (m *match) reader(conn *websocket.Conn) {
	defer func() {
		m.mu.Lock()
		delete(m.clients, conn)
		m.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Server hosts matches behind the HTTP boundary. The engine stays
// authoritative: clients submit a session token and a token id, the
// server holds the dice and the state, and every new revision is fanned
// out to the match's websocket subscribers. Nothing but snapshots and
// turn reports crosses the wire.
type Server struct {
	mu       sync.Mutex
	matches  map[string]*match
	rng      *rand.Rand
	upgrader websocket.Upgrader
}

// New returns a server with an empty match registry.
func New() *Server {
	return &Server{
		matches:  make(map[string]*match),
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /matches", s.handleCreate)
	mux.HandleFunc("GET /matches/{code}/state", s.handleState)
	mux.HandleFunc("POST /matches/{code}/play", s.handlePlay)
	mux.HandleFunc("GET /matches/{code}/ws", s.handleSubscribe)
	return mux
}

// ListenAndServe blocks serving the route table on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// newCode draws an unused match code. Called with mu held.
func (s *Server) newCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeCharset[s.rng.Intn(len(codeCharset))]
		}
		if _, taken := s.matches[string(b)]; !taken {
			return string(b)
		}
	}
}

// lookup resolves the route's match code, answering 404 itself when the
// match does not exist.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *match {
	code := strings.ToUpper(r.PathValue("code"))
	s.mu.Lock()
	m := s.matches[code]
	s.mu.Unlock()
	if m == nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return nil
	}
	return m
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}
	g, err := game.NewGame(req.Mode, req.Seats, req.Settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m := &match{
		state:    g,
		roller:   game.NewRoller(seed, g.Settings),
		rev:      1,
		sessions: make(map[string]game.Color, len(g.Players)),
		clients:  make(map[*websocket.Conn]bool),
	}
	sessions := make(map[game.Color]string, len(g.Players))
	for i := range g.Players {
		token := uuid.NewString()
		m.sessions[token] = g.Players[i].Color
		sessions[g.Players[i].Color] = token
	}
	m.advance()

	s.mu.Lock()
	m.code = s.newCode()
	s.matches[m.code] = m
	s.mu.Unlock()

	log.Info().Msgf("match %s created: %s, %d seats, seed %d", m.code, g.Mode, len(g.Players), seed)
	writeJSON(w, http.StatusCreated, CreatedMatch{Code: m.code, Sessions: sessions, Update: m.update()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	m := s.lookup(w, r)
	if m == nil {
		return
	}
	m.mu.Lock()
	u := m.update()
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	m := s.lookup(w, r)
	if m == nil {
		return
	}
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decode request: %v", err), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	color, ok := m.sessions[req.Session]
	if !ok {
		http.Error(w, "unknown session", http.StatusUnauthorized)
		return
	}
	// Revision before ownership: a move built on an outdated view is
	// stale no matter whose turn it looks like from here.
	if req.Rev != m.rev {
		http.Error(w, fmt.Sprintf("stale revision: match is at %d, move built on %d", m.rev, req.Rev), http.StatusConflict)
		return
	}
	if m.state.GameOver {
		http.Error(w, "match is over", http.StatusGone)
		return
	}
	if m.state.CurrentPlayer().Color != color {
		http.Error(w, "not your turn", http.StatusForbidden)
		return
	}

	next, rep, err := m.state.PlayTurn(req.TokenID, *m.pending)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.state = next
	m.report = rep
	m.rev++
	m.advance()

	u := m.update()
	log.Debug().Msgf("match %s rev %d: %s moved token %d", m.code, u.Rev, color, req.TokenID)
	m.broadcast(u)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	m := s.lookup(w, r)
	if m == nil {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Msgf("match %s: websocket upgrade failed: %v", m.code, err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = true
	err = conn.WriteJSON(m.update())
	m.mu.Unlock()
	if err != nil {
		m.mu.Lock()
		delete(m.clients, conn)
		m.mu.Unlock()
		conn.Close()
		return
	}
	go m.reader(conn)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Msgf("encode response: %v", err)
	}
}

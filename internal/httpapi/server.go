package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/ArcBees/quebec-game-sub001/internal/grpc/gameserver"
)

const maxAIDecisions = 1000

type Option func(s *Server)

// WithSeatTokens requires a seat token on every action request
func WithSeatTokens(tokens *SeatTokens) Option {
	return func(s *Server) {
		s.tokens = tokens
	}
}

// WithTimeout bounds the time of every handler
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With().Str("component", "HTTPAPI").Logger()
	}
}

// Server is the JSON API over the hosted games
type Server struct {
	r       *chi.Mux
	games   *gameserver.GameManager
	tokens  *SeatTokens
	timeout time.Duration
	logger  zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(games *gameserver.GameManager, opts ...Option) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		games:   games,
		timeout: 30 * time.Second,
		logger:  log.Logger.With().Str("component", "HTTPAPI").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(s.timeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "games": s.games.GetActiveGames()})
	})

	s.r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/board", s.handleBoard)
			r.Post("/actions", s.handleAction)
			r.Post("/ai", s.handlePlayAI)
		})
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: r.URL.Path})
	})
	return s
}

// Router exposes the router, for tests and for mounting
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request once it is served
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// ------------------------------ payloads -----------------------------------

type createGameReq struct {
	Players    []string `json:"players"`
	NumPlayers int      `json:"num_players"`
	Seed       *uint64  `json:"seed,string"`
}

type createGameRes struct {
	Game   gameserver.GameView `json:"game"`
	Tokens []string            `json:"tokens,omitempty"`
}

type actionReq struct {
	Seat        *int   `json:"seat"`
	Decision    *int   `json:"decision"`
	ActionIndex *int   `json:"action_index"`
	Action      string `json:"action"`
}

type playAIReq struct {
	Decisions int `json:"decisions"`
}

type playAIRes struct {
	Played []string            `json:"played"`
	Game   gameserver.GameView `json:"game"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if !decodeBody(w, r, &req) {
		return
	}
	players := req.Players
	if len(players) == 0 {
		players = common.DefaultPlayerNames(req.NumPlayers)
	}
	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	g, err := s.games.CreateGame(r.Context(), players, seed)
	if err != nil {
		writeError(w, err)
		return
	}
	res := createGameRes{Game: g.View(false)}
	if s.tokens != nil {
		if res.Tokens, err = s.tokens.IssueAll(g.ID(), len(players)); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	board, _ := strconv.ParseBool(r.URL.Query().Get("board"))
	writeJSON(w, http.StatusOK, g.View(board))
}

// handleBoard returns the text drawing of the board
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, g.View(true).Board)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req actionReq
	if !decodeBody(w, r, &req) {
		return
	}

	action := gameserver.AnyAction()
	action.Action = req.Action
	if req.Seat != nil {
		action.Seat = *req.Seat
	}
	if req.Decision != nil {
		action.Decision = *req.Decision
	}
	if req.ActionIndex != nil {
		action.Index = *req.ActionIndex
	}
	if req.ActionIndex == nil && req.Action == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "action_index or action is required"})
		return
	}

	if s.tokens != nil {
		claims, err := s.tokens.Verify(bearer(r))
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.GameID != g.ID() {
			writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden", Message: "token belongs to another game"})
			return
		}
		action.Seat = claims.Seat
	}

	view, err := g.Perform(r.Context(), action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePlayAI(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req playAIReq
	if !decodeBody(w, r, &req) {
		return
	}
	played, view, err := g.PlayAI(r.Context(), s.games.Agent(), common.Clamp(req.Decisions, 1, maxAIDecisions))
	if err != nil {
		writeError(w, err)
		return
	}
	if played == nil {
		played = []string{}
	}
	writeJSON(w, http.StatusOK, playAIRes{Played: played, Game: view})
}

// ------------------------------- helpers -----------------------------------

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*gameserver.GameInstance, bool) {
	gameID := chi.URLParam(r, "gameID")
	g, ok := s.games.GetGame(gameID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: "game " + gameID})
	}
	return g, ok
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_json", Message: err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// writeError maps the domain errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	var actionErr *core.ActionError
	switch {
	case errors.Is(err, gameserver.ErrGameNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, gameserver.ErrAtCapacity):
		status, code = http.StatusServiceUnavailable, "at_capacity"
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, gameserver.ErrNotYourTurn):
		status, code = http.StatusConflict, "not_your_turn"
	case errors.Is(err, gameserver.ErrGameFinished), errors.Is(err, core.ErrGameOver):
		status, code = http.StatusConflict, "game_over"
	case errors.Is(err, gameserver.ErrInvalidAction),
		errors.Is(err, core.ErrInvalidPlayerCount),
		errors.Is(err, common.ErrEmptyPlayerName),
		errors.Is(err, common.ErrDuplicatePlayerName),
		errors.As(err, &actionErr):
		status, code = http.StatusBadRequest, "bad_request"
	}
	writeJSON(w, status, errorBody{Error: code, Message: err.Error()})
}


package gameserver

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
)

// Server configuration constants
const (
	cleanupInterval      = 5 * time.Minute
	finishedGameTTL      = 10 * time.Minute
	abandonedGameTimeout = 30 * time.Minute

	// maxAIDecisions bounds a single PlayAI call
	maxAIDecisions = 1000
)

type createGameRequest struct {
	Players    []string `json:"players"`
	NumPlayers int      `json:"num_players"`
	Seed       *uint64  `json:"seed,string"`
}

type getGameRequest struct {
	GameID string `json:"game_id"`
	Board  bool   `json:"board"`
}

type performActionRequest struct {
	GameID         string `json:"game_id"`
	Seat           *int   `json:"seat"`
	Decision       *int   `json:"decision"`
	ActionIndex    *int   `json:"action_index"`
	Action         string `json:"action"`
	IdempotencyKey string `json:"idempotency_key"`
}

func (r *performActionRequest) seat() int {
	if r.Seat == nil {
		return -1
	}
	return *r.Seat
}

func (r *performActionRequest) actionRequest() ActionRequest {
	req := AnyAction()
	req.Seat = r.seat()
	req.Action = r.Action
	if r.Decision != nil {
		req.Decision = *r.Decision
	}
	if r.ActionIndex != nil {
		req.Index = *r.ActionIndex
	}
	return req
}

type playAIRequest struct {
	GameID    string `json:"game_id"`
	Decisions int    `json:"decisions"`
}

type playAIResponse struct {
	Played []string `json:"played"`
	Game   GameView `json:"game"`
}

// Server implements the GameService gRPC server
type Server struct {
	UnimplementedGameServiceServer

	gameManager *GameManager
	validator   *ActionValidator
}

// NewServer creates a game server over the given manager
func NewServer(gameManager *GameManager) *Server {
	return &Server{
		gameManager: gameManager,
		validator:   NewActionValidator(gameManager),
	}
}

// CreateGame creates a new game instance. Without player names, num_players
// placeholder names are used. Without seed, a random one is drawn.
func (s *Server) CreateGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createGameRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed CreateGame request: %v", err)
	}
	players := req.Players
	if len(players) == 0 {
		players = common.DefaultPlayerNames(req.NumPlayers)
	}
	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	game, err := s.gameManager.CreateGame(ctx, players, seed)
	if err != nil {
		return nil, toStatus(fmt.Errorf("failed to create game: %w", err))
	}
	return toResponse(game.View(false))
}

// GetGame returns the current view of a game
func (s *Server) GetGame(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req getGameRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed GetGame request: %v", err)
	}
	game, exists := s.gameManager.GetGame(req.GameID)
	if !exists {
		return nil, status.Errorf(codes.NotFound, "game %s not found", req.GameID)
	}
	return toResponse(game.View(req.Board))
}

// PerformAction plays one pending action for the current player. Requests
// repeating an idempotency key get the response of the first one.
func (s *Server) PerformAction(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req performActionRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed PerformAction request: %v", err)
	}

	result, game := s.validator.ValidatePerformActionRequest(&req)
	if result.CachedResponse != nil {
		return result.CachedResponse, nil
	}
	if !result.Valid {
		return nil, toStatus(result.Err)
	}

	view, err := game.Perform(ctx, req.actionRequest())
	if err != nil {
		log.Debug().
			Str("game_id", req.GameID).
			Err(err).
			Msg("Action rejected")
		return nil, toStatus(err)
	}
	resp, err := toResponse(view)
	if err != nil {
		return nil, err
	}
	game.idempotencyManager.Store(req.seat(), req.IdempotencyKey, resp)
	return resp, nil
}

// PlayAI lets the agent play for whoever is to move, one decision by default
func (s *Server) PlayAI(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req playAIRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "malformed PlayAI request: %v", err)
	}
	game, exists := s.gameManager.GetGame(req.GameID)
	if !exists {
		return nil, status.Errorf(codes.NotFound, "game %s not found", req.GameID)
	}
	decisions := common.Clamp(req.Decisions, 1, maxAIDecisions)

	played, view, err := game.PlayAI(ctx, s.gameManager.Agent(), decisions)
	if err != nil {
		return nil, toStatus(err)
	}
	log.Debug().
		Str("game_id", req.GameID).
		Int("decisions", len(played)).
		Msg("AI played")
	if played == nil {
		played = []string{}
	}
	return toResponse(playAIResponse{Played: played, Game: view})
}

func toResponse(v any) (*structpb.Struct, error) {
	resp, err := toStruct(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return resp, nil
}

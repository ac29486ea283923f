package gameserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	gameengine "github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// GameView is the wire representation of a hosted game, shared by the gRPC
// service and the HTTP API.
type GameView struct {
	GameID        string           `json:"game_id"`
	Seed          uint64           `json:"seed,string"`
	Century       int              `json:"century"`
	CurrentPlayer int              `json:"current_player"`
	GameOver      bool             `json:"game_over"`
	Winner        string           `json:"winner,omitempty"`
	Decisions     int              `json:"decisions"`
	Message       string           `json:"message"`
	Actions       []string         `json:"actions"`
	Players       []PlayerView     `json:"players"`
	Zones         map[string][]int `json:"zones"`
	Tiles         []TileView       `json:"tiles"`
	Board         string           `json:"board,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type PlayerView struct {
	Seat             int    `json:"seat"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	Score            int    `json:"score"`
	ActiveCubes      int    `json:"active_cubes"`
	PassiveCubes     int    `json:"passive_cubes"`
	Leader           string `json:"leader"`
	HoldingArchitect bool   `json:"holding_architect"`
}

// TileView describes a building that has an architect, workers or a star.
// Untouched buildings are left out.
type TileView struct {
	Index     int      `json:"index"`
	Tile      string   `json:"tile"`
	Column    int      `json:"column"`
	Line      int      `json:"line"`
	Architect string   `json:"architect,omitempty"`
	Spots     []string `json:"spots"`
	Star      string   `json:"star,omitempty"`
	StarCount int      `json:"star_count,omitempty"`
	Flipped   bool     `json:"flipped,omitempty"`
}

func (g *GameInstance) viewLocked(withBoard bool) GameView {
	state := g.engine.GameState()
	view := convertGameState(state)
	view.GameID = g.id
	view.Seed = g.engine.Seed()
	view.Decisions = g.engine.Decisions()
	view.CreatedAt = g.createdAt
	view.UpdatedAt = g.lastActivity
	if winner, ok := g.engine.GetWinner(); ok {
		view.Winner = winner.Name
	}
	if withBoard {
		view.Board = gameengine.RenderBoard(state, false)
	}
	return view
}

// convertGameState converts the rules state into its wire form
func convertGameState(state *gameengine.GameState) GameView {
	view := GameView{
		Century:       state.Century,
		CurrentPlayer: state.CurrentPlayer,
		GameOver:      state.GameOver,
		Actions:       []string{},
		Players:       make([]PlayerView, len(state.Players)),
		Zones:         make(map[string][]int, core.NumInfluenceTypes),
		Tiles:         []TileView{},
	}
	if state.PossibleActions != nil {
		view.Message = state.PossibleActions.Message
		for _, a := range state.PossibleActions.Actions {
			view.Actions = append(view.Actions, a.String())
		}
	}
	for seat := range state.Players {
		p := &state.Players[seat]
		view.Players[seat] = PlayerView{
			Seat:             seat,
			Name:             p.Name,
			Color:            p.Color.String(),
			Score:            p.Score,
			ActiveCubes:      p.ActiveCubes,
			PassiveCubes:     p.PassiveCubes,
			Leader:           p.Leader.String(),
			HoldingArchitect: p.HoldingArchitect,
		}
	}
	for _, zone := range core.ZoneScoringOrder {
		view.Zones[zone.String()] = append([]int(nil), state.ZoneCubes[zone][:len(state.Players)]...)
	}
	for i := range state.Tiles {
		if tv, ok := convertTile(i, &state.Tiles[i]); ok {
			view.Tiles = append(view.Tiles, tv)
		}
	}
	return view
}

func convertTile(index int, t *gameengine.TileState) (TileView, bool) {
	if t.Architect == core.ColorNone && t.CountFilledSpots() == 0 && t.StarCount == 0 {
		return TileView{}, false
	}
	tv := TileView{
		Index:     index,
		Tile:      t.Tile.String(),
		Column:    t.Position.X,
		Line:      t.Position.Y,
		Spots:     make([]string, 0, core.SpotsPerTile),
		StarCount: t.StarCount,
		Flipped:   t.BuildingFacing,
	}
	if t.Architect != core.ColorNone {
		tv.Architect = t.Architect.String()
	}
	if t.StarToken != core.ColorNone {
		tv.Star = t.StarToken.String()
	}
	for _, c := range t.Spots {
		if c != core.ColorNone {
			tv.Spots = append(tv.Spots, c.String())
		}
	}
	return tv, true
}

// toStruct converts any JSON-encodable value into a protobuf Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("converting %T to struct: %w", v, err)
	}
	return s, nil
}

// fromStruct decodes a protobuf Struct into v
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// toStatus converts an error into a gRPC status error
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(errorCode(err), err.Error())
}

// errorCode maps the domain errors onto gRPC codes
func errorCode(err error) codes.Code {
	var actionErr *core.ActionError
	switch {
	case errors.Is(err, ErrGameNotFound):
		return codes.NotFound
	case errors.Is(err, ErrAtCapacity):
		return codes.ResourceExhausted
	case errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrGameFinished),
		errors.Is(err, core.ErrGameOver):
		return codes.FailedPrecondition
	case errors.Is(err, ErrInvalidAction),
		errors.Is(err, core.ErrInvalidPlayerCount),
		errors.Is(err, common.ErrEmptyPlayerName),
		errors.Is(err, common.ErrDuplicatePlayerName),
		errors.As(err, &actionErr):
		return codes.InvalidArgument
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

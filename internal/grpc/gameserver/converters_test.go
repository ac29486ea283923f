package gameserver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	gameengine "github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

func TestConvertGameState(t *testing.T) {
	c := gameengine.NewController(nil, zerolog.Nop())
	state := &gameengine.GameState{}
	require.NoError(t, c.InitGame(state, []string{"Ann", "Bob", "Cid"}))

	view := convertGameState(state)
	assert.Equal(t, 0, view.Century)
	assert.Len(t, view.Actions, firstMenuSize)
	assert.Equal(t, state.PossibleActions.Message, view.Message)
	assert.Empty(t, view.Tiles, "no building has been touched")
	require.Len(t, view.Players, 3)
	assert.Equal(t, PlayerView{
		Seat:             2,
		Name:             "Cid",
		Color:            "Orange",
		ActiveCubes:      state.Players[2].ActiveCubes,
		PassiveCubes:     state.Players[2].PassiveCubes,
		Leader:           "None",
		HoldingArchitect: true,
	}, view.Players[2])
	require.Len(t, view.Zones, core.NumInfluenceTypes)
	assert.Equal(t, []int{0, 0, 0}, view.Zones["Citadel"])

	_, err := c.PerformIndex(state, 0)
	require.NoError(t, err)
	state.Tiles[5].Spots[0] = core.ColorWhite
	state.Tiles[5].Spots[1] = core.ColorOrange

	view = convertGameState(state)
	require.Len(t, view.Tiles, 2)
	assert.Equal(t, 0, view.Tiles[0].Index)
	assert.Equal(t, "Black", view.Tiles[0].Architect)
	assert.Empty(t, view.Tiles[0].Spots)
	assert.Equal(t, 5, view.Tiles[1].Index)
	assert.Equal(t, []string{"White", "Orange"}, view.Tiles[1].Spots)
	assert.Equal(t, state.Tiles[5].Position.X, view.Tiles[1].Column)
	assert.Equal(t, 1, view.CurrentPlayer)
}

func TestStructConversion(t *testing.T) {
	seed := uint64(1) << 60
	s, err := toStruct(createGameRequest{Players: []string{"Ann", "Bob"}, Seed: &seed})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(seed), s.GetFields()["seed"].GetStringValue(), "seeds travel as strings")

	var back createGameRequest
	require.NoError(t, fromStruct(s, &back))
	require.NotNil(t, back.Seed)
	assert.Equal(t, seed, *back.Seed)
	assert.Equal(t, []string{"Ann", "Bob"}, back.Players)

	var empty performActionRequest
	require.NoError(t, fromStruct(nil, &empty))
	assert.Equal(t, AnyAction(), empty.actionRequest())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("lookup: %w", ErrGameNotFound), codes.NotFound},
		{ErrAtCapacity, codes.ResourceExhausted},
		{ErrNotYourTurn, codes.FailedPrecondition},
		{core.WrapGameStateError(3, "perform action", core.ErrGameOver), codes.FailedPrecondition},
		{core.WrapActionError(core.ColorBlack, "choose action", core.ErrActionOutOfRange), codes.InvalidArgument},
		{common.ErrDuplicatePlayerName, codes.InvalidArgument},
		{context.Canceled, codes.Canceled},
		{core.WrapGameStateError(1, "check invariants", errors.New("cube count")), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
			st, ok := status.FromError(toStatus(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
		})
	}
	assert.NoError(t, toStatus(nil))
}

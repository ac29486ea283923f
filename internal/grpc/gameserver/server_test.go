package gameserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

// first menu of a 2 or 3 player game: 12 architect moves, 5 zone sends and
// 3 leaders
const firstMenuSize = 20

// setupTestServer creates an in-memory gRPC server for testing
func setupTestServer(t *testing.T) (GameServiceClient, func()) {
	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer()
	gm := NewGameManager(10, WithCleanupInterval(0), WithCheckInvariants(true))
	RegisterGameServiceServer(s, NewServer(gm))

	go func() {
		if err := s.Serve(lis); err != nil {
			t.Logf("Server exited with error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	client := NewGameServiceClient(conn)

	cleanup := func() {
		conn.Close()
		s.Stop()
		lis.Close()
		gm.Close()
	}

	return client, cleanup
}

func request(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func field(resp *structpb.Struct, name string) *structpb.Value {
	return resp.GetFields()[name]
}

func number(resp *structpb.Struct, name string) int {
	return int(field(resp, name).GetNumberValue())
}

func list(resp *structpb.Struct, name string) []*structpb.Value {
	return field(resp, name).GetListValue().GetValues()
}

func createGame(t *testing.T, client GameServiceClient, players ...interface{}) string {
	t.Helper()
	resp, err := client.CreateGame(context.Background(), request(t, map[string]interface{}{
		"players": players,
		"seed":    "42",
	}))
	require.NoError(t, err)
	gameID := field(resp, "game_id").GetStringValue()
	require.NotEmpty(t, gameID)
	return gameID
}

func assertCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "not a status error: %v", err)
	assert.Equal(t, code, st.Code(), st.Message())
}

func TestCreateGame(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	ctx := context.Background()

	resp, err := client.CreateGame(ctx, request(t, map[string]interface{}{
		"players": []interface{}{"Ann", "Bob"},
		"seed":    "42",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, field(resp, "game_id").GetStringValue())
	assert.Equal(t, "42", field(resp, "seed").GetStringValue())
	assert.Equal(t, 0, number(resp, "century"))
	assert.False(t, field(resp, "game_over").GetBoolValue())
	assert.Len(t, list(resp, "actions"), firstMenuSize)

	players := list(resp, "players")
	require.Len(t, players, 2)
	first := players[0].GetStructValue()
	assert.Equal(t, "Ann", field(first, "name").GetStringValue())
	assert.Equal(t, "Black", field(first, "color").GetStringValue())
	assert.True(t, field(first, "holding_architect").GetBoolValue())

	// Without names or seed
	resp2, err := client.CreateGame(ctx, request(t, map[string]interface{}{"num_players": 3}))
	require.NoError(t, err)
	assert.NotEqual(t, field(resp, "game_id").GetStringValue(), field(resp2, "game_id").GetStringValue())
	players = list(resp2, "players")
	require.Len(t, players, 3)
	assert.Equal(t, "Player 3", field(players[2].GetStructValue(), "name").GetStringValue())
}

func TestCreateGame_InvalidPlayers(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"no players", map[string]interface{}{}},
		{"one player", map[string]interface{}{"players": []interface{}{"Ann"}}},
		{"six players", map[string]interface{}{"num_players": 6}},
		{"duplicate names", map[string]interface{}{"players": []interface{}{"Ann", "ann"}}},
		{"blank name", map[string]interface{}{"players": []interface{}{"Ann", " "}}},
		{"numeric seed", map[string]interface{}{"num_players": 2, "seed": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateGame(context.Background(), request(t, tt.fields))
			assertCode(t, err, codes.InvalidArgument)
		})
	}
}

func TestGetGame(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	_, err := client.GetGame(ctx, request(t, map[string]interface{}{"game_id": "missing"}))
	assertCode(t, err, codes.NotFound)

	gameID := createGame(t, client, "Ann", "Bob")
	resp, err := client.GetGame(ctx, request(t, map[string]interface{}{"game_id": gameID}))
	require.NoError(t, err)
	assert.Equal(t, gameID, field(resp, "game_id").GetStringValue())
	assert.NotContains(t, resp.GetFields(), "board")

	resp, err = client.GetGame(ctx, request(t, map[string]interface{}{"game_id": gameID, "board": true}))
	require.NoError(t, err)
	assert.Contains(t, field(resp, "board").GetStringValue(), "century 0")
}

func TestPerformAction(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	gameID := createGame(t, client, "Ann", "Bob")

	resp, err := client.PerformAction(ctx, request(t, map[string]interface{}{
		"game_id":      gameID,
		"seat":         0,
		"decision":     0,
		"action_index": 0,
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, number(resp, "decisions"))
	assert.Equal(t, 1, number(resp, "current_player"))
	tiles := list(resp, "tiles")
	require.Len(t, tiles, 1)
	assert.Equal(t, "Black", field(tiles[0].GetStructValue(), "architect").GetStringValue())

	resp, err = client.PerformAction(ctx, request(t, map[string]interface{}{
		"game_id": gameID,
		"action":  "Take Citadel",
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, number(resp, "decisions"))
	players := list(resp, "players")
	assert.Equal(t, "Citadel", field(players[1].GetStructValue(), "leader").GetStringValue())
}

func TestPerformAction_Rejected(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	gameID := createGame(t, client, "Ann", "Bob", "Cid")

	tests := []struct {
		name   string
		fields map[string]interface{}
		code   codes.Code
	}{
		{"missing game id", map[string]interface{}{"action_index": 0}, codes.InvalidArgument},
		{"unknown game", map[string]interface{}{"game_id": "missing", "action_index": 0}, codes.NotFound},
		{"no action", map[string]interface{}{"game_id": gameID}, codes.InvalidArgument},
		{"wrong seat", map[string]interface{}{"game_id": gameID, "seat": 1, "action_index": 0}, codes.FailedPrecondition},
		{"stale decision", map[string]interface{}{"game_id": gameID, "decision": 3, "action_index": 0}, codes.InvalidArgument},
		{"index out of range", map[string]interface{}{"game_id": gameID, "action_index": firstMenuSize}, codes.InvalidArgument},
		{"ambiguous text", map[string]interface{}{"game_id": gameID, "action": "Take"}, codes.InvalidArgument},
		{"unknown text", map[string]interface{}{"game_id": gameID, "action": "Build a bridge"}, codes.InvalidArgument},
		{"fractional index", map[string]interface{}{"game_id": gameID, "action_index": 1.5}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PerformAction(context.Background(), request(t, tt.fields))
			assertCode(t, err, tt.code)
		})
	}

	resp, err := client.GetGame(context.Background(), request(t, map[string]interface{}{"game_id": gameID}))
	require.NoError(t, err)
	assert.Equal(t, 0, number(resp, "decisions"), "rejected requests change nothing")
}

func TestPerformAction_Idempotency(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	gameID := createGame(t, client, "Ann", "Bob")

	req := request(t, map[string]interface{}{
		"game_id":         gameID,
		"action":          "Send 1 cubes to Religious zone",
		"idempotency_key": "key-1",
	})
	resp1, err := client.PerformAction(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, number(resp1, "decisions"))

	resp2, err := client.PerformAction(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, resp1.AsMap(), resp2.AsMap(), "repeated key returns the first response")

	state, err := client.GetGame(ctx, request(t, map[string]interface{}{"game_id": gameID}))
	require.NoError(t, err)
	assert.Equal(t, 1, number(state, "decisions"), "the action was played once")

	// A new key plays again, for the second player this time
	resp3, err := client.PerformAction(ctx, request(t, map[string]interface{}{
		"game_id":         gameID,
		"action":          "Send 1 cubes to Religious zone",
		"idempotency_key": "key-2",
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, number(resp3, "decisions"))
	zones := field(resp3, "zones").GetStructValue()
	religious := zones.GetFields()["Religious"].GetListValue().GetValues()
	require.Len(t, religious, 2)
	assert.Equal(t, 1.0, religious[0].GetNumberValue())
	assert.Equal(t, 1.0, religious[1].GetNumberValue())
}

func TestPlayAI(t *testing.T) {
	client, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	gameID := createGame(t, client, "Ann", "Bob")

	resp, err := client.PlayAI(ctx, request(t, map[string]interface{}{"game_id": gameID, "decisions": 3}))
	require.NoError(t, err)
	assert.Len(t, list(resp, "played"), 3)
	assert.Equal(t, 3, number(field(resp, "game").GetStructValue(), "decisions"))

	resp, err = client.PlayAI(ctx, request(t, map[string]interface{}{"game_id": gameID, "decisions": maxAIDecisions}))
	require.NoError(t, err)
	game := field(resp, "game").GetStructValue()
	require.True(t, field(game, "game_over").GetBoolValue())
	assert.NotEmpty(t, field(game, "winner").GetStringValue())
	assert.Equal(t, 3, number(game, "century"))

	_, err = client.PlayAI(ctx, request(t, map[string]interface{}{"game_id": gameID}))
	assertCode(t, err, codes.FailedPrecondition)
	_, err = client.PerformAction(ctx, request(t, map[string]interface{}{"game_id": gameID, "action_index": 0}))
	assertCode(t, err, codes.FailedPrecondition)
	_, err = client.PlayAI(ctx, request(t, map[string]interface{}{"game_id": "missing"}))
	assertCode(t, err, codes.NotFound)
}

// Package script drives a game from a Lua script, the way a tutorial walks
// a player through chosen moves.
//
// Scripts see the game through a few globals. Action indices and seats are
// 1-based, as is customary in Lua.
//
//	actions()              list of the pending action texts
//	play(i)                play the i-th pending action
//	play_matching(text)    play the action equal to text, or the only one starting with it
//	ai_play([n])           let the agent play n decisions, 1 by default
//	century()              current century, 0 to 3
//	score(seat)            score of a seat
//	current()              seat, name and color of the player to move
//	game_over()            whether the game ended
//	log(msg)               write msg to the driver log
//
// A rejected move raises a Lua error that ends the script.
package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/ArcBees/quebec-game-sub001/internal/ai"
	"github.com/ArcBees/quebec-game-sub001/internal/game"
)

var ErrNoAgent = errors.New("no agent configured")

type Option func(d *Driver)

// WithAgent enables ai_play
func WithAgent(agent *ai.Agent) Option {
	return func(d *Driver) {
		d.agent = agent
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger.With().Str("component", "Script").Logger()
	}
}

// Driver runs scripts against one engine. A Driver is not safe for
// concurrent use.
type Driver struct {
	engine *game.Engine
	agent  *ai.Agent
	logger zerolog.Logger

	ctx    context.Context
	played []string
	// err keeps the Go error behind the last raised Lua error
	err error
}

func NewDriver(engine *game.Engine, opts ...Option) *Driver {
	d := &Driver{engine: engine, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Played returns the text of every decision made by scripts so far
func (d *Driver) Played() []string { return append([]string(nil), d.played...) }

// Run executes a script
func (d *Driver) Run(ctx context.Context, source string) error {
	return d.run(ctx, func(L *lua.LState) error { return L.DoString(source) })
}

// RunFile executes the script stored at path
func (d *Driver) RunFile(ctx context.Context, path string) error {
	return d.run(ctx, func(L *lua.LState) error { return L.DoFile(path) })
}

func (d *Driver) run(ctx context.Context, do func(L *lua.LState) error) error {
	L := d.newState()
	defer L.Close()
	L.SetContext(ctx)
	d.ctx = ctx
	d.err = nil

	if err := do(L); err != nil {
		if d.err != nil {
			return fmt.Errorf("script: %w", d.err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script: %w", ctxErr)
		}
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// sandboxed lists the base functions that reach the file system
var sandboxed = []string{"dofile", "loadfile", "require", "module"}

// newState opens a sandbox without the io, os and package libraries. Scripts
// cannot load other files.
func (d *Driver) newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range sandboxed {
		L.SetGlobal(name, lua.LNil)
	}

	for name, fn := range map[string]lua.LGFunction{
		"actions":       d.luaActions,
		"play":          d.luaPlay,
		"play_matching": d.luaPlayMatching,
		"ai_play":       d.luaAIPlay,
		"century":       d.luaCentury,
		"score":         d.luaScore,
		"current":       d.luaCurrent,
		"game_over":     d.luaGameOver,
		"log":           d.luaLog,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	return L
}

func (d *Driver) raise(L *lua.LState, err error) int {
	d.err = err
	L.RaiseError("%s", err.Error())
	return 0
}

func (d *Driver) perform(L *lua.LState, index int) int {
	state := d.engine.GameState()
	action, err := game.PendingAction(state, index)
	if err != nil {
		return d.raise(L, err)
	}
	if err := d.engine.Perform(d.ctx, index); err != nil {
		return d.raise(L, err)
	}
	text := action.String()
	d.played = append(d.played, text)
	d.logger.Debug().Str("action", text).Int("decision", d.engine.Decisions()).Msg("Script played")
	L.Push(lua.LString(text))
	return 1
}

func (d *Driver) luaActions(L *lua.LState) int {
	t := L.NewTable()
	for _, a := range d.engine.PendingActions() {
		t.Append(lua.LString(a.String()))
	}
	L.Push(t)
	return 1
}

func (d *Driver) luaPlay(L *lua.LState) int {
	return d.perform(L, L.CheckInt(1)-1)
}

func (d *Driver) luaPlayMatching(L *lua.LState) int {
	index, err := game.MatchAction(d.engine.GameState(), L.CheckString(1))
	if err != nil {
		return d.raise(L, err)
	}
	return d.perform(L, index)
}

func (d *Driver) luaAIPlay(L *lua.LState) int {
	if d.agent == nil {
		return d.raise(L, ErrNoAgent)
	}
	n := L.OptInt(1, 1)
	played := 0
	for ; played < n && !d.engine.IsGameOver(); played++ {
		index, err := d.agent.Choose(d.engine.GameState())
		if err != nil {
			return d.raise(L, err)
		}
		d.perform(L, index)
		L.Pop(1)
	}
	L.Push(lua.LNumber(played))
	return 1
}

func (d *Driver) luaCentury(L *lua.LState) int {
	L.Push(lua.LNumber(d.engine.Century()))
	return 1
}

func (d *Driver) luaScore(L *lua.LState) int {
	seat := L.CheckInt(1)
	state := d.engine.GameState()
	if seat < 1 || seat > len(state.Players) {
		L.ArgError(1, fmt.Sprintf("seat %d of %d", seat, len(state.Players)))
		return 0
	}
	L.Push(lua.LNumber(state.Players[seat-1].Score))
	return 1
}

func (d *Driver) luaCurrent(L *lua.LState) int {
	state := d.engine.GameState()
	player := state.Current()
	L.Push(lua.LNumber(state.CurrentPlayer + 1))
	L.Push(lua.LString(player.Name))
	L.Push(lua.LString(player.Color.String()))
	return 3
}

func (d *Driver) luaGameOver(L *lua.LState) int {
	L.Push(lua.LBool(d.engine.IsGameOver()))
	return 1
}

func (d *Driver) luaLog(L *lua.LState) int {
	d.logger.Info().Msg(L.CheckString(1))
	return 0
}

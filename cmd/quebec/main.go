package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/ArcBees/quebec-game-sub001/internal/ai"
	"github.com/ArcBees/quebec-game-sub001/internal/common"
	"github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/script"
	"github.com/ArcBees/quebec-game-sub001/internal/store"
)

const maxDecisions = 5000

func main() {
	_ = godotenv.Load()

	players := flag.Int("players", 3, "Number of players (2 to 5)")
	names := flag.String("names", "", "Comma separated player names, overrides -players")
	seed := flag.Uint64("seed", 0, "Deal seed (0 draws one)")
	policy := flag.String("policy", "ai", "How seats play: ai, random or progress")
	scriptPath := flag.String("script", "", "Lua script played before the policy takes over")
	dbPath := flag.String("db", "", "Record the game in this SQLite database")
	replayID := flag.String("replay", "", "Replay a recorded game from -db instead of playing")
	list := flag.Bool("list", false, "List the games recorded in -db")
	colors := flag.Bool("color", true, "Colored board output")
	every := flag.Int("every", 0, "Print the board every N decisions (0 prints only the end)")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	setupLogging(*verbose)
	ctx := context.Background()

	var db *store.Store
	if *dbPath != "" {
		var err error
		if db, err = store.Open(*dbPath, store.WithLogger(log.Logger)); err != nil {
			log.Fatal().Err(err).Msg("Failed to open game database")
		}
		defer db.Close()
	}

	switch {
	case *list:
		if db == nil {
			log.Fatal().Msg("-list needs -db")
		}
		listGames(ctx, db)
		return
	case *replayID != "":
		if db == nil {
			log.Fatal().Msg("-replay needs -db")
		}
		engine, err := db.Replay(ctx, *replayID, store.ReplayOptions{Logger: log.Logger, CheckInvariants: true})
		if err != nil {
			log.Fatal().Err(err).Str("game_id", *replayID).Msg("Replay failed")
		}
		printResult(engine, *colors)
		return
	}

	table := common.DefaultPlayerNames(*players)
	if *names != "" {
		table = strings.Split(*names, ",")
		for i := range table {
			table[i] = strings.TrimSpace(table[i])
		}
	}
	if err := common.ValidatePlayerNames(table); err != nil {
		log.Fatal().Err(err).Msg("Invalid table")
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	choose, err := newPolicy(*policy, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid policy")
	}

	cfg := game.GameConfig{
		Players: table,
		Seed:    *seed,
		Logger:  log.Logger,
	}
	if db != nil {
		cfg.Recorder = db
	}
	engine, err := game.NewEngine(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}
	if db != nil {
		if err := db.CreateGame(ctx, engine.GameID(), table, *seed); err != nil {
			log.Fatal().Err(err).Msg("Failed to record game")
		}
	}
	fmt.Printf("Game %s, seed %d\n\n", engine.GameID(), *seed)

	if *scriptPath != "" {
		driver := script.NewDriver(engine, script.WithAgent(ai.NewAgent()), script.WithLogger(log.Logger))
		if err := driver.RunFile(ctx, *scriptPath); err != nil {
			log.Fatal().Err(err).Msg("Script failed")
		}
		for _, played := range driver.Played() {
			fmt.Printf("script: %s\n", played)
		}
	}

	for !engine.IsGameOver() && engine.Decisions() < maxDecisions {
		state := engine.GameState()
		index, err := choose(state)
		if err != nil {
			log.Fatal().Err(err).Msg("Policy failed")
		}
		player := state.Current()
		action := state.PossibleActions.Actions[index]
		if err := engine.Perform(ctx, index); err != nil {
			log.Fatal().Err(err).Msg("Action failed")
		}
		log.Debug().Str("player", player.Name).Str("action", action.String()).Msg("Played")
		if *every > 0 && engine.Decisions()%*every == 0 {
			fmt.Printf("After %d decisions:\n%s\n", engine.Decisions(), game.RenderBoard(engine.GameState(), *colors))
		}
	}

	if db != nil && engine.IsGameOver() {
		if err := db.FinishGame(ctx, engine.GameID(), game.Scores(engine.GameState())); err != nil {
			log.Error().Err(err).Msg("Failed to record the final scores")
		}
	}
	printResult(engine, *colors)
}

type policyFunc func(*game.GameState) (int, error)

func newPolicy(name string, seed uint64) (policyFunc, error) {
	switch name {
	case "ai":
		agent := ai.NewAgent(ai.WithLogger(log.Logger))
		return agent.Choose, nil
	case "random":
		rng := rand.New(rand.NewSource(seed))
		return func(state *game.GameState) (int, error) {
			return game.ChooseRandomAction(state, rng), nil
		}, nil
	case "progress":
		return func(state *game.GameState) (int, error) {
			return game.ChooseProgressAction(state), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func printResult(engine *game.Engine, colors bool) {
	fmt.Println(game.RenderBoard(engine.GameState(), colors))
	if !engine.IsGameOver() {
		fmt.Printf("Stopped after %d decisions, century %d\n", engine.Decisions(), engine.Century())
		return
	}
	fmt.Printf("Game over after %d decisions\n", engine.Decisions())
	for rank, s := range engine.Standings() {
		fmt.Printf("%d. %-12s %-7s %3d points\n", rank+1, s.Name, s.Color, s.Score)
	}
}

func listGames(ctx context.Context, db *store.Store) {
	games, err := db.ListGames(ctx, 20)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list games")
	}
	for _, g := range games {
		status := "in progress"
		if g.Finished() {
			status = fmt.Sprintf("finished %v", g.Scores)
		}
		fmt.Printf("%s  %s  %s  %s\n", g.ID, g.CreatedAt.Format(time.RFC3339), strings.Join(g.Players, ","), status)
	}
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

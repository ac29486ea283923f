package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/ArcBees/quebec-game-sub001/internal/ai"
	"github.com/ArcBees/quebec-game-sub001/internal/config"
	"github.com/ArcBees/quebec-game-sub001/internal/grpc/gameserver"
	"github.com/ArcBees/quebec-game-sub001/internal/httpapi"
	"github.com/ArcBees/quebec-game-sub001/internal/store"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay, merges config.<env>.yaml")
	port := flag.Int("port", -1, "The gRPC port (-1 to use config default)")
	httpPort := flag.Int("http-port", -1, "The HTTP port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	maxGames := flag.Int("max-games", -1, "Maximum concurrent games (-1 to use config default, 0 for no limit)")
	dbPath := flag.String("db", "", "Game log database (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *port == -1 {
		*port = cfg.Server.GRPCServer.Port
	}
	if *httpPort == -1 {
		*httpPort = cfg.Server.HTTPServer.Port
	}
	if *host == "" {
		*host = cfg.Server.GRPCServer.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	if *maxGames == -1 {
		*maxGames = cfg.Server.GRPCServer.MaxGames
	}
	if *dbPath == "" {
		*dbPath = cfg.Store.Path
	}

	setupLogging(*logLevel, cfg.Server.LogFormat)
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(c *config.Config) {
			setupLogging(c.Server.LogLevel, c.Server.LogFormat)
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		}, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}

	log.Info().
		Int("port", *port).
		Int("http_port", *httpPort).
		Str("host", *host).
		Int("max_games", *maxGames).
		Msg("Starting Quebec game server")

	agent := ai.NewAgent(
		ai.WithWorkers(cfg.AI.Workers),
		ai.WithEvaluationFn(ai.WeightedHeuristic(ai.Weights(cfg.AI.Weights))),
		ai.WithLogger(log.Logger),
	)
	managerOpts := []gameserver.ManagerOption{
		gameserver.WithAgent(agent),
		gameserver.WithCheckInvariants(cfg.Game.CheckInvariants),
		gameserver.WithCleanupInterval(cfg.Server.GRPCServer.CleanupEvery()),
		gameserver.WithLogger(log.Logger),
	}

	if cfg.Store.Enabled {
		db, err := store.Open(*dbPath, store.WithLogger(log.Logger))
		if err != nil {
			log.Fatal().Err(err).Str("path", *dbPath).Msg("Failed to open game database")
		}
		defer db.Close()
		managerOpts = append(managerOpts, gameserver.WithRecorder(db))
		log.Info().Str("path", *dbPath).Msg("Recording games")
	}

	gameManager := gameserver.NewGameManager(*maxGames, managerOpts...)
	defer gameManager.Close()

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor,
		recoveryInterceptor,
	))
	gameserver.RegisterGameServiceServer(grpcServer, gameserver.NewServer(gameManager))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gameserver.GameService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	var httpServer *http.Server
	if cfg.Server.HTTPServer.Enabled {
		apiOpts := []httpapi.Option{
			httpapi.WithTimeout(cfg.Server.HTTPServer.Timeout()),
			httpapi.WithLogger(log.Logger),
		}
		if secret := cfg.Server.HTTPServer.JWTSecret; secret != "" {
			apiOpts = append(apiOpts, httpapi.WithSeatTokens(httpapi.NewSeatTokens(secret, cfg.Server.HTTPServer.TTL())))
			log.Info().Msg("Seat tokens required for HTTP actions")
		}
		httpServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.HTTPServer.Host, *httpPort),
			Handler:           httpapi.New(gameManager, apiOpts...),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info().Str("address", httpServer.Addr).Msg("HTTP server listening")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("HTTP server failed")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(gameserver.GameService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		delay := time.Duration(cfg.Server.GRPCServer.GracefulShutdownDelay) * time.Second
		time.Sleep(delay)

		if httpServer != nil {
			shutdownCtx, done := context.WithTimeout(context.Background(), delay+time.Second)
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("HTTP shutdown")
			}
			done()
		}
		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}

// loggingInterceptor logs all unary RPC calls
func loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		}
	}

	event := log.Info()
	if code == codes.Internal || code == codes.Unknown {
		event = log.Error()
	}
	event.
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("gRPC call")

	return resp, err
}

// recoveryInterceptor catches panics and returns proper gRPC errors
func recoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("method", info.FullMethod).
				Interface("panic", r).
				Msg("Recovered from panic in gRPC handler")
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// Command solver-server exposes the timetabling engine over HTTP,
// wired the way the teacher's cmd/api-gateway/main.go wires its own
// gin process: config → logger → (optional) Postgres → gin engine →
// middleware chain → routes.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	redisclient "github.com/redis/go-redis/v9"

	_ "github.com/maktab-edu/timetable-solver/api/swagger"
	"github.com/maktab-edu/timetable-solver/internal/dto"
	"github.com/maktab-edu/timetable-solver/internal/engine"
	"github.com/maktab-edu/timetable-solver/internal/handler"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/internal/store"
	"github.com/maktab-edu/timetable-solver/pkg/cache"
	"github.com/maktab-edu/timetable-solver/pkg/config"
	"github.com/maktab-edu/timetable-solver/pkg/database"
	"github.com/maktab-edu/timetable-solver/pkg/logger"
	"github.com/maktab-edu/timetable-solver/pkg/metrics"
	corsmiddleware "github.com/maktab-edu/timetable-solver/pkg/middleware/cors"
	reqidmiddleware "github.com/maktab-edu/timetable-solver/pkg/middleware/requestid"
	"github.com/maktab-edu/timetable-solver/pkg/storage"
)

// @title Timetable Solver API
// @version 1.0
// @description Constraint-programming engine for Afghan-curriculum school timetabling
// @BasePath /v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	metricsSet := metrics.NewSolver(reg)

	var audit *store.SolveRunRepository
	if cfg.Database.Enabled {
		db, dbErr := database.NewPostgres(cfg.Database)
		if dbErr != nil {
			logr.Sugar().Fatalw("failed to initialise audit database", "error", dbErr)
		}
		defer db.Close()
		audit = store.NewSolveRunRepository(db)
	}

	// §4.17: when Redis is enabled, proposals are written through to a
	// shared cache too, so any solver-server replica can serve a GET or
	// export for a proposal a different replica computed.
	var redisConn *redisclient.Client
	if cfg.Redis.Enabled {
		redisConn, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisConn.Close() //nolint:errcheck
	}

	proposals := store.NewProposalStore(cfg.Solver.ProposalTTL, redisConn)
	proposals.StartSweeper(time.Minute)
	defer proposals.Stop()

	timeLimit := time.Duration(cfg.Solver.MaxTimeSeconds) * time.Second
	if timeLimit <= 0 {
		timeLimit = 60 * time.Second
	}

	solveFunc := handler.EngineFunc(func(ctx context.Context, inst *model.Instance) (dto.SuccessResponse, error) {
		result, runErr := engine.Run(ctx, logr, inst, engine.Options{
			TimeLimit:                 timeLimit,
			DecomposeWork:             cfg.Solver.MaxConcurrentSubSolves,
			Metrics:                   metricsSet,
			EnableGracefulDegradation: cfg.Solver.EnableGracefulDegradation,
		})
		if runErr != nil {
			return dto.SuccessResponse{}, runErr
		}
		return dto.FromArtefact(result.Artefact, result.Warnings), nil
	})

	files, filesErr := storage.NewLocalStorage(cfg.Solver.ExportDir)
	if filesErr != nil {
		logr.Sugar().Fatalw("failed to initialise export storage", "error", filesErr)
	}
	var signer *storage.SignedURLSigner
	if cfg.Solver.ExportSigningSecret != "" {
		signer = storage.NewSignedURLSigner(cfg.Solver.ExportSigningSecret, 0)
	}

	solveHandler := handler.NewSolveHandler(solveFunc, proposals, audit, files, signer, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.RegisterRoutes(r, cfg.APIPrefix, solveHandler, cfg.Auth.JWTSecret, cfg.Auth.Required, reg)

	port := cfg.Port
	if port <= 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	logr.Sugar().Infow("solver-server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server exited", "error", err)
	}
}

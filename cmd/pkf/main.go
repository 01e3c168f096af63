package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/pkf/internal/ai"
	"github.com/xxxsen/pkf/internal/config"
	"github.com/xxxsen/pkf/internal/db"
	"github.com/xxxsen/pkf/internal/handler"
	"github.com/xxxsen/pkf/internal/job"
	"github.com/xxxsen/pkf/internal/middleware"
	"github.com/xxxsen/pkf/internal/repo"
	"github.com/xxxsen/pkf/internal/schedule"
	"github.com/xxxsen/pkf/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pkf",
		Short: "personal knowledge filter backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run pkf server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	docRepo := repo.NewDocumentRepo(conn)
	chunkRepo := repo.NewChunkRepo(conn)
	conceptRepo := repo.NewConceptRepo(conn)
	docConceptRepo := repo.NewDocumentConceptRepo(conn)
	claimRepo := repo.NewClaimRepo(conn)
	patternRepo := repo.NewPatternRepo(conn)
	embeddingRepo := repo.NewEmbeddingRepo(conn)
	scoreRepo := repo.NewScoreRepo(conn)
	contradictionRepo := repo.NewContradictionRepo(conn)
	graphRepo := repo.NewGraphRepo(conn)
	evolutionRepo := repo.NewEvolutionRepo(conn)

	var embedder ai.IEmbedder
	if cfg.AI.Provider != "" {
		provider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
		if err != nil {
			return fmt.Errorf("init ai provider: %w", err)
		}
		embedder = ai.NewEmbedder(provider, cfg.AI.EmbedModel)
	}

	analysisService := service.NewAnalysisService(chunkRepo, conceptRepo, docConceptRepo, claimRepo, patternRepo, embeddingRepo, embedder)
	scoringService := service.NewScoringService(docRepo, docConceptRepo, claimRepo, patternRepo, embeddingRepo, scoreRepo, cfg.Scoring)
	graphService := service.NewGraphService(docRepo, docConceptRepo, conceptRepo, graphRepo, evolutionRepo, cfg.Graph)
	documentService := service.NewDocumentService(docRepo, chunkRepo, analysisService, scoringService, graphService)
	insightService := service.NewInsightService(docRepo, scoreRepo)
	contradictionService := service.NewContradictionService(contradictionRepo)

	deps := handler.RouterDeps{
		Documents:      handler.NewDocumentHandler(documentService),
		Scores:         handler.NewScoreHandler(scoringService),
		Graph:          handler.NewGraphHandler(graphService),
		Insights:       handler.NewInsightHandler(insightService),
		Contradictions: handler.NewContradictionHandler(contradictionService),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewScoreBackfillJob(scoringService, cfg.Jobs.BackfillBatch), cfg.Jobs.ScoreBackfillSpec); err != nil {
		return err
	}
	if err := scheduler.AddJob(job.NewGraphRefreshJob(graphService), cfg.Jobs.GraphRefreshSpec); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

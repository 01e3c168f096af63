package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/pkf/internal/config"
	"github.com/xxxsen/pkf/internal/handler"
	"github.com/xxxsen/pkf/internal/middleware"
	"github.com/xxxsen/pkf/internal/repo"
	"github.com/xxxsen/pkf/internal/service"
	"github.com/xxxsen/pkf/test/testutil"
)

func setupRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	docRepo := repo.NewDocumentRepo(db)
	chunkRepo := repo.NewChunkRepo(db)
	conceptRepo := repo.NewConceptRepo(db)
	docConceptRepo := repo.NewDocumentConceptRepo(db)
	claimRepo := repo.NewClaimRepo(db)
	patternRepo := repo.NewPatternRepo(db)
	embeddingRepo := repo.NewEmbeddingRepo(db)
	scoreRepo := repo.NewScoreRepo(db)
	contradictionRepo := repo.NewContradictionRepo(db)
	graphRepo := repo.NewGraphRepo(db)
	evolutionRepo := repo.NewEvolutionRepo(db)

	analysisService := service.NewAnalysisService(chunkRepo, conceptRepo, docConceptRepo, claimRepo, patternRepo, embeddingRepo, nil)
	scoringService := service.NewScoringService(docRepo, docConceptRepo, claimRepo, patternRepo, embeddingRepo, scoreRepo, config.ScoringConfig{
		Weights:             config.DefaultWeights(),
		SimilarityThreshold: 0.85,
		RedundancyWindow:    50,
	})
	graphService := service.NewGraphService(docRepo, docConceptRepo, conceptRepo, graphRepo, evolutionRepo, config.GraphConfig{TopConcepts: 10, RelatedLimit: 10})
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
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, cleanup
}

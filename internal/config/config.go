package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database  DatabaseConfig   `json:"database"`
	Port      int              `json:"port"`
	LogConfig logger.LogConfig `json:"log_config"`
	Scoring   ScoringConfig    `json:"scoring"`
	Graph     GraphConfig      `json:"graph"`
	AI        AIConfig         `json:"ai"`
	Jobs      JobsConfig       `json:"jobs"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type ScoringWeights struct {
	Novelty       float64 `json:"novelty"`
	Depth         float64 `json:"depth"`
	Redundancy    float64 `json:"redundancy"`
	CognitiveLoad float64 `json:"cognitive_load"`
}

type ScoringConfig struct {
	Weights             ScoringWeights `json:"weights"`
	SimilarityThreshold float64        `json:"similarity_threshold"`
	RedundancyWindow    int            `json:"redundancy_window"`
}

type GraphConfig struct {
	TopConcepts  int `json:"top_concepts"`
	RelatedLimit int `json:"related_limit"`
}

type AIConfig struct {
	Provider   string                 `json:"provider"`
	EmbedModel string                 `json:"embed_model"`
	Data       map[string]interface{} `json:"data"`
}

type JobsConfig struct {
	ScoreBackfillSpec string `json:"score_backfill_spec"`
	GraphRefreshSpec  string `json:"graph_refresh_spec"`
	BackfillBatch     int    `json:"backfill_batch"`
}

// DefaultWeights are the shipped scoring weights. The cognitive load
// weight is carried for display purposes and does not enter the value
// formula.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Novelty:       0.3,
		Depth:         0.25,
		Redundancy:    0.25,
		CognitiveLoad: 0.2,
	}
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	zero := ScoringWeights{}
	if cfg.Scoring.Weights == zero {
		cfg.Scoring.Weights = DefaultWeights()
	}
	if cfg.Scoring.SimilarityThreshold == 0 {
		cfg.Scoring.SimilarityThreshold = 0.85
	}
	if cfg.Scoring.RedundancyWindow == 0 {
		cfg.Scoring.RedundancyWindow = 50
	}
	if cfg.Graph.TopConcepts == 0 {
		cfg.Graph.TopConcepts = 10
	}
	if cfg.Graph.RelatedLimit == 0 {
		cfg.Graph.RelatedLimit = 10
	}
	if cfg.Jobs.ScoreBackfillSpec == "" {
		cfg.Jobs.ScoreBackfillSpec = "*/5 * * * *"
	}
	if cfg.Jobs.GraphRefreshSpec == "" {
		cfg.Jobs.GraphRefreshSpec = "0 * * * *"
	}
	if cfg.Jobs.BackfillBatch == 0 {
		cfg.Jobs.BackfillBatch = 20
	}
	return &cfg, nil
}

package job

import (
	"context"

	"github.com/xxxsen/pkf/internal/service"
)

// GraphRefreshJob rebuilds knowledge graphs that have fallen behind
// their user's documents.
type GraphRefreshJob struct {
	graph *service.GraphService
}

func NewGraphRefreshJob(graph *service.GraphService) *GraphRefreshJob {
	return &GraphRefreshJob{graph: graph}
}

func (j *GraphRefreshJob) Name() string {
	return "graph_refresh"
}

func (j *GraphRefreshJob) Run(ctx context.Context) error {
	return j.graph.RefreshStale(ctx)
}

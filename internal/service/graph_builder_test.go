package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/repo"
)

func TestSourceWeight(t *testing.T) {
	require.Equal(t, 1.0, sourceWeight(1001))
	require.Equal(t, 0.7, sourceWeight(1000))
	require.Equal(t, 0.7, sourceWeight(501))
	require.Equal(t, 0.4, sourceWeight(500))
	require.Equal(t, 0.4, sourceWeight(201))
	require.Equal(t, 0.2, sourceWeight(200))
	require.Equal(t, 0.2, sourceWeight(0))
}

func graphRows() []repo.DocConceptRow {
	// d1 (1200 words): a, b
	// d2 (300 words):  b, c
	// d3 (800 words):  a, b, c
	return []repo.DocConceptRow{
		{DocumentID: "d1", WordCount: 1200, ConceptID: "a"},
		{DocumentID: "d1", WordCount: 1200, ConceptID: "b"},
		{DocumentID: "d2", WordCount: 300, ConceptID: "b"},
		{DocumentID: "d2", WordCount: 300, ConceptID: "c"},
		{DocumentID: "d3", WordCount: 800, ConceptID: "a"},
		{DocumentID: "d3", WordCount: 800, ConceptID: "b"},
		{DocumentID: "d3", WordCount: 800, ConceptID: "c"},
	}
}

func TestBuildConceptEdges(t *testing.T) {
	edges := buildConceptEdges(graphRows())
	require.Len(t, edges, 3)

	byPair := map[[2]string]graphEdge{}
	for _, edge := range edges {
		require.Less(t, edge.ConceptAID, edge.ConceptBID)
		byPair[[2]string{edge.ConceptAID, edge.ConceptBID}] = edge
	}

	ab := byPair[[2]string{"a", "b"}]
	require.Equal(t, 2, ab.CoOccurrence)
	require.InDelta(t, 0.4, ab.Strength, 1e-9)
	require.InDelta(t, 0.17, ab.WeightedStrength, 1e-9) // (1.0 + 0.7) / 10

	bc := byPair[[2]string{"b", "c"}]
	require.Equal(t, 2, bc.CoOccurrence)
	require.InDelta(t, 0.4, bc.Strength, 1e-9)
	require.InDelta(t, 0.11, bc.WeightedStrength, 1e-9) // (0.4 + 0.7) / 10

	ac := byPair[[2]string{"a", "c"}]
	require.Equal(t, 1, ac.CoOccurrence)
	require.InDelta(t, 0.2, ac.Strength, 1e-9)
	require.InDelta(t, 0.07, ac.WeightedStrength, 1e-9)
}

func TestBuildConceptEdgesInterleavedDocuments(t *testing.T) {
	// Documents created in the same second arrive with their rows
	// interleaved; grouping must not depend on row adjacency.
	rows := []repo.DocConceptRow{
		{DocumentID: "d1", WordCount: 300, ConceptID: "a"},
		{DocumentID: "d2", WordCount: 300, ConceptID: "a"},
		{DocumentID: "d1", WordCount: 300, ConceptID: "b"},
		{DocumentID: "d2", WordCount: 300, ConceptID: "b"},
	}
	edges := buildConceptEdges(rows)
	require.Len(t, edges, 1)
	require.Equal(t, "a", edges[0].ConceptAID)
	require.Equal(t, "b", edges[0].ConceptBID)
	require.Equal(t, 2, edges[0].CoOccurrence)
	require.InDelta(t, 0.4, edges[0].Strength, 1e-9)
	require.InDelta(t, 0.08, edges[0].WeightedStrength, 1e-9)
}

func TestBuildConceptEdgesDeterministic(t *testing.T) {
	first := buildConceptEdges(graphRows())
	second := buildConceptEdges(graphRows())
	require.Equal(t, first, second)
}

func TestBuildConceptEdgesEmpty(t *testing.T) {
	require.Empty(t, buildConceptEdges(nil))
}

func TestDegreeCentrality(t *testing.T) {
	nodes := []string{"a", "b", "c"}
	edges := []graphEdge{
		{ConceptAID: "a", ConceptBID: "b"},
		{ConceptAID: "b", ConceptBID: "c"},
	}
	centrality := degreeCentrality(nodes, edges)
	require.InDelta(t, 0.5, centrality["a"], 1e-9)
	require.InDelta(t, 1.0, centrality["b"], 1e-9)
	require.InDelta(t, 0.5, centrality["c"], 1e-9)
}

func TestDegreeCentralitySingleNode(t *testing.T) {
	centrality := degreeCentrality([]string{"a"}, nil)
	require.Equal(t, 0.0, centrality["a"])
}

func TestTopConceptsByCentralityTieBreak(t *testing.T) {
	centrality := map[string]float64{"c1": 0.5, "c2": 0.5, "c3": 0.8}
	names := map[string]string{"c1": "zebra", "c2": "apple", "c3": "mango"}

	top := topConceptsByCentrality(centrality, names, 10)
	require.Len(t, top, 3)
	require.Equal(t, "mango", top[0].Name)
	require.Equal(t, "apple", top[1].Name)
	require.Equal(t, "zebra", top[2].Name)

	top = topConceptsByCentrality(centrality, names, 2)
	require.Len(t, top, 2)
	require.Equal(t, "mango", top[0].Name)
	require.Equal(t, "apple", top[1].Name)
}

func TestNeighborsOf(t *testing.T) {
	edges := buildConceptEdges(graphRows())

	related := neighborsOf(edges, "b")
	require.Len(t, related, 2)
	require.Equal(t, "a", related[0].ConceptID)
	require.InDelta(t, 0.17, related[0].WeightedStrength, 1e-9)
	require.Equal(t, "c", related[1].ConceptID)

	require.Empty(t, neighborsOf(edges, "missing"))
}

package service

import (
	"sort"

	"github.com/xxxsen/pkf/internal/model"
	"github.com/xxxsen/pkf/internal/repo"
)

// graphEdge is an undirected co-occurrence edge under construction.
// Concept IDs are stored in sorted order so each pair appears once.
type graphEdge struct {
	ConceptAID       string
	ConceptBID       string
	CoOccurrence     int
	Strength         float64
	WeightedStrength float64
}

// sourceWeight grades a document's quality by length. Long-form
// sources strengthen edges more than short social-style snippets.
func sourceWeight(wordCount int) float64 {
	switch {
	case wordCount > 1000:
		return 1.0
	case wordCount > 500:
		return 0.7
	case wordCount > 200:
		return 0.4
	default:
		return 0.2
	}
}

// buildConceptEdges folds the flat (document, concept) rows into
// co-occurrence edges. Rows are regrouped by document id here, so the
// input order does not matter. Strength normalizes raw co-occurrence
// at 5, weighted strength normalizes accumulated source weight at 10.
func buildConceptEdges(rows []repo.DocConceptRow) []graphEdge {
	type docGroup struct {
		wordCount int
		concepts  []string
	}
	docs := make(map[string]*docGroup)
	for _, row := range rows {
		group := docs[row.DocumentID]
		if group == nil {
			group = &docGroup{wordCount: row.WordCount}
			docs[row.DocumentID] = group
		}
		group.concepts = append(group.concepts, row.ConceptID)
	}

	type accum struct {
		coOccurrence int
		weighted     float64
	}
	edges := make(map[[2]string]*accum)
	for _, group := range docs {
		weight := sourceWeight(group.wordCount)
		for i := 0; i < len(group.concepts); i++ {
			for j := i + 1; j < len(group.concepts); j++ {
				a, b := group.concepts[i], group.concepts[j]
				if b < a {
					a, b = b, a
				}
				key := [2]string{a, b}
				acc := edges[key]
				if acc == nil {
					acc = &accum{}
					edges[key] = acc
				}
				acc.coOccurrence++
				acc.weighted += weight
			}
		}
	}

	out := make([]graphEdge, 0, len(edges))
	for key, acc := range edges {
		out = append(out, graphEdge{
			ConceptAID:       key[0],
			ConceptBID:       key[1],
			CoOccurrence:     acc.coOccurrence,
			Strength:         min1(float64(acc.coOccurrence) / 5.0),
			WeightedStrength: min1(acc.weighted / 10.0),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConceptAID != out[j].ConceptAID {
			return out[i].ConceptAID < out[j].ConceptAID
		}
		return out[i].ConceptBID < out[j].ConceptBID
	})
	return out
}

// degreeCentrality is the share of other nodes each node connects to.
// A single-node graph has no meaningful centrality and yields zeros.
func degreeCentrality(nodeIDs []string, edges []graphEdge) map[string]float64 {
	centrality := make(map[string]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		centrality[id] = 0
	}
	if len(nodeIDs) < 2 {
		return centrality
	}
	scale := 1.0 / float64(len(nodeIDs)-1)
	for _, edge := range edges {
		centrality[edge.ConceptAID] += scale
		centrality[edge.ConceptBID] += scale
	}
	return centrality
}

// topConceptsByCentrality picks the n most connected concepts. Ties
// break on concept name so repeated rebuilds produce the same list.
func topConceptsByCentrality(centrality map[string]float64, names map[string]string, n int) []model.TopConcept {
	type entry struct {
		name  string
		score float64
	}
	entries := make([]entry, 0, len(centrality))
	for id, score := range centrality {
		entries = append(entries, entry{name: names[id], score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]model.TopConcept, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.TopConcept{Name: e.name, Centrality: e.score})
	}
	return out
}

type neighbor struct {
	ConceptID        string
	WeightedStrength float64
}

// neighborsOf lists the concepts sharing an edge with conceptID,
// strongest first.
func neighborsOf(edges []graphEdge, conceptID string) []neighbor {
	var out []neighbor
	for _, edge := range edges {
		switch conceptID {
		case edge.ConceptAID:
			out = append(out, neighbor{ConceptID: edge.ConceptBID, WeightedStrength: edge.WeightedStrength})
		case edge.ConceptBID:
			out = append(out, neighbor{ConceptID: edge.ConceptAID, WeightedStrength: edge.WeightedStrength})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeightedStrength != out[j].WeightedStrength {
			return out[i].WeightedStrength > out[j].WeightedStrength
		}
		return out[i].ConceptID < out[j].ConceptID
	})
	return out
}

func distinctConceptIDs(rows []repo.DocConceptRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if _, ok := seen[row.ConceptID]; ok {
			continue
		}
		seen[row.ConceptID] = struct{}{}
		out = append(out, row.ConceptID)
	}
	sort.Strings(out)
	return out
}

func min1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

package service

import (
	"fmt"
	"strings"
)

// The scorers below are pure functions over per-document counts. The
// scoring service assembles their inputs from storage and persists the
// combined result.

// scoreNovelty grades a document by the share of its concepts the user
// has not seen in strictly earlier documents.
func scoreNovelty(newCount, existingCount int) (float64, string) {
	total := newCount + existingCount
	if total == 0 {
		return 0.0, "No concepts extracted yet."
	}
	score := float64(newCount) / float64(total)
	var explanation string
	switch {
	case score > 0.7:
		explanation = fmt.Sprintf("High novelty: %d out of %d concepts are new to you.", newCount, total)
	case score > 0.4:
		explanation = fmt.Sprintf("Moderate novelty: %d new concepts out of %d total.", newCount, total)
	default:
		explanation = fmt.Sprintf("Low novelty: Most concepts (%d) were already familiar.", existingCount)
	}
	return score, explanation
}

// scoreDepth combines length, concept density and claim count into a
// substance estimate.
func scoreDepth(wordCount, conceptCount, claimCount int) (float64, string) {
	var lengthScore float64
	switch {
	case wordCount < 200:
		lengthScore = 0.2
	case wordCount < 500:
		lengthScore = 0.4
	case wordCount < 1000:
		lengthScore = 0.6
	case wordCount < 2000:
		lengthScore = 0.8
	default:
		lengthScore = 1.0
	}

	var density float64
	if wordCount > 0 {
		density = float64(conceptCount) / (float64(wordCount) / 100.0)
	}
	conceptScore := clamp01(density / 5.0)
	claimsScore := clamp01(float64(claimCount) / 10.0)

	score := lengthScore*0.4 + conceptScore*0.4 + claimsScore*0.2

	var factors []string
	if lengthScore > 0.6 {
		factors = append(factors, "substantial length")
	}
	if conceptScore > 0.5 {
		factors = append(factors, "good concept density")
	}
	if claimsScore > 0.5 {
		factors = append(factors, "multiple factual claims")
	}

	var explanation string
	switch {
	case score > 0.7:
		explanation = fmt.Sprintf("High depth: Content has %s.", strings.Join(factors, ", "))
	case score > 0.4:
		explanation = fmt.Sprintf("Moderate depth: Some substantive content with %d words and %d concepts.", wordCount, conceptCount)
	default:
		explanation = fmt.Sprintf("Low depth: Brief content (%d words) with limited detail.", wordCount)
	}
	return score, explanation
}

// scoreCognitiveLoad estimates the mental effort a document demands.
// Emotional manipulation patterns count against it.
func scoreCognitiveLoad(wordCount, conceptCount, patternCount int) (float64, string) {
	var lengthLoad float64
	switch {
	case wordCount < 500:
		lengthLoad = 0.2
	case wordCount < 1500:
		lengthLoad = 0.5
	case wordCount < 3000:
		lengthLoad = 0.7
	default:
		lengthLoad = 0.9
	}

	var density float64
	if wordCount > 0 {
		density = float64(conceptCount) / (float64(wordCount) / 100.0)
	}
	var conceptLoad float64
	switch {
	case density > 8:
		conceptLoad = 0.9
	case density > 5:
		conceptLoad = 0.6
	default:
		conceptLoad = 0.3
	}

	emotionalLoad := clamp01(float64(patternCount) * 0.3)

	score := lengthLoad*0.4 + conceptLoad*0.4 + emotionalLoad*0.2

	var factors []string
	if lengthLoad > 0.6 {
		factors = append(factors, fmt.Sprintf("lengthy content (%d words)", wordCount))
	}
	if conceptLoad > 0.6 {
		factors = append(factors, "high concept density")
	}
	if emotionalLoad > 0.3 {
		factors = append(factors, "emotional content")
	}

	var explanation string
	switch {
	case score > 0.7:
		explanation = fmt.Sprintf("High cognitive load: %s. Consider taking breaks.", strings.Join(factors, ", "))
	case score > 0.4:
		if len(factors) > 0 {
			explanation = fmt.Sprintf("Moderate cognitive load: %s.", strings.Join(factors, ", "))
		} else {
			explanation = "Moderate cognitive load: Manageable complexity."
		}
	default:
		explanation = "Low cognitive load: Easy to process and digest."
	}
	return score, explanation
}

// overallValue combines the signals into one number. Novelty and depth
// add value, redundancy subtracts it. Cognitive load is informational
// and stays out of the formula.
func overallValue(novelty, depth, redundancy float64, weights scoringWeights) float64 {
	value := novelty*weights.Novelty + depth*weights.Depth - redundancy*weights.Redundancy
	return clamp01(value)
}

type scoringWeights struct {
	Novelty    float64
	Depth      float64
	Redundancy float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package console

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	exactScore     = 1.0
	fuzzyVerbFloor = 0.55
)

func matchVerb(token string) (*verbDef, float64) {
	var best *verbDef
	bestScore := 0.0
	for i := range verbs {
		def := &verbs[i]
		score := phraseScore(token, def.canonical)
		for _, alias := range def.aliases {
			if s := phraseScore(token, alias); s > score {
				score = s
			}
		}
		if score > bestScore {
			best = def
			bestScore = score
		}
	}
	if bestScore <= 0 {
		return nil, 0
	}
	return best, bestScore
}

// resolveName fuzzily matches a token against a known vocabulary. Ambiguous
// matches (two candidates within a hair of each other) are rejected with
// both options named rather than silently picking one.
func resolveName(token string, known []string, what string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", fmt.Errorf("missing %s", what)
	}

	best, second := "", ""
	bestScore, secondScore := 0.0, 0.0
	for _, cand := range known {
		c := strings.ToLower(cand)
		score := phraseScore(token, c)
		if score > bestScore {
			second, secondScore = best, bestScore
			best, bestScore = c, score
		} else if score > secondScore {
			second, secondScore = c, score
		}
	}

	if bestScore <= 0 {
		return "", fmt.Errorf("unknown %s %q", what, token)
	}
	if secondScore > 0 && bestScore-secondScore < 0.05 && bestScore < exactScore {
		return "", fmt.Errorf("ambiguous %s %q: %q or %q?", what, token, best, second)
	}
	return best, nil
}

func phraseScore(token, candidate string) float64 {
	switch {
	case token == candidate:
		return exactScore
	case strings.HasPrefix(candidate, token) && len(token) >= 2:
		return 0.9
	}
	dist := levenshtein.ComputeDistance(token, candidate)
	if dist > levenshteinLimit(len(candidate)) {
		return 0
	}
	score := 0.72 - 0.08*float64(dist)
	if score < 0 {
		return 0
	}
	return score
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

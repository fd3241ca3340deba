package match

import (
	"cmp"
	"slices"
	"strings"
)

const (
	// MinScore is the lowest similarity reported as a suggestion.
	MinScore = 0.6
	// MaxSuggestions bounds the result of Suggest.
	MaxSuggestions = 3
)

// Candidate is a known name with its similarity to the requested one.
type Candidate struct {
	Name  string
	Score float64
}

// Suggest returns up to MaxSuggestions names from known that resemble name,
// best first. Ties keep lexical order.
func Suggest(name string, known []string) []string {
	ranked := Rank(name, known)

	out := make([]string, 0, min(len(ranked), MaxSuggestions))
	for _, c := range ranked {
		if len(out) == MaxSuggestions {
			break
		}

		out = append(out, c.Name)
	}

	return out
}

// Rank scores every known name against name and returns those reaching
// MinScore, best first.
func Rank(name string, known []string) []Candidate {
	target := Normalize(lastSegment(name))
	if target == "" {
		return nil
	}

	var ranked []Candidate
	for _, k := range known {
		score := Similarity(target, Normalize(lastSegment(k)))
		if score < MinScore {
			continue
		}

		ranked = append(ranked, Candidate{Name: k, Score: score})
	}

	slices.SortFunc(ranked, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return ranked
}

// Normalize lowercases s and drops '_' and '-' separators.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}

		return r
	}, strings.ToLower(s))
}

func lastSegment(s string) string {
	return s[strings.LastIndex(s, ".")+1:]
}

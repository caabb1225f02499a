// Package fuzzy ranks free-text queries against a corpus of item labels
// using a partial-ratio similarity score.
package fuzzy

import (
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// DefaultThreshold is the score a candidate must exceed to be returned by Search.
const DefaultThreshold = 70

// Match is a scored corpus entry. Index points back into the corpus.
type Match struct {
	Index int
	Value string
	Score int
}

// Normalize lower-cases s and drops every character outside [a-z0-9\s].
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// Ratio returns the indel similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return float64(2*edlib.LCS(a, b)) / float64(total)
}

// PartialRatio scores how well the shorter string aligns with the best
// matching window of the longer one, on a 0-100 scale.
func PartialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	needle := string(short)
	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := Ratio(needle, string(long[start:start+len(short)]))
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return int(math.Round(best * 100))
}

// Rank scores every corpus entry against query and returns those scoring
// above threshold, highest first. Equal scores keep corpus order.
func Rank(corpus []string, query string, threshold int) []Match {
	q := Normalize(query)
	if q == "" {
		return []Match{}
	}

	matches := make([]Match, 0)
	for i, entry := range corpus {
		score := PartialRatio(q, Normalize(entry))
		if score > threshold {
			matches = append(matches, Match{Index: i, Value: entry, Score: score})
		}
	}

	slices.SortStableFunc(matches, func(x, y Match) int {
		return y.Score - x.Score
	})
	return matches
}

// Search returns the corpus entries matching query with DefaultThreshold.
func Search(corpus []string, query string) []string {
	matches := Rank(corpus, query, DefaultThreshold)
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.Value
	}
	return result
}

package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skins = []string{
	"AK-47 | Redline Field-Tested",
	"AWP | Asiimov Factory New",
	"AK-47 | Redline Minimal Wear",
	"M4A4 | Howl Field-Tested",
	"AWP | Dragon Lore Battle-Scarred",
	"Glock-18 | Fade Factory New",
	"USP-S | Kill Confirmed Well-Worn",
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ak47  redline fieldtested", Normalize("AK-47 | Redline Field-Tested"))
	assert.Equal(t, "stattrak awp", Normalize("  StatTrak™ AWP! "))
	assert.Equal(t, "", Normalize("★|-"))
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100, PartialRatio("redline", "ak47  redline fieldtested"))
	assert.Equal(t, 90, PartialRatio("redline ft", "ak47  redline fieldtested"))
	assert.Equal(t, 0, PartialRatio("", "anything"))
	assert.Equal(t, PartialRatio("awp", "awp  asiimov"), PartialRatio("awp  asiimov", "awp"))
}

func TestSearchRedlineScenario(t *testing.T) {
	corpus := []string{"AK-47 | Redline Field-Tested", "AWP | Asiimov Factory New"}

	matches := Rank(corpus, "redline ft", DefaultThreshold)

	require.Len(t, matches, 1)
	assert.Equal(t, "AK-47 | Redline Field-Tested", matches[0].Value)
	assert.Equal(t, 0, matches[0].Index)
	assert.Greater(t, matches[0].Score, DefaultThreshold)
	assert.Equal(t, []string{"AK-47 | Redline Field-Tested"}, Search(corpus, "redline ft"))
}

func TestRankIsSortedAndAboveThreshold(t *testing.T) {
	queries := []string{"redline", "awp", "ak", "howl ft", "fade", "factory new", "kill", "zzz", "a"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			matches := Rank(skins, q, DefaultThreshold)
			for i, m := range matches {
				assert.Greater(t, m.Score, DefaultThreshold)
				assert.Equal(t, skins[m.Index], m.Value)
				if i > 0 {
					assert.GreaterOrEqual(t, matches[i-1].Score, m.Score)
				}
			}
		})
	}
}

func TestRankTiesKeepCorpusOrder(t *testing.T) {
	matches := Rank(skins, "redline", DefaultThreshold)

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 2, matches[1].Index)
	assert.Equal(t, matches[0].Score, matches[1].Score)
}

func TestRankIsDeterministic(t *testing.T) {
	assert.Equal(t, Rank(skins, "awp", DefaultThreshold), Rank(skins, "awp", DefaultThreshold))
}

func TestSearchNoMatchesIsEmpty(t *testing.T) {
	result := Search(skins, "qqqqqq")
	assert.NotNil(t, result)
	assert.Empty(t, result)

	assert.Empty(t, Search(skins, "|||"))
	assert.Empty(t, Search(nil, "redline"))
}

package services

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"cratedig/config"
)

// OwnedIndexEntry is the matching projection of an owned record: just the id
// and the normalized search key. The matcher treats a loaded index as a
// read-only snapshot for the whole run.
type OwnedIndexEntry struct {
	OwnedID       uint   `json:"owned_id"`
	NormalizedKey string `json:"normalized_key"`
}

// MatchResult links a candidate track to an owned record with a 0-100
// confidence. OwnedID is zero exactly when Confidence is zero.
type MatchResult struct {
	OwnedID    uint `json:"owned_id"`
	Confidence int  `json:"confidence"`
}

// TrackMatcher scores candidate tracks against an owned-item index. The
// distance threshold is policy, not a derived constant, so it comes from
// configuration and can be overridden per matcher.
type TrackMatcher struct {
	threshold float64
}

// NewTrackMatcher creates a matcher with the configured strictness threshold
func NewTrackMatcher() *TrackMatcher {
	return NewTrackMatcherWithThreshold(config.Matching.DistanceThreshold)
}

// NewTrackMatcherWithThreshold creates a matcher that rejects candidates whose
// normalized edit distance exceeds threshold (0 = exact matches only)
func NewTrackMatcherWithThreshold(threshold float64) *TrackMatcher {
	return &TrackMatcher{threshold: threshold}
}

// MatchOwned returns the best-scoring index entry for artist+title, or the
// zero MatchResult when either field is empty, no entry is close enough, or
// the index itself is empty. Ties keep the first-encountered entry.
func (m *TrackMatcher) MatchOwned(artist, title string, index []OwnedIndexEntry) MatchResult {
	if strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return MatchResult{}
	}

	query := tokenSortKey(Normalize(artist + " " + title))
	if query == "" {
		return MatchResult{}
	}

	var bestID uint
	bestDistance := math.Inf(1)
	for _, entry := range index {
		d := normalizedDistance(query, tokenSortKey(entry.NormalizedKey))
		if d < bestDistance {
			bestDistance = d
			bestID = entry.OwnedID
		}
	}

	if bestID == 0 || bestDistance > m.threshold {
		return MatchResult{}
	}

	confidence := int(math.Round((1 - bestDistance) * 100))
	if confidence <= 0 {
		return MatchResult{}
	}
	return MatchResult{OwnedID: bestID, Confidence: confidence}
}

// tokenSortKey orders a key's tokens alphabetically so that word-order
// differences ("one more time daft punk" vs "daft punk one more time") do not
// count as edits.
func tokenSortKey(key string) string {
	tokens := strings.Fields(key)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// normalizedDistance returns edit distance scaled to [0,1], 0 = identical
func normalizedDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	if len(a) == 0 || len(b) == 0 {
		return 1
	}

	distance := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	return float64(distance) / float64(maxLen)
}

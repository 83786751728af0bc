package services

import (
	"testing"
)

func singleEntryIndex() []OwnedIndexEntry {
	return []OwnedIndexEntry{
		{OwnedID: 7, NormalizedKey: "daft punk one more time"},
	}
}

func TestMatchOwnedExactMatch(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)

	result := matcher.MatchOwned("Daft Punk", "One More Time", singleEntryIndex())
	if result.OwnedID != 7 {
		t.Fatalf("expected owned id 7, got %d", result.OwnedID)
	}
	if result.Confidence != 100 {
		t.Errorf("expected confidence 100 for exact match, got %d", result.Confidence)
	}
}

func TestMatchOwnedEmptyInputs(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)
	index := singleEntryIndex()

	tests := []struct {
		name   string
		artist string
		title  string
	}{
		{"empty artist", "", "One More Time"},
		{"empty title", "Daft Punk", ""},
		{"both empty", "", ""},
		{"whitespace artist", "   ", "One More Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.MatchOwned(tt.artist, tt.title, index)
			if result.OwnedID != 0 || result.Confidence != 0 {
				t.Errorf("MatchOwned(%q, %q) = %+v, want zero result", tt.artist, tt.title, result)
			}
		})
	}
}

func TestMatchOwnedRejectsDistantCandidates(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)

	result := matcher.MatchOwned("Completely Different Artist", "Totally Other Song", singleEntryIndex())
	if result.OwnedID != 0 || result.Confidence != 0 {
		t.Errorf("expected zero result for distant query, got %+v", result)
	}
}

func TestMatchOwnedEmptyIndex(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)

	result := matcher.MatchOwned("Daft Punk", "One More Time", nil)
	if result.OwnedID != 0 || result.Confidence != 0 {
		t.Errorf("expected zero result for empty index, got %+v", result)
	}
}

// A query textually closer to its best entry must never score below a more
// distant one.
func TestMatchOwnedConfidenceMonotonic(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(1.0)
	index := singleEntryIndex()

	exact := matcher.MatchOwned("Daft Punk", "One More Time", index)
	close := matcher.MatchOwned("Daft Punk", "One More Tim", index)
	far := matcher.MatchOwned("Daft Punk", "Something Else", index)

	if exact.Confidence < close.Confidence {
		t.Errorf("exact (%d) scored below close (%d)", exact.Confidence, close.Confidence)
	}
	if close.Confidence < far.Confidence {
		t.Errorf("close (%d) scored below far (%d)", close.Confidence, far.Confidence)
	}
}

func TestMatchOwnedWordOrderInsensitive(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)
	index := []OwnedIndexEntry{
		{OwnedID: 3, NormalizedKey: "one more time daft punk"},
	}

	result := matcher.MatchOwned("Daft Punk", "One More Time", index)
	if result.OwnedID != 3 {
		t.Fatalf("expected token order not to matter, got %+v", result)
	}
	if result.Confidence != 100 {
		t.Errorf("expected confidence 100, got %d", result.Confidence)
	}
}

func TestMatchOwnedTieKeepsFirstEntry(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(0.4)
	index := []OwnedIndexEntry{
		{OwnedID: 1, NormalizedKey: "daft punk one more time"},
		{OwnedID: 2, NormalizedKey: "daft punk one more time"},
	}

	result := matcher.MatchOwned("Daft Punk", "One More Time", index)
	if result.OwnedID != 1 {
		t.Errorf("expected first entry to win the tie, got owned id %d", result.OwnedID)
	}
}

func TestMatchOwnedNeverPairsIDWithZeroConfidence(t *testing.T) {
	matcher := NewTrackMatcherWithThreshold(1.0)
	index := []OwnedIndexEntry{
		{OwnedID: 9, NormalizedKey: "zzzzzzzzzzzzzzzzzzzz"},
	}

	result := matcher.MatchOwned("a", "b", index)
	if result.OwnedID != 0 && result.Confidence == 0 {
		t.Errorf("owned id %d paired with zero confidence", result.OwnedID)
	}
}

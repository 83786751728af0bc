package services

import (
	"regexp"
	"strings"
)

// TrackInfo is the structured record recovered from a raw video title. Title
// is always set after extraction; Artist and Remix may be empty when the
// source text gave no way to recover them.
type TrackInfo struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Remix  string `json:"remix"`
}

// titlePattern tags the rules of the extraction cascade. The numeric order is
// the evaluation order: earlier patterns are stricter and win over the looser
// ones below them, which keeps the ambiguity-resolution policy auditable.
type titlePattern int

const (
	patternArtistTitleBracket titlePattern = iota // ARTIST - TITLE [tag]
	patternRemixByArtist                          // TITLE (X remix) by ARTIST
	patternArtistTitleRemix                       // ARTIST - TITLE (X remix)
	patternGeneric                                // A - B
)

// The artist group never spans a hyphen, so multi-hyphen titles split at the
// leftmost one. That misreads hyphenated duo names ("Ja-Da - Intro"), which is
// a known limitation of the source format, not something to second-guess here.
var titlePatterns = []struct {
	kind titlePattern
	re   *regexp.Regexp
}{
	{patternArtistTitleBracket, regexp.MustCompile(`^([^-]+?)\s*-\s*([^()\[\]]+?)\s*(?:\[[^\]]*\])?\s*$`)},
	{patternRemixByArtist, regexp.MustCompile(`(?i)^([^-]+?)\s*\(([^()]+?)\s+remix\)\s*(?:by\s+(.+?))?\s*$`)},
	{patternArtistTitleRemix, regexp.MustCompile(`(?i)^([^-]+?)\s*-\s*(.+?)\s*\(([^()]+?)\s+remix\)\s*$`)},
	{patternGeneric, regexp.MustCompile(`^([^-]+?)\s*-\s*(.+?)\s*$`)},
}

// descriptionArtistPattern finds "artist: X" / "by: X" lines in a video
// description, the fallback when the title itself carries no artist.
var descriptionArtistPattern = regexp.MustCompile(`(?im)^\s*(?:artist|by)\s*:\s*(.+?)\s*$`)

// ExtractTrackInfo recovers artist, title and remix from a raw video label by
// running the pattern cascade, falling back to a description scan and finally
// to the raw label itself. Title is never left empty for non-empty input.
func ExtractTrackInfo(rawTitle, rawDescription string) TrackInfo {
	trimmed := strings.TrimSpace(rawTitle)
	if trimmed == "" {
		return TrackInfo{Title: ""}
	}

	for _, p := range titlePatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		var info TrackInfo
		switch p.kind {
		case patternArtistTitleBracket, patternGeneric:
			info = TrackInfo{Artist: strings.TrimSpace(m[1]), Title: strings.TrimSpace(m[2])}
		case patternRemixByArtist:
			info = TrackInfo{Title: strings.TrimSpace(m[1]), Remix: strings.TrimSpace(m[2])}
			if len(m) > 3 {
				info.Artist = strings.TrimSpace(m[3])
			}
		case patternArtistTitleRemix:
			info = TrackInfo{Artist: strings.TrimSpace(m[1]), Title: strings.TrimSpace(m[2]), Remix: strings.TrimSpace(m[3])}
		}

		// A rule that captured only whitespace did not really match;
		// let the looser rules below have a go.
		if info.Title == "" || (p.kind != patternRemixByArtist && info.Artist == "") {
			continue
		}
		return info
	}

	// No pattern matched: try to recover the artist from the description and
	// derive the title by cutting the label at the first hyphen or bracket.
	info := TrackInfo{}
	if rawDescription != "" {
		if m := descriptionArtistPattern.FindStringSubmatch(rawDescription); m != nil {
			info.Artist = strings.TrimSpace(m[1])
		}
	}
	if cut := strings.IndexAny(trimmed, "-[("); cut > 0 {
		info.Title = strings.TrimSpace(trimmed[:cut])
	}
	if info.Title == "" {
		info.Title = trimmed
	}
	return info
}

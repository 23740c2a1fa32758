package transcript

import (
	"regexp"
	"strings"
)

// Speaker classifies a transcript line.
type Speaker string

const (
	SpeakerBot   Speaker = "bot"
	SpeakerHuman Speaker = "human"
)

const (
	humanPrefix = "human:"
	botPrefix   = "bot:"
)

// Segment is a run of message text, highlighted or not. Splitting the message
// into segments lets the presentation layer emphasize keyword matches without
// re-running the search.
type Segment struct {
	Text      string `json:"text"`
	Highlight bool   `json:"highlight"`
}

// Line is one displayed transcript line.
type Line struct {
	Speaker Speaker `json:"speaker"`
	Message string  `json:"message"`

	// SourceIndex is the position within the filtered line sequence.
	SourceIndex int `json:"source_index"`

	// Active marks the line time-aligned with audio playback. At most one
	// line in a rendered sequence is active.
	Active bool `json:"active"`

	Segments []Segment `json:"segments"`
}

// Parse splits a raw transcript into classified lines. Blank and
// whitespace-only lines are discarded. A line starting with "human:"
// (case-insensitive) is a human line; everything else is bot. A recognized
// "human:"/"bot:" prefix is stripped and the remainder trimmed; unprefixed
// lines keep their trimmed text as-is.
func Parse(raw string) []Line {
	var out []Line
	for _, l := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}

		speaker := SpeakerBot
		message := trimmed
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasPrefix(lower, humanPrefix):
			speaker = SpeakerHuman
			message = strings.TrimSpace(trimmed[len(humanPrefix):])
		case strings.HasPrefix(lower, botPrefix):
			message = strings.TrimSpace(trimmed[len(botPrefix):])
		}

		out = append(out, Line{Speaker: speaker, Message: message, SourceIndex: len(out)})
	}
	return out
}

// ActiveIndex maps audio playback position to a line index via the
// fraction-of-duration heuristic: floor(playback/duration * n), clamped to
// the last line so the index stays valid when playback reaches the end.
// Returns -1 when the duration is unknown or there are no lines.
func ActiveIndex(playbackSeconds, durationSeconds float64, n int) int {
	if durationSeconds <= 0 || n <= 0 {
		return -1
	}
	if playbackSeconds < 0 {
		playbackSeconds = 0
	}
	idx := int(playbackSeconds / durationSeconds * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Render is the full transcript view derivation: parse, keyword-filter,
// highlight, and mark the active line. Pure and re-entrant; the output
// depends only on the four inputs and is recomputed on every playback update.
//
// A non-empty term drops lines that do not contain it (case-insensitive) and
// segments kept lines around the matching substrings. The active index is
// computed against the filtered sequence, matching what is on screen.
func Render(raw, term string, playbackSeconds, durationSeconds float64) []Line {
	lines := Parse(raw)

	// The same compiled pattern drives both the filter and the highlighter,
	// so a kept line always carries at least one highlighted segment.
	var matcher *regexp.Regexp
	if term != "" {
		matcher = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
		filtered := lines[:0]
		for _, l := range lines {
			if matcher.MatchString(l.Message) {
				l.SourceIndex = len(filtered)
				filtered = append(filtered, l)
			}
		}
		lines = filtered
	}

	active := ActiveIndex(playbackSeconds, durationSeconds, len(lines))
	for i := range lines {
		lines[i].Active = i == active
		lines[i].Segments = segment(lines[i].Message, matcher)
	}
	return lines
}

// segment splits text around matches of the keyword pattern. With no pattern
// the whole text is a single unhighlighted segment. Match offsets come from
// the pattern, so they are always valid byte positions in text even when case
// folding would change its length.
func segment(text string, matcher *regexp.Regexp) []Segment {
	if matcher == nil {
		return []Segment{{Text: text}}
	}

	var out []Segment
	last := 0
	for _, m := range matcher.FindAllStringIndex(text, -1) {
		if m[0] > last {
			out = append(out, Segment{Text: text[last:m[0]]})
		}
		out = append(out, Segment{Text: text[m[0]:m[1]], Highlight: true})
		last = m[1]
	}
	if last < len(text) {
		out = append(out, Segment{Text: text[last:]})
	}
	if out == nil {
		out = []Segment{{Text: text}}
	}
	return out
}

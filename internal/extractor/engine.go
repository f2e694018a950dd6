package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// find returns the rule's raw capture in text, scanning left to right.
func (r *compiledRule) find(text string, boundary *regexp.Regexp) (string, bool) {
	if r.label == nil {
		loc := r.value.FindStringIndex(text)
		if loc == nil {
			return "", false
		}
		return text[loc[0]:loc[1]], true
	}

	for _, loc := range r.label.FindAllStringIndex(text, -1) {
		var (
			value string
			ok    bool
		)
		if r.Boundary == BoundaryLabel {
			value, ok = r.lazy(text, loc[1], boundary)
		} else {
			value, ok = r.prefix(text, loc[1])
		}
		if ok {
			return value, true
		}
	}
	return "", false
}

// prefix returns the longest value starting at start.
func (r *compiledRule) prefix(text string, start int) (string, bool) {
	loc := r.value.FindStringIndex(text[start:])
	if loc == nil {
		return "", false
	}
	return text[start : start+loc[1]], true
}

// lazy returns the shortest value starting at start that has the rule's
// shape and is followed by a boundary, optionally after one noise token.
func (r *compiledRule) lazy(text string, start int, boundary *regexp.Regexp) (string, bool) {
	for end := start; end <= len(text); end++ {
		if end < len(text) && !utf8.RuneStart(text[end]) {
			continue
		}
		if !stopsAt(text, end, boundary) {
			continue
		}
		value := text[start:end]
		if r.value.MatchString(value) {
			return value, true
		}
	}
	return "", false
}

// stopsAt reports whether a value ending at pos is followed by a boundary,
// either directly or after a noise token.
func stopsAt(text string, pos int, boundary *regexp.Regexp) bool {
	rest := text[pos:]
	if loc := noise.FindStringIndex(rest); loc != nil && boundary.MatchString(rest[loc[1]:]) {
		return true
	}
	return boundary.MatchString(rest)
}

// clean trims a capture.
func clean(s string) string {
	return strings.TrimSpace(s)
}

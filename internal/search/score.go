package search

import (
	"regexp"
	"strings"
)

const (
	scoreTitleExact     = 100
	scoreTitlePrefix    = 80
	scoreTitleContains  = 60
	scoreBodyContains   = 30
	scoreTitleWholeWord = 20
	scoreBodyWholeWord  = 10
)

// Score rates how well title and body match query. Comparison is
// case-insensitive. Only one of the exact, prefix and substring title tiers
// applies; the body and whole-word bonuses add on top. query must be
// non-empty.
func Score(query, title, body string) int {
	return newScorer(query).score(title, body)
}

// scorer holds the lower-cased term and its whole-word pattern so a search
// compiles the pattern once for all candidates.
type scorer struct {
	term string
	word *regexp.Regexp
}

func newScorer(query string) scorer {
	return scorer{
		term: strings.ToLower(query),
		word: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(query) + `\b`),
	}
}

func (s scorer) score(title, body string) int {
	titleLower := strings.ToLower(title)
	bodyLower := strings.ToLower(body)

	score := 0
	switch {
	case titleLower == s.term:
		score += scoreTitleExact
	case strings.HasPrefix(titleLower, s.term):
		score += scoreTitlePrefix
	case strings.Contains(titleLower, s.term):
		score += scoreTitleContains
	}

	if strings.Contains(bodyLower, s.term) {
		score += scoreBodyContains
	}
	if s.word.MatchString(title) {
		score += scoreTitleWholeWord
	}
	if s.word.MatchString(body) {
		score += scoreBodyWholeWord
	}

	return score
}

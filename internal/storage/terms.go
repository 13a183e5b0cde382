package storage

import (
	"strings"
	"unicode"

	"github.com/orsinium-labs/stopwords"
)

var englishStopwords = stopwords.MustGet("en")

// searchTerms splits a text query into distinct lowercase terms with English
// stopwords removed. Letters and digits of any script form terms, so Korean
// queries tokenize the same way as English ones.
func searchTerms(query string) []string {
	tokens := strings.FieldsFunc(foldCase(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if englishStopwords.Contains(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		terms = append(terms, token)
	}
	return terms
}

// foldCase is the case folding shared by queries and the fold() SQL function.
func foldCase(s string) string {
	return strings.ToLower(s)
}

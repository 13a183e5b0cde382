package storage

import "strings"

// questionKeywords is checked in order; the first type with a matching keyword wins.
var questionKeywords = []struct {
	qType    QuestionType
	keywords []string
}{
	{QuestionWhat, []string{"what", "무엇", "뭐"}},
	{QuestionHow, []string{"how", "어떻게", "방법"}},
	{QuestionWhy, []string{"why", "왜", "이유"}},
	{QuestionWhen, []string{"when", "언제", "시기"}},
	{QuestionWhere, []string{"where", "어디", "장소"}},
	{QuestionWho, []string{"who", "누구", "누가"}},
}

// ClassifyQuestion picks a question type from keywords found anywhere in the
// lowercased question. Matching is by substring, so "somewhat" counts as "what".
func ClassifyQuestion(question string) QuestionType {
	q := strings.ToLower(question)
	for _, entry := range questionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				return entry.qType
			}
		}
	}
	return QuestionGeneral
}

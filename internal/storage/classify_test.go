package storage

import "testing"

func TestClassifyQuestion(t *testing.T) {
	tests := []struct {
		question string
		want     QuestionType
	}{
		{"What is a folder?", QuestionWhat},
		{"How do I create one?", QuestionHow},
		{"Why does it fail?", QuestionWhy},
		{"When was it created?", QuestionWhen},
		{"Where is it stored?", QuestionWhere},
		{"Who owns it?", QuestionWho},
		{"이것은 무엇인가요?", QuestionWhat},
		{"어떻게 설치하나요?", QuestionHow},
		{"왜 실패했나요?", QuestionWhy},
		{"언제 시작하나요?", QuestionWhen},
		{"어디에 있나요?", QuestionWhere},
		{"누가 만들었나요?", QuestionWho},
		{"How and why?", QuestionHow},
		{"What, and how?", QuestionWhat},
		{"Explain the design.", QuestionGeneral},
		{"", QuestionGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := ClassifyQuestion(tt.question); got != tt.want {
				t.Errorf("ClassifyQuestion(%q) = %s, want %s", tt.question, got, tt.want)
			}
		})
	}
}

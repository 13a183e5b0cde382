package llm

import (
	"context"
	"fmt"
	"strings"
)

const qaPrompt = `Read the following text and write %d questions with answers.

Text: %s

Respond with JSON in this format:
{"qa_pairs": [{"question": "question 1", "answer": "answer 1"}]}

JSON response:`

// QA is a generated question and answer.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAGenerator generates question/answer pairs for a passage with a chat model.
type QAGenerator struct {
	chat Chatter
}

// NewQAGenerator creates a generator backed by chat.
func NewQAGenerator(chat Chatter) *QAGenerator {
	return &QAGenerator{chat: chat}
}

// GenerateQA asks the model for count pairs. A transport failure is returned as
// an error; an undecodable reply yields no pairs. Pairs missing a question or an
// answer are dropped.
func (g *QAGenerator) GenerateQA(ctx context.Context, text string, count int) ([]QA, error) {
	if count <= 0 {
		return []QA{}, nil
	}

	reply, err := g.chat.ChatMessages(ctx,
		[]Message{{Role: "user", Content: fmt.Sprintf(qaPrompt, count, clip(text, maxPromptText))}},
		ChatParams{Temperature: 0.7},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qa: %w", err)
	}

	var parsed struct {
		Pairs []QA `json:"qa_pairs"`
	}
	if err := decodeJSONReply(reply, &parsed); err != nil {
		return []QA{}, nil
	}

	pairs := make([]QA, 0, len(parsed.Pairs))
	for _, p := range parsed.Pairs {
		if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

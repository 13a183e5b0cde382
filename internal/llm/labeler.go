package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// maxPromptText bounds how much of a passage is sent to the model.
const maxPromptText = 1000

const labelPrompt = `Read the following text and extract its main topic and tags.

Text: %s

Respond with JSON in this format:
{"main_topic": "main topic", "tags": ["tag1", "tag2", "tag3"], "category": "category"}

JSON response:`

// Labels is a generated topic annotation.
type Labels struct {
	Topic    string   `json:"main_topic"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// UnknownLabels is returned when the model reply cannot be decoded.
func UnknownLabels() *Labels {
	return &Labels{Topic: "unknown", Tags: []string{}, Category: "uncategorized"}
}

// Labeler generates topic labels for a passage with a chat model.
type Labeler struct {
	chat Chatter
}

// NewLabeler creates a labeler backed by chat.
func NewLabeler(chat Chatter) *Labeler {
	return &Labeler{chat: chat}
}

// GenerateLabels asks the model for labels. A transport failure is returned as an
// error; a reply that is not the expected JSON yields UnknownLabels.
func (l *Labeler) GenerateLabels(ctx context.Context, text string) (*Labels, error) {
	reply, err := l.chat.ChatMessages(ctx,
		[]Message{{Role: "user", Content: fmt.Sprintf(labelPrompt, clip(text, maxPromptText))}},
		ChatParams{Temperature: 0.1},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate labels: %w", err)
	}

	var labels Labels
	if err := decodeJSONReply(reply, &labels); err != nil || labels.Topic == "" {
		return UnknownLabels(), nil
	}
	if labels.Tags == nil {
		labels.Tags = []string{}
	}
	return &labels, nil
}

// decodeJSONReply decodes the first JSON object in a model reply, tolerating
// prose or code fences around it.
func decodeJSONReply(reply string, v any) error {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return fmt.Errorf("no JSON object in reply")
	}
	return json.Unmarshal([]byte(reply[start:end+1]), v)
}

// clip returns at most n runes of s.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

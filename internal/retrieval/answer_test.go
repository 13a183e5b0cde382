package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ragstore/internal/llm"
	"ragstore/internal/service"
	"ragstore/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChat struct {
	messages []llm.Message
	params   llm.ChatParams
	reply    string
	err      error
}

func (c *recordingChat) ChatMessages(_ context.Context, messages []llm.Message, params llm.ChatParams) (string, error) {
	c.messages = messages
	c.params = params
	return c.reply, c.err
}

func TestAnswerer_WithContext(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	chat := &recordingChat{reply: "SQLite does."}

	answer, err := NewAnswerer(NewCoordinator(f.stores, f.exact, nil), chat).Answer(context.Background(), "stores folders", 0)
	require.NoError(t, err)

	assert.Equal(t, "SQLite does.", answer.Answer)
	assert.False(t, answer.NoContext)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "qa", answer.Sources[0].Kind)
	assert.Contains(t, answer.ContextUsed, "What stores folders?")

	require.Len(t, chat.messages, 2)
	assert.Equal(t, contextSystemPrompt, chat.messages[0].Content)
	assert.True(t, strings.HasPrefix(chat.messages[1].Content, "Context:\n"))
	assert.Contains(t, chat.messages[1].Content, "Question: stores folders")
	assert.Equal(t, float32(0.7), chat.params.Temperature)
}

func TestAnswerer_WithoutContext(t *testing.T) {
	f := newFixture(t)
	chat := &recordingChat{reply: "General answer."}

	answer, err := NewAnswerer(NewCoordinator(f.stores, f.exact, nil), chat).Answer(context.Background(), "unrelated question", 0)
	require.NoError(t, err)

	assert.True(t, answer.NoContext)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, "", answer.ContextUsed)
	require.Len(t, chat.messages, 2)
	assert.Equal(t, basicSystemPrompt, chat.messages[0].Content)
	assert.Equal(t, "unrelated question", chat.messages[1].Content)
}

func TestAnswerer_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := NewAnswerer(NewCoordinator(f.stores, f.exact, nil), &recordingChat{}).Answer(context.Background(), "  ", 0)
	assert.ErrorIs(t, err, storage.ErrValidation)

	chat := &recordingChat{err: errors.New("model unavailable")}
	_, err = NewAnswerer(NewCoordinator(f.stores, f.exact, nil), chat).Answer(context.Background(), "question", 0)
	assert.ErrorIs(t, err, service.ErrUpstream)
}

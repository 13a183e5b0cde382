package retrieval

import (
	"context"
	"fmt"
	"strings"

	"ragstore/internal/contextutil"
	"ragstore/internal/llm"
	"ragstore/internal/service"
	"ragstore/internal/storage"
)

const contextSystemPrompt = "You are a helpful assistant. Answer the question using the context below. " +
	"If the context does not contain the answer, answer from general knowledge and say so."

const basicSystemPrompt = "You are a helpful assistant. Give an accurate, helpful answer to the question."

// Answer is a generated answer with the material it was based on.
type Answer struct {
	Answer      string   `json:"answer"`
	Sources     []Source `json:"sources"`
	ContextUsed string   `json:"context_used"`
	NoContext   bool     `json:"no_context"`
}

// Answerer generates answers from retrieved context.
type Answerer struct {
	retriever *Coordinator
	chat      llm.Chatter
}

// NewAnswerer creates an Answerer.
func NewAnswerer(retriever *Coordinator, chat llm.Chatter) *Answerer {
	return &Answerer{retriever: retriever, chat: chat}
}

// Answer answers query. When retrieval fails or finds nothing the model is asked
// without context; only a failed model call is returned as an error.
func (a *Answerer) Answer(ctx context.Context, query string, k int) (*Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, &storage.ValidationError{Field: "query", Message: "cannot be blank"}
	}

	ac, err := a.retriever.RetrieveForAnswer(ctx, query, k)
	if err != nil {
		logger.WarnContext(ctx, "retrieval failed, answering without context", "error", err)
		ac = &AnswerContext{Query: query, NoContext: true}
	}

	messages := []llm.Message{{Role: "system", Content: basicSystemPrompt}, {Role: "user", Content: query}}
	if !ac.NoContext {
		messages = []llm.Message{
			{Role: "system", Content: contextSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", ac.Context, query)},
		}
	}

	reply, err := a.chat.ChatMessages(ctx, messages, llm.ChatParams{Temperature: 0.7})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return nil, &service.UpstreamError{Collaborator: "llm", Err: err}
	}

	answer := &Answer{
		Answer:    reply,
		Sources:   ac.Sources,
		NoContext: ac.NoContext,
	}
	if answer.Sources == nil {
		answer.Sources = []Source{}
	}
	if !ac.NoContext {
		answer.ContextUsed = preview(ac.Context, contextPreviewLen)
	}

	logger.InfoContext(ctx, "answer generated", "answer_length", len(reply), "sources", len(answer.Sources), "no_context", ac.NoContext)
	return answer, nil
}

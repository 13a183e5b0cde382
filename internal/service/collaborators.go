package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks ragstore/internal/service Embedder,Labeler,QAGenerator

import (
	"context"

	"ragstore/internal/llm"
)

// Embedder turns text into a vector.
// This interface is defined from the service layer's perspective (consumer-first).
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Labeler produces topic labels for a passage.
type Labeler interface {
	GenerateLabels(ctx context.Context, text string) (*llm.Labels, error)
}

// QAGenerator produces question/answer pairs for a passage.
type QAGenerator interface {
	GenerateQA(ctx context.Context, text string, count int) ([]llm.QA, error)
}

package service

import (
	"context"
	"errors"
	"testing"

	"ragstore/internal/llm"
	"ragstore/internal/service/mocks"
	"ragstore/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIngester_Ingest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repos := newTestRepos(t)
	content := newContent(repos, nil)
	ctx := context.Background()
	folder := createFolder(t, repos, "Docs", "")

	embedder := mocks.NewMockEmbedder(ctrl)
	labeler := mocks.NewMockLabeler(ctrl)
	qagen := mocks.NewMockQAGenerator(ctrl)

	embedder.EXPECT().Embed(gomock.Any(), "first passage").Return([]float32{1, 0}, nil)
	embedder.EXPECT().Embed(gomock.Any(), "second passage").Return(nil, errors.New("embedding server down"))

	labeler.EXPECT().GenerateLabels(gomock.Any(), "first passage").
		Return(&llm.Labels{Topic: "intro", Tags: []string{"go"}, Category: "tech"}, nil)
	labeler.EXPECT().GenerateLabels(gomock.Any(), "second passage").
		Return(nil, errors.New("llm timeout"))

	qagen.EXPECT().GenerateQA(gomock.Any(), "first passage", DefaultQAPerPassage).
		Return([]llm.QA{{Question: "What is this?", Answer: "An intro."}, {Question: "How long?", Answer: "Short."}}, nil)
	qagen.EXPECT().GenerateQA(gomock.Any(), "second passage", DefaultQAPerPassage).
		Return([]llm.QA{}, nil)

	ingester := NewIngester(content, embedder, labeler, qagen)
	result, err := ingester.Ingest(ctx, IngestRequest{
		FolderID: folder.ID,
		Passages: []Passage{
			{Text: "first passage", Metadata: map[string]any{"source": "a.txt"}},
			{Text: "   "},
			{Text: "second passage"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, Tally{Attempted: 3, Succeeded: 2, Skipped: 1}, result.Documents)
	assert.Equal(t, Tally{Attempted: 2, Succeeded: 1, Skipped: 1}, result.Labels)
	assert.Equal(t, Tally{Attempted: 2, Succeeded: 2}, result.QAPairs)
	require.Len(t, result.DocumentIDs, 2)

	docs, err := repos.Documents.ListByFolder(ctx, folder.ID, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, storage.IntKey(0), docs[0].SequenceKey)
	assert.Equal(t, storage.IntKey(2), docs[1].SequenceKey)
	assert.Equal(t, []float32{1, 0}, docs[0].Embedding)
	assert.Empty(t, docs[1].Embedding, "failed embedding stores the passage without a vector")
	assert.Equal(t, "a.txt", docs[0].Metadata["source"])

	pairs, err := repos.QA.ListByDocument(ctx, docs[0].ID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, storage.QuestionWhat, pairs[0].QuestionType)
	assert.Equal(t, storage.QuestionHow, pairs[1].QuestionType)
}

func TestIngester_Ingest_NoCollaborators(t *testing.T) {
	repos := newTestRepos(t)
	content := newContent(repos, nil)
	ctx := context.Background()

	key := storage.TextKey("intro")
	result, err := NewIngester(content, nil, nil, nil).Ingest(ctx, IngestRequest{
		Passages: []Passage{{Text: "plain", SequenceKey: &key}},
	})
	require.NoError(t, err)
	assert.Equal(t, Tally{Attempted: 1, Succeeded: 1}, result.Documents)
	assert.Zero(t, result.Labels.Attempted)

	defaultID, err := content.DefaultFolder(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaultID, result.FolderID)

	doc, err := content.GetDocument(ctx, result.DocumentIDs[0])
	require.NoError(t, err)
	assert.Equal(t, key, doc.SequenceKey)
}

func TestIngester_Ingest_MissingFolder(t *testing.T) {
	repos := newTestRepos(t)
	ingester := NewIngester(newContent(repos, nil), nil, nil, nil)

	_, err := ingester.Ingest(context.Background(), IngestRequest{
		FolderID: "missing",
		Passages: []Passage{{Text: "x"}},
	})
	assert.ErrorIs(t, err, storage.ErrReference)
}

func TestTally(t *testing.T) {
	var total Tally
	total.Succeed()
	total.Skip()
	total.Fail()

	other := Tally{Attempted: 2, Succeeded: 2}
	total.Add(other)

	assert.Equal(t, Tally{Attempted: 5, Succeeded: 3, Skipped: 1, Failed: 1}, total)
	assert.Equal(t, total.Attempted, total.Succeeded+total.Skipped+total.Failed)
}

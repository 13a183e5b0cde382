package handlers

import (
	"time"

	"ragstore/internal/storage"
)

// FolderResponse is a folder as returned over HTTP.
//
// swagger:model FolderResponse
type FolderResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	FolderType     string         `json:"folder_type"`
	ParentID       string         `json:"parent_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	CoverImageURL  string         `json:"cover_image_url,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// DocumentResponse is a document as returned over HTTP. The embedding itself is
// omitted; Embedded reports whether one is stored.
//
// swagger:model DocumentResponse
type DocumentResponse struct {
	ID          string              `json:"id"`
	FolderID    string              `json:"folder_id"`
	SequenceKey storage.SequenceKey `json:"sequence_key"`
	RawText     string              `json:"raw_text"`
	Embedded    bool                `json:"embedded"`
	Dimensions  int                 `json:"dimensions,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// LabelResponse is a label as returned over HTTP.
//
// swagger:model LabelResponse
type LabelResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	FolderID   string    `json:"folder_id"`
	Topic      string    `json:"topic"`
	Tags       []string  `json:"tags"`
	Category   string    `json:"category"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// QAResponse is a QA pair as returned over HTTP.
//
// swagger:model QAResponse
type QAResponse struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	FolderID     string    `json:"folder_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	QuestionType string    `json:"question_type"`
	Difficulty   string    `json:"difficulty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FolderStatsResponse summarizes one folder.
//
// swagger:model FolderStatsResponse
type FolderStatsResponse struct {
	FolderID        string             `json:"folder_id"`
	FolderTitle     string             `json:"folder_title,omitempty"`
	FolderType      string             `json:"folder_type,omitempty"`
	DocumentCount   int                `json:"document_count"`
	LabelCount      int                `json:"label_count"`
	QACount         int                `json:"qa_count"`
	RecentDocuments []DocumentResponse `json:"recent_documents"`
}

func toFolderResponse(f *storage.Folder) FolderResponse {
	return FolderResponse{
		ID:             f.ID,
		Title:          f.Title,
		Description:    f.Description,
		FolderType:     f.FolderType,
		ParentID:       f.ParentID,
		CreatedAt:      f.CreatedAt,
		LastAccessedAt: f.LastAccessedAt,
		CoverImageURL:  f.CoverImageURL,
		Metadata:       f.Metadata,
	}
}

func toFolderResponses(folders []*storage.Folder) []FolderResponse {
	out := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}
	return out
}

func toDocumentResponse(d *storage.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		FolderID:    d.FolderID,
		SequenceKey: d.SequenceKey,
		RawText:     d.RawText,
		Embedded:    len(d.Embedding) > 0,
		Dimensions:  len(d.Embedding),
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDocumentResponses(docs []*storage.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return out
}

func toLabelResponse(l *storage.Label) LabelResponse {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	return LabelResponse{
		ID:         l.ID,
		DocumentID: l.DocumentID,
		FolderID:   l.FolderID,
		Topic:      l.Topic,
		Tags:       tags,
		Category:   l.Category,
		Confidence: l.Confidence,
		CreatedAt:  l.CreatedAt,
	}
}

func toLabelResponses(labels []*storage.Label) []LabelResponse {
	out := make([]LabelResponse, 0, len(labels))
	for _, l := range labels {
		out = append(out, toLabelResponse(l))
	}
	return out
}

func toQAResponse(qa *storage.QAPair) QAResponse {
	return QAResponse{
		ID:           qa.ID,
		DocumentID:   qa.DocumentID,
		FolderID:     qa.FolderID,
		Question:     qa.Question,
		Answer:       qa.Answer,
		QuestionType: string(qa.QuestionType),
		Difficulty:   string(qa.Difficulty),
		CreatedAt:    qa.CreatedAt,
	}
}

func toQAResponses(pairs []*storage.QAPair) []QAResponse {
	out := make([]QAResponse, 0, len(pairs))
	for _, qa := range pairs {
		out = append(out, toQAResponse(qa))
	}
	return out
}

func toStatsResponse(s *storage.FolderStats) FolderStatsResponse {
	return FolderStatsResponse{
		FolderID:        s.FolderID,
		FolderTitle:     s.FolderTitle,
		FolderType:      s.FolderType,
		DocumentCount:   s.DocumentCount,
		LabelCount:      s.LabelCount,
		QACount:         s.QACount,
		RecentDocuments: toDocumentResponses(s.RecentDocuments),
	}
}

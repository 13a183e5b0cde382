package storage

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// Folder is a node in the folder tree. A folder without a parent is a root.
type Folder struct {
	ID             string
	Title          string
	Description    string
	FolderType     string // free-form classification ("general", "project", "archive", ...)
	ParentID       string // empty for root folders
	CreatedAt      time.Time
	LastAccessedAt time.Time
	CoverImageURL  string
	Metadata       map[string]any
}

// Document is a unit of stored text owned by exactly one folder.
type Document struct {
	ID          string
	FolderID    string
	SequenceKey SequenceKey
	RawText     string
	Embedding   []float32 // empty means not yet embedded
	Metadata    map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label is a topic annotation attached to one document.
// FolderID is a denormalized copy of the document's folder.
type Label struct {
	ID         string
	DocumentID string
	FolderID   string
	Topic      string
	Tags       []string
	Category   string
	Confidence float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QAPair is a question/answer annotation attached to one document.
type QAPair struct {
	ID           string
	DocumentID   string
	FolderID     string
	Question     string
	Answer       string
	QuestionType QuestionType
	Difficulty   Difficulty
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// QuestionType classifies a QA pair's question.
type QuestionType string

const (
	QuestionGeneral QuestionType = "general"
	QuestionWhat    QuestionType = "what"
	QuestionHow     QuestionType = "how"
	QuestionWhy     QuestionType = "why"
	QuestionWhen    QuestionType = "when"
	QuestionWhere   QuestionType = "where"
	QuestionWho     QuestionType = "who"
)

// QuestionTypes lists every valid question type.
var QuestionTypes = []QuestionType{
	QuestionGeneral, QuestionWhat, QuestionHow, QuestionWhy, QuestionWhen, QuestionWhere, QuestionWho,
}

// Difficulty classifies how hard a QA pair is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every valid difficulty.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// DefaultConfidence is assigned to labels created without an explicit confidence.
const DefaultConfidence = 0.8

// FolderStats summarizes the content scoped to one folder.
type FolderStats struct {
	FolderID        string      `json:"folder_id"`
	FolderTitle     string      `json:"folder_title,omitempty"`
	FolderType      string      `json:"folder_type,omitempty"`
	DocumentCount   int         `json:"document_count"`
	LabelCount      int         `json:"label_count"`
	QACount         int         `json:"qa_count"`
	RecentDocuments []*Document `json:"recent_documents"`
}

// TagCount is a tag together with the number of labels carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SequenceKey orders documents inside a folder. Integer keys sort numerically,
// text keys lexicographically, and every integer key sorts before every text key.
type SequenceKey struct {
	Int   int64
	Text  string
	IsInt bool
}

// IntKey returns a numeric sequence key.
func IntKey(n int64) SequenceKey {
	return SequenceKey{Int: n, IsInt: true}
}

// TextKey returns a textual sequence key.
func TextKey(s string) SequenceKey {
	return SequenceKey{Text: s}
}

// ParseSequenceKey returns an integer key when s is a base-10 integer and a text key otherwise.
func ParseSequenceKey(s string) SequenceKey {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntKey(n)
	}
	return TextKey(s)
}

// String renders the key as it was supplied.
func (k SequenceKey) String() string {
	if k.IsInt {
		return strconv.FormatInt(k.Int, 10)
	}
	return k.Text
}

// MarshalJSON emits integer keys as JSON numbers and text keys as strings.
func (k SequenceKey) MarshalJSON() ([]byte, error) {
	if k.IsInt {
		return []byte(strconv.FormatInt(k.Int, 10)), nil
	}
	return []byte(strconv.Quote(k.Text)), nil
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (k *SequenceKey) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*k = SequenceKey{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		text, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid sequence key %s: %w", s, err)
		}
		*k = TextKey(text)
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid sequence key %s: %w", s, err)
	}
	*k = IntKey(n)
	return nil
}

// Value stores the key with its native SQLite storage class.
func (k SequenceKey) Value() (driver.Value, error) {
	if k.IsInt {
		return k.Int, nil
	}
	return k.Text, nil
}

// Scan reads a key back from an untyped SQLite column.
func (k *SequenceKey) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*k = IntKey(v)
	case float64:
		*k = IntKey(int64(v))
	case string:
		*k = TextKey(v)
	case []byte:
		*k = TextKey(string(v))
	case nil:
		*k = SequenceKey{}
	default:
		return fmt.Errorf("unsupported sequence key type %T", src)
	}
	return nil
}

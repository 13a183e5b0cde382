package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_qa_store.go -package=mocks ragstore/internal/storage QAStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// QASearchLimit caps the number of QA pairs returned by Search.
const QASearchLimit = 10

// QAStore defines the interface for QA pair storage operations.
type QAStore interface {
	// Insert attaches a QA pair to a document. The folder is taken from the document.
	Insert(ctx context.Context, qa *QAPair) error
	// Search matches the query as a substring of the question or the answer.
	Search(ctx context.Context, query, folderID string, qType QuestionType) ([]*QAPair, error)
	// ListByDocument returns a document's QA pairs, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]*QAPair, error)
	// ListByDifficulty returns QA pairs of one difficulty.
	ListByDifficulty(ctx context.Context, difficulty Difficulty, folderID string) ([]*QAPair, error)
}

// QARepo provides methods for QA pair operations.
// It implements the QAStore interface.
type QARepo struct {
	db *sql.DB
}

// NewQARepo creates a new QARepo.
func NewQARepo(db *sql.DB) *QARepo {
	return &QARepo{db: db}
}

const qaColumns = "id, document_id, folder_id, question, answer, question_type, difficulty, created_at, updated_at"

func scanQA(row rowScanner) (*QAPair, error) {
	var (
		qa               QAPair
		created, updated int64
	)
	if err := row.Scan(&qa.ID, &qa.DocumentID, &qa.FolderID, &qa.Question, &qa.Answer,
		&qa.QuestionType, &qa.Difficulty, &created, &updated); err != nil {
		return nil, err
	}
	qa.CreatedAt = fromUnix(created)
	qa.UpdatedAt = fromUnix(updated)
	return &qa, nil
}

func collectQA(rows *sql.Rows) ([]*QAPair, error) {
	defer func() {
		_ = rows.Close()
	}()

	pairs := []*QAPair{}
	for rows.Next() {
		qa, err := scanQA(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qa pair: %w", err)
		}
		pairs = append(pairs, qa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return pairs, nil
}

func questionTypeRule() validation.Rule {
	allowed := make([]any, len(QuestionTypes))
	for i, t := range QuestionTypes {
		allowed[i] = t
	}
	return validation.In(allowed...)
}

func difficultyRule() validation.Rule {
	allowed := make([]any, len(Difficulties))
	for i, d := range Difficulties {
		allowed[i] = d
	}
	return validation.In(allowed...)
}

// Insert attaches a QA pair to a document, defaulting the question type to
// general and the difficulty to medium.
func (r *QARepo) Insert(ctx context.Context, qa *QAPair) error {
	if qa.QuestionType == "" {
		qa.QuestionType = QuestionGeneral
	}
	if qa.Difficulty == "" {
		qa.Difficulty = DifficultyMedium
	}
	err := validation.Errors{
		"document_id":   validation.Validate(qa.DocumentID, validation.Required),
		"question":      validation.Validate(qa.Question, validation.Required),
		"answer":        validation.Validate(qa.Answer, validation.Required),
		"question_type": validation.Validate(qa.QuestionType, questionTypeRule()),
		"difficulty":    validation.Validate(qa.Difficulty, difficultyRule()),
	}.Filter()
	if err != nil {
		return fromValidation(err)
	}

	folderID, err := documentFolder(ctx, r.db, qa.DocumentID, qa.FolderID)
	if err != nil {
		return err
	}
	qa.FolderID = folderID

	if qa.ID == "" {
		qa.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if qa.CreatedAt.IsZero() {
		qa.CreatedAt = now
	}
	qa.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO qa_pairs ("+qaColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		qa.ID, qa.DocumentID, qa.FolderID, qa.Question, qa.Answer, string(qa.QuestionType), string(qa.Difficulty),
		toUnix(qa.CreatedAt), toUnix(qa.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return &ReferenceError{Entity: "document", ID: qa.DocumentID}
		}
		return fmt.Errorf("failed to insert qa pair: %w", err)
	}
	return nil
}

// Search returns up to QASearchLimit pairs whose question or answer contains
// query, case-insensitively, newest first. Empty folderID and qType do not filter.
func (r *QARepo) Search(ctx context.Context, query, folderID string, qType QuestionType) ([]*QAPair, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*QAPair{}, nil
	}

	needle := foldCase(query)
	q := "SELECT " + qaColumns + " FROM qa_pairs WHERE (instr(fold(question), ?) > 0 OR instr(fold(answer), ?) > 0)"
	args := []any{needle, needle}
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	if qType != "" {
		q += " AND question_type = ?"
		args = append(args, string(qType))
	}
	args = append(args, QASearchLimit)

	rows, err := r.db.QueryContext(ctx, q+" ORDER BY created_at DESC, rowid LIMIT ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search qa pairs: %w", err)
	}
	return collectQA(rows)
}

// ListByDocument returns a document's QA pairs, oldest first.
func (r *QARepo) ListByDocument(ctx context.Context, documentID string) ([]*QAPair, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+qaColumns+" FROM qa_pairs WHERE document_id = ? ORDER BY created_at, rowid", documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query qa pairs: %w", err)
	}
	return collectQA(rows)
}

// ListByDifficulty returns QA pairs of the given difficulty, newest first.
func (r *QARepo) ListByDifficulty(ctx context.Context, difficulty Difficulty, folderID string) ([]*QAPair, error) {
	q := "SELECT " + qaColumns + " FROM qa_pairs WHERE difficulty = ?"
	args := []any{string(difficulty)}
	if folderID != "" {
		q += " AND folder_id = ?"
		args = append(args, folderID)
	}
	rows, err := r.db.QueryContext(ctx, q+" ORDER BY created_at DESC, rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query qa pairs: %w", err)
	}
	return collectQA(rows)
}

// Count returns the number of QA pairs.
func (r *QARepo) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM qa_pairs")
}

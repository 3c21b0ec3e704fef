package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/repository"
)

var analysisColumns = []string{"id", "user_id", "conversation_id", "score", "errors", "suggestions", "created_at"}

type analysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new AnalysisRepository implementation
func NewAnalysisRepository(db *sql.DB) repository.AnalysisRepository {
	return &analysisRepository{db: db}
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var (
		a                 models.Analysis
		errs, suggestions string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.ConversationID, &a.Score, &errs, &suggestions, &a.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if a.Errors, err = decodeJSON[models.ConversationError](errs); err != nil {
		return nil, err
	}
	if a.Suggestions, err = decodeJSON[string](suggestions); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *analysisRepository) Create(ctx context.Context, a models.Analysis) error {
	log := logger.FromContext(ctx).WithPrefix("analysis_repo")
	log.Debug("creating analysis: id=%s, conversation_id=%s, score=%d", a.ID, a.ConversationID, a.Score)

	errs, err := encodeJSON(a.Errors)
	if err != nil {
		return err
	}
	suggestions, err := encodeJSON(a.Suggestions)
	if err != nil {
		return err
	}

	query, args, err := sqlBuilder.Insert("analyses").
		Columns(analysisColumns...).
		Values(a.ID, a.UserID, a.ConversationID, a.Score, errs, suggestions, a.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert analysis: %v", err)
		return err
	}
	return nil
}

func (r *analysisRepository) Get(ctx context.Context, id string) (*models.Analysis, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *analysisRepository) GetByConversation(ctx context.Context, conversationID string) (*models.Analysis, error) {
	return r.getOne(ctx, squirrel.Eq{"conversation_id": conversationID})
}

func (r *analysisRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.Analysis, error) {
	log := logger.FromContext(ctx).WithPrefix("analysis_repo")
	log.Debug("getting analysis: %v", where)

	query, args, err := sqlBuilder.Select(analysisColumns...).From("analyses").Where(where).Limit(1).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("analysis not found: %v", where)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get analysis: %v", err)
		return nil, err
	}
	return a, nil
}

func (r *analysisRepository) List(ctx context.Context, filter models.AnalysisFilter) ([]models.Analysis, error) {
	log := logger.FromContext(ctx).WithPrefix("analysis_repo")
	log.Debug("listing analyses: user_id=%s, limit=%d", filter.UserID, filter.Limit)

	q := sqlBuilder.Select(analysisColumns...).From("analyses")
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	q = paginate(q.OrderBy("created_at DESC", "rowid DESC"), filter.Limit, filter.Offset)

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list analyses: %v", err)
		return nil, err
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			log.Error("failed to scan analysis row: %v", err)
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	log.Debug("found %d analyses", len(analyses))
	return analyses, rows.Err()
}

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

var materialColumns = []string{
	"id", "user_id", "analysis_id", "error_type", "grammar_point",
	"explanation", "examples", "exercises", "created_at",
}

type materialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a new MaterialRepository implementation
func NewMaterialRepository(db *sql.DB) repository.MaterialRepository {
	return &materialRepository{db: db}
}

func scanMaterial(row rowScanner) (*models.Material, error) {
	var (
		m                   models.Material
		analysisID          sql.NullString
		examples, exercises string
	)
	if err := row.Scan(&m.ID, &m.UserID, &analysisID, &m.ErrorType, &m.GrammarPoint, &m.Explanation, &examples, &exercises, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.AnalysisID = analysisID.String
	var err error
	if m.Examples, err = decodeJSON[string](examples); err != nil {
		return nil, err
	}
	if m.Exercises, err = decodeJSON[models.Exercise](exercises); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) Create(ctx context.Context, m models.Material) error {
	log := logger.FromContext(ctx).WithPrefix("material_repo")
	log.Debug("creating material: id=%s, analysis_id=%s, error_type=%s", m.ID, m.AnalysisID, m.ErrorType)

	examples, err := encodeJSON(m.Examples)
	if err != nil {
		return err
	}
	exercises, err := encodeJSON(m.Exercises)
	if err != nil {
		return err
	}

	query, args, err := sqlBuilder.Insert("materials").
		Columns(materialColumns...).
		Values(m.ID, m.UserID, nullString(m.AnalysisID), m.ErrorType, m.GrammarPoint, m.Explanation, examples, exercises, m.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert material: %v", err)
		return err
	}
	return nil
}

func (r *materialRepository) Get(ctx context.Context, id string) (*models.Material, error) {
	log := logger.FromContext(ctx).WithPrefix("material_repo")
	log.Debug("getting material: id=%s", id)

	query, args, err := sqlBuilder.Select(materialColumns...).From("materials").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	m, err := scanMaterial(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("material not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get material: %v", err)
		return nil, err
	}
	return m, nil
}

func (r *materialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	log := logger.FromContext(ctx).WithPrefix("material_repo")
	log.Debug("listing materials: user_id=%s, analysis_id=%s, limit=%d", filter.UserID, filter.AnalysisID, filter.Limit)

	q := sqlBuilder.Select(materialColumns...).From("materials")
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.AnalysisID != "" {
		q = q.Where(squirrel.Eq{"analysis_id": filter.AnalysisID})
	}
	q = paginate(q.OrderBy("created_at DESC", "rowid DESC"), filter.Limit, filter.Offset)

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list materials: %v", err)
		return nil, err
	}
	defer rows.Close()

	materials := []models.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			log.Error("failed to scan material row: %v", err)
			return nil, err
		}
		materials = append(materials, *m)
	}
	log.Debug("found %d materials", len(materials))
	return materials, rows.Err()
}

package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/repository"
	"github.com/vytor/kaiwa/internal/repository/sqlite"
	"github.com/vytor/kaiwa/internal/testutil"
)

type MaterialRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.MaterialRepository
}

func (s *MaterialRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewMaterialRepository(s.db)
}

func (s *MaterialRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func newMaterial(id, userID string, at time.Time) models.Material {
	return models.Material{
		ID:           id,
		UserID:       userID,
		ErrorType:    models.ErrorGrammar,
		GrammarPoint: "は vs が",
		Explanation:  "は marks the topic, が marks the subject.",
		Examples:     []string{"私は学生です", "誰が来ましたか"},
		Exercises: []models.Exercise{
			{ID: "exercise-0", Question: "私＿学生です", Options: []string{"は", "が", "を", "に"}, CorrectIndex: 0},
		},
		CreatedAt: at,
	}
}

func (s *MaterialRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()
	m := newMaterial("mat-1", "user-1", time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC))
	s.Require().NoError(s.repo.Create(ctx, m))

	got, err := s.repo.Get(ctx, "mat-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(m.GrammarPoint, got.GrammarPoint)
	s.Equal(m.Examples, got.Examples)
	s.Equal(m.Exercises, got.Exercises)
	s.Empty(got.AnalysisID)
	s.True(m.CreatedAt.Equal(got.CreatedAt))
}

func (s *MaterialRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.NoError(err)
	s.Nil(got)
}

func (s *MaterialRepositorySuite) TestList() {
	ctx := context.Background()
	base := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repo.Create(ctx, newMaterial("mat-1", "user-1", base)))
	s.Require().NoError(s.repo.Create(ctx, newMaterial("mat-2", "user-1", base.Add(time.Minute))))
	s.Require().NoError(s.repo.Create(ctx, newMaterial("mat-3", "user-2", base.Add(2*time.Minute))))

	got, err := s.repo.List(ctx, models.MaterialFilter{UserID: "user-1"})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("mat-2", got[0].ID)
	s.Equal("mat-1", got[1].ID)
}

func TestMaterialRepositorySuite(t *testing.T) {
	suite.Run(t, new(MaterialRepositorySuite))
}

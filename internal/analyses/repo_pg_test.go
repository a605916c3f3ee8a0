package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsJobTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	analysis := Analysis{
		ID:             "analysis-1",
		DocumentID:     "doc-1",
		UserID:         "user-1",
		JobTitle:       "Data Scientist",
		Seniority:      "mid",
		Status:         StatusQueued,
		Provider:       "openai",
		Model:          "gpt-4o-mini",
		ScoringVersion: "rules:v1",
		CreatedAt:      time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(
			analysis.ID,
			analysis.DocumentID,
			analysis.UserID,
			analysis.JobTitle,
			analysis.Seniority,
			nil, // industry
			analysis.Status,
			analysis.Provider,
			analysis.Model,
			analysis.ScoringVersion,
			analysis.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	columns := []string{
		"id", "document_id", "user_id", "job_title", "seniority", "industry",
		"status", "source", "provider", "model", "scoring_version", "result",
		"error_message", "started_at", "completed_at", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM analyses").
		WithArgs("analysis-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			"analysis-1", "doc-1", "user-1", "Data Scientist", "mid", nil,
			StatusCompleted, SourceFallback, nil, nil, "rules:v1",
			[]byte(`{"overallScore": 64}`), nil, now, now, now, now,
		))

	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusCompleted || got.Source != SourceFallback {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if got.Result["overallScore"] != float64(64) {
		t.Fatalf("result not decoded: %v", got.Result)
	}
	if got.StartedAt == nil || got.CompletedAt == nil {
		t.Fatal("expected timestamps")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMarkFailedMissingRowReturnsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE analyses").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkFailed(context.Background(), "nope", "boom", time.Now().UTC())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

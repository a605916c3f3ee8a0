package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, document_id, user_id, job_title, seniority, industry, status, source, provider, model, scoring_version, result, error_message, started_at, completed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var seniority, industry, source, provider, model, scoringVersion, errorMessage sql.NullString
	var result []byte
	var startedAt, completedAt sql.NullTime
	err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.UserID,
		&a.JobTitle,
		&seniority,
		&industry,
		&a.Status,
		&source,
		&provider,
		&model,
		&scoringVersion,
		&result,
		&errorMessage,
		&startedAt,
		&completedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	a.Seniority = seniority.String
	a.Industry = industry.String
	a.Source = source.String
	a.Provider = provider.String
	a.Model = model.String
	a.ScoringVersion = scoringVersion.String
	a.ErrorMessage = errorMessage.String
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &a.Result); err != nil {
			return Analysis{}, err
		}
	}
	return a, nil
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id, document_id, user_id, job_title, seniority, industry,
    status, provider, model, scoring_version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.DocumentID,
		analysis.UserID,
		analysis.JobTitle,
		nullString(analysis.Seniority),
		nullString(analysis.Industry),
		analysis.Status,
		nullString(analysis.Provider),
		nullString(analysis.Model),
		nullString(analysis.ScoringVersion),
		analysis.CreatedAt,
	)
	return err
}

// GetByID fetches an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	a, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return a, err
}

// MarkProcessing transitions an analysis to processing.
func (r *PGRepo) MarkProcessing(ctx context.Context, analysisID string, startedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $1, started_at = $2, updated_at = now()
WHERE id = $3 AND deleted_at IS NULL`
	return r.exec(ctx, query, StatusProcessing, startedAt, analysisID)
}

// MarkCompleted stores the report and transitions to completed.
func (r *PGRepo) MarkCompleted(ctx context.Context, analysisID, source string, result map[string]any, completedAt time.Time) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	const query = `
UPDATE analyses
SET status = $1, source = $2, result = $3, error_message = NULL, completed_at = $4, updated_at = now()
WHERE id = $5 AND deleted_at IS NULL`
	return r.exec(ctx, query, StatusCompleted, source, payload, completedAt, analysisID)
}

// MarkFailed records the failure message and transitions to failed.
func (r *PGRepo) MarkFailed(ctx context.Context, analysisID, errorMessage string, completedAt time.Time) error {
	const query = `
UPDATE analyses
SET status = $1, error_message = $2, completed_at = $3, updated_at = now()
WHERE id = $4 AND deleted_at IS NULL`
	return r.exec(ctx, query, StatusFailed, nullString(errorMessage), completedAt, analysisID)
}

// ListByUser lists analyses ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + analysisColumns + `
FROM analyses
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ClaimGuest reassigns analyses owned by a guest user to an authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE analyses
SET user_id = $1, updated_at = now()
WHERE user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	updated, _ := res.RowsAffected()
	return int(updated), nil
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)

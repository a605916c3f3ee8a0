package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"resume-screener/internal/analyses"
	"resume-screener/internal/documents"
)

// Service migrates guest-owned data to an authenticated user after login.
type Service struct {
	DocRepo      documents.DocumentsRepo
	AnalysisRepo analyses.Repo
}

type ClaimResult struct {
	MigratedDocuments int `json:"migratedDocuments"`
	MigratedAnalyses  int `json:"migratedAnalyses"`
}

func NewService(docRepo documents.DocumentsRepo, analysisRepo analyses.Repo) *Service {
	return &Service{DocRepo: docRepo, AnalysisRepo: analysisRepo}
}

// guestClaimer is implemented by repos that can reassign guest rows.
type guestClaimer interface {
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

// ClaimGuest reassigns the guest's documents and analyses to the
// authenticated user. When both repos share a Postgres handle the two
// updates run in one transaction.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	docPG, docOK := s.DocRepo.(*documents.PGRepo)
	analysisPG, analysisOK := s.AnalysisRepo.(*analyses.PGRepo)
	if docOK && analysisOK && docPG.DB != nil && docPG.DB == analysisPG.DB {
		return claimInTx(ctx, docPG.DB, guestUserID, authedUserID)
	}

	docCount, err := claimVia(ctx, s.DocRepo, guestUserID, authedUserID, "documents")
	if err != nil {
		return ClaimResult{}, err
	}
	analysisCount, err := claimVia(ctx, s.AnalysisRepo, guestUserID, authedUserID, "analyses")
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedDocuments: docCount, MigratedAnalyses: analysisCount}, nil
}

func claimVia(ctx context.Context, repo any, guestUserID, authedUserID, kind string) (int, error) {
	claimer, ok := repo.(guestClaimer)
	if !ok {
		return 0, errors.New(kind + " repo does not support claim")
	}
	return claimer.ClaimGuest(ctx, guestUserID, authedUserID)
}

func claimInTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	docs, err := tx.ExecContext(ctx,
		`UPDATE documents SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`,
		authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	runs, err := tx.ExecContext(ctx,
		`UPDATE analyses SET user_id = $1, updated_at = now() WHERE user_id = $2 AND deleted_at IS NULL`,
		authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}

	docCount, _ := docs.RowsAffected()
	analysisCount, _ := runs.RowsAffected()
	return ClaimResult{MigratedDocuments: int(docCount), MigratedAnalyses: int(analysisCount)}, nil
}

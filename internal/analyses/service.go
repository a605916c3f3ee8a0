package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/documents"
	"resume-screener/internal/extract"
	"resume-screener/internal/llm"
	"resume-screener/internal/parse"
	"resume-screener/internal/queue"
	"resume-screener/internal/score"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// defaultSeniority fills in for requests that omit the field, matching
// the pre-selected option in the job profile form.
const defaultSeniority = "mid"

var validSeniorities = map[string]struct{}{
	"junior": {},
	"mid":    {},
	"senior": {},
}

// Service contains business logic for analyses.
type Service struct {
	Repo           Repo
	DocRepo        documents.DocumentsRepo
	Store          object.ObjectStore
	Queue          queue.Client
	LLM            llm.Client
	Provider       string
	Model          string
	ScoringVersion string
}

// Create records a queued analysis for a document and hands it to the
// processing path. With a queue configured the job goes to the queue;
// otherwise it completes in-process.
func (s *Service) Create(ctx context.Context, documentID, userID string, job score.Job) (Analysis, error) {
	if documentID == "" || userID == "" {
		return Analysis{}, fmt.Errorf("%w: documentID and userID are required", ErrInvalidInput)
	}
	job.JobTitle = strings.TrimSpace(job.JobTitle)
	job.Seniority = strings.ToLower(strings.TrimSpace(job.Seniority))
	job.Industry = strings.TrimSpace(job.Industry)
	if job.JobTitle == "" {
		return Analysis{}, fmt.Errorf("%w: jobTitle is required", ErrInvalidInput)
	}
	if job.Seniority == "" {
		job.Seniority = defaultSeniority
	}
	if _, ok := validSeniorities[job.Seniority]; !ok {
		return Analysis{}, fmt.Errorf("%w: seniority must be junior, mid or senior", ErrInvalidInput)
	}

	doc, err := s.DocRepo.GetByID(ctx, userID, documentID)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{
		ID:             uuid.NewString(),
		DocumentID:     doc.ID,
		UserID:         userID,
		JobTitle:       job.JobTitle,
		Seniority:      job.Seniority,
		Industry:       job.Industry,
		Status:         StatusQueued,
		Provider:       s.providerLabel(),
		Model:          s.Model,
		ScoringVersion: s.ScoringVersion,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}

	s.dispatch(ctx, analysis.ID)

	return analysis, nil
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, fmt.Errorf("%w: analysisID is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns analyses for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) providerLabel() string {
	if s.LLM == nil {
		return ""
	}
	return s.Provider
}

func (s *Service) dispatch(ctx context.Context, analysisID string) {
	if s.Queue != nil {
		msg := queue.Message{
			AnalysisID: analysisID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Warn("analysis.enqueue_failed", map[string]any{
			"analysis_id": analysisID,
			"error":       err.Error(),
		})
	}
	go s.processAsync(backgroundWithRequestID(ctx), analysisID)
}

func (s *Service) processAsync(ctx context.Context, analysisID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAnalysis(ctx, analysisID, "", "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	_ = s.ProcessAnalysis(ctx, analysisID)
}

// ProcessAnalysis runs the scoring pipeline for a queued analysis. It is
// called in-process by dispatch and by the queue worker.
func (s *Service) ProcessAnalysis(ctx context.Context, analysisID string) error {
	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, analysisID, startedAt); err != nil {
		err = fmt.Errorf("set processing failed: %w", err)
		s.failAnalysis(ctx, analysisID, "", "", err, &startedAt)
		return err
	}

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		err = fmt.Errorf("analysis lookup: %w", err)
		s.failAnalysis(ctx, analysisID, "", "", err, &startedAt)
		return err
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"document_id":       analysis.DocumentID,
		"analysis_id":       analysis.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})
	if s.DocRepo == nil || s.Store == nil {
		err = errors.New("missing document store dependencies")
		s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
		return err
	}

	doc, err := s.DocRepo.GetByID(ctx, analysis.UserID, analysis.DocumentID)
	if err != nil {
		err = fmt.Errorf("document lookup id=%s: %w", analysis.DocumentID, err)
		s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
		return err
	}

	extractedKey := doc.ExtractedTextKey
	if extractedKey == "" {
		if _, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName); err != nil {
			err = fmt.Errorf("document %s mime %s: %w", doc.ID, doc.MimeType, err)
			s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
			return err
		}
		extractedKey = doc.StorageKey + ".extracted.txt"
		if err := s.DocRepo.UpdateExtraction(ctx, doc.UserID, doc.ID, extractedKey, time.Now().UTC()); err != nil {
			err = fmt.Errorf("document %s: update extraction: %w", doc.ID, err)
			s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
			return err
		}
	}

	text, err := loadText(ctx, s.Store, extractedKey)
	if err != nil {
		err = fmt.Errorf("document %s: load extracted text: %w", doc.ID, err)
		s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
		return err
	}

	resume := parse.ExtractFields(text)
	job := score.Job{
		JobTitle:  analysis.JobTitle,
		Seniority: analysis.Seniority,
		Industry:  analysis.Industry,
	}

	report, source := s.scoreResume(ctx, analysis, resume, job)
	result, err := reportToMap(report)
	if err != nil {
		err = fmt.Errorf("encode report: %w", err)
		s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
		return err
	}
	// Stored results carry the parsed resume, minus the raw text.
	resumeCopy := resume
	resumeCopy.RawText = ""
	if parsed, perr := toMap(resumeCopy); perr == nil {
		result["parsedResume"] = parsed
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.MarkCompleted(ctx, analysisID, source, result, completedAt); err != nil {
		err = fmt.Errorf("set analysis result failed: %w", err)
		s.failAnalysis(ctx, analysisID, analysis.UserID, analysis.DocumentID, err, &startedAt)
		return err
	}
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"document_id":       analysis.DocumentID,
		"analysis_id":       analysis.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"source":            source,
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

// scoreResume tries the model-backed path first and falls back to the
// deterministic scorer on any failure. It always returns a usable report.
func (s *Service) scoreResume(ctx context.Context, analysis Analysis, resume parse.Resume, job score.Job) (score.Report, string) {
	if s.LLM != nil {
		report, err := s.tryLLM(ctx, resume, job)
		if err == nil {
			return report, SourceLLM
		}
		if !errors.Is(err, llm.ErrNotConfigured) {
			metrics.IncAnalysisFallback()
			telemetry.Warn("analysis.llm_fallback", map[string]any{
				"request_id":  requestIDFromContext(ctx),
				"analysis_id": analysis.ID,
				"error":       sanitizeError(err),
			})
		}
	}
	return score.Fallback(resume, job), SourceFallback
}

func (s *Service) tryLLM(ctx context.Context, resume parse.Resume, job score.Job) (score.Report, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return score.Report{}, fmt.Errorf("encode resume: %w", err)
	}
	raw, err := s.LLM.ScoreResume(ctx, llm.ScoreInput{
		ResumeJSON: string(resumeJSON),
		JobTitle:   job.JobTitle,
		Seniority:  job.Seniority,
		Industry:   job.Industry,
	})
	if err != nil {
		return score.Report{}, err
	}
	return decodeReport(raw)
}

func (s *Service) failAnalysis(ctx context.Context, analysisID, userID, documentID string, err error, startedAt *time.Time) {
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.MarkFailed(context.Background(), analysisID, msg, completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update", map[string]any{
			"analysis_id": analysisID,
			"error":       updateErr.Error(),
			"cause":       msg,
		})
	}
	metrics.IncAnalysisFailed()
	if startedAt != nil {
		metrics.ObserveAnalysisDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"document_id":       documentID,
		"analysis_id":       analysisID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

func loadText(ctx context.Context, store object.ObjectStore, key string) (string, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

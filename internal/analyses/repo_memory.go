package analyses

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Analysis
	byUser map[string][]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Analysis),
		byUser: make(map[string][]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, analysis Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis.UpdatedAt = analysis.CreatedAt
	r.byID[analysis.ID] = analysis
	r.byUser[analysis.UserID] = append(r.byUser[analysis.UserID], analysis.ID)
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, analysisID string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) MarkProcessing(_ context.Context, analysisID string, startedAt time.Time) error {
	return r.update(analysisID, func(a *Analysis) {
		a.Status = StatusProcessing
		at := startedAt
		a.StartedAt = &at
	})
}

func (r *MemoryRepo) MarkCompleted(_ context.Context, analysisID, source string, result map[string]any, completedAt time.Time) error {
	return r.update(analysisID, func(a *Analysis) {
		a.Status = StatusCompleted
		a.Source = source
		a.Result = result
		a.ErrorMessage = ""
		at := completedAt
		a.CompletedAt = &at
	})
}

func (r *MemoryRepo) MarkFailed(_ context.Context, analysisID, errorMessage string, completedAt time.Time) error {
	return r.update(analysisID, func(a *Analysis) {
		a.Status = StatusFailed
		a.ErrorMessage = errorMessage
		at := completedAt
		a.CompletedAt = &at
	})
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUser[userID]
	out := make([]Analysis, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ClaimGuest(_ context.Context, guestUserID, authedUserID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byUser[guestUserID]
	for _, id := range ids {
		a := r.byID[id]
		a.UserID = authedUserID
		r.byID[id] = a
	}
	r.byUser[authedUserID] = append(r.byUser[authedUserID], ids...)
	delete(r.byUser, guestUserID)
	return len(ids), nil
}

func (r *MemoryRepo) update(analysisID string, apply func(*Analysis)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	apply(&a)
	a.UpdatedAt = time.Now().UTC()
	r.byID[analysisID] = a
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory DocumentsRepo used in dev mode and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Document
	byUser map[string][]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Document),
		byUser: make(map[string][]string),
	}
}

func (r *MemoryRepo) Create(_ context.Context, doc Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = doc
	r.byUser[doc.UserID] = append(r.byUser[doc.UserID], doc.ID)
	return nil
}

func (r *MemoryRepo) GetCurrentByUser(_ context.Context, userID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.userDocsLocked(userID)
	if len(docs) == 0 {
		return Document{}, ErrNotFound
	}
	return docs[0], nil
}

func (r *MemoryRepo) GetByID(_ context.Context, userID, documentID string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := r.userDocsLocked(userID)
	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if len(docs) > limit {
		docs = docs[:limit]
	}
	out := make([]Document, len(docs))
	copy(out, docs)
	return out, nil
}

func (r *MemoryRepo) UpdateExtraction(_ context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return ErrNotFound
	}
	if doc.ExtractedTextKey != "" {
		return nil
	}
	doc.ExtractedTextKey = extractedKey
	at := extractedAt
	doc.ExtractedAt = &at
	r.byID[documentID] = doc
	return nil
}

func (r *MemoryRepo) ClaimGuest(_ context.Context, guestUserID, authedUserID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := r.byUser[guestUserID]
	for _, id := range ids {
		doc := r.byID[id]
		doc.UserID = authedUserID
		r.byID[id] = doc
	}
	r.byUser[authedUserID] = append(r.byUser[authedUserID], ids...)
	delete(r.byUser, guestUserID)
	return len(ids), nil
}

// userDocsLocked returns the user's documents newest-first. Caller holds the lock.
func (r *MemoryRepo) userDocsLocked(userID string) []Document {
	ids := r.byUser[userID]
	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, r.byID[id])
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs
}

var _ DocumentsRepo = (*MemoryRepo)(nil)

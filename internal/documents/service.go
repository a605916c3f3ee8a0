package documents

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/shared/storage/object"
)

// Resume uploads are limited to the formats the extractor understands.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            DocumentsRepo
	StorageProvider string
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return Document{}, ErrUnsupportedType
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	provider := s.StorageProvider
	if provider == "" {
		provider = "local"
	}

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		MimeType:        mimeType,
		SizeBytes:       size,
		StorageProvider: provider,
		StorageKey:      storageKey,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Current returns the latest document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, errors.New("user id required")
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns a document by ID for a user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns documents for a user, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// MarkExtracted records the derived text object for a document.
func (s *Service) MarkExtracted(ctx context.Context, userID, documentID, extractedKey string) error {
	if userID == "" || documentID == "" || extractedKey == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateExtraction(ctx, userID, documentID, extractedKey, time.Now().UTC())
}

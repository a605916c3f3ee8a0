package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, file_name, original_filename, mime_type, content_type, size_bytes, storage_provider, storage_key, extracted_text_key, extracted_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var originalName, contentType, storageProvider, storageKey, extractedKey sql.NullString
	var extractedAt sql.NullTime
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&originalName,
		&doc.MimeType,
		&contentType,
		&doc.SizeBytes,
		&storageProvider,
		&storageKey,
		&extractedKey,
		&extractedAt,
		&doc.CreatedAt,
	)
	if err != nil {
		return Document{}, err
	}
	doc.OriginalFilename = originalName.String
	doc.ContentType = contentType.String
	doc.StorageProvider = storageProvider.String
	doc.StorageKey = storageKey.String
	doc.ExtractedTextKey = extractedKey.String
	if extractedAt.Valid {
		doc.ExtractedAt = &extractedAt.Time
	}
	return doc, nil
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, user_id, file_name, original_filename, mime_type, content_type,
    size_bytes, storage_provider, storage_key, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	originalName := doc.OriginalFilename
	if originalName == "" {
		originalName = doc.FileName
	}
	contentType := doc.ContentType
	if contentType == "" {
		contentType = doc.MimeType
	}
	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}

	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		originalName,
		doc.MimeType,
		contentType,
		doc.SizeBytes,
		storageProvider,
		storageKey,
		doc.CreatedAt,
	)
	return err
}

// GetCurrentByUser returns the latest document for a user.
func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	query := `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	return doc, err
}

// ListByUser lists documents ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
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
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateExtraction stores the extracted text metadata for a document.
// The key is written once; concurrent extraction attempts keep the first.
func (r *PGRepo) UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error {
	const query = `
UPDATE documents
SET extracted_text_key = $1, extracted_at = $2
WHERE user_id = $3 AND id = $4 AND extracted_text_key IS NULL`
	_, err := r.DB.ExecContext(ctx, query, extractedKey, extractedAt, userID, documentID)
	return err
}

// ClaimGuest reassigns documents owned by a guest user to an authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE documents
SET user_id = $1
WHERE user_id = $2 AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	updated, _ := res.RowsAffected()
	return int(updated), nil
}

var _ DocumentsRepo = (*PGRepo)(nil)

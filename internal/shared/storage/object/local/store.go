package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/util"
)

// Store keeps objects on the local filesystem under baseDir, one
// subdirectory per hashed user key.
type Store struct {
	baseDir string
}

func New(baseDir string) object.ObjectStore {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under the user's namespace. The first
// 512 bytes are sniffed for the content type before being written.
func (s *Store) Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error) {
	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", 0, "", err
	}

	userDir := util.HashUserKey(userID)
	objectName := randomToken() + "_" + safeName

	dir := filepath.Join(s.baseDir, userDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, "", fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, objectName))
	if err != nil {
		return "", 0, "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	head, rest, mimeType, err := sniffHead(r)
	if err != nil {
		return "", 0, "", err
	}

	size := int64(0)
	if len(head) > 0 {
		if _, err := f.Write(head); err != nil {
			return "", 0, "", fmt.Errorf("write sniff: %w", err)
		}
		size += int64(len(head))
	}
	written, err := io.Copy(f, rest)
	if err != nil {
		return "", 0, "", fmt.Errorf("write body: %w", err)
	}
	size += written

	return filepath.Join(userDir, objectName), size, mimeType, nil
}

// Open returns a reader for a stored object. Keys that escape baseDir
// are rejected.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := safeRelPath(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, rel))
}

// SaveWithKey writes the reader to an exact storage key. Used for
// derived objects such as extracted text.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rel, err := safeRelPath(storageKey)
	if err != nil {
		return 0, err
	}
	_ = contentType

	full := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	return written, nil
}

func safeRelPath(storageKey string) (string, error) {
	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

// sniffHead reads up to 512 bytes, detects the content type, and returns
// the head along with a reader for the remainder.
func sniffHead(r io.Reader) ([]byte, io.Reader, string, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, nil, "", fmt.Errorf("read sniff: %w", err)
	}
	return head[:n], r, http.DetectContentType(head[:n]), nil
}

func randomToken() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(b[:])
}

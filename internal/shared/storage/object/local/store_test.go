package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "guest:abc", "resume.txt", strings.NewReader("hello resume"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("hello resume")) {
		t.Fatalf("expected size %d, got %d", len("hello resume"), size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("expected text/plain mime, got %q", mimeType)
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello resume" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestSaveWithKeyWritesDerivedObject(t *testing.T) {
	store := New(t.TempDir()).(*Store)
	ctx := context.Background()

	n, err := store.SaveWithKey(ctx, "user/file.pdf.extracted.txt", "text/plain; charset=utf-8", strings.NewReader("text"))
	if err != nil {
		t.Fatalf("save with key: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes, got %d", n)
	}

	body, err := store.Open(ctx, "user/file.pdf.extracted.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	body.Close()
}

func TestOpenRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

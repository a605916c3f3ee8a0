package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	localstore "resume-screener/internal/shared/storage/object/local"
)

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Roe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior Engineer at Acme</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildTestDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(docxBody)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	rels, err := zw.Create("word/_rels/document.xml.rels")
	if err != nil {
		t.Fatalf("create document.xml.rels: %v", err)
	}
	relsBody := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	if _, err := rels.Write([]byte(relsBody)); err != nil {
		t.Fatalf("write document.xml.rels: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	got, err := ExtractTextFromBytes(context.Background(), []byte("Jane Roe\nEngineer"), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if got != "Jane Roe\nEngineer" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractTextFromBytes_InvalidUTF8Rejected(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte{0xff, 0xfe, 0x00}, "text/plain", "resume.txt")
	if err == nil {
		t.Fatal("expected error for invalid utf-8")
	}
}

func TestExtractTextFromBytes_Docx(t *testing.T) {
	data := buildTestDocx(t)

	got, err := ExtractTextFromBytes(context.Background(), data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(got, "Jane Roe") || !strings.Contains(got, "Senior Engineer at Acme") {
		t.Fatalf("missing paragraphs: %q", got)
	}
}

func TestExtractTextFromBytes_ZipMimeDocxNormalizes(t *testing.T) {
	data := buildTestDocx(t)

	if _, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "resume.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStripDocxXMLEmitsLineBreaks(t *testing.T) {
	got := stripDocxXML(docxBody)
	want := "Jane Roe\nSenior Engineer at Acme"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStripDocxXMLIgnoresMarkupWhitespace(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>Jane </w:t></w:r>
      <w:r><w:t>Roe</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Engineer</w:t><w:br/><w:t>Acme</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

	got := stripDocxXML(body)
	want := "Jane Roe\nEngineer\nAcme"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExtractTextPersistsDerivedCopy(t *testing.T) {
	store := localstore.New(t.TempDir())

	key, _, _, err := store.Save(context.Background(), "user-1", "resume.txt", strings.NewReader("Jane Roe\nEngineer"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := ExtractText(context.Background(), store, key, "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Jane Roe") {
		t.Fatalf("unexpected text: %q", text)
	}

	body, err := store.Open(context.Background(), key+".extracted.txt")
	if err != nil {
		t.Fatalf("open derived copy: %v", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read derived copy: %v", err)
	}
	if string(data) != text {
		t.Fatalf("derived copy mismatch: %q vs %q", string(data), text)
	}
}

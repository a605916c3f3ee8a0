package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-screener/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// ExtractText reads a stored resume, converts it to plain text, and writes
// the derived text next to the original as <key>.extracted.txt.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", fileKey, mimeType, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}

	if err := saveExtracted(ctx, store, fileKey+".extracted.txt", text); err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	return text, nil
}

// ExtractTextFromBytes converts an in-memory payload to plain text based
// on its resolved mime type.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch resolved := resolveMime(mimeType, fileName, data); resolved {
	case mimePDF:
		return pdfText(data)
	case mimeDOCX:
		return docxText(data)
	case mimeText:
		return plainText(data)
	default:
		return "", fmt.Errorf("unsupported mime type: %s", resolved)
	}
}

type keySaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

func saveExtracted(ctx context.Context, store object.ObjectStore, key, text string) error {
	saver, ok := store.(keySaver)
	if !ok {
		return errors.New("object store does not support SaveWithKey")
	}
	_, err := saver.SaveWithKey(ctx, key, "text/plain; charset=utf-8", strings.NewReader(text))
	return err
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty docx document")
	}
	return stripDocxXML(content), nil
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return string(data), nil
}

// stripDocxXML flattens word/document.xml into plain text, one newline
// per paragraph and line break. Only character data inside <w:t> elements
// is text; anything between elements is markup indentation.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	textDepth := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				textDepth++
			}
		case xml.CharData:
			if textDepth > 0 {
				buf.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if textDepth > 0 {
					textDepth--
				}
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// resolveMime trusts a specific declared mime type and falls back to zip
// sniffing and the file extension for the generic ones browsers send.
func resolveMime(mimeType, fileName string, data []byte) string {
	declared := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if declared != "application/zip" && declared != "application/octet-stream" {
		return declared
	}
	if zipHoldsWordDocument(data) {
		return mimeDOCX
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		return mimeDOCX
	case ".pdf":
		return mimePDF
	case ".txt":
		return mimeText
	}
	return declared
}

func zipHoldsWordDocument(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}

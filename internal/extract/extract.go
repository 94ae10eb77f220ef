package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"resume-matcher/internal/shared/storage/object"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"

	extractedSuffix = ".extracted.txt"
	extractedType   = "text/plain; charset=utf-8"
)

// ExtractedKey is the storage key of the cached text for a stored document.
func ExtractedKey(fileKey string) string {
	return fileKey + extractedSuffix
}

// ExtractText pulls text from a stored object and persists a derived
// .extracted.txt copy next to it.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fileKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileKey, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", err
	}

	if _, err := store.SaveWithKey(ctx, ExtractedKey(fileKey), extractedType, strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("save extracted text for %s: %w", fileKey, err)
	}
	return text, nil
}

// ReadExtracted loads text cached by ExtractText.
func ReadExtracted(ctx context.Context, store object.ObjectStore, extractedKey string) (string, error) {
	body, err := store.Open(ctx, extractedKey)
	if err != nil {
		return "", err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ExtractTextFromBytes extracts text from an in-memory payload. Failures are
// returned as *Error.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := DetectMimeType(mimeType, fileName, data)

	var (
		text string
		err  error
	)
	switch normalized {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeText, "text/markdown":
		text, err = decodeText(data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmpty
	}
	if err != nil {
		return "", &Error{MimeType: normalized, FileName: fileName, Cause: err}
	}
	return strings.TrimSpace(text), nil
}

// DetectMimeType resolves the effective type from the declared type, the file
// extension and the content. Zip payloads are inspected for OOXML parts.
func DetectMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "" || clean == "application/octet-stream" {
		clean = byExtension(fileName)
		if clean == "" && len(data) > 0 {
			clean = strings.Split(http.DetectContentType(data), ";")[0]
		}
	}
	if clean != "application/zip" {
		return clean
	}
	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}
	if byExtension(fileName) == MimeDOCX {
		return MimeDOCX
	}
	return clean
}

func byExtension(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt", ".text":
		return MimeText
	case ".md", ".markdown":
		return "text/markdown"
	}
	return ""
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed xref tables.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Some generators omit parts the docx reader insists on; fall back to
		// reading the main document part directly.
		raw, zipErr := readZipPart(data, "word/document.xml")
		if zipErr != nil {
			return "", fmt.Errorf("parse docx: %w", err)
		}
		return stripDocxXML(raw), nil
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

func readZipPart(data []byte, part string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != part {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return "", fmt.Errorf("%s not found", part)
}

// stripDocxXML keeps the text runs (<w:t>) and turns paragraph, break and
// tab elements into whitespace.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	inText := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			if inText > 0 {
				buf.Write(t)
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText++
			case "tab":
				buf.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "p", "br":
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// decodeText strips a UTF-8 BOM and converts UTF-16 (with BOM) to UTF-8.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", errors.New("text is not valid utf-8")
	}
	return string(out), nil
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		switch strings.ReplaceAll(f.Name, "\\", "/") {
		case "word/document.xml":
			return MimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}

// Package document pulls plain text out of uploaded résumé files.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported résumé file type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedFormat is returned for files that are not PDF, DOCX or plain text.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ExtractionError reports a file of a supported type that could not be read.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FormatFromMIME maps a content type, parameters allowed, to a Format.
func FormatFromMIME(mime string) (Format, error) {
	base, _, _ := strings.Cut(mime, ";")
	switch strings.ToLower(strings.TrimSpace(base)) {
	case MIMEText:
		return FormatText, nil
	case MIMEPDF:
		return FormatPDF, nil
	case MIMEDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
}

// FormatFromFilename maps a file extension to a Format.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// ExtractText returns the text content of data.
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatText:
		return string(data), nil
	case FormatPDF:
		text, err := pdfText(data)
		if err != nil {
			return "", &ExtractionError{Format: format, Err: err}
		}
		return text, nil
	case FormatDOCX:
		text, err := docxText(data)
		if err != nil {
			return "", &ExtractionError{Format: format, Err: err}
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ExtractByMIME is ExtractText keyed by content type.
func ExtractByMIME(mime string, data []byte) (string, error) {
	format, err := FormatFromMIME(mime)
	if err != nil {
		return "", err
	}
	return ExtractText(format, data)
}

func pdfText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripXML(doc.Editable().GetContent()), nil
}

// stripXML drops the WordprocessingML markup returned by the docx reader, turning paragraph
// ends into newlines.
func stripXML(content string) string {
	var b strings.Builder
	inTag := false
	var tag strings.Builder
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			name := tag.String()
			if name == "/w:p" || strings.HasPrefix(name, "w:br") {
				b.WriteByte('\n')
			} else if strings.HasPrefix(name, "w:tab") {
				b.WriteByte('\t')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(unescape(b.String()))
}

var xmlEntities = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&")

func unescape(s string) string {
	return xmlEntities.Replace(s)
}

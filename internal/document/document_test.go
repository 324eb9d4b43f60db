package document

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships/>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFormatFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want Format
	}{
		{"text/plain", FormatText},
		{"text/plain; charset=utf-8", FormatText},
		{"application/pdf", FormatPDF},
		{MIMEDOCX, FormatDOCX},
	}
	for _, tt := range tests {
		got, err := FormatFromMIME(tt.mime)
		require.NoError(t, err, tt.mime)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatFromMIME("image/png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromFilename(t *testing.T) {
	got, err := FormatFromFilename("Curriculo.PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, got)

	got, err = FormatFromFilename("cv.docx")
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, got)

	_, err = FormatFromFilename("cv.doc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractPlainText(t *testing.T) {
	text, err := ExtractByMIME("text/plain", []byte("Python e Docker"))
	require.NoError(t, err)
	assert.Equal(t, "Python e Docker", text)
}

func TestExtractDocx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Experiência com Python &amp; Go</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Docker</w:t><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>`)

	text, err := ExtractText(FormatDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Experiência com Python & Go\nDocker\tKubernetes", text)
}

func TestExtractMalformed(t *testing.T) {
	for _, format := range []Format{FormatPDF, FormatDOCX} {
		_, err := ExtractText(format, []byte("not really a document"))
		require.Error(t, err, format)

		var xerr *ExtractionError
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, format, xerr.Format)
		assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	}
}

func TestExtractUnsupported(t *testing.T) {
	_, err := ExtractText(Format("rtf"), []byte("{\\rtf1}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractByMIME("application/msword", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

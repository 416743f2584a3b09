package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noulaye/Scrap-beac/pkg/rates"
)

const longLabel = "COURONNE SUEDOISE ET NORVEGIENNE"

func sampleReport() rates.Report {
	return rates.Report{
		Metadata: rates.Metadata{DateSource: "Publié le 17/10/2026", SourceURL: rates.SourceURL},
		Rows: rates.RateTable{
			{Code: "290", Symbol: "EUR", Label: "EURO", Buy: "655.96", Sell: "657.28"},
			{Code: "", Symbol: "XYZ", Label: "", Buy: "1.00", Sell: "1.01"},
			{Code: "310", Symbol: "SEK", Label: longLabel, Buy: "58,1", Sell: "59,2"},
		},
	}
}

func writeLogo(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, x%20, color.RGBA{R: 200, A: 255})
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func readDocumentXML(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return documentXML(t, data)
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("word/document.xml が見つかりません")
	return ""
}

// pdfText は圧縮せずに生成した PDF と、本文の文字コード変換関数を返します。
func pdfText(t *testing.T, report rates.Report, opts Options) (string, func(string) string) {
	t.Helper()
	pdf, err := buildPDF(report, opts)
	require.NoError(t, err)
	pdf.SetCompression(false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.String(), tr
}

// shown は PDF のテキスト描画命令の形に整えます。
func shown(s string) string {
	return "(" + s + ")Tj"
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "EURO", truncate("EURO", MaxCellRunes))
	assert.Equal(t, "COURONNE SUEDOISE ", truncate(longLabel, MaxCellRunes))
	assert.Len(t, []rune(truncate(strings.Repeat("é", 30), MaxCellRunes)), MaxCellRunes)
	assert.Equal(t, strings.Repeat("a", 18), truncate(strings.Repeat("a", 18), MaxCellRunes))
}

func TestGrid_SameContentInBothRenderings(t *testing.T) {
	report := sampleReport()
	before := sampleReport()

	full := grid(report.Rows)
	cut := pdfGrid(report.Rows)

	require.Len(t, full, len(report.Rows)+1)
	require.Len(t, cut, len(full))
	assert.Equal(t, rates.Columns, full[0])
	assert.Equal(t, rates.Columns, cut[0])

	for i := range full {
		for j := range full[i] {
			assert.Equal(t, truncate(full[i][j], MaxCellRunes), cut[i][j])
			assert.LessOrEqual(t, len([]rune(cut[i][j])), MaxCellRunes)
		}
	}
	assert.Equal(t, longLabel, full[3][2], "Word 側は切り詰めない")
	assert.Equal(t, "COURONNE SUEDOISE ", cut[3][2])

	assert.Equal(t, before, report, "入力は変更されない")
	assert.Equal(t, []string{"CODE", "SYMBOLE", "INTITULE", "ACHAT", "VENTE"}, rates.Columns)
}

func TestWritePDF(t *testing.T) {
	t.Run("without logo", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePDF(&buf, sampleReport(), Options{}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("with logo", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WritePDF(&buf, sampleReport(), Options{LogoPath: writeLogo(t)}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		report := sampleReport()
		report.Rows = nil
		require.NoError(t, WritePDF(&buf, report, Options{}))
	})

	t.Run("missing logo is a render error", func(t *testing.T) {
		var buf bytes.Buffer
		err := WritePDF(&buf, sampleReport(), Options{LogoPath: filepath.Join(t.TempDir(), "absent.png")})
		var renderErr *rates.RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "pdf", renderErr.Format)
		assert.Zero(t, buf.Len())
	})
}

func TestWritePDF_Content(t *testing.T) {
	report := sampleReport()
	content, tr := pdfText(t, report, Options{})

	assert.Contains(t, content, shown(tr(Title)))
	assert.Contains(t, content, shown(tr("Date de publication : Publié le 17/10/2026")))
	assert.Contains(t, content, shown(tr("Source : "+rates.SourceURL)))
	for _, name := range rates.Columns {
		assert.Contains(t, content, shown(name))
	}
	for _, row := range report.Rows {
		for _, c := range row.Cells() {
			if c == "" {
				continue
			}
			assert.Contains(t, content, shown(tr(truncate(c, MaxCellRunes))))
		}
	}

	assert.Contains(t, content, shown("COURONNE SUEDOISE "))
	assert.NotContains(t, content, longLabel)
}

func TestSavePDF(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "taux_beac.pdf")
	require.NoError(t, SavePDF(path, sampleReport(), Options{}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	bad := filepath.Join(dir, "missing", "taux_beac.pdf")
	err = SavePDF(bad, sampleReport(), Options{})
	var renderErr *rates.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, bad, renderErr.Path)
	assert.NoFileExists(t, bad)
}

func TestWriteDocx(t *testing.T) {
	t.Run("same content as the pdf without truncation", func(t *testing.T) {
		report := sampleReport()
		var buf bytes.Buffer
		require.NoError(t, WriteDocx(&buf, report, Options{}))

		xml := documentXML(t, buf.Bytes())
		pdf, tr := pdfText(t, report, Options{})
		for _, row := range report.Rows {
			for _, c := range row.Cells() {
				if c == "" {
					continue
				}
				assert.Contains(t, xml, c)
				assert.Contains(t, pdf, shown(tr(truncate(c, MaxCellRunes))))
			}
		}
		assert.Contains(t, xml, report.DateSource)
		assert.Contains(t, xml, report.SourceURL)
	})

	t.Run("missing logo is a render error", func(t *testing.T) {
		var buf bytes.Buffer
		err := WriteDocx(&buf, sampleReport(), Options{LogoPath: filepath.Join(t.TempDir(), "absent.png")})
		var renderErr *rates.RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "docx", renderErr.Format)
		assert.Zero(t, buf.Len())
	})
}

func TestSaveDocx(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		report := sampleReport()
		path := filepath.Join(t.TempDir(), "taux_beac.docx")
		require.NoError(t, SaveDocx(path, report, Options{}))

		xml := readDocumentXML(t, path)
		assert.Contains(t, xml, Title)
		assert.Contains(t, xml, "Date de publication : Publié le 17/10/2026")
		assert.Contains(t, xml, "Source : "+rates.SourceURL)
		for _, name := range rates.Columns {
			assert.Contains(t, xml, name)
		}
		for _, row := range report.Rows {
			for _, c := range row.Cells() {
				assert.Contains(t, xml, c)
			}
		}
		assert.Contains(t, xml, longLabel)
	})

	t.Run("with logo", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taux_beac.docx")
		require.NoError(t, SaveDocx(path, sampleReport(), Options{LogoPath: writeLogo(t)}))
		assert.FileExists(t, path)
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "taux_beac.docx")
		err := SaveDocx(path, sampleReport(), Options{})
		var renderErr *rates.RenderError
		require.True(t, errors.As(err, &renderErr))
		assert.Equal(t, "docx", renderErr.Format)
	})
}

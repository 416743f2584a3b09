package export

import (
	"bytes"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/noulaye/Scrap-beac/pkg/rates"
)

const (
	pdfFontFamily = "Arial"
	pdfFontSize   = 12
	pdfLineHeight = 10

	pdfLogoX     = 10
	pdfLogoY     = 8
	pdfLogoWidth = 30
)

// pdfColumnWidths は CODE, SYMBOLE, INTITULE, ACHAT, VENTE の列幅 (mm) です。
var pdfColumnWidths = []float64{20, 25, 65, 40, 40}

// pdfGrid は grid の各セルを MaxCellRunes 文字に切り詰めた写しを返します。
func pdfGrid(rows rates.RateTable) [][]string {
	g := grid(rows)
	for _, cells := range g {
		for i, c := range cells {
			cells[i] = truncate(c, MaxCellRunes)
		}
	}
	return g
}

// WritePDF はレート表を1ページの PDF として w に書き出します。
func WritePDF(w io.Writer, report rates.Report, opts Options) error {
	pdf, err := buildPDF(report, opts)
	if err != nil {
		return &rates.RenderError{Format: formatPDF, Err: err}
	}
	if err := pdf.Output(w); err != nil {
		return &rates.RenderError{Format: formatPDF, Err: err}
	}
	return nil
}

// SavePDF は PDF を path に保存します。生成に失敗した場合はファイルを作成しません。
func SavePDF(path string, report rates.Report, opts Options) error {
	var buf bytes.Buffer
	if err := WritePDF(&buf, report, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &rates.RenderError{Format: formatPDF, Path: path, Err: err}
	}
	return nil
}

func buildPDF(report rates.Report, opts Options) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.AddPage()
	pdf.SetFont(pdfFontFamily, "", pdfFontSize)

	// コアフォントは cp1252 のため、アクセント付き文字を変換してから出力する
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if opts.LogoPath != "" {
		aspect, err := logoAspect(opts.LogoPath)
		if err != nil {
			return nil, err
		}
		pdf.ImageOptions(opts.LogoPath, pdfLogoX, pdfLogoY, pdfLogoWidth, 0, false,
			fpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetY(pdfLogoY + pdfLogoWidth*aspect + 2)
	}

	pdf.CellFormat(0, pdfLineHeight, tr(Title), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, tr(dateLine(report.Metadata)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, tr(sourceLine(report.Metadata)), "", 1, "", false, 0, "")
	pdf.Ln(pdfLineHeight)

	for _, cells := range pdfGrid(report.Rows) {
		for i, c := range cells {
			pdf.CellFormat(pdfColumnWidths[i], pdfLineHeight, tr(c), "1", 0, "", false, 0, "")
		}
		pdf.Ln(pdfLineHeight)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

package export

import (
	"bytes"
	"io"
	"os"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"

	"github.com/noulaye/Scrap-beac/pkg/rates"
)

const (
	docxTableStyle = "TableGrid"
	docxLogoWidth  = 1.5 // inch
)

// WriteDocx はレート表を Word 文書として w に書き出します。セルの切り詰めは行いません。
func WriteDocx(w io.Writer, report rates.Report, opts Options) error {
	doc, err := buildDocx(report, opts)
	if err != nil {
		return &rates.RenderError{Format: formatDocx, Err: err}
	}
	if err := doc.Write(w); err != nil {
		return &rates.RenderError{Format: formatDocx, Err: err}
	}
	return nil
}

// SaveDocx は Word 文書を path に保存します。生成に失敗した場合はファイルを作成しません。
func SaveDocx(path string, report rates.Report, opts Options) error {
	var buf bytes.Buffer
	if err := WriteDocx(&buf, report, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &rates.RenderError{Format: formatDocx, Path: path, Err: err}
	}
	return nil
}

func buildDocx(report rates.Report, opts Options) (*docx.RootDoc, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}

	if _, err := doc.AddHeading(Title, 0); err != nil {
		return nil, err
	}
	doc.AddParagraph(dateLine(report.Metadata))
	doc.AddParagraph(sourceLine(report.Metadata))
	doc.AddParagraph("")

	if opts.LogoPath != "" {
		aspect, err := logoAspect(opts.LogoPath)
		if err != nil {
			return nil, err
		}
		if _, err := doc.AddPicture(opts.LogoPath, units.Inch(docxLogoWidth), units.Inch(docxLogoWidth*aspect)); err != nil {
			return nil, err
		}
	}

	g := grid(report.Rows)
	table := doc.AddTable()
	table.Style(docxTableStyle)

	header := table.AddRow()
	for _, name := range g[0] {
		header.AddCell().AddParagraph("").AddText(name).Bold(true)
	}
	for _, cells := range g[1:] {
		row := table.AddRow()
		for _, c := range cells {
			row.AddCell().AddParagraph(c)
		}
	}
	return doc, nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/noulaye/Scrap-beac/pkg/export"
	"github.com/noulaye/Scrap-beac/pkg/extract"
	"github.com/noulaye/Scrap-beac/pkg/rates"
)

// Targets は出力先のファイルパスです。空のパスはその形式を出力しないことを意味します。
type Targets struct {
	PDFPath  string
	DocxPath string
	LogoPath string
}

// Pipeline は取得 → 解析 → 出力を順に実行します。実行間で状態を共有しません。
type Pipeline struct {
	extractor *extract.Extractor
	logger    *slog.Logger
}

// New は Fetcher から Pipeline を組み立てます。logger が nil の場合は slog.Default を使います。
func New(fetcher extract.Fetcher, logger *slog.Logger) (*Pipeline, error) {
	extractor, err := extract.NewExtractor(fetcher)
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{extractor: extractor, logger: logger}, nil
}

// Scrape はページを取得してレート表を返します。
func (p *Pipeline) Scrape(ctx context.Context, url string) (*rates.Report, error) {
	p.logger.Debug("レート表を取得します", slog.String("url", url))

	report, err := p.extractor.FetchAndExtract(ctx, url)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("レート表を抽出しました",
		slog.Int("rows", len(report.Rows)),
		slog.String("date_source", report.DateSource),
	)
	return report, nil
}

// Export は report を Targets に従って PDF と Word に出力します。最初の失敗で中断します。
func (p *Pipeline) Export(report rates.Report, targets Targets) error {
	opts := export.Options{LogoPath: targets.LogoPath}

	if targets.PDFPath != "" {
		if err := export.SavePDF(targets.PDFPath, report, opts); err != nil {
			return err
		}
		p.logger.Debug("PDFを出力しました", slog.String("path", targets.PDFPath))
	}

	if targets.DocxPath != "" {
		if err := export.SaveDocx(targets.DocxPath, report, opts); err != nil {
			return err
		}
		p.logger.Debug("Word文書を出力しました", slog.String("path", targets.DocxPath))
	}
	return nil
}

// Run は Scrape と Export を続けて実行します。取得・解析に失敗した場合はファイルを作成しません。
func (p *Pipeline) Run(ctx context.Context, url string, targets Targets) (*rates.Report, error) {
	report, err := p.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := p.Export(*report, targets); err != nil {
		return report, err
	}
	return report, nil
}

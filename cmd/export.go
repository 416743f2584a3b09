package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/noulaye/Scrap-beac/internal/config"
	"github.com/noulaye/Scrap-beac/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "為替レート表をPDFとWord文書に出力します",
	Long: `為替レート表を取得し、--pdf と --docx で指定したパスに文書を出力します。
空文字列を指定した形式は出力しません。取得・解析に失敗した場合はファイルを作成しません。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := pipeline.Targets{
			PDFPath:  v.GetString(config.KeyPDF),
			DocxPath: v.GetString(config.KeyDocx),
			LogoPath: appConfig.LogoPath,
		}
		if targets.PDFPath == "" && targets.DocxPath == "" {
			return fmt.Errorf("出力先が指定されていません (--pdf または --docx)")
		}

		p, err := newPipeline()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), overallTimeout())
		defer cancel()

		report, err := p.Run(ctx, appConfig.SourceURL, targets)
		if err != nil {
			return fmt.Errorf("文書の出力に失敗しました: %w", err)
		}

		logger.Info("文書を出力しました",
			slog.Int("rows", len(report.Rows)),
			slog.String("date_source", report.DateSource),
			slog.String("pdf", targets.PDFPath),
			slog.String("docx", targets.DocxPath),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().String(config.KeyPDF, "taux_beac.pdf", "PDFの出力先 (空文字列で出力しない)")
	exportCmd.Flags().String(config.KeyDocx, "taux_beac.docx", "Word文書の出力先 (空文字列で出力しない)")
	if err := v.BindPFlags(exportCmd.Flags()); err != nil {
		panic(fmt.Sprintf("フラグのバインドに失敗しました: %v", err))
	}
}

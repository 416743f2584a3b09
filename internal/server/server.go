// Package server はレート表とダウンロード用ファイルを HTTP で提供します。
// 各リクエストは独立したパイプライン実行で、状態を共有しません。
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/noulaye/Scrap-beac/pkg/export"
	"github.com/noulaye/Scrap-beac/pkg/rates"
)

const (
	pdfFileName  = "taux_beac.pdf"
	docxFileName = "taux_beac.docx"

	pdfContentType  = "application/pdf"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Scraper は Server が必要とするパイプラインの操作です。
type Scraper interface {
	Scrape(ctx context.Context, url string) (*rates.Report, error)
}

// renderFunc は export.WritePDF / export.WriteDocx の形です。
type renderFunc func(w io.Writer, report rates.Report, opts export.Options) error

// Server は gin のルーティングとパイプラインを結び付けます。
type Server struct {
	scraper   Scraper
	sourceURL string
	logoPath  string
	logger    *slog.Logger
}

// New は Server を生成します。
func New(scraper Scraper, sourceURL, logoPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{scraper: scraper, sourceURL: sourceURL, logoPath: logoPath, logger: logger}
}

// Handler はルーティング済みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/rates", s.getRates)
		api.GET("/rates.pdf", s.download(pdfFileName, pdfContentType, export.WritePDF))
		api.GET("/rates.docx", s.download(docxFileName, docxContentType, export.WriteDocx))
	}
	return r
}

// RateResponse は1行分のJSON表現です。
type RateResponse struct {
	rates.RateRow
	BuyValue  *decimal.Decimal `json:"buy_value"`
	SellValue *decimal.Decimal `json:"sell_value"`
}

// ReportResponse は /api/rates のレスポンスです。
type ReportResponse struct {
	rates.Metadata
	Rows []RateResponse `json:"rows"`
}

// NewReportResponse は Report をJSON用の構造に変換します。
func NewReportResponse(report rates.Report) ReportResponse {
	rows := make([]RateResponse, 0, len(report.Rows))
	for _, row := range report.Rows {
		buy, sell := row.Quotes()
		rows = append(rows, RateResponse{RateRow: row, BuyValue: buy, SellValue: sell})
	}
	return ReportResponse{Metadata: report.Metadata, Rows: rows}
}

func (s *Server) getRates(c *gin.Context) {
	report, err := s.scraper.Scrape(c.Request.Context(), s.sourceURL)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReportResponse(*report))
}

func (s *Server) download(fileName, contentType string, render renderFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := s.scraper.Scrape(c.Request.Context(), s.sourceURL)
		if err != nil {
			s.fail(c, err)
			return
		}

		var buf bytes.Buffer
		if err := render(&buf, *report, export.Options{LogoPath: s.logoPath}); err != nil {
			s.fail(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
		c.Data(http.StatusOK, contentType, buf.Bytes())
	}
}

// fail はエラーの種類に応じたステータスコードで応答します。
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var netErr *rates.NetworkError
	var parseErr *rates.ParseError
	switch {
	case errors.As(err, &netErr), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	loggerFrom(c).Error("パイプラインの実行に失敗しました", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// Package export は為替レート表を PDF と Word 文書に出力します。
package export

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/noulaye/Scrap-beac/pkg/rates"
)

const (
	// Title は両方の文書に出力される表題です。
	Title = "Taux de Change - BEAC"

	// MaxCellRunes は PDF のセルに出力する最大文字数です。超えた分は黙って切り捨てます。
	MaxCellRunes = 18

	formatPDF  = "pdf"
	formatDocx = "docx"
)

// Options は出力時の任意設定です。
type Options struct {
	// LogoPath はロゴ画像のパスです。空の場合はロゴを出力しません。
	LogoPath string
}

func dateLine(m rates.Metadata) string {
	return fmt.Sprintf("Date de publication : %s", m.DateSource)
}

func sourceLine(m rates.Metadata) string {
	return fmt.Sprintf("Source : %s", m.SourceURL)
}

// grid は見出し行とデータ行を Columns の順序で並べた表を返します。
func grid(rows rates.RateTable) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), rates.Columns...))
	for _, row := range rows {
		out = append(out, row.Cells())
	}
	return out
}

// truncate は s を最大 n 文字（rune 単位）に切り詰めます。
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// logoAspect はロゴ画像の高さ/幅の比を返します。
func logoAspect(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ロゴ画像を開けません: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("ロゴ画像の形式を判定できません: %w", err)
	}
	if cfg.Width == 0 {
		return 0, fmt.Errorf("ロゴ画像の幅が0です")
	}
	return float64(cfg.Height) / float64(cfg.Width), nil
}
